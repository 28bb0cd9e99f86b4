package pointer

// Kind is the type of a pointer event.
type Kind int

const (
	// Move is a hover: the pointer changed position without pressing.
	Move Kind = iota
	// Click is a primary mouse button press.
	Click
	// TouchStart is a finger touching the screen.
	TouchStart
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Click:
		return "click"
	case TouchStart:
		return "touchstart"
	}
	return "unknown"
}

// Activates reports whether events of this kind open a popup (Click and TouchStart do, Move does not).
func (k Kind) Activates() bool {
	return k == Click || k == TouchStart
}

// Event is a transient pointer input in viewport pixel coordinates (origin top-left, Y down).
// Events are consumed synchronously and never stored.
type Event struct {
	X, Y float32
	Kind Kind
}

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height float32
}

// Empty reports whether the viewport has no area (e.g. a minimized window).
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Center returns the pixel coordinates of the viewport center.
func (v Viewport) Center() (x, y float32) {
	return v.Width / 2, v.Height / 2
}

// Normalize maps pixel coordinates to the signed unit square: x grows right and y grows up,
// both in [-1, 1] for points inside the viewport. Points outside are not clamped.
// An empty viewport maps everything to the origin.
func Normalize(x, y float32, vp Viewport) (nx, ny float32) {
	if vp.Empty() {
		return 0, 0
	}
	nx = (x/vp.Width)*2 - 1
	ny = -(y/vp.Height)*2 + 1
	return nx, ny
}

// Denormalize is the inverse of Normalize: signed unit coordinates back to viewport pixels.
func Denormalize(nx, ny float32, vp Viewport) (x, y float32) {
	x = (nx*0.5 + 0.5) * vp.Width
	y = (-ny*0.5 + 0.5) * vp.Height
	return x, y
}
