package pointer

// DefaultDragThreshold is how far, in pixels, the pointer may travel between press and release
// and still count as a click.
const DefaultDragThreshold = 6

// Gesture tells clicks from drags. The primary button both orbits the camera and clicks
// hotspots, so a click is only emitted on release when the pointer barely moved.
type Gesture struct {
	Threshold float32

	pressed  bool
	dragging bool
	startX   float32
	startY   float32
}

// Press records a button press at (x, y).
func (g *Gesture) Press(x, y float32) {
	g.pressed = true
	g.dragging = false
	g.startX, g.startY = x, y
}

// Move updates the gesture while the button is held. It reports whether the gesture is now a drag.
func (g *Gesture) Move(x, y float32) bool {
	if !g.pressed {
		return false
	}
	if !g.dragging {
		dx, dy := x-g.startX, y-g.startY
		t := g.threshold()
		g.dragging = dx*dx+dy*dy > t*t
	}
	return g.dragging
}

// Release ends the gesture and reports whether it was a click.
func (g *Gesture) Release(x, y float32) bool {
	if !g.pressed {
		return false
	}
	g.Move(x, y)
	click := !g.dragging
	g.pressed = false
	g.dragging = false
	return click
}

// Dragging reports whether the held button has moved past the threshold.
func (g *Gesture) Dragging() bool {
	return g.dragging
}

func (g *Gesture) threshold() float32 {
	if g.Threshold > 0 {
		return g.Threshold
	}
	return DefaultDragThreshold
}
