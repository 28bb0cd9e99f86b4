package projection

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"landmark-viewer/internal/camera"
	"landmark-viewer/internal/pointer"
)

// Scaling maps camera distance to marker scale: clamp(1/(d*K), Min, Max).
type Scaling struct {
	K   float32
	Min float32
	Max float32
}

// DefaultScaling returns the constants tuned for the landmark scenes.
func DefaultScaling() Scaling {
	return Scaling{K: 0.09, Min: 0.45, Max: 1.2}
}

// At returns the marker scale for distance d. Non-positive distances get Max.
func (s Scaling) At(d float32) float32 {
	if d <= 0 || s.K <= 0 {
		return s.Max
	}
	return mgl32.Clamp(1/(d*s.K), s.Min, s.Max)
}

// Placement is where a 2D marker goes this frame. X, Y are the marker center in viewport pixels.
type Placement struct {
	X, Y    float32
	Scale   float32
	Visible bool
}

// Place projects world through cam into vp. Points behind the camera or outside the depth range
// (NDC z outside [-1, 1]) are hidden. scaleWithDistance applies s; otherwise scale is 1.
func Place(cam camera.Camera, vp pointer.Viewport, world mgl32.Vec3, scaleWithDistance bool, s Scaling) Placement {
	ndc, inFront := cam.Project(world, vp)
	if !inFront || ndc.Z() < -1 || ndc.Z() > 1 || math32.IsNaN(ndc.Z()) {
		return Placement{}
	}
	x, y := pointer.Denormalize(ndc.X(), ndc.Y(), vp)
	p := Placement{X: x, Y: y, Scale: 1, Visible: true}
	if scaleWithDistance {
		p.Scale = s.At(cam.Distance(world))
	}
	return p
}
