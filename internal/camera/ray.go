package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"landmark-viewer/internal/pointer"
)

// Ray is a half-line. Direction is normalized, so the parameter t of a point Origin + t*Direction
// is its distance from Origin.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayThrough builds a ray from the camera position through the normalized pointer coordinates
// (nx, ny in [-1, 1], y up). The far-plane point is unprojected with the inverse view-projection.
func (c Camera) RayThrough(nx, ny float32, vp pointer.Viewport) Ray {
	inv := c.ViewProjection(vp).Inv()
	far := inv.Mul4x1(mgl32.Vec4{nx, ny, 1, 1})
	if w := far.W(); w != 0 {
		far = far.Mul(1 / w)
	}
	dir := far.Vec3().Sub(c.Position)
	if dir.Len() == 0 {
		dir = c.Target.Sub(c.Position)
	}
	return Ray{Origin: c.Position, Direction: dir.Normalize()}
}

// RayFromPixel normalizes the pixel coordinates and returns the ray through them.
func (c Camera) RayFromPixel(x, y float32, vp pointer.Viewport) Ray {
	nx, ny := pointer.Normalize(x, y, vp)
	return c.RayThrough(nx, ny, vp)
}
