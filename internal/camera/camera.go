package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"landmark-viewer/internal/pointer"
)

// Default clip planes match raylib's BeginMode3D (RL_CULL_DISTANCE_NEAR/FAR), so projections
// computed here line up with what is drawn.
const (
	DefaultNear = 0.01
	DefaultFar  = 1000.0
	DefaultFovY = 45.0
)

// Camera is a perspective camera. FovY is the vertical field of view in degrees.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FovY     float32
	Near     float32
	Far      float32
}

// New returns a camera at position looking at target with Y up and default lens settings.
func New(position, target mgl32.Vec3) Camera {
	return Camera{
		Position: position,
		Target:   target,
		Up:       mgl32.Vec3{0, 1, 0},
		FovY:     DefaultFovY,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

// View returns the world-to-view matrix.
func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix for the viewport's aspect ratio.
func (c Camera) Projection(vp pointer.Viewport) mgl32.Mat4 {
	aspect := float32(1)
	if !vp.Empty() {
		aspect = vp.Width / vp.Height
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = DefaultNear
	}
	if far <= near {
		far = DefaultFar
	}
	fovy := c.FovY
	if fovy <= 0 {
		fovy = DefaultFovY
	}
	return mgl32.Perspective(mgl32.DegToRad(fovy), aspect, near, far)
}

// ViewProjection returns projection * view.
func (c Camera) ViewProjection(vp pointer.Viewport) mgl32.Mat4 {
	return c.Projection(vp).Mul4(c.View())
}

// Project maps a world point to normalized device coordinates. inFront is false when the point
// lies on or behind the camera plane (clip w <= 0); the returned NDC is then meaningless.
func (c Camera) Project(world mgl32.Vec3, vp pointer.Viewport) (ndc mgl32.Vec3, inFront bool) {
	clip := c.ViewProjection(vp).Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return mgl32.Vec3{0, 0, 2}, false
	}
	return mgl32.Vec3{clip.X() / w, clip.Y() / w, clip.Z() / w}, true
}

// Distance returns the Euclidean distance from the camera to p.
func (c Camera) Distance(p mgl32.Vec3) float32 {
	return p.Sub(c.Position).Len()
}

// View supplies the camera and viewport of the frame being handled. The scene implements it.
type View interface {
	Camera() Camera
	Viewport() pointer.Viewport
}
