package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-viewer/internal/pointer"
)

var testViewport = pointer.Viewport{Width: 1280, Height: 720}

func TestProjectPointInFrontOfCameraLandsAtCenter(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0})

	ndc, inFront := c.Project(mgl32.Vec3{0, 0, 0}, testViewport)
	require.True(t, inFront)
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)
}

func TestProjectPointBehindCamera(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0})
	_, inFront := c.Project(mgl32.Vec3{0, 0, 20}, testViewport)
	assert.False(t, inFront)
}

func TestProjectRightAndUp(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 0})
	ndc, inFront := c.Project(mgl32.Vec3{1, 1, 0}, testViewport)
	require.True(t, inFront)
	assert.Greater(t, ndc.X(), float32(0))
	assert.Greater(t, ndc.Y(), float32(0))
}

func TestRayThroughCenterPointsAtTarget(t *testing.T) {
	c := New(mgl32.Vec3{0, 5, 10}, mgl32.Vec3{0, 5, 0})
	r := c.RayThrough(0, 0, testViewport)

	assert.Equal(t, c.Position, r.Origin)
	assert.InDelta(t, 0, r.Direction.X(), 1e-4)
	assert.InDelta(t, 0, r.Direction.Y(), 1e-4)
	assert.InDelta(t, -1, r.Direction.Z(), 1e-4)
	assert.InDelta(t, 1, r.Direction.Len(), 1e-5)

	p := r.At(10)
	assert.InDelta(t, 0, p.Z(), 1e-3)
}

func TestRayFromPixelRoundTripsThroughProject(t *testing.T) {
	c := New(mgl32.Vec3{4, 3, 8}, mgl32.Vec3{0, 1, 0})
	world := mgl32.Vec3{0.5, 1.5, -0.5}

	ndc, inFront := c.Project(world, testViewport)
	require.True(t, inFront)
	px, py := pointer.Denormalize(ndc.X(), ndc.Y(), testViewport)

	r := c.RayFromPixel(px, py, testViewport)
	toWorld := world.Sub(r.Origin)
	closest := r.At(toWorld.Dot(r.Direction))
	assert.InDelta(t, 0, closest.Sub(world).Len(), 1e-3)
}

func TestDistance(t *testing.T) {
	c := New(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{})
	assert.InDelta(t, 5, c.Distance(mgl32.Vec3{0, 4, 3}), 1e-6)
}

func TestOrbitResetReproducesPosition(t *testing.T) {
	pos := mgl32.Vec3{10, 10, 10}
	o := NewOrbit(pos, mgl32.Vec3{})
	got := o.Position()
	assert.InDelta(t, pos.X(), got.X(), 1e-3)
	assert.InDelta(t, pos.Y(), got.Y(), 1e-3)
	assert.InDelta(t, pos.Z(), got.Z(), 1e-3)
}

func TestOrbitDampingStopsMotion(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{0, 0, 20}, mgl32.Vec3{})
	o.Drag(100, 0)
	require.True(t, o.Moving())
	yaw := o.Yaw
	o.Update(1.0 / 60)
	assert.NotEqual(t, yaw, o.Yaw)

	for i := 0; i < 600; i++ {
		o.Update(1.0 / 60)
	}
	assert.False(t, o.Moving())
}

func TestOrbitMotionIndependentOfFrameRate(t *testing.T) {
	run := func(fps int) *Orbit {
		o := NewOrbit(mgl32.Vec3{0, 0, 20}, mgl32.Vec3{})
		o.Drag(100, 40)
		o.Zoom(1)
		for i := 0; i < fps; i++ {
			o.Update(1 / float32(fps))
		}
		return o
	}
	slow, fast := run(60), run(144)
	assert.InEpsilon(t, slow.Yaw, fast.Yaw, 0.05)
	assert.InEpsilon(t, slow.Pitch, fast.Pitch, 0.05)
	assert.InEpsilon(t, slow.Distance, fast.Distance, 0.05)
	assert.Less(t, fast.Distance, float32(20))
}

func TestOrbitClampsPitchAndDistance(t *testing.T) {
	o := NewOrbit(mgl32.Vec3{0, 0, 20}, mgl32.Vec3{})
	o.Damping = 0
	o.Drag(0, 100000)
	o.Update(1)
	assert.LessOrEqual(t, o.Pitch, o.MaxPitch)

	o.Zoom(-100000)
	o.Update(1)
	assert.LessOrEqual(t, o.Distance, o.MaxDistance)

	var c Camera
	o.Apply(&c)
	assert.InDelta(t, o.Distance, c.Position.Sub(c.Target).Len(), 1e-2)
}
