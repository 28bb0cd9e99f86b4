package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Orbit is a damped orbit controller around a target: drag input adds angular velocity,
// wheel input adds zoom velocity, and Update integrates and decays both.
type Orbit struct {
	Target   mgl32.Vec3
	Yaw      float32 // radians around +Y, 0 = looking down -Z from +Z
	Pitch    float32 // radians above the XZ plane
	Distance float32

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	RotateSpeed float32 // angular velocity, in radians per second, added per pixel of drag
	ZoomSpeed   float32 // log-distance velocity, per second, added per wheel step
	Damping     float32 // fraction of velocity kept after one second; 0 = stop at once

	yawVel, pitchVel, zoomVel float32
}

// NewOrbit returns an orbit that reproduces the given camera position around target.
func NewOrbit(position, target mgl32.Vec3) *Orbit {
	o := &Orbit{
		Target:      target,
		MinDistance: 1,
		MaxDistance: 200,
		MinPitch:    -1.45,
		MaxPitch:    1.45,
		RotateSpeed: 0.04,
		ZoomSpeed:   0.6,
		Damping:     0.02,
	}
	o.Reset(position, target)
	return o
}

// Reset recomputes yaw, pitch and distance from a position and clears any inertia.
func (o *Orbit) Reset(position, target mgl32.Vec3) {
	o.Target = target
	off := position.Sub(target)
	o.Distance = off.Len()
	if o.Distance > 0 {
		o.Pitch = math32.Asin(off.Y() / o.Distance)
		o.Yaw = math32.Atan2(off.X(), off.Z())
	}
	o.yawVel, o.pitchVel, o.zoomVel = 0, 0, 0
	o.clamp()
}

// Drag adds rotational velocity from a pointer drag of (dx, dy) pixels.
func (o *Orbit) Drag(dx, dy float32) {
	o.yawVel -= dx * o.RotateSpeed
	o.pitchVel += dy * o.RotateSpeed
}

// Zoom adds zoom velocity; positive steps move closer.
func (o *Orbit) Zoom(steps float32) {
	o.zoomVel -= steps * o.ZoomSpeed
}

// Update advances the orbit by dt seconds. Motion is scaled by dt so the feel does not depend
// on the frame rate.
func (o *Orbit) Update(dt float32) {
	if dt <= 0 {
		return
	}
	o.Yaw += o.yawVel * dt
	o.Pitch += o.pitchVel * dt
	o.Distance *= math32.Exp(o.zoomVel * dt)
	o.clamp()

	keep := math32.Pow(math32.Max(o.Damping, 0), dt)
	o.yawVel *= keep
	o.pitchVel *= keep
	o.zoomVel *= keep
	if math32.Abs(o.yawVel) < 1e-5 {
		o.yawVel = 0
	}
	if math32.Abs(o.pitchVel) < 1e-5 {
		o.pitchVel = 0
	}
	if math32.Abs(o.zoomVel) < 1e-5 {
		o.zoomVel = 0
	}
}

// Moving reports whether any inertia is left.
func (o *Orbit) Moving() bool {
	return o.yawVel != 0 || o.pitchVel != 0 || o.zoomVel != 0
}

// Position returns the camera position for the current yaw, pitch and distance.
func (o *Orbit) Position() mgl32.Vec3 {
	cp := math32.Cos(o.Pitch)
	off := mgl32.Vec3{
		math32.Sin(o.Yaw) * cp,
		math32.Sin(o.Pitch),
		math32.Cos(o.Yaw) * cp,
	}
	return o.Target.Add(off.Mul(o.Distance))
}

// Apply writes the orbit position and target into c.
func (o *Orbit) Apply(c *Camera) {
	c.Position = o.Position()
	c.Target = o.Target
}

func (o *Orbit) clamp() {
	o.Pitch = mgl32.Clamp(o.Pitch, o.MinPitch, o.MaxPitch)
	if o.MaxDistance > o.MinDistance {
		o.Distance = mgl32.Clamp(o.Distance, o.MinDistance, o.MaxDistance)
	}
}
