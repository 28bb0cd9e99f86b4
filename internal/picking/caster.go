package picking

import (
	"slices"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"landmark-viewer/internal/camera"
	"landmark-viewer/internal/hotspot"
)

// Intersection is one ray hit. Distance is measured along the ray from the camera.
type Intersection struct {
	Hotspot  *hotspot.Hotspot
	Distance float32
	Point    mgl32.Vec3
}

// Caster casts a ray from normalized pointer coordinates into the scene and returns the hits
// among targets, nearest first. Equal distances keep the order of targets.
type Caster interface {
	CastRay(nx, ny float32, targets []*hotspot.Hotspot) []Intersection
}

// SphereCaster tests each target's hit sphere (hit-volume radius, else marker radius).
type SphereCaster struct {
	View camera.View
}

// NewSphereCaster returns a caster reading the camera from view on every cast.
func NewSphereCaster(view camera.View) *SphereCaster {
	return &SphereCaster{View: view}
}

// CastRay implements Caster.
func (c *SphereCaster) CastRay(nx, ny float32, targets []*hotspot.Hotspot) []Intersection {
	if len(targets) == 0 {
		return nil
	}
	ray := c.View.Camera().RayThrough(nx, ny, c.View.Viewport())
	var hits []Intersection
	for _, h := range targets {
		t, ok := IntersectSphere(ray, h.WorldPosition(), h.Pick.TargetRadius())
		if !ok {
			continue
		}
		hits = append(hits, Intersection{Hotspot: h, Distance: t, Point: ray.At(t)})
	}
	SortNearest(hits)
	return hits
}

// SortNearest orders hits by distance; ties keep their current order.
func SortNearest(hits []Intersection) {
	slices.SortStableFunc(hits, func(a, b Intersection) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
}

// IntersectSphere returns the distance along ray to the first surface point of the sphere.
// A ray starting inside the sphere hits the exit point. Spheres behind the origin or with a
// non-positive radius are missed.
func IntersectSphere(ray camera.Ray, center mgl32.Vec3, radius float32) (float32, bool) {
	if radius <= 0 {
		return 0, false
	}
	oc := ray.Origin.Sub(center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
