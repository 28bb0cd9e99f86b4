package picking

import (
	"github.com/rs/zerolog"

	"landmark-viewer/internal/camera"
	"landmark-viewer/internal/hotspot"
	"landmark-viewer/internal/pointer"
)

// Shower receives the info of a clicked hotspot. The popup controller implements it.
type Shower interface {
	Show(info hotspot.Info)
}

// Hoverer shows or clears the "this is clickable" pointer affordance (e.g. a hand cursor).
type Hoverer interface {
	SetHover(hovering bool)
}

// Result is the outcome of resolving one pointer event.
type Result struct {
	Hit      *hotspot.Hotspot // nil when nothing was under the pointer
	Distance float32
}

// Resolver maps pointer events to Pickable hotspots by ray casting.
// Move events only update the hover affordance; Click and TouchStart open the popup on a hit.
type Resolver struct {
	registry *hotspot.Registry
	caster   Caster
	view     camera.View
	popup    Shower
	hover    Hoverer
	log      zerolog.Logger

	hovered hotspot.ID
}

// NewResolver wires a resolver. hover may be nil when no affordance is wanted.
func NewResolver(registry *hotspot.Registry, caster Caster, view camera.View, popup Shower, hover Hoverer, log zerolog.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		caster:   caster,
		view:     view,
		popup:    popup,
		hover:    hover,
		log:      log,
		hovered:  hotspot.NoID,
	}
}

// Hovered returns the hotspot currently under the pointer according to the last Move, if any.
func (r *Resolver) Hovered() (*hotspot.Hotspot, bool) {
	return r.registry.Get(r.hovered)
}

// Resolve handles one pointer event synchronously.
func (r *Resolver) Resolve(ev pointer.Event) Result {
	res := r.pick(ev.X, ev.Y)

	if ev.Kind == pointer.Move {
		r.setHovered(res.Hit)
		return res
	}
	if !ev.Kind.Activates() || res.Hit == nil {
		return res
	}
	r.log.Debug().
		Int("hotspot", int(res.Hit.ID())).
		Str("title", res.Hit.Info.Title).
		Str("kind", ev.Kind.String()).
		Float32("distance", res.Distance).
		Msg("hotspot picked")
	if r.popup != nil {
		r.popup.Show(res.Hit.Info)
	}
	return res
}

// HandlePointer implements pointer.Handler. It consumes events that hit a hotspot.
func (r *Resolver) HandlePointer(ev pointer.Event) bool {
	return r.Resolve(ev).Hit != nil
}

// Forget drops the hovered hotspot without touching the cursor. Call it when a layer above the
// scene consumed the move, since that layer owns the cursor for this event.
func (r *Resolver) Forget() {
	r.hovered = hotspot.NoID
}

func (r *Resolver) pick(x, y float32) Result {
	targets := r.registry.Pickable()
	if len(targets) == 0 {
		return Result{}
	}
	nx, ny := pointer.Normalize(x, y, r.view.Viewport())
	hits := r.caster.CastRay(nx, ny, targets)
	if len(hits) == 0 {
		return Result{}
	}
	return Result{Hit: hits[0].Hotspot, Distance: hits[0].Distance}
}

func (r *Resolver) setHovered(h *hotspot.Hotspot) {
	id := hotspot.NoID
	if h != nil {
		id = h.ID()
	}
	if r.hover != nil {
		r.hover.SetHover(h != nil)
	}
	r.hovered = id
}
