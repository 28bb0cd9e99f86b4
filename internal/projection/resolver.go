package projection

import (
	"fmt"

	"github.com/rs/zerolog"

	"landmark-viewer/internal/camera"
	"landmark-viewer/internal/hotspot"
	"landmark-viewer/internal/pointer"
)

// Marker is the 2D UI element of a screen-anchored hotspot.
type Marker interface {
	SetVisible(visible bool)
	SetCenter(x, y float32)
	SetScale(scale float32)
	// Contains reports whether the pixel (x, y) lies on the marker as currently placed.
	Contains(x, y float32) bool
}

// Shower receives the info of a clicked marker.
type Shower interface {
	Show(info hotspot.Info)
}

// Hoverer shows the pointer affordance while over a marker.
type Hoverer interface {
	SetHover(hovering bool)
}

type binding struct {
	hotspot *hotspot.Hotspot
	marker  Marker
	last    Placement
}

// Resolver keeps screen-anchored markers in sync with the camera and dispatches their clicks.
// Markers bound later are drawn on top, so they win overlapping clicks.
type Resolver struct {
	view     camera.View
	scaling  Scaling
	popup    Shower
	hover    Hoverer
	log      zerolog.Logger
	bindings []binding
}

// NewResolver returns a resolver with no markers bound.
func NewResolver(view camera.View, scaling Scaling, popup Shower, hover Hoverer, log zerolog.Logger) *Resolver {
	return &Resolver{view: view, scaling: scaling, popup: popup, hover: hover, log: log}
}

// Bind attaches a UI marker to a screen-anchored hotspot. The marker starts hidden until Update.
func (r *Resolver) Bind(h *hotspot.Hotspot, m Marker) error {
	if h == nil || m == nil {
		return fmt.Errorf("projection: bind: nil hotspot or marker")
	}
	if h.Mode() != hotspot.ScreenAnchored {
		return fmt.Errorf("projection: bind %q: hotspot is %s, not screen-anchored", h.Info.Title, h.Mode())
	}
	m.SetVisible(false)
	r.bindings = append(r.bindings, binding{hotspot: h, marker: m})
	return nil
}

// Len returns the number of bound markers.
func (r *Resolver) Len() int {
	return len(r.bindings)
}

// Update re-projects every bound marker. Call once per frame after the camera moved.
func (r *Resolver) Update() {
	cam := r.view.Camera()
	vp := r.view.Viewport()
	for i := range r.bindings {
		b := &r.bindings[i]
		p := Place(cam, vp, b.hotspot.WorldPosition(), b.hotspot.Visual.ScaleWithDistance, r.scaling)
		b.last = p
		if !p.Visible {
			b.marker.SetVisible(false)
			continue
		}
		b.marker.SetCenter(p.X, p.Y)
		b.marker.SetScale(p.Scale)
		b.marker.SetVisible(true)
	}
}

// Placement returns the last placement computed for h.
func (r *Resolver) Placement(h *hotspot.Hotspot) (Placement, bool) {
	for _, b := range r.bindings {
		if b.hotspot == h {
			return b.last, true
		}
	}
	return Placement{}, false
}

// MarkerAt returns the topmost visible marker's hotspot under (x, y).
func (r *Resolver) MarkerAt(x, y float32) (*hotspot.Hotspot, bool) {
	for i := len(r.bindings) - 1; i >= 0; i-- {
		b := r.bindings[i]
		if b.last.Visible && b.marker.Contains(x, y) {
			return b.hotspot, true
		}
	}
	return nil, false
}

// HandlePointer implements pointer.Handler: an event over a visible marker is consumed so the
// 3D picker below never sees it. Click and TouchStart open the popup with the marker's info.
func (r *Resolver) HandlePointer(ev pointer.Event) bool {
	h, ok := r.MarkerAt(ev.X, ev.Y)
	if !ok {
		return false
	}
	if ev.Kind == pointer.Move {
		if r.hover != nil {
			r.hover.SetHover(true)
		}
		return true
	}
	if ev.Kind.Activates() && r.popup != nil {
		r.log.Debug().
			Int("hotspot", int(h.ID())).
			Str("title", h.Info.Title).
			Str("kind", ev.Kind.String()).
			Msg("marker clicked")
		r.popup.Show(h.Info)
	}
	return true
}
