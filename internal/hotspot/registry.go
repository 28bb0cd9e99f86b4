package hotspot

// Registry is the ordered set of hotspots for the active scene. Registration order is the
// tie-break for equidistant ray hits. Hotspots are never removed; a new scene gets a new Registry.
type Registry struct {
	items []*Hotspot
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends h and assigns its ID. Registering the same hotspot twice returns its existing ID.
// A nil hotspot is ignored and yields NoID.
func (r *Registry) Register(h *Hotspot) ID {
	if h == nil {
		return NoID
	}
	if h.id != NoID && int(h.id) < len(r.items) && r.items[h.id] == h {
		return h.id
	}
	h.id = ID(len(r.items))
	r.items = append(r.items, h)
	return h.id
}

// Get returns the hotspot with the given id.
func (r *Registry) Get(id ID) (*Hotspot, bool) {
	if id < 0 || int(id) >= len(r.items) {
		return nil, false
	}
	return r.items[id], true
}

// Len returns the number of registered hotspots.
func (r *Registry) Len() int {
	return len(r.items)
}

// All returns every hotspot in registration order. The slice is a copy.
func (r *Registry) All() []*Hotspot {
	out := make([]*Hotspot, len(r.items))
	copy(out, r.items)
	return out
}

// Pickable returns the ray-cast targets in registration order.
func (r *Registry) Pickable() []*Hotspot {
	return r.byMode(Pickable)
}

// ScreenAnchored returns the hotspots projected every frame, in registration order.
func (r *Registry) ScreenAnchored() []*Hotspot {
	return r.byMode(ScreenAnchored)
}

func (r *Registry) byMode(m Mode) []*Hotspot {
	var out []*Hotspot
	for _, h := range r.items {
		if h.mode == m {
			out = append(out, h)
		}
	}
	return out
}
