package ui

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"landmark-viewer/internal/hotspot"
)

// Marker is the round 2D element of a screen-anchored hotspot. It implements projection.Marker.
type Marker struct {
	engine  *Engine
	hotspot *hotspot.Hotspot
	node    *Node
}

// NewMarker creates a hidden marker. A hotspot MarkerSizePx overrides the CSS width; label is
// drawn in the middle (e.g. "1", "2").
func NewMarker(e *Engine, h *hotspot.Hotspot, label string) *Marker {
	n := NewNode("marker", "marker", "", label)
	n.Centered = true
	n.Interactive = true
	n.Hidden = true
	n.Bounds.Width = h.Visual.MarkerSizePx
	return &Marker{engine: e, hotspot: h, node: n}
}

func (m *Marker) SetVisible(visible bool) { m.node.Hidden = !visible }

func (m *Marker) SetCenter(x, y float32) {
	m.node.Bounds.X = x
	m.node.Bounds.Y = y
}

func (m *Marker) SetScale(scale float32) { m.node.Scale = scale }

// Contains tests against the marker's circle at its current size.
func (m *Marker) Contains(x, y float32) bool {
	if m.node.Hidden {
		return false
	}
	r := m.engine.Place(m.node)
	radius := r.Width / 2
	return math32.Hypot(x-(r.X+radius), y-(r.Y+radius)) <= radius
}

// SetHovered switches the hover style.
func (m *Marker) SetHovered(on bool) {
	if on {
		m.node.Class = "marker marker-hover"
	} else {
		m.node.Class = "marker"
	}
}

// Hotspot returns the hotspot the marker stands for.
func (m *Marker) Hotspot() *hotspot.Hotspot {
	return m.hotspot
}

// Node returns the marker's UI node.
func (m *Marker) Node() *Node {
	return m.node
}

// Rect returns the marker's on-screen box.
func (m *Marker) Rect() rl.Rectangle {
	return m.engine.Place(m.node)
}
