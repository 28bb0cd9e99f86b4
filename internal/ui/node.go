package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, button, marker. Class and ID are matched by CSS.
// Bounds is laid out from the stylesheet unless Placed is set, in which case the owner positions
// the node and CSS only supplies size (when Bounds has none) and colors.
type Node struct {
	Type   string // "panel", "label", "button", "marker", "image"
	Class  string // space-separated, e.g. "marker hover"
	ID     string
	Bounds rl.Rectangle
	Text   string

	Hidden      bool
	Placed      bool
	Centered    bool    // Bounds.X/Y is the center; size comes from style times Scale
	Interactive bool    // reported by HitTest
	Opacity     float32 // multiplied into every color
	Scale       float32
	Texture     *rl.Texture2D
}

// NewNode creates a visible node with full opacity and unit scale.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:    typ,
		Class:   class,
		ID:      id,
		Text:    text,
		Opacity: 1,
		Scale:   1,
	}
}

// Contains reports whether the point lies inside the node's current bounds.
func (n *Node) Contains(x, y float32) bool {
	if n == nil || n.Hidden {
		return false
	}
	return rl.CheckCollisionPointRec(rl.NewVector2(x, y), n.Bounds)
}
