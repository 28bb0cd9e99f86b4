package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Progress is the model loading bar: a frame, a fill and a caption. An error replaces the
// caption and stays until Hide.
type Progress struct {
	engine  *Engine
	frame   *Node
	fill    *Node
	label   *Node
	visible bool
}

// NewProgress creates a hidden bar styled by .progress, .progress-fill and .progress-label.
func NewProgress(e *Engine) *Progress {
	p := &Progress{
		engine: e,
		frame:  NewNode("panel", "progress", "", ""),
		fill:   NewNode("panel", "progress-fill", "", ""),
		label:  NewNode("label", "progress-label", "", ""),
	}
	p.fill.Placed = true
	p.label.Placed = true
	return p
}

// Set shows the bar at fraction (0-1); a negative fraction means unknown and shows an empty bar.
func (p *Progress) Set(caption string, fraction float32) {
	p.visible = true
	p.label.Class = "progress-label"
	p.label.Text = caption
	if fraction >= 0 {
		p.label.Text = fmt.Sprintf("%s %3.0f%%", caption, fraction*100)
	}
	p.layout(max(0, min(fraction, 1)))
}

// Fail shows an error message in place of the caption.
func (p *Progress) Fail(msg string) {
	p.visible = true
	p.label.Class = "progress-error"
	p.label.Text = msg
	p.layout(0)
}

// Hide removes the bar.
func (p *Progress) Hide() {
	p.visible = false
}

// Visible reports whether the bar is shown.
func (p *Progress) Visible() bool {
	return p.visible
}

func (p *Progress) layout(fraction float32) {
	r := p.engine.Place(p.frame)
	p.fill.Bounds = rl.NewRectangle(r.X, r.Y, r.Width*fraction, r.Height)
	st := p.engine.Style(p.label)
	p.label.Bounds = rl.NewRectangle(r.X, r.Y-p.engine.LineHeight(st.FontSize)-4, r.Width, p.engine.LineHeight(st.FontSize))
}

// AppendNodes appends the bar's nodes to dst while it is visible.
func (p *Progress) AppendNodes(dst []*Node) []*Node {
	if !p.visible {
		return dst
	}
	p.fill.Hidden = p.fill.Bounds.Width <= 0
	return append(dst, p.frame, p.fill, p.label)
}
