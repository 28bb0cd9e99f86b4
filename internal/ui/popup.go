package ui

import (
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"landmark-viewer/internal/hotspot"
	"landmark-viewer/internal/pointer"
	"landmark-viewer/internal/ui/style"
)

const popupGap = 10

// Popup images are decoded no larger than this.
const (
	PopupImageMaxW = 384
	PopupImageMaxH = 220
)

// Popup is the information panel: title, optional image, description and a close button. It is
// driven by the popup controller through SetContent, SetDisplayed and SetAnimatedIn; opacity
// fades toward the animated-in target over the transition.
type Popup struct {
	engine *Engine
	images *Images

	panel *Node
	title *Node
	close *Node
	image *Node
	desc  *Node

	info      hotspot.Info
	displayed bool
	fade      style.Fade
	onClose   func()
}

// NewPopup creates a hidden panel styled by .popup, .popup-title, .popup-desc, .popup-image and
// #popup-close.
func NewPopup(e *Engine, images *Images, transition time.Duration) *Popup {
	p := &Popup{
		engine: e,
		images: images,
		panel:  NewNode("panel", "popup", "popup", ""),
		title:  NewNode("label", "popup-title", "", ""),
		close:  NewNode("button", "popup-close", "popup-close", "x"),
		image:  NewNode("image", "popup-image", "", ""),
		desc:   NewNode("label", "popup-desc", "", ""),
		fade:   style.Fade{Duration: transition},
	}
	for _, n := range p.children() {
		n.Placed = true
	}
	p.close.Interactive = true
	return p
}

// OnClose sets what the close button does, normally the controller's Hide.
func (p *Popup) OnClose(fn func()) {
	p.onClose = fn
}

// SetContent implements popup.Element. A missing or failed image is simply left out.
func (p *Popup) SetContent(info hotspot.Info) {
	p.info = info
	if info.HasImage() {
		p.images.Request(info.ImageRef)
	}
}

// SetDisplayed implements popup.Element.
func (p *Popup) SetDisplayed(on bool) {
	p.displayed = on
	if !on {
		p.fade.Value = 0
		p.fade.Target = 0
	}
}

// SetAnimatedIn implements popup.Element.
func (p *Popup) SetAnimatedIn(in bool) {
	if in {
		p.fade.Target = 1
	} else {
		p.fade.Target = 0
	}
}

// Displayed reports whether the panel takes space on screen.
func (p *Popup) Displayed() bool {
	return p.displayed
}

// Opacity returns the current fade value.
func (p *Popup) Opacity() float32 {
	return p.fade.Value
}

// Update advances the fade and lays the panel out.
func (p *Popup) Update(dt time.Duration) {
	p.fade.Step(dt)
	if !p.displayed {
		return
	}
	e := p.engine
	pst := e.Style(p.panel)
	pad := float32(pst.Padding)
	width := float32(pst.Width)
	if width <= 0 {
		width = 420
	}
	inner := width - 2*pad

	closeR := e.Place(p.close)
	tst := e.Style(p.title)
	dst := e.Style(p.desc)
	titleLines := style.Wrap(p.info.Title, inner-closeR.Width-popupGap, func(s string) float32 { return e.MeasureText(s, tst.FontSize) })
	descLines := style.Wrap(p.info.Description, inner, func(s string) float32 { return e.MeasureText(s, dst.FontSize) })
	p.title.Text = strings.Join(titleLines, "\n")
	p.desc.Text = strings.Join(descLines, "\n")
	titleH := float32(len(titleLines)) * e.LineHeight(tst.FontSize)
	descH := float32(len(descLines)) * e.LineHeight(dst.FontSize)

	var imgW, imgH float32
	p.image.Texture = nil
	if tex, ok := p.images.Texture(p.info.ImageRef); ok {
		p.image.Texture = tex
		imgW, imgH = float32(tex.Width), float32(tex.Height)
		if imgW > inner {
			imgH *= inner / imgW
			imgW = inner
		}
	}

	height := pad + max(titleH, closeR.Height) + popupGap + descH + pad
	if imgH > 0 {
		height += imgH + popupGap
	}
	p.panel.Bounds.Height = height
	r := e.Place(p.panel)

	p.close.Bounds = rl.NewRectangle(r.X+r.Width-pad-closeR.Width, r.Y+pad, closeR.Width, closeR.Height)
	p.title.Bounds = rl.NewRectangle(r.X+pad, r.Y+pad, inner-closeR.Width-popupGap, titleH)
	y := r.Y + pad + max(titleH, closeR.Height) + popupGap
	p.image.Hidden = imgH == 0
	if imgH > 0 {
		p.image.Bounds = rl.NewRectangle(r.X+pad+(inner-imgW)/2, y, imgW, imgH)
		y += imgH + popupGap
	}
	p.desc.Bounds = rl.NewRectangle(r.X+pad, y, inner, descH)

	for _, n := range append(p.children(), p.panel) {
		n.Opacity = p.fade.Value
	}
}

// AppendNodes appends the panel's nodes to dst while it is displayed.
func (p *Popup) AppendNodes(dst []*Node) []*Node {
	if !p.displayed {
		return dst
	}
	return append(dst, p.panel, p.title, p.close, p.image, p.desc)
}

// Contains reports whether the point is over the displayed panel.
func (p *Popup) Contains(x, y float32) bool {
	return p.displayed && p.panel.Contains(x, y)
}

// OverClose reports whether the point is over the close button.
func (p *Popup) OverClose(x, y float32) bool {
	return p.displayed && p.close.Contains(x, y)
}

// HandlePointer implements pointer.Handler. Any event over the displayed panel is consumed so
// nothing behind it reacts; a click or tap on the close button calls the close action.
func (p *Popup) HandlePointer(ev pointer.Event) bool {
	if !p.Contains(ev.X, ev.Y) {
		p.setCloseHover(false)
		return false
	}
	over := p.close.Contains(ev.X, ev.Y)
	p.setCloseHover(over)
	if over && ev.Kind.Activates() && p.onClose != nil {
		p.onClose()
	}
	return true
}

func (p *Popup) setCloseHover(on bool) {
	if on {
		p.close.Class = "popup-close close-hover"
	} else {
		p.close.Class = "popup-close"
	}
}

func (p *Popup) children() []*Node {
	return []*Node{p.title, p.close, p.image, p.desc}
}
