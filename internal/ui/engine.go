package ui

import (
	_ "embed"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"landmark-viewer/internal/ui/style"
)

//go:embed default.css
var defaultCSS string

const roundSegments = 8

// Engine holds the stylesheet and the nodes for this frame, and draws them with raylib.
// Draw order is node order (first node drawn first, the next on top). Resolved styles are cached
// per type/class/id and dropped when the stylesheet changes.
// If a font is loaded (LoadFont), text uses it; otherwise raylib's default font is used.
type Engine struct {
	sheet  *style.Stylesheet
	nodes  []*Node
	styles map[string]style.Computed
	font   rl.Font
	hasTTF bool
}

// New creates an engine with the built-in stylesheet.
func New() (*Engine, error) {
	sheet, err := style.ParseCSS(defaultCSS)
	if err != nil {
		return nil, fmt.Errorf("ui: default stylesheet: %w", err)
	}
	return &Engine{sheet: sheet, styles: map[string]style.Computed{}}, nil
}

// LoadCSS parses a CSS file and layers it over the built-in stylesheet.
func (e *Engine) LoadCSS(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	defer f.Close()
	user, err := style.Parse(f)
	if err != nil {
		return fmt.Errorf("ui: %s: %w", path, err)
	}
	base, err := style.ParseCSS(defaultCSS)
	if err != nil {
		return fmt.Errorf("ui: default stylesheet: %w", err)
	}
	e.SetStylesheet(base.Merge(user))
	return nil
}

// SetStylesheet replaces the stylesheet.
func (e *Engine) SetStylesheet(sheet *style.Stylesheet) {
	e.sheet = sheet
	e.styles = map[string]style.Computed{}
}

// LoadFont loads a TTF/OTF font for text. On failure the engine keeps its current font.
// Call after the window exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFontEx(path, 48, nil)
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: font %s: %w", path, os.ErrNotExist)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	e.unloadFont()
	e.font = f
	e.hasTTF = true
	return nil
}

// Font returns the loaded font, or a zero font when raylib's default is in use.
func (e *Engine) Font() rl.Font {
	if e.hasTTF {
		return e.font
	}
	return rl.Font{}
}

// Unload releases the loaded font.
func (e *Engine) Unload() {
	e.unloadFont()
}

func (e *Engine) unloadFont() {
	if e.hasTTF {
		rl.UnloadFont(e.font)
		e.hasTTF = false
	}
}

// SetNodes replaces the frame's nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
}

// Style returns the resolved style of a node.
func (e *Engine) Style(n *Node) style.Computed {
	key := n.Type + "|" + n.Class + "|" + n.ID
	if c, ok := e.styles[key]; ok {
		return c
	}
	c := style.Resolve(e.sheet.Match(n.Type, n.Class, n.ID))
	e.styles[key] = c
	return c
}

// Place computes the node's bounds for the current screen size and stores them in n.Bounds.
func (e *Engine) Place(n *Node) rl.Rectangle {
	st := e.Style(n)
	switch {
	case n.Centered:
		size := n.Bounds.Width
		if size <= 0 {
			size = float32(st.Width)
		}
		size *= n.Scale
		// Bounds.X/Y hold the center; keep it there and derive the box.
		cx, cy := n.Bounds.X, n.Bounds.Y
		return rl.NewRectangle(cx-size/2, cy-size/2, size, size)
	case n.Placed:
		if n.Bounds.Width <= 0 && st.Width > 0 {
			n.Bounds.Width = float32(st.Width)
		}
		if n.Bounds.Height <= 0 && st.Height > 0 {
			n.Bounds.Height = float32(st.Height)
		}
		return n.Bounds
	}
	w, h := float32(st.Width), float32(st.Height)
	if w <= 0 {
		w = n.Bounds.Width
	}
	if h <= 0 {
		h = n.Bounds.Height
	}
	x, y := float32(st.Left), float32(st.Top)
	if st.LeftPct >= 0 {
		x = (float32(rl.GetScreenWidth()) - w) * float32(st.LeftPct) / 100
	}
	if st.TopPct >= 0 {
		y = (float32(rl.GetScreenHeight()) - h) * float32(st.TopPct) / 100
	}
	n.Bounds = rl.NewRectangle(x, y, w, h)
	return n.Bounds
}

// HitTest returns the topmost visible interactive node under the point, or nil.
func (e *Engine) HitTest(x, y float32) *Node {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.Hidden || !n.Interactive {
			continue
		}
		if rl.CheckCollisionPointRec(rl.NewVector2(x, y), e.Place(n)) {
			return n
		}
	}
	return nil
}

// MeasureText returns the pixel width of text at the given size.
func (e *Engine) MeasureText(text string, size int32) float32 {
	return rl.MeasureTextEx(e.currentFont(), text, float32(size), e.spacing(size)).X
}

// LineHeight returns the distance between text lines at the given size.
func (e *Engine) LineHeight(size int32) float32 {
	return rl.MeasureTextEx(e.currentFont(), "Ag", float32(size), e.spacing(size)).Y + 2
}

func (e *Engine) currentFont() rl.Font {
	if e.hasTTF {
		return e.font
	}
	return rl.GetFontDefault()
}

func (e *Engine) spacing(size int32) float32 {
	if e.hasTTF {
		return 1
	}
	return float32(size) / 10
}

// Draw draws the frame's nodes: background, border, image, then text.
func (e *Engine) Draw() {
	rl.SetTextLineSpacing(0)
	for _, n := range e.nodes {
		if n.Hidden || n.Opacity <= 0 {
			continue
		}
		st := e.Style(n)
		r := e.Place(n)
		alpha := st.Opacity * n.Opacity

		if st.Background.A > 0 {
			e.fill(r, st, fade(st.Background, alpha))
		}
		if st.HasBorder && r.Width > 0 && r.Height > 0 {
			e.outline(r, st, fade(st.Border, alpha))
		}
		if n.Texture != nil && n.Texture.ID != 0 {
			src := rl.NewRectangle(0, 0, float32(n.Texture.Width), float32(n.Texture.Height))
			rl.DrawTexturePro(*n.Texture, src, r, rl.Vector2{}, 0, fade(rl.White, alpha))
		}
		if n.Text != "" {
			pad := float32(st.Padding)
			pos := rl.NewVector2(r.X+pad, r.Y+pad)
			if n.Centered {
				w := e.MeasureText(n.Text, st.FontSize)
				pos = rl.NewVector2(r.X+(r.Width-w)/2, r.Y+(r.Height-float32(st.FontSize))/2)
			}
			rl.SetTextLineSpacing(int(e.LineHeight(st.FontSize)))
			rl.DrawTextEx(e.currentFont(), n.Text, pos, float32(st.FontSize), e.spacing(st.FontSize), fade(st.Color, alpha))
		}
	}
}

func (e *Engine) fill(r rl.Rectangle, st style.Computed, c rl.Color) {
	if st.Radius > 0 {
		rl.DrawRectangleRounded(r, st.Radius, roundSegments, c)
		return
	}
	rl.DrawRectangleRec(r, c)
}

func (e *Engine) outline(r rl.Rectangle, st style.Computed, c rl.Color) {
	if st.Radius > 0 {
		rl.DrawRectangleRoundedLines(r, st.Radius, roundSegments, c)
		return
	}
	rl.DrawRectangleLinesEx(r, 1, c)
}

func fade(c rl.Color, alpha float32) rl.Color {
	if alpha >= 1 {
		return c
	}
	c.A = uint8(float32(c.A) * max(alpha, 0))
	return c
}
