package style

import (
	"image/color"
	"strconv"
	"strings"
)

// Computed holds resolved values used for drawing.
// LeftPct/TopPct are 0-100 for percentage positioning; -1 means Left/Top are pixels.
type Computed struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	FontSize   int32
	Radius     float32 // corner roundness 0-1
	Opacity    float32
}

// Default is the style of a node no rule matches.
func Default() Computed {
	return Computed{
		Color:    color.RGBA{255, 255, 255, 255},
		Border:   color.RGBA{0, 0, 0, 255},
		LeftPct:  -1,
		TopPct:   -1,
		Padding:  4,
		FontSize: 20,
		Opacity:  1,
	}
}

// Resolve builds a Computed from merged declarations. Invalid values are ignored.
func Resolve(props map[string]string) Computed {
	out := Default()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseColor(lastField(v)); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "border-radius":
			if f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 32); err == nil && f >= 0 {
				if strings.HasSuffix(v, "%") {
					f /= 50
				}
				out.Radius = float32(min(f, 1))
			}
		case "opacity":
			if f, err := strconv.ParseFloat(v, 32); err == nil {
				out.Opacity = float32(max(0, min(f, 1)))
			}
		}
	}
	return out
}

// ParseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(r,g,b) and rgba(r,g,b,a) with a in 0-1.
func ParseColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	for _, fn := range []string{"rgba(", "rgb("} {
		if strings.HasPrefix(s, fn) && strings.HasSuffix(s, ")") {
			return parseRGBFunc(s[len(fn) : len(s)-1])
		}
	}
	switch s {
	case "transparent":
		return color.RGBA{}, true
	case "white":
		return color.RGBA{255, 255, 255, 255}, true
	case "black":
		return color.RGBA{0, 0, 0, 255}, true
	}
	return color.RGBA{}, false
}

func parseHex(hex string) (color.RGBA, bool) {
	for i := 0; i < len(hex); i++ {
		if _, ok := hexNibble(hex[i]); !ok {
			return color.RGBA{}, false
		}
	}
	n := func(i int) uint8 { v, _ := hexNibble(hex[i]); return v }
	switch len(hex) {
	case 3, 4:
		c := color.RGBA{n(0) * 17, n(1) * 17, n(2) * 17, 255}
		if len(hex) == 4 {
			c.A = n(3) * 17
		}
		return c, true
	case 6, 8:
		c := color.RGBA{n(0)<<4 | n(1), n(2)<<4 | n(3), n(4)<<4 | n(5), 255}
		if len(hex) == 8 {
			c.A = n(6)<<4 | n(7)
		}
		return c, true
	}
	return color.RGBA{}, false
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

func parseRGBFunc(args string) (color.RGBA, bool) {
	parts := strings.Split(strings.ReplaceAll(args, " ", ""), ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(parts[i])
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, false
		}
		ch[i] = uint8(v)
	}
	c := color.RGBA{ch[0], ch[1], ch[2], 255}
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(parts[3], 64)
		if err != nil || a < 0 || a > 1 {
			return color.RGBA{}, false
		}
		c.A = uint8(a*255 + 0.5)
	}
	return c, true
}

// ParsePx parses a number with an optional "px" suffix. Unitless is pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" with N in 0-100.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

func lastField(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[len(f)-1]
}
