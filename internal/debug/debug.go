package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 18
	padding    = 12
	lineHeight = fontSize + 4
	// Text is rebuilt every updateInterval frames to keep allocations down.
	updateInterval = 30
)

var textColor = rl.NewColor(125, 255, 155, 255)

// Overlay draws runtime figures in the top-right corner: FPS, heap, and whatever the viewer
// reports as the current state (scene, hovered hotspot, popup state). All lines are off by default.
type Overlay struct {
	ShowFPS   bool
	ShowMem   bool
	ShowState bool

	font       rl.Font
	frameCount uint32
	fpsText    string
	memText    string
	state      []string
	mem        runtime.MemStats
}

// New returns an overlay with everything hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetFont sets the font; a zero texture keeps raylib's default.
func (o *Overlay) SetFont(font rl.Font) {
	o.font = font
}

// SetState replaces the state lines shown under FPS and memory.
func (o *Overlay) SetState(lines ...string) {
	o.state = append(o.state[:0], lines...)
}

// Draw renders the enabled lines. Call last in the frame.
func (o *Overlay) Draw() {
	o.frameCount++
	refresh := o.frameCount%updateInterval == 0
	y := padding
	if o.ShowFPS {
		if refresh || o.fpsText == "" {
			o.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		o.line(o.fpsText, y)
		y += lineHeight
	}
	if o.ShowMem {
		if refresh || o.memText == "" {
			runtime.ReadMemStats(&o.mem)
			o.memText = fmt.Sprintf("Heap: %.2f MiB  GC: %d", float64(o.mem.HeapAlloc)/(1024*1024), o.mem.NumGC)
		}
		o.line(o.memText, y)
		y += lineHeight
	}
	if o.ShowState {
		for _, s := range o.state {
			o.line(s, y)
			y += lineHeight
		}
	}
}

func (o *Overlay) line(text string, y int) {
	screenW := float32(rl.GetScreenWidth())
	if o.font.Texture.ID != 0 {
		w := rl.MeasureTextEx(o.font, text, fontSize, 1).X
		rl.DrawTextEx(o.font, text, rl.NewVector2(screenW-w-padding, float32(y)), fontSize, 1, textColor)
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(screenW)-w-padding, int32(y), fontSize, textColor)
}
