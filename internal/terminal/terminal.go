package terminal

import (
	"strings"
	"unicode/utf8"

	rl "github.com/gen2brain/raylib-go/raylib"

	"landmark-viewer/internal/commands"
	"landmark-viewer/internal/pointer"
)

const (
	BarHeight = 40
	// Raised when windowed so the bar clears the taskbar.
	WindowedBarOffset = 56
	prompt            = "> "
	fontSize          = 18
	padding           = 8
	maxLinesOnScreen  = 12
	lineHeight        = fontSize + 4
	maxLineLen        = 200
)

var (
	barColor    = rl.NewColor(40, 40, 40, 255)
	edgeColor   = rl.NewColor(80, 80, 80, 255)
	historyBg   = rl.NewColor(24, 24, 24, 230)
	inputColor  = rl.NewColor(125, 255, 155, 255)
	historyText = rl.LightGray
)

// History is where submitted lines and command output go, and where the shown lines come from.
type History interface {
	Log(line string)
	Lines() []string
}

// Terminal is the console at the bottom of the window, toggled with F1 and closed with ESC. Lines
// starting with "cmd " run through the command registry; anything else is echoed to the history.
type Terminal struct {
	history  History
	reg      *commands.Registry
	inputBuf string
	open     bool
	font     rl.Font
	hasFont  bool
}

// New returns a closed terminal.
func New(history History, reg *commands.Registry) *Terminal {
	return &Terminal{history: history, reg: reg}
}

// IsOpen reports whether the terminal is shown and capturing keys.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// SetFont sets the font used to draw the terminal. A zero texture keeps raylib's default.
func (t *Terminal) SetFont(font rl.Font) {
	t.font = font
	t.hasFont = font.Texture.ID != 0
}

// Update handles toggling and, while open, typing, paste, backspace and enter. Call once per frame.
func (t *Terminal) Update() {
	if rl.IsKeyPressed(rl.KeyF1) {
		t.open = !t.open
		return
	}
	if !t.open {
		return
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		t.open = false
		return
	}
	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	if ctrl && rl.IsKeyPressed(rl.KeyV) {
		t.inputBuf += strings.ReplaceAll(rl.GetClipboardText(), "\n", " ")
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			t.inputBuf += string(rune(c))
		}
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && strings.TrimSpace(t.inputBuf) != "" {
		line := t.inputBuf
		t.inputBuf = ""
		t.Submit(line)
	}
}

// Submit runs a line as if typed.
func (t *Terminal) Submit(line string) {
	t.history.Log(line)
	args, isCmd := commands.Parse(line)
	if !isCmd {
		return
	}
	out, err := t.reg.Execute(args)
	if err != nil {
		t.history.Log("error: " + err.Error())
		return
	}
	for _, l := range strings.Split(out, "\n") {
		if l != "" {
			t.history.Log(l)
		}
	}
}

func barY() int {
	y := rl.GetScreenHeight() - BarHeight
	if !rl.IsWindowFullscreen() {
		y -= WindowedBarOffset
	}
	return y
}

func historyTop() int {
	return max(barY()-maxLinesOnScreen*lineHeight, 0)
}

// HandlePointer implements pointer.Handler: while open, events over the console are consumed.
func (t *Terminal) HandlePointer(ev pointer.Event) bool {
	return t.open && ev.Y >= float32(historyTop()) && ev.Y <= float32(barY()+BarHeight)
}

// Draw draws the history and input bar when open.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	by := barY()
	top := historyTop()
	if h := by - top; h > 0 {
		rl.DrawRectangle(0, int32(top), screenW, int32(h), historyBg)
	}
	lines := t.history.Lines()
	start := max(len(lines)-maxLinesOnScreen, 0)
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if len(line) > maxLineLen {
			line = line[:maxLineLen-3] + "..."
		}
		t.text(line, padding, top+(i-start)*lineHeight+padding/2, historyText)
	}

	rl.DrawRectangle(0, int32(by), screenW, BarHeight, barColor)
	rl.DrawRectangle(0, int32(by), screenW, 1, edgeColor)
	t.text(prompt+t.inputBuf+"|", padding, by+padding, inputColor)
}

func (t *Terminal) text(s string, x, y int, c rl.Color) {
	if t.hasFont {
		rl.DrawTextEx(t.font, s, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(s, int32(x), int32(y), fontSize, c)
}
