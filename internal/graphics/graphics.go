package graphics

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"landmark-viewer/internal/config"
)

// ClearColor is the background behind the scene.
var ClearColor = rl.NewColor(18, 20, 26, 255)

// Hooks are the callbacks of the main loop. Any of them may be nil.
type Hooks struct {
	// Init runs once the window exists, for work that needs a GL context (fonts, textures).
	Init func()
	// Update gets the frame time in seconds.
	Update func(dt float32)
	// Draw runs between BeginDrawing and EndDrawing, after the screen is cleared.
	Draw func()
	// Close runs before the window goes away, while GPU resources can still be freed.
	Close func()
}

// Run opens the window and drives the main loop until the window is closed or ctx is done.
// ESC does not quit; the window closes via its button.
func Run(ctx context.Context, win config.Window, h Hooks) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	if win.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(win.Width), int32(win.Height), win.Title)
	defer rl.CloseWindow()
	if win.Fullscreen {
		m := rl.GetCurrentMonitor()
		rl.SetWindowSize(rl.GetMonitorWidth(m), rl.GetMonitorHeight(m))
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(int32(win.FPS))
	if h.Init != nil {
		h.Init()
	}
	if h.Close != nil {
		defer h.Close()
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if h.Update != nil {
			h.Update(rl.GetFrameTime())
		}
		rl.BeginDrawing()
		rl.ClearBackground(ClearColor)
		if h.Draw != nil {
			h.Draw()
		}
		rl.EndDrawing()
	}
}
