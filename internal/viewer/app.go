package viewer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"landmark-viewer/internal/catalog"
	"landmark-viewer/internal/commands"
	"landmark-viewer/internal/config"
	"landmark-viewer/internal/debug"
	"landmark-viewer/internal/pointer"
	"landmark-viewer/internal/terminal"
	"landmark-viewer/internal/ui"
	"landmark-viewer/internal/ui/style"
)

// SceneFade is how long the screen takes to fade out, and back in, around a scene switch.
const SceneFade = 600 * time.Millisecond

// Options configures NewApp.
type Options struct {
	Catalog     *catalog.Catalog
	CatalogPath string // watched for edits when Watch is set
	Watch       bool
	ConfigPath  string // prefs changed from the console are saved here
	History     terminal.History
	Deps        Deps
}

// App owns the current scene context and everything that outlives it: the console, the debug
// overlay, pointer gestures and the fade between scenes.
type App struct {
	opts Options
	deps Deps
	log  zerolog.Logger
	ctx  context.Context

	cat     *catalog.Catalog
	reg     *commands.Registry
	term    *terminal.Terminal
	overlay *debug.Overlay
	view    *Context

	gesture   pointer.Gesture
	pressOnUI bool
	touching  bool
	lastX     float32
	lastY     float32

	fade     style.Fade
	fadeNode *ui.Node
	next     *catalog.Scene

	reload <-chan struct{}
}

// NewApp sets up the console commands and, when asked, the catalog watcher. No scene is built
// until Start.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if opts.Catalog == nil {
		return nil, errors.New("viewer: no catalog")
	}
	a := &App{
		opts:     opts,
		deps:     opts.Deps,
		log:      opts.Deps.Log,
		ctx:      ctx,
		cat:      opts.Catalog,
		reg:      commands.NewRegistry(),
		overlay:  debug.New(),
		fade:     style.Fade{Duration: SceneFade},
		fadeNode: ui.NewNode("panel", "fade", "", ""),
		lastX:    -1,
		lastY:    -1,
	}
	a.fadeNode.Placed = true
	a.term = terminal.New(opts.History, a.reg)
	a.overlay.ShowFPS = config.GetBool("debug.showFPS")
	a.overlay.ShowMem = a.overlay.ShowFPS
	a.overlay.ShowState = a.overlay.ShowFPS
	a.registerCommands()

	if opts.Watch && opts.CatalogPath != "" {
		ch, err := catalog.Watch(ctx, opts.CatalogPath, a.log)
		if err != nil {
			return nil, fmt.Errorf("viewer: %w", err)
		}
		a.reload = ch
	}
	return a, nil
}

// Start builds the first scene: name when given, else the catalog default. Call once the window
// exists.
func (a *App) Start(name string) error {
	def := a.cat.Initial()
	if name != "" {
		s, err := a.cat.Lookup(name)
		if err != nil {
			return fmt.Errorf("viewer: %w", err)
		}
		def = s
	}
	if f := a.deps.Engine.Font(); f.Texture.ID != 0 {
		a.term.SetFont(f)
		a.overlay.SetFont(f)
	}
	return a.open(def)
}

// Terminal returns the console.
func (a *App) Terminal() *terminal.Terminal {
	return a.term
}

// Current returns the active scene context.
func (a *App) Current() *Context {
	return a.view
}

// SwitchTo fades out, replaces the scene with the named one and fades back in.
func (a *App) SwitchTo(name string) error {
	def, err := a.cat.Lookup(name)
	if err != nil {
		return err
	}
	a.next = &def
	a.fade.Target = 1
	a.log.Info().Str("scene", def.Name).Msg("switching scene")
	return nil
}

func (a *App) open(def catalog.Scene) error {
	view, err := New(a.ctx, def, a.deps)
	if err != nil {
		return err
	}
	view.Scene().GridVisible = config.GetBool("scene.showGrid")
	view.Scene().ShowHitVolumes = config.GetBool("debug.showHitVolumes")
	if a.view != nil {
		a.view.Close()
	}
	a.view = view
	return nil
}

// Update runs one frame of input and simulation. dt is in seconds.
func (a *App) Update(dt float32) {
	a.term.Update()
	a.checkReload()
	a.stepFade(time.Duration(float64(dt) * float64(time.Second)))
	if a.view == nil {
		return
	}
	if a.next == nil {
		a.pollPointer()
	}
	a.view.Update(dt)
	a.updateOverlay()
}

func (a *App) pollPointer() {
	m := rl.GetMousePosition()
	x, y := m.X, m.Y
	orbit := a.view.Scene().Orbit()

	if x != a.lastX || y != a.lastY {
		a.lastX, a.lastY = x, y
		a.view.Pointer(pointer.Event{X: x, Y: y, Kind: pointer.Move}, a.term)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.gesture.Press(x, y)
		a.pressOnUI = a.term.HandlePointer(pointer.Event{X: x, Y: y}) || a.view.OverUI(x, y)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && a.gesture.Move(x, y) && !a.pressOnUI {
		d := rl.GetMouseDelta()
		orbit.Drag(d.X, d.Y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) && a.gesture.Release(x, y) {
		a.view.Pointer(pointer.Event{X: x, Y: y, Kind: pointer.Click}, a.term)
	}

	if !a.term.HandlePointer(pointer.Event{X: x, Y: y}) {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			orbit.Zoom(wheel)
		}
	}

	// Touch screens report touches separately from the emulated mouse; only the first finger
	// down is a tap.
	if rl.GetTouchPointCount() > 0 && !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if !a.touching {
			a.touching = true
			tp := rl.GetTouchPosition(0)
			a.view.Pointer(pointer.Event{X: tp.X, Y: tp.Y, Kind: pointer.TouchStart}, a.term)
		}
	} else {
		a.touching = false
	}
}

func (a *App) stepFade(d time.Duration) {
	a.fade.Step(d)
	if a.next != nil && a.fade.Settled() && a.fade.Value >= 1 {
		def := *a.next
		a.next = nil
		if err := a.open(def); err != nil {
			a.log.Error().Err(err).Str("scene", def.Name).Msg("scene switch failed")
		}
		a.fade.Target = 0
	}
}

func (a *App) checkReload() {
	if a.reload == nil {
		return
	}
	select {
	case _, ok := <-a.reload:
		if !ok {
			a.reload = nil
			return
		}
	default:
		return
	}
	cat, err := catalog.Load(a.opts.CatalogPath)
	if err != nil {
		a.log.Warn().Err(err).Msg("catalog reload rejected, keeping the previous one")
		return
	}
	a.cat = cat
	name := ""
	if a.view != nil {
		name = a.view.Name()
	}
	if _, err := cat.Lookup(name); err != nil {
		name = cat.Initial().Name
	}
	a.log.Info().Str("scene", name).Msg("catalog reloaded")
	if err := a.SwitchTo(name); err != nil {
		a.log.Error().Err(err).Msg("catalog reload")
	}
}

func (a *App) updateOverlay() {
	if !a.overlay.ShowState {
		return
	}
	hover := "-"
	if t, ok := a.view.Hovered(); ok {
		hover = t
	}
	a.overlay.SetState(
		"Scene: "+a.view.Name(),
		"Popup: "+a.view.Popup().State().String(),
		"Hover: "+hover,
	)
}

// Draw renders the scene, its UI, the fade, the overlay and the console, in that order.
func (a *App) Draw() {
	if a.view == nil {
		return
	}
	var front []*ui.Node
	if a.fade.Value > 0 {
		a.fadeNode.Bounds = rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		a.fadeNode.Opacity = a.fade.Value
		front = append(front, a.fadeNode)
	}
	a.view.Draw(front...)
	a.overlay.Draw()
	a.term.Draw()
}

// Close tears down the current scene.
func (a *App) Close() {
	if a.view != nil {
		a.view.Close()
		a.view = nil
	}
}

func (a *App) savePref(key string, value any) {
	config.Set(key, value)
	if a.opts.ConfigPath == "" {
		return
	}
	if err := config.Save(a.opts.ConfigPath); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("could not save preference")
	}
}

func (a *App) registerCommands() {
	a.reg.Register("scenes", "list scenes", nil, func([]string) (string, error) {
		var b strings.Builder
		for i, s := range a.cat.Scenes {
			if i > 0 {
				b.WriteByte('\n')
			}
			mark := " "
			if a.view != nil && a.view.Name() == s.Name {
				mark = "*"
			}
			fmt.Fprintf(&b, "%s %s (%s, %d hotspots)", mark, s.Name, s.DisplayName(), len(s.Hotspots))
		}
		return b.String(), nil
	})

	a.reg.Register("scene", "switch to a scene: cmd scene <name>", nil, func(args []string) (string, error) {
		if len(args) != 1 {
			return "", errors.New("usage: cmd scene <name>")
		}
		if err := a.SwitchTo(args[0]); err != nil {
			return "", err
		}
		a.savePref("scene.default", args[0])
		return "loading " + args[0], nil
	})

	a.registerToggle("grid", "show or hide the ground grid", "scene.showGrid", func(on bool) {
		if a.view != nil {
			a.view.Scene().GridVisible = on
		}
	})
	a.registerToggle("volumes", "show or hide hit volumes", "debug.showHitVolumes", func(on bool) {
		if a.view != nil {
			a.view.Scene().ShowHitVolumes = on
		}
	})
	a.registerToggle("fps", "show or hide the debug overlay", "debug.showFPS", func(on bool) {
		a.overlay.ShowFPS = on
		a.overlay.ShowMem = on
		a.overlay.ShowState = on
	})
}

// registerToggle adds a command that flips a boolean pref, or sets it with --on / --off.
func (a *App) registerToggle(name, usage, key string, apply func(on bool)) {
	fs := commands.NewFlagSet(name)
	on := fs.Bool("on", false, "turn on")
	off := fs.Bool("off", false, "turn off")
	a.reg.Register(name, usage+" [--on|--off]", fs, func([]string) (string, error) {
		if *on && *off {
			return "", errors.New("--on and --off together")
		}
		value := !config.GetBool(key)
		switch {
		case *on:
			value = true
		case *off:
			value = false
		}
		apply(value)
		a.savePref(key, value)
		state := "off"
		if value {
			state = "on"
		}
		return name + " " + state, nil
	})
}
