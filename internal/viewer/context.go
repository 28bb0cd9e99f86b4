package viewer

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"landmark-viewer/internal/assets"
	"landmark-viewer/internal/catalog"
	"landmark-viewer/internal/hotspot"
	"landmark-viewer/internal/picking"
	"landmark-viewer/internal/pointer"
	"landmark-viewer/internal/popup"
	"landmark-viewer/internal/projection"
	"landmark-viewer/internal/scene"
	"landmark-viewer/internal/ui"
)

// Deps are the long-lived services shared by every scene context.
type Deps struct {
	Engine  *ui.Engine
	Cursor  *ui.Cursor
	Loader  *assets.Loader
	Timing  popup.Timing
	Scaling projection.Scaling
	Log     zerolog.Logger
}

// Context is everything one landmark view owns: its hotspots, camera, resolvers, popup and
// loading state. Switching scenes closes the context and builds a new one; nothing is global.
type Context struct {
	def  catalog.Scene
	deps Deps
	log  zerolog.Logger

	cancel context.CancelFunc

	registry *hotspot.Registry
	scene    *scene.Scene
	picker   *picking.Resolver
	markers  *projection.Resolver
	marks    []*ui.Marker
	sched    *popup.FrameScheduler
	popup    *popup.Controller
	panel    *ui.Popup
	images   *ui.Images
	progress *ui.Progress
	title    *ui.Node
	hint     *ui.Node

	loads     <-chan assets.Update
	autoFrame bool
	nodes     []*ui.Node
}

// New builds the view for def and starts loading its model. The model loads in the background;
// hotspots work before it arrives and if it never does.
func New(parent context.Context, def catalog.Scene, deps Deps) (*Context, error) {
	log := deps.Log.With().Str("scene", def.Name).Logger()
	ctx, cancel := context.WithCancel(parent)

	c := &Context{
		def:      def,
		deps:     deps,
		log:      log,
		cancel:   cancel,
		registry: hotspot.NewRegistry(),
		sched:    popup.NewFrameScheduler(),
		progress: ui.NewProgress(deps.Engine),
		title:    ui.NewNode("label", "scene-title", "", def.DisplayName()),
		hint:     ui.NewNode("label", "scene-hint", "", "drag to orbit, scroll to zoom, F1 for the console"),
	}

	modelNode := def.Model.ModelNode()
	def.Populate(c.registry, modelNode)
	c.scene = scene.New(def.Camera, modelNode, log)
	c.autoFrame = def.Camera.Position == def.Camera.Target

	c.images = ui.NewImages(ctx, deps.Loader, ui.PopupImageMaxW, ui.PopupImageMaxH, log)
	c.panel = ui.NewPopup(deps.Engine, c.images, deps.Timing.Transition)
	c.popup = popup.NewController(c.panel, c.sched, deps.Timing, log.With().Str("component", "popup").Logger())
	c.panel.OnClose(c.popup.Hide)

	c.picker = picking.NewResolver(c.registry, picking.NewSphereCaster(c.scene), c.scene, c.popup, deps.Cursor, log)
	c.markers = projection.NewResolver(c.scene, deps.Scaling, c.popup, deps.Cursor, log)
	for i, h := range c.registry.ScreenAnchored() {
		m := ui.NewMarker(deps.Engine, h, strconv.Itoa(i+1))
		if err := c.markers.Bind(h, m); err != nil {
			c.Close()
			return nil, fmt.Errorf("viewer: %w", err)
		}
		c.marks = append(c.marks, m)
	}

	if def.Model.Source != "" {
		c.loads = deps.Loader.Load(ctx, def.Model.Source)
		c.progress.Set("Loading "+def.DisplayName(), -1)
	}
	log.Info().
		Int("hotspots", c.registry.Len()).
		Int("markers", c.markers.Len()).
		Str("model", def.Model.Source).
		Msg("scene ready")
	return c, nil
}

// Name returns the catalog name of the scene.
func (c *Context) Name() string {
	return c.def.Name
}

// Scene returns the 3D scene.
func (c *Context) Scene() *scene.Scene {
	return c.scene
}

// Popup returns the popup controller.
func (c *Context) Popup() *popup.Controller {
	return c.popup
}

// Hovered returns the title of the hotspot under the pointer, if any.
func (c *Context) Hovered() (string, bool) {
	if h, ok := c.picker.Hovered(); ok {
		return h.Info.Title, true
	}
	return "", false
}

// OverUI reports whether the point is over a 2D element that takes the pointer.
func (c *Context) OverUI(x, y float32) bool {
	if c.panel.Contains(x, y) {
		return true
	}
	_, ok := c.markers.MarkerAt(x, y)
	return ok
}

// Handlers returns the pointer handlers of this view, topmost first: the popup panel, the 2D
// markers, then the 3D picker.
func (c *Context) Handlers() []pointer.Handler {
	return []pointer.Handler{c.panel, c.markers, c.picker}
}

// Pointer dispatches one event through front and then the view's handlers. The resolvers set the
// cursor themselves. A move consumed above the picker, markers included, clears its hover.
func (c *Context) Pointer(ev pointer.Event, front ...pointer.Handler) {
	handlers := slices.Concat(front, c.Handlers())
	idx := pointer.Dispatch(ev, handlers...)
	if ev.Kind != pointer.Move {
		return
	}
	pickerIdx := len(handlers) - 1
	markerIdx := pickerIdx - 1
	if pointer.Shadowed(idx, pickerIdx) {
		c.picker.Forget()
	}
	if pointer.Shadowed(idx, markerIdx) {
		c.deps.Cursor.SetHover(c.panel.OverClose(ev.X, ev.Y))
	}
	var hovered *hotspot.Hotspot
	if idx == markerIdx {
		hovered, _ = c.markers.MarkerAt(ev.X, ev.Y)
	}
	for _, m := range c.marks {
		m.SetHovered(hovered != nil && m.Hotspot() == hovered)
	}
}

// Update advances timers, loading, the camera and marker projection. dt is the frame time.
func (c *Context) Update(dt float32) {
	d := time.Duration(float64(dt) * float64(time.Second))
	c.sched.Advance(d)
	c.drainLoads()
	c.images.Poll()
	c.scene.Update(dt)
	c.markers.Update()
	c.panel.Update(d)
}

func (c *Context) drainLoads() {
	if c.loads == nil {
		return
	}
	for {
		select {
		case u, ok := <-c.loads:
			if !ok {
				c.loads = nil
				return
			}
			c.apply(u)
		default:
			return
		}
	}
}

func (c *Context) apply(u assets.Update) {
	name := c.def.DisplayName()
	switch u.Stage {
	case assets.Downloading:
		c.progress.Set("Downloading "+name, u.Progress.Fraction())
	case assets.Extracting, assets.Inspecting:
		c.progress.Set(u.Stage.String()+" "+name, -1)
	case assets.Ready:
		if err := c.scene.LoadModel(u.Path); err != nil {
			c.log.Error().Err(err).Msg("model load failed")
			c.progress.Fail(err.Error())
			return
		}
		if u.Info != nil && c.autoFrame {
			c.scene.Frame(u.Info.Bounds)
		}
		c.progress.Hide()
	case assets.Failed:
		c.progress.Fail(fmt.Sprintf("%s: %v", name, u.Err))
	}
}

// Draw renders the 3D scene and this view's UI nodes. front nodes are drawn on top.
func (c *Context) Draw(front ...*ui.Node) {
	hovered := hotspot.NoID
	if h, ok := c.picker.Hovered(); ok {
		hovered = h.ID()
	}
	c.scene.Draw(c.registry.Pickable(), hovered)

	c.nodes = c.nodes[:0]
	c.nodes = append(c.nodes, c.title, c.hint)
	for _, m := range c.marks {
		c.nodes = append(c.nodes, m.Node())
	}
	c.nodes = c.progress.AppendNodes(c.nodes)
	c.nodes = c.panel.AppendNodes(c.nodes)
	c.nodes = append(c.nodes, front...)
	c.deps.Engine.SetNodes(c.nodes)
	c.deps.Engine.Draw()
}

// Close stops loading and releases GPU resources. The context is unusable afterwards.
func (c *Context) Close() {
	c.cancel()
	c.images.Unload()
	c.scene.Close()
	c.deps.Cursor.SetHover(false)
	c.log.Debug().Msg("scene closed")
}
