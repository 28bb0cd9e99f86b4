package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"landmark-viewer/internal/hotspot"
)

//go:embed scenes.yaml
var defaultCatalog []byte

// Catalog is the list of landmark scenes, read from YAML.
type Catalog struct {
	Default string  `yaml:"default,omitempty"`
	Scenes  []Scene `yaml:"scenes"`
}

// Scene is one landmark: where its model comes from, where the camera starts, and its hotspots.
type Scene struct {
	Name     string       `yaml:"name"`
	Title    string       `yaml:"title,omitempty"`
	Model    Model        `yaml:"model"`
	Camera   CameraDef    `yaml:"camera"`
	Hotspots []HotspotDef `yaml:"hotspots"`
}

// Model locates the landmark mesh. Source is a local path or an http(s) URL (glTF, GLB, OBJ or
// a .zip containing one of them).
type Model struct {
	Source    string     `yaml:"source"`
	Scale     float32    `yaml:"scale,omitempty"`
	Position  [3]float32 `yaml:"position,omitempty"`
	RotationY float32    `yaml:"rotationY,omitempty"` // degrees
}

// CameraDef holds the initial orbit.
type CameraDef struct {
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	FovY        float32    `yaml:"fovy,omitempty"`
	MinDistance float32    `yaml:"minDistance,omitempty"`
	MaxDistance float32    `yaml:"maxDistance,omitempty"`
}

// HotspotDef is the YAML form of a hotspot.
type HotspotDef struct {
	Title             string     `yaml:"title"`
	Description       string     `yaml:"description"`
	Image             string     `yaml:"image,omitempty"`
	Mode              string     `yaml:"mode,omitempty"`   // pickable (default) or screen
	Attach            string     `yaml:"attach,omitempty"` // model (default) or world
	Position          [3]float32 `yaml:"position"`
	MarkerRadius      float32    `yaml:"markerRadius,omitempty"`
	HitRadius         float32    `yaml:"hitRadius,omitempty"`
	MarkerSizePx      float32    `yaml:"markerSizePx,omitempty"`
	ScaleWithDistance bool       `yaml:"scaleWithDistance,omitempty"`
}

// DefaultMarkerRadius is used for pickable hotspots that leave markerRadius out.
const DefaultMarkerRadius = 0.3

// ErrUnknownScene is returned by Lookup for names not in the catalog.
var ErrUnknownScene = errors.New("unknown scene")

// Parse decodes and validates a catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a catalog file. An empty path returns the embedded default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in landmark scenes.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Validate checks names are unique and every hotspot is usable.
func (c *Catalog) Validate() error {
	if len(c.Scenes) == 0 {
		return fmt.Errorf("catalog: no scenes")
	}
	seen := make(map[string]bool, len(c.Scenes))
	for i, s := range c.Scenes {
		if s.Name == "" {
			return fmt.Errorf("catalog: scene %d: missing name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("catalog: duplicate scene %q", s.Name)
		}
		seen[s.Name] = true
		for j, h := range s.Hotspots {
			if err := h.validate(); err != nil {
				return fmt.Errorf("catalog: scene %q hotspot %d: %w", s.Name, j, err)
			}
		}
	}
	if c.Default != "" && !seen[c.Default] {
		return fmt.Errorf("catalog: default %q: %w", c.Default, ErrUnknownScene)
	}
	return nil
}

func (h HotspotDef) validate() error {
	if strings.TrimSpace(h.Title) == "" {
		return errors.New("missing title")
	}
	if _, ok := hotspot.ParseMode(h.Mode); !ok {
		return fmt.Errorf("unknown mode %q", h.Mode)
	}
	switch h.Attach {
	case "", "model", "world":
	default:
		return fmt.Errorf("unknown attach %q", h.Attach)
	}
	if h.MarkerRadius < 0 || h.HitRadius < 0 || h.MarkerSizePx < 0 {
		return errors.New("negative size")
	}
	return nil
}

// Names returns scene names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.Scenes))
	for i, s := range c.Scenes {
		out[i] = s.Name
	}
	return out
}

// Lookup finds a scene by name (case-insensitive).
func (c *Catalog) Lookup(name string) (Scene, error) {
	for _, s := range c.Scenes {
		if strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return Scene{}, fmt.Errorf("catalog: %q: %w", name, ErrUnknownScene)
}

// Initial returns the default scene, or the first one when no default is set.
func (c *Catalog) Initial() Scene {
	if s, err := c.Lookup(c.Default); err == nil {
		return s
	}
	return c.Scenes[0]
}

// DisplayName is the title, or the name title-cased when no title is set.
func (s Scene) DisplayName() string {
	if s.Title != "" {
		return s.Title
	}
	name := strings.NewReplacer("-", " ", "_", " ").Replace(s.Name)
	return cases.Title(language.English).String(name)
}

// BuildHotspots builds the scene's hotspots. Model-attached anchors get model as parent.
func (s Scene) BuildHotspots(model *hotspot.Node) []*hotspot.Hotspot {
	out := make([]*hotspot.Hotspot, 0, len(s.Hotspots))
	for _, def := range s.Hotspots {
		out = append(out, def.Build(model))
	}
	return out
}

// Populate registers every hotspot of the scene into reg, in catalog order.
func (s Scene) Populate(reg *hotspot.Registry, model *hotspot.Node) {
	for _, h := range s.BuildHotspots(model) {
		reg.Register(h)
	}
}

// Build converts the definition to a hotspot. It assumes the definition was validated.
func (h HotspotDef) Build(model *hotspot.Node) *hotspot.Hotspot {
	anchor := hotspot.Anchor{Position: mgl32.Vec3(h.Position)}
	if h.Attach != "world" {
		anchor.Parent = model
	}
	info := hotspot.Info{Title: h.Title, Description: strings.TrimSpace(h.Description), ImageRef: h.Image}
	visual := hotspot.Visual{MarkerSizePx: h.MarkerSizePx, ScaleWithDistance: h.ScaleWithDistance}

	mode, _ := hotspot.ParseMode(h.Mode)
	if mode == hotspot.ScreenAnchored {
		return hotspot.NewScreenAnchored(anchor, info, visual)
	}
	radius := h.MarkerRadius
	if radius == 0 {
		radius = DefaultMarkerRadius
	}
	return hotspot.NewPickable(anchor, info, hotspot.Pick{MarkerRadius: radius, HitRadius: h.HitRadius}, visual)
}

// ModelNode returns the transform node for the scene's model.
func (m Model) ModelNode() *hotspot.Node {
	n := hotspot.NewNode(nil)
	n.Translation = mgl32.Vec3(m.Position)
	if m.Scale > 0 {
		n.Scale = mgl32.Vec3{m.Scale, m.Scale, m.Scale}
	}
	if m.RotationY != 0 {
		n.Rotation = mgl32.QuatRotate(mgl32.DegToRad(m.RotationY), mgl32.Vec3{0, 1, 0})
	}
	return n
}
