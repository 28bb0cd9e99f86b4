package hotspot

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ID identifies a hotspot within one registry. IDs follow registration order, starting at 0.
type ID int

// NoID is returned for hotspots that were never registered.
const NoID ID = -1

// Info is the display payload shown in the popup. It is never modified after creation.
type Info struct {
	Title       string
	Description string
	ImageRef    string // optional path to an image; empty = no image
}

// HasImage reports whether the popup should show an image for this hotspot.
func (i Info) HasImage() bool {
	return i.ImageRef != ""
}

// Mode selects how a hotspot is hit-tested. It is fixed when the hotspot is created.
type Mode int

const (
	// Pickable hotspots are 3D markers found by casting a ray from the pointer.
	Pickable Mode = iota
	// ScreenAnchored hotspots own a 2D marker that is re-projected every frame and clicked natively.
	ScreenAnchored
)

func (m Mode) String() string {
	switch m {
	case Pickable:
		return "pickable"
	case ScreenAnchored:
		return "screen"
	}
	return "unknown"
}

// ParseMode converts a catalog string into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "pickable", "pick", "":
		return Pickable, true
	case "screen", "screen-anchored", "screen_anchored":
		return ScreenAnchored, true
	}
	return Pickable, false
}

// Pick holds the 3D shapes of a Pickable hotspot.
// MarkerRadius is the visible sphere. HitRadius, when > 0, is a separate invisible sphere used
// for ray casts so click tolerance can be larger than what is drawn.
type Pick struct {
	MarkerRadius float32
	HitRadius    float32
}

// TargetRadius is the radius the ray cast tests against: the hit-volume if present, else the marker.
func (p Pick) TargetRadius() float32 {
	if p.HitRadius > 0 {
		return p.HitRadius
	}
	return p.MarkerRadius
}

// HasHitVolume reports whether a separate hit-volume is configured.
func (p Pick) HasHitVolume() bool {
	return p.HitRadius > 0
}

// Visual holds marker presentation options.
// MarkerSizePx == 0 means the UI layer's default size.
type Visual struct {
	MarkerSizePx      float32
	ScaleWithDistance bool
}

// Anchor is a position in the local space of Parent (world space when Parent is nil).
type Anchor struct {
	Position mgl32.Vec3
	Parent   *Node
}

// World resolves the anchor through its parent chain.
func (a Anchor) World() mgl32.Vec3 {
	if a.Parent == nil {
		return a.Position
	}
	return mgl32.TransformCoordinate(a.Position, a.Parent.World())
}

// Hotspot is a point of interest bound to the 3D scene.
type Hotspot struct {
	id     ID
	mode   Mode
	Anchor Anchor
	Info   Info
	Pick   Pick
	Visual Visual
}

// NewPickable returns a hotspot hit-tested by ray casting.
func NewPickable(anchor Anchor, info Info, pick Pick, visual Visual) *Hotspot {
	return &Hotspot{id: NoID, mode: Pickable, Anchor: anchor, Info: info, Pick: pick, Visual: visual}
}

// NewScreenAnchored returns a hotspot with a projected 2D marker.
func NewScreenAnchored(anchor Anchor, info Info, visual Visual) *Hotspot {
	return &Hotspot{id: NoID, mode: ScreenAnchored, Anchor: anchor, Info: info, Visual: visual}
}

// ID returns the registry id, or NoID before registration.
func (h *Hotspot) ID() ID {
	return h.id
}

// Mode returns the interaction mode chosen at creation.
func (h *Hotspot) Mode() Mode {
	return h.mode
}

// WorldPosition is the anchor resolved to world space.
func (h *Hotspot) WorldPosition() mgl32.Vec3 {
	return h.Anchor.World()
}
