package hotspot

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsOrderedIDs(t *testing.T) {
	r := NewRegistry()
	a := NewPickable(Anchor{}, Info{Title: "Clock face"}, Pick{MarkerRadius: 0.2}, Visual{})
	b := NewScreenAnchored(Anchor{}, Info{Title: "Bell"}, Visual{})
	c := NewPickable(Anchor{}, Info{Title: "Spire"}, Pick{MarkerRadius: 0.2, HitRadius: 0.6}, Visual{})

	assert.Equal(t, NoID, a.ID())
	assert.Equal(t, ID(0), r.Register(a))
	assert.Equal(t, ID(1), r.Register(b))
	assert.Equal(t, ID(2), r.Register(c))
	assert.Equal(t, 3, r.Len())

	got, ok := r.Get(1)
	require.True(t, ok)
	assert.Same(t, b, got)

	_, ok = r.Get(3)
	assert.False(t, ok)
	_, ok = r.Get(NoID)
	assert.False(t, ok)
}

func TestRegisterTwiceKeepsID(t *testing.T) {
	r := NewRegistry()
	h := NewPickable(Anchor{}, Info{}, Pick{MarkerRadius: 1}, Visual{})
	first := r.Register(h)
	assert.Equal(t, first, r.Register(h))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, NoID, r.Register(nil))
}

func TestRegistryFiltersByMode(t *testing.T) {
	r := NewRegistry()
	p1 := NewPickable(Anchor{}, Info{Title: "p1"}, Pick{MarkerRadius: 1}, Visual{})
	s1 := NewScreenAnchored(Anchor{}, Info{Title: "s1"}, Visual{})
	p2 := NewPickable(Anchor{}, Info{Title: "p2"}, Pick{MarkerRadius: 1}, Visual{})
	for _, h := range []*Hotspot{p1, s1, p2} {
		r.Register(h)
	}

	assert.Equal(t, []*Hotspot{p1, p2}, r.Pickable())
	assert.Equal(t, []*Hotspot{s1}, r.ScreenAnchored())
	assert.Equal(t, []*Hotspot{p1, s1, p2}, r.All())
}

func TestEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Pickable())
	assert.Empty(t, r.ScreenAnchored())
	assert.Zero(t, r.Len())
}

func TestPickTargetRadiusPrefersHitVolume(t *testing.T) {
	assert.Equal(t, float32(0.25), Pick{MarkerRadius: 0.25}.TargetRadius())
	assert.Equal(t, float32(0.8), Pick{MarkerRadius: 0.25, HitRadius: 0.8}.TargetRadius())
	assert.False(t, Pick{MarkerRadius: 0.25}.HasHitVolume())
}

func TestAnchorWorldFollowsParentChain(t *testing.T) {
	root := NewNode(nil)
	root.Translation = mgl32.Vec3{10, 0, 0}
	model := NewNode(root)
	model.Scale = mgl32.Vec3{2, 2, 2}
	model.Rotation = mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})

	a := Anchor{Position: mgl32.Vec3{1, 1, 0}, Parent: model}
	w := a.World()

	// Scale to (2,2,0), rotate 90 degrees about Y to (0,2,-2), then translate by root.
	assert.InDelta(t, 10, w.X(), 1e-4)
	assert.InDelta(t, 2, w.Y(), 1e-4)
	assert.InDelta(t, -2, w.Z(), 1e-4)

	assert.Equal(t, mgl32.Vec3{3, 4, 5}, Anchor{Position: mgl32.Vec3{3, 4, 5}}.World())
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("screen")
	assert.True(t, ok)
	assert.Equal(t, ScreenAnchored, m)

	m, ok = ParseMode("")
	assert.True(t, ok)
	assert.Equal(t, Pickable, m)

	_, ok = ParseMode("drag")
	assert.False(t, ok)
}
