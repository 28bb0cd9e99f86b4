package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}

	nx, ny := Normalize(400, 300, vp)
	assert.InDelta(t, 0, nx, 1e-6)
	assert.InDelta(t, 0, ny, 1e-6)

	nx, ny = Normalize(0, 0, vp)
	assert.InDelta(t, -1, nx, 1e-6)
	assert.InDelta(t, 1, ny, 1e-6, "top of the screen is +1")

	nx, ny = Normalize(800, 600, vp)
	assert.InDelta(t, 1, nx, 1e-6)
	assert.InDelta(t, -1, ny, 1e-6)
}

func TestNormalizeOutsideViewportIsNotClamped(t *testing.T) {
	nx, ny := Normalize(-400, 1200, Viewport{Width: 800, Height: 600})
	assert.InDelta(t, -2, nx, 1e-6)
	assert.InDelta(t, -3, ny, 1e-6)
}

func TestNormalizeEmptyViewport(t *testing.T) {
	nx, ny := Normalize(10, 10, Viewport{})
	assert.Zero(t, nx)
	assert.Zero(t, ny)
}

func TestDenormalizeInvertsNormalize(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 720}
	for _, p := range [][2]float32{{0, 0}, {640, 360}, {100, 700}, {1280, 1}} {
		nx, ny := Normalize(p[0], p[1], vp)
		x, y := Denormalize(nx, ny, vp)
		assert.InDelta(t, p[0], x, 1e-3)
		assert.InDelta(t, p[1], y, 1e-3)
	}
}

func TestKindActivates(t *testing.T) {
	assert.False(t, Move.Activates())
	assert.True(t, Click.Activates())
	assert.True(t, TouchStart.Activates())
	assert.Equal(t, "touchstart", TouchStart.String())
}

func TestDispatchStopsAtFirstConsumer(t *testing.T) {
	var seen []string
	layer := func(name string, consume bool) Handler {
		return HandlerFunc(func(Event) bool {
			seen = append(seen, name)
			return consume
		})
	}

	idx := Dispatch(Event{Kind: Click}, layer("popup", false), nil, layer("markers", true), layer("scene", true))
	assert.Equal(t, 2, idx)
	assert.Equal(t, []string{"popup", "markers"}, seen)

	seen = nil
	idx = Dispatch(Event{Kind: Move}, layer("popup", false), layer("scene", false))
	assert.Equal(t, -1, idx)
	assert.Equal(t, []string{"popup", "scene"}, seen)
}

func TestShadowedByAnyLayerAbove(t *testing.T) {
	// popup, markers, picker
	const picker = 2
	consumeAt := func(n int) []Handler {
		hs := make([]Handler, 3)
		for i := range hs {
			hs[i] = HandlerFunc(func(Event) bool { return i == n })
		}
		return hs
	}

	assert.True(t, Shadowed(Dispatch(Event{Kind: Move}, consumeAt(0)...), picker))
	assert.True(t, Shadowed(Dispatch(Event{Kind: Move}, consumeAt(1)...), picker), "a marker hides the picker too")
	assert.False(t, Shadowed(Dispatch(Event{Kind: Move}, consumeAt(2)...), picker))
	assert.False(t, Shadowed(Dispatch(Event{Kind: Move}, consumeAt(-1)...), picker))
}
