package style

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func charWidth(s string) float32 { return float32(len(s)) }

func TestWrap(t *testing.T) {
	lines := Wrap("the heel stone marks sunrise", 10, charWidth)
	assert.Equal(t, []string{"the heel", "stone", "marks", "sunrise"}, lines)

	lines = Wrap("a verylongwordhere b", 5, charWidth)
	assert.Equal(t, []string{"a", "verylongwordhere", "b"}, lines)

	lines = Wrap("one\n\ntwo", 100, charWidth)
	assert.Equal(t, []string{"one", "", "two"}, lines)

	assert.Equal(t, []string{"no limit at all"}, Wrap("no limit at all", 0, charWidth))
}

func TestFade(t *testing.T) {
	f := Fade{Target: 1, Duration: 300 * time.Millisecond}
	f.Step(150 * time.Millisecond)
	assert.InDelta(t, 0.5, f.Value, 1e-5)
	assert.False(t, f.Settled())
	f.Step(time.Second)
	assert.Equal(t, float32(1), f.Value)
	assert.True(t, f.Settled())

	f.Target = 0
	f.Step(75 * time.Millisecond)
	assert.InDelta(t, 0.75, f.Value, 1e-5)

	instant := Fade{Value: 1, Target: 0}
	instant.Step(time.Millisecond)
	assert.Zero(t, instant.Value)
}
