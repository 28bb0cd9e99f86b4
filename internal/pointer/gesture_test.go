package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGestureClick(t *testing.T) {
	var g Gesture
	g.Press(100, 100)
	assert.False(t, g.Move(103, 102))
	assert.True(t, g.Release(104, 101))
}

func TestGestureDragIsNotClick(t *testing.T) {
	var g Gesture
	g.Press(100, 100)
	assert.True(t, g.Move(140, 100))
	assert.True(t, g.Dragging())
	// Coming back to the start does not turn a drag into a click.
	assert.False(t, g.Release(100, 100))
	assert.False(t, g.Dragging())
}

func TestGestureReleaseWithoutPress(t *testing.T) {
	var g Gesture
	assert.False(t, g.Release(0, 0))
	assert.False(t, g.Move(50, 50))
}

func TestGestureCustomThreshold(t *testing.T) {
	g := Gesture{Threshold: 20}
	g.Press(0, 0)
	assert.True(t, g.Release(12, 12))
	g.Press(0, 0)
	assert.False(t, g.Release(15, 15))
}
