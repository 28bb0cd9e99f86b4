package popup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameSchedulerRunsDueActionsInOrder(t *testing.T) {
	s := NewFrameScheduler()
	var ran []string
	s.After(30*time.Millisecond, func() { ran = append(ran, "c") })
	s.After(10*time.Millisecond, func() { ran = append(ran, "a") })
	s.After(10*time.Millisecond, func() { ran = append(ran, "b") })

	s.Advance(9 * time.Millisecond)
	assert.Empty(t, ran)

	s.Advance(25 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, ran)
	assert.Zero(t, s.Pending())
	assert.Equal(t, 34*time.Millisecond, s.Now())
}

func TestFrameSchedulerStop(t *testing.T) {
	s := NewFrameScheduler()
	ran := false
	tm := s.After(time.Millisecond, func() { ran = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	s.Advance(time.Second)
	assert.False(t, ran)
}

func TestFrameSchedulerStopAfterRun(t *testing.T) {
	s := NewFrameScheduler()
	tm := s.After(0, func() {})
	s.Advance(0)
	assert.False(t, tm.Stop())
}

func TestFrameSchedulerChainsWithinOneAdvance(t *testing.T) {
	s := NewFrameScheduler()
	var ran []int
	s.After(5*time.Millisecond, func() {
		ran = append(ran, 1)
		s.After(5*time.Millisecond, func() { ran = append(ran, 2) })
	})
	s.After(0, func() { ran = append(ran, 0) })
	s.Advance(50 * time.Millisecond)
	assert.Equal(t, []int{0, 1}, ran, "a chained action is timed from the current clock")

	s.Advance(5 * time.Millisecond)
	assert.Equal(t, []int{0, 1, 2}, ran)
}
