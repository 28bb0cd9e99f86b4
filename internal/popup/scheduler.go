package popup

import (
	"time"
)

// Timer is a pending one-shot action.
type Timer interface {
	// Stop cancels the action. It returns false if the action already ran or was stopped.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func()) Timer
}

// FrameScheduler is a Scheduler driven by the render loop: the loop calls Advance with the frame
// delta and due actions run on the loop's goroutine. It is not safe for concurrent use; everything
// touching the popup runs on the render loop anyway.
type FrameScheduler struct {
	now     time.Duration
	seq     uint64
	pending []*frameTimer
}

type frameTimer struct {
	s    *FrameScheduler
	at   time.Duration
	seq  uint64
	fn   func()
	done bool
}

// NewFrameScheduler returns a scheduler at time zero.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

// After implements Scheduler. A non-positive d runs on the next Advance, even Advance(0).
func (s *FrameScheduler) After(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &frameTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward by dt and runs every action that became due, earliest first
// (ties in scheduling order). An action scheduled from inside another is timed from the advanced
// clock, so only a zero delay makes it run in the same call.
func (s *FrameScheduler) Advance(dt time.Duration) {
	if dt > 0 {
		s.now += dt
	}
	for {
		t := s.nextDue()
		if t == nil {
			return
		}
		t.done = true
		s.remove(t)
		t.fn()
	}
}

// Now returns the scheduler clock.
func (s *FrameScheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of actions waiting to run.
func (s *FrameScheduler) Pending() int {
	return len(s.pending)
}

func (s *FrameScheduler) nextDue() *frameTimer {
	var best *frameTimer
	for _, t := range s.pending {
		if t.at > s.now {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *FrameScheduler) remove(t *frameTimer) {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (t *frameTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.s.remove(t)
	return true
}
