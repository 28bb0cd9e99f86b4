package popup

import (
	"time"

	"github.com/rs/zerolog"

	"landmark-viewer/internal/hotspot"
)

// State is the popup lifecycle: Hidden -> Opening -> Open -> Closing -> Hidden.
type State int

const (
	Hidden State = iota
	// Opening: displayed with content, waiting one flush delay before the enter transition starts.
	Opening
	Open
	// Closing: exit transition running; display is switched off when it ends.
	Closing
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	}
	return "unknown"
}

// Element is the single popup UI element. Only the Controller writes to it.
type Element interface {
	SetContent(info hotspot.Info)
	// SetDisplayed switches the element in or out of layout entirely.
	SetDisplayed(displayed bool)
	// SetAnimatedIn starts the enter (true) or exit (false) transition.
	SetAnimatedIn(in bool)
}

// Timing holds the fixed transition delays.
type Timing struct {
	// FlushDelay separates display-on from the enter transition so the element is laid out first.
	FlushDelay time.Duration
	// Transition is the exit transition length; display goes off after it.
	Transition time.Duration
}

// DefaultTiming returns the delays used by the landmark scenes.
func DefaultTiming() Timing {
	return Timing{FlushDelay: 10 * time.Millisecond, Transition: 300 * time.Millisecond}
}

// Controller is the popup state machine. At most one scheduled action is pending at any time,
// and every Show cancels a pending close.
type Controller struct {
	el      Element
	sched   Scheduler
	timing  Timing
	log     zerolog.Logger
	state   State
	content hotspot.Info
	pending Timer
}

// NewController returns a Hidden controller driving el.
func NewController(el Element, sched Scheduler, timing Timing, log zerolog.Logger) *Controller {
	return &Controller{el: el, sched: sched, timing: timing, log: log}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Content returns the displayed info; ok is false while Hidden.
func (c *Controller) Content() (info hotspot.Info, ok bool) {
	if c.state == Hidden {
		return hotspot.Info{}, false
	}
	return c.content, true
}

// IsOpen reports whether the popup is shown or on its way in.
func (c *Controller) IsOpen() bool {
	return c.state == Opening || c.state == Open
}

// Show displays info. Content is replaced immediately in every state. From Closing the exit is
// cancelled and the popup returns to Open without waiting; from Hidden it goes through Opening.
func (c *Controller) Show(info hotspot.Info) {
	c.content = info
	c.el.SetContent(info)

	switch c.state {
	case Hidden:
		c.el.SetDisplayed(true)
		c.state = Opening
		c.pending = c.sched.After(c.timing.FlushDelay, c.finishOpening)
	case Opening:
		// The flush timer already pending will finish the transition.
	case Open:
	case Closing:
		c.cancelPending()
		c.el.SetAnimatedIn(true)
		c.state = Open
	}
	c.log.Debug().Str("title", info.Title).Str("state", c.state.String()).Msg("popup show")
}

// Hide starts the exit transition. It is a no-op when Hidden or already Closing.
func (c *Controller) Hide() {
	if c.state == Hidden || c.state == Closing {
		return
	}
	c.cancelPending()
	c.el.SetAnimatedIn(false)
	c.state = Closing
	c.pending = c.sched.After(c.timing.Transition, c.finishClosing)
	c.log.Debug().Msg("popup hide")
}

func (c *Controller) finishOpening() {
	c.pending = nil
	c.el.SetAnimatedIn(true)
	c.state = Open
}

func (c *Controller) finishClosing() {
	c.pending = nil
	c.el.SetDisplayed(false)
	c.state = Hidden
	c.content = hotspot.Info{}
}

func (c *Controller) cancelPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
