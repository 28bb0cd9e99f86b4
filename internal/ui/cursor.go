package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Cursor switches the mouse cursor between the default arrow and a pointing hand. It implements
// the hover affordance of both resolvers.
type Cursor struct {
	pointing bool
}

// SetHover shows the pointing hand while hovering. Calls that change nothing are free.
func (c *Cursor) SetHover(hovering bool) {
	if hovering == c.pointing {
		return
	}
	c.pointing = hovering
	if hovering {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

// Hovering reports whether the pointing hand is shown.
func (c *Cursor) Hovering() bool {
	return c.pointing
}
