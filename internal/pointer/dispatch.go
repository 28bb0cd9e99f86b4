package pointer

// Handler consumes pointer events. HandlePointer returns true when the event was handled and must
// not reach handlers below it.
type Handler interface {
	HandlePointer(ev Event) bool
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ev Event) bool

// HandlePointer implements Handler.
func (f HandlerFunc) HandlePointer(ev Event) bool {
	return f(ev)
}

// Dispatch offers ev to handlers from topmost to bottommost and stops at the first that consumes
// it. It returns the index of the consuming handler, or -1 when none did.
func Dispatch(ev Event, handlers ...Handler) int {
	for i, h := range handlers {
		if h == nil {
			continue
		}
		if h.HandlePointer(ev) {
			return i
		}
	}
	return -1
}

// Shadowed reports whether the handler at index layer missed an event because one above it
// consumed it. idx is the result of Dispatch.
func Shadowed(idx, layer int) bool {
	return idx >= 0 && idx < layer
}
