package hittest

// PointerEvent carries pointer data to handlers and observers.
type PointerEvent struct {
	// Target is the node the dispatch started from: the hit node while
	// hovering, or the captured node while capturing.
	Target NodeRef

	ClientX, ClientY float64
	// LocalX and LocalY are relative to the receiving node's resolved box.
	LocalX, LocalY float64
	Client         Size
}

// ActionHandler responds to hit testing and pointer events on a node.
//
// Event methods receive the node they are attached to (sender) and the tree
// being dispatched through. Structural edits made through tree are visible to
// the rest of the same dispatch.
type ActionHandler interface {
	// HitActive reports whether sender and its subtree take part in hit
	// testing right now.
	HitActive(sender NodeRef) bool
	// Cursor returns the cursor sender wants, or CursorDefault for none.
	Cursor(sender NodeRef) Cursor

	OnPointerEnter(sender NodeRef, tree *Tree, ev PointerEvent) EventContinueControl
	OnPointerLeave(sender NodeRef, tree *Tree, ev PointerEvent) EventContinueControl
	OnPointerMove(sender NodeRef, tree *Tree, ev PointerEvent) EventContinueControl
	OnPointerDown(sender NodeRef, tree *Tree, ev PointerEvent) EventContinueControl
	OnPointerUp(sender NodeRef, tree *Tree, ev PointerEvent) EventContinueControl
	OnClick(sender NodeRef, tree *Tree, ev PointerEvent) EventContinueControl
}

// BaseActionHandler implements every ActionHandler method with the neutral
// behavior: always hit-active, no cursor, and every event bubbles on.
// Embed it and override what you need.
type BaseActionHandler struct{}

func (BaseActionHandler) HitActive(NodeRef) bool { return true }
func (BaseActionHandler) Cursor(NodeRef) Cursor  { return CursorDefault }

func (BaseActionHandler) OnPointerEnter(NodeRef, *Tree, PointerEvent) EventContinueControl {
	return 0
}

func (BaseActionHandler) OnPointerLeave(NodeRef, *Tree, PointerEvent) EventContinueControl {
	return 0
}

func (BaseActionHandler) OnPointerMove(NodeRef, *Tree, PointerEvent) EventContinueControl {
	return 0
}

func (BaseActionHandler) OnPointerDown(NodeRef, *Tree, PointerEvent) EventContinueControl {
	return 0
}

func (BaseActionHandler) OnPointerUp(NodeRef, *Tree, PointerEvent) EventContinueControl {
	return 0
}

func (BaseActionHandler) OnClick(NodeRef, *Tree, PointerEvent) EventContinueControl {
	return 0
}

// call invokes the handler method for event type e.
func (e EventType) call(h ActionHandler, sender NodeRef, tree *Tree, ev PointerEvent) EventContinueControl {
	switch e {
	case EventPointerEnter:
		return h.OnPointerEnter(sender, tree, ev)
	case EventPointerLeave:
		return h.OnPointerLeave(sender, tree, ev)
	case EventPointerMove:
		return h.OnPointerMove(sender, tree, ev)
	case EventPointerDown:
		return h.OnPointerDown(sender, tree, ev)
	case EventPointerUp:
		return h.OnPointerUp(sender, tree, ev)
	case EventClick:
		return h.OnClick(sender, tree, ev)
	}
	return 0
}
