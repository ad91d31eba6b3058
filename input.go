package hittest

import "fmt"

// PointerState is the pointer focus state of a PointerInputManager.
type PointerState uint8

const (
	PointerStateNone      PointerState = iota // pointer is over nothing
	PointerStateEntering                      // pointer hovers a node, no capture
	PointerStateCapturing                     // a node owns all pointer input
)

func (s PointerState) String() string {
	switch s {
	case PointerStateNone:
		return "none"
	case PointerStateEntering:
		return "entering"
	case PointerStateCapturing:
		return "capturing"
	}
	return "unknown"
}

// PointerCapturer acquires and releases the platform's pointer capture for
// the window the manager serves. Both calls are expected to succeed; a
// failure leaves capture state out of sync with the platform and is treated
// as fatal.
type PointerCapturer interface {
	SetCapture() error
	ReleaseCapture() error
}

// PointerInputManager turns raw left-button pointer input into bubbled
// handler calls on a Tree.
//
// Hover dispatch bubbles from the hit node to the root, stopping early when a
// handler returns StopPropagation. A down or up handler may return
// CaptureElement, after which every event goes to that node alone until it
// returns ReleaseCaptureElement.
//
// The manager is single-threaded and synchronous; call it from the thread
// that owns the tree.
type PointerInputManager struct {
	state    PointerState
	focus    NodeRef
	pressed  NodeRef // hover target at the last press, for click detection
	capturer PointerCapturer

	observers observerRegistry
	sink      EventSink
}

// NewPointerInputManager creates a manager in PointerStateNone. capturer may
// be nil when there is no platform capture to keep in sync (tests, headless
// hosts).
func NewPointerInputManager(capturer PointerCapturer) *PointerInputManager {
	return &PointerInputManager{
		focus:    NoNode,
		pressed:  NoNode,
		capturer: capturer,
	}
}

// State returns the current pointer state.
func (m *PointerInputManager) State() PointerState {
	return m.state
}

// Focus returns the hovered or captured node, or NoNode.
func (m *PointerInputManager) Focus() NodeRef {
	return m.focus
}

// OnMouseMove handles a pointer move to client point (x, y).
//
// While capturing, only the captured node sees the move. Otherwise the tree
// under root is hit-tested; if the hit changed, the old hit's chain gets a
// leave bubble and the new hit's chain an enter bubble. A move bubble is then
// sent along the new hit's chain.
func (m *PointerInputManager) OnMouseMove(tree *Tree, root NodeRef, x, y float64, client Size) {
	m.dropStale(tree)
	if m.state == PointerStateCapturing {
		m.dispatchSingle(tree, m.focus, EventPointerMove, x, y, client)
		return
	}

	hit, _ := tree.PerformTest(root, x, y, client.Rect())
	if old := m.focus; hit != old {
		m.setHover(hit)
		if old != NoNode {
			m.bubble(tree, old, EventPointerLeave, x, y, client)
		}
		if hit != NoNode {
			m.bubble(tree, hit, EventPointerEnter, x, y, client)
		}
	}
	if hit != NoNode {
		m.bubble(tree, hit, EventPointerMove, x, y, client)
	}
}

// OnMouseLeftDown handles a left-button press at (x, y).
func (m *PointerInputManager) OnMouseLeftDown(tree *Tree, root NodeRef, x, y float64, client Size) {
	m.dropStale(tree)
	switch m.state {
	case PointerStateCapturing:
		target := m.focus
		m.pressed = target
		ctl := m.dispatchSingle(tree, target, EventPointerDown, x, y, client)
		if ctl.Has(ReleaseCaptureElement) {
			m.releaseCapture()
			m.setState(PointerStateEntering, target)
			m.OnMouseMove(tree, root, x, y, client)
		}
	case PointerStateEntering:
		target := m.focus
		m.pressed = target
		if m.bubble(tree, target, EventPointerDown, x, y, client) {
			m.OnMouseMove(tree, root, x, y, client)
			return
		}
		m.leaveBelowCapture(tree, target, x, y, client)
	default:
		m.pressed = NoNode
	}
}

// OnMouseLeftUp handles a left-button release at (x, y). Hover state is
// resynced with a move first. A click follows the up event when the release
// lands on the node that was pressed (hovering) or inside the captured node
// (capturing).
func (m *PointerInputManager) OnMouseLeftUp(tree *Tree, root NodeRef, x, y float64, client Size) {
	m.OnMouseMove(tree, root, x, y, client)
	pressed := m.pressed
	m.pressed = NoNode

	switch m.state {
	case PointerStateCapturing:
		target := m.focus
		ctl := m.dispatchSingle(tree, target, EventPointerUp, x, y, client)
		if tree.IsLive(target) {
			if hit, ok := tree.PerformTest(root, x, y, client.Rect()); ok && tree.IsAncestorOrSelf(target, hit) {
				m.dispatchSingle(tree, target, EventClick, x, y, client)
			}
		}
		if ctl.Has(ReleaseCaptureElement) && m.state == PointerStateCapturing {
			m.releaseCapture()
			m.setState(PointerStateEntering, target)
			m.OnMouseMove(tree, root, x, y, client)
		}
	case PointerStateEntering:
		target := m.focus
		released := m.bubble(tree, target, EventPointerUp, x, y, client)
		if pressed == target && tree.IsLive(target) {
			m.bubble(tree, target, EventClick, x, y, client)
		}
		if released {
			m.OnMouseMove(tree, root, x, y, client)
			return
		}
		m.leaveBelowCapture(tree, target, x, y, client)
	}
}

// OnMouseLeaveWindow handles the pointer leaving the client area. The hovered
// chain gets a leave bubble. An active capture is kept, since the platform
// keeps delivering captured input outside the window.
func (m *PointerInputManager) OnMouseLeaveWindow(tree *Tree, x, y float64, client Size) {
	m.dropStale(tree)
	if m.state != PointerStateEntering {
		return
	}
	old := m.focus
	m.setHover(NoNode)
	m.bubble(tree, old, EventPointerLeave, x, y, client)
}

// OnCaptureLost tells the manager the platform revoked its capture (another
// window took it). The capturer is not asked to release. The captured node
// stays hovered; the next move resyncs.
func (m *PointerInputManager) OnCaptureLost() {
	if m.state != PointerStateCapturing {
		return
	}
	Logger().Debug("hittest: pointer capture lost", "node", int(m.focus))
	m.setState(PointerStateEntering, m.focus)
}

// Cursor returns the first cursor override found walking from the focused or
// captured node to the root, or CursorDefault.
func (m *PointerInputManager) Cursor(tree *Tree) Cursor {
	for cur := m.focus; cur != NoNode && tree.IsLive(cur); cur = tree.Parent(cur) {
		if h := tree.ActionHandler(cur); h != nil {
			if c := h.Cursor(cur); c != CursorDefault {
				return c
			}
		}
	}
	return CursorDefault
}

// --- Dispatch ---

// bubble sends e to start and then each ancestor until a handler returns
// StopPropagation. The chain is walked live: a handler that detaches or frees
// a node changes where the walk goes next, and the walk ends at a freed node.
// For down and up events the returned flags drive capture; bubble reports
// whether a capture was released along the way.
func (m *PointerInputManager) bubble(tree *Tree, start NodeRef, e EventType, x, y float64, client Size) (released bool) {
	if !tree.IsLive(start) {
		return false
	}
	m.notify(e, m.event(tree, start, start, x, y, client))
	for cur := start; cur != NoNode; cur = tree.Parent(cur) {
		if !tree.IsLive(cur) {
			return released
		}
		h := tree.ActionHandler(cur)
		if h == nil {
			continue
		}
		ctl := e.call(h, cur, tree, m.event(tree, start, cur, x, y, client))
		if e == EventPointerDown || e == EventPointerUp {
			if m.applyControl(cur, ctl) {
				released = true
			}
		}
		if ctl.Has(StopPropagation) || !tree.IsLive(cur) {
			return released
		}
	}
	return released
}

// leaveBelowCapture sends leave to the part of hovered's chain below the
// capturing node, after an ancestor of the hovered node took capture from a
// down or up bubble. Those nodes no longer receive pointer input until the
// capture ends and hover resyncs.
func (m *PointerInputManager) leaveBelowCapture(tree *Tree, hovered NodeRef, x, y float64, client Size) {
	capturer := m.focus
	if m.state != PointerStateCapturing || capturer == hovered || !tree.IsLive(hovered) {
		return
	}
	m.notify(EventPointerLeave, m.event(tree, hovered, hovered, x, y, client))
	for cur := hovered; cur != NoNode && cur != capturer; cur = tree.Parent(cur) {
		if !tree.IsLive(cur) {
			return
		}
		h := tree.ActionHandler(cur)
		if h == nil {
			continue
		}
		ctl := h.OnPointerLeave(cur, tree, m.event(tree, hovered, cur, x, y, client))
		if ctl.Has(StopPropagation) || !tree.IsLive(cur) {
			return
		}
	}
}

// dispatchSingle sends e to ref only, as done while capturing.
func (m *PointerInputManager) dispatchSingle(tree *Tree, ref NodeRef, e EventType, x, y float64, client Size) EventContinueControl {
	if !tree.IsLive(ref) {
		return 0
	}
	ev := m.event(tree, ref, ref, x, y, client)
	m.notify(e, ev)
	if !tree.IsLive(ref) {
		return 0
	}
	h := tree.ActionHandler(ref)
	if h == nil {
		return 0
	}
	return e.call(h, ref, tree, ev)
}

func (m *PointerInputManager) event(tree *Tree, target, sender NodeRef, x, y float64, client Size) PointerEvent {
	local, _ := tree.TranslateClientToTreeLocal(sender, x, y, client)
	return PointerEvent{
		Target:  target,
		ClientX: x, ClientY: y,
		LocalX: local.X, LocalY: local.Y,
		Client: client,
	}
}

func (m *PointerInputManager) notify(e EventType, ev PointerEvent) {
	m.observers.fire(e, ev)
	if m.sink != nil {
		m.sink.EmitEvent(InteractionEvent{
			Type:    e,
			Node:    ev.Target,
			ClientX: ev.ClientX,
			ClientY: ev.ClientY,
			LocalX:  ev.LocalX,
			LocalY:  ev.LocalY,
		})
	}
}

// applyControl applies capture flags returned by sender's handler and
// reports whether a capture was released.
func (m *PointerInputManager) applyControl(sender NodeRef, ctl EventContinueControl) bool {
	if ctl.Has(CaptureElement) && m.state != PointerStateCapturing {
		m.acquireCapture()
		m.setState(PointerStateCapturing, sender)
	}
	if ctl.Has(ReleaseCaptureElement) && m.state == PointerStateCapturing {
		m.releaseCapture()
		m.setState(PointerStateEntering, m.focus)
		return true
	}
	return false
}

// --- State ---

func (m *PointerInputManager) setHover(ref NodeRef) {
	if ref == NoNode {
		m.setState(PointerStateNone, NoNode)
		return
	}
	m.setState(PointerStateEntering, ref)
}

func (m *PointerInputManager) setState(s PointerState, ref NodeRef) {
	if s == m.state && ref == m.focus {
		return
	}
	Logger().Debug("hittest: pointer state",
		"from", m.state.String(), "to", s.String(), "node", int(ref))
	m.state = s
	m.focus = ref
}

// dropStale forgets a focused or pressed node that has been freed since the
// last event. A capture held by a freed node is released.
func (m *PointerInputManager) dropStale(tree *Tree) {
	if m.pressed != NoNode && !tree.IsLive(m.pressed) {
		m.pressed = NoNode
	}
	if m.focus == NoNode || tree.IsLive(m.focus) {
		return
	}
	if m.state == PointerStateCapturing {
		m.releaseCapture()
	}
	m.setState(PointerStateNone, NoNode)
}

func (m *PointerInputManager) acquireCapture() {
	if m.capturer == nil {
		return
	}
	if err := m.capturer.SetCapture(); err != nil {
		panic(fmt.Errorf("hittest: acquire pointer capture: %w", err))
	}
	Logger().Debug("hittest: pointer capture acquired")
}

func (m *PointerInputManager) releaseCapture() {
	if m.capturer == nil {
		return
	}
	if err := m.capturer.ReleaseCapture(); err != nil {
		panic(fmt.Errorf("hittest: release pointer capture: %w", err))
	}
	Logger().Debug("hittest: pointer capture released")
}
