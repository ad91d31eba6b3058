package hittest

import "slices"

// EventSink receives one InteractionEvent per dispatched pointer event.
// It is the bridge to systems outside the node tree (see package ecs).
type EventSink interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent is the sink-side copy of a dispatched event. Local
// coordinates are relative to Node.
type InteractionEvent struct {
	Type    EventType
	Node    NodeRef
	ClientX float64
	ClientY float64
	LocalX  float64
	LocalY  float64
}

// --- Manager-level observers ---

type observer struct {
	id uint32
	fn func(PointerEvent)
}

type observerRegistry struct {
	byType [eventTypeCount][]observer
	nextID uint32
}

func (r *observerRegistry) add(e EventType, fn func(PointerEvent)) CallbackHandle {
	r.nextID++
	id := r.nextID
	r.byType[e] = append(r.byType[e], observer{id: id, fn: fn})
	return CallbackHandle{id: id, reg: r, event: e}
}

func (r *observerRegistry) fire(e EventType, ev PointerEvent) {
	for _, o := range r.byType[e] {
		o.fn(ev)
	}
}

// CallbackHandle allows removing a registered manager-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *observerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. It is safe to call
// from inside a callback; observers already scheduled for the current event
// still run.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			// Build a new slice: fire may be ranging over the old one.
			h.reg.byType[h.event] = slices.Delete(slices.Clone(s), i, i+1)
			return
		}
	}
}

// OnPointerEnter registers a callback fired when the pointer enters a new hit node.
func (m *PointerInputManager) OnPointerEnter(fn func(PointerEvent)) CallbackHandle {
	return m.observers.add(EventPointerEnter, fn)
}

// OnPointerLeave registers a callback fired when the pointer leaves the hovered node.
func (m *PointerInputManager) OnPointerLeave(fn func(PointerEvent)) CallbackHandle {
	return m.observers.add(EventPointerLeave, fn)
}

// OnPointerMove registers a callback fired for every routed move.
func (m *PointerInputManager) OnPointerMove(fn func(PointerEvent)) CallbackHandle {
	return m.observers.add(EventPointerMove, fn)
}

// OnPointerDown registers a callback fired for every routed button press.
func (m *PointerInputManager) OnPointerDown(fn func(PointerEvent)) CallbackHandle {
	return m.observers.add(EventPointerDown, fn)
}

// OnPointerUp registers a callback fired for every routed button release.
func (m *PointerInputManager) OnPointerUp(fn func(PointerEvent)) CallbackHandle {
	return m.observers.add(EventPointerUp, fn)
}

// OnClick registers a callback fired for every click.
func (m *PointerInputManager) OnClick(fn func(PointerEvent)) CallbackHandle {
	return m.observers.add(EventClick, fn)
}

// SetEventSink sets the optional external event sink.
func (m *PointerInputManager) SetEventSink(sink EventSink) {
	m.sink = sink
}
