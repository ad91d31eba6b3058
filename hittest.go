package hittest

// Vec2 is a 2D point or offset in device-independent units.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// Rect returns the rectangle at the origin with this size. Hosts use it as
// the client area's top-level box for PerformTest.
func (s Size) Rect() Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Size returns the rectangle's width and height.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Cursor is a pointer shape requested by an ActionHandler. CursorDefault
// means "no override".
type Cursor uint8

const (
	CursorDefault    Cursor = iota // leave the host's cursor alone
	CursorPointer                  // hand, for clickable elements
	CursorText                     // I-beam
	CursorCrosshair                // precise selection
	CursorMove                     // four-way move
	CursorEWResize                 // horizontal splitter
	CursorNSResize                 // vertical splitter
	CursorNESWResize               // diagonal resize
	CursorNWSEResize               // diagonal resize
	CursorNotAllowed               // disabled element
)

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventPointerEnter EventType = iota // pointer moved onto a node's chain
	EventPointerLeave                  // pointer moved off a node's chain
	EventPointerMove                   // pointer moved while over (or captured by) a node
	EventPointerDown                   // left button pressed
	EventPointerUp                     // left button released
	EventClick                         // press and release on the same node

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	"enter", "leave", "move", "down", "up", "click",
}

func (e EventType) String() string {
	if e < eventTypeCount {
		return eventTypeNames[e]
	}
	return "unknown"
}

// EventContinueControl is the set of flags a handler returns to steer
// dispatch. Flags are independent and may be combined with bitwise OR
// (e.g. CaptureElement | StopPropagation).
type EventContinueControl uint8

const (
	StopPropagation       EventContinueControl = 1 << iota // do not bubble to further ancestors
	CaptureElement                                         // route all pointer input to the sender
	ReleaseCaptureElement                                  // end an active capture
)

// Has reports whether all flags in f are set.
func (c EventContinueControl) Has(f EventContinueControl) bool {
	return c&f == f
}

// resolve computes n's box against its parent's resolved box.
func (n *Node) resolve(parent Rect) Rect {
	return Rect{
		X:      parent.X + n.LeftAdjustmentFactor*parent.Width + n.Left,
		Y:      parent.Y + n.TopAdjustmentFactor*parent.Height + n.Top,
		Width:  n.WidthAdjustmentFactor*parent.Width + n.Width,
		Height: n.HeightAdjustmentFactor*parent.Height + n.Height,
	}
}

// TranslateClientToTreeLocal converts the client-area point (x, y) into the
// local space of ref. It also returns ref's effective size, which is what
// ref's children resolve their adjustment factors against. A node without a
// parent resolves against the client area itself.
func (t *Tree) TranslateClientToTreeLocal(ref NodeRef, x, y float64, client Size) (Vec2, Size) {
	n := t.Get(ref)
	p := Vec2{X: x, Y: y}
	ps := client
	if n.parent != NoNode {
		p, ps = t.TranslateClientToTreeLocal(n.parent, x, y, client)
	}
	box := n.resolve(Rect{Width: ps.Width, Height: ps.Height})
	return Vec2{X: p.X - box.X, Y: p.Y - box.Y}, box.Size()
}

// ResolveBox returns ref's box in client coordinates by resolving its
// ancestor chain top-down, starting from the client area.
func (t *Tree) ResolveBox(ref NodeRef, client Size) Rect {
	chain := t.chainBuf[:0]
	for cur := ref; cur != NoNode; cur = t.Get(cur).parent {
		chain = append(chain, cur)
	}
	box := client.Rect()
	for i := len(chain) - 1; i >= 0; i-- {
		box = t.nodes[chain[i]].resolve(box)
	}
	t.chainBuf = chain[:0]
	return box
}

// PerformTest finds the topmost node under the global point (x, y) in the
// subtree rooted at ref. parent is the box ref resolves against; for the
// tree root this is the client area's box.
//
// A node whose handler reports HitActive() == false is skipped together with
// its subtree. Children are tested last-inserted first and the first match
// wins; only then is the node's own box tested.
func (t *Tree) PerformTest(ref NodeRef, x, y float64, parent Rect) (NodeRef, bool) {
	n := t.Get(ref)
	if h := n.actionHandler(); h != nil && !h.HitActive(ref) {
		return NoNode, false
	}
	box := n.resolve(parent)
	children := n.children
	for i := len(children) - 1; i >= 0; i-- {
		if hit, ok := t.PerformTest(children[i], x, y, box); ok {
			return hit, true
		}
	}
	if box.Contains(x, y) {
		return ref, true
	}
	return NoNode, false
}
