package hittest

import (
	"unsafe"
	"weak"
)

// Node is one hit-testable region. Its box is resolved against the parent's
// resolved box:
//
//	left   = parent.left + LeftAdjustmentFactor*parent.width + Left
//	top    = parent.top  + TopAdjustmentFactor*parent.height + Top
//	width  = WidthAdjustmentFactor*parent.width + Width
//	height = HeightAdjustmentFactor*parent.height + Height
//
// so a node can anchor to the right edge (LeftAdjustmentFactor 1, negative
// Left) or fill its parent (WidthAdjustmentFactor 1) without being touched on
// resize. A node without a parent resolves against the client area.
type Node struct {
	// Name is used only in diagnostics.
	Name string

	Left, Top                                     float64
	LeftAdjustmentFactor, TopAdjustmentFactor     float64
	Width, Height                                 float64
	WidthAdjustmentFactor, HeightAdjustmentFactor float64

	parent   NodeRef
	children []NodeRef
	handler  func() ActionHandler
}

// FillParent returns a node that covers its parent's box exactly.
func FillParent(name string) Node {
	return Node{Name: name, WidthAdjustmentFactor: 1, HeightAdjustmentFactor: 1}
}

func (n *Node) actionHandler() ActionHandler {
	if n.handler == nil {
		return nil
	}
	return n.handler()
}

// --- Tree manipulation ---

// AddChild appends child to parent's children and points child at parent.
// Later children are hit-tested before earlier ones. No cycle or
// existing-parent check is made; detach child with RemoveChild first.
func (t *Tree) AddChild(parent, child NodeRef) {
	p := t.Get(parent)
	c := t.Get(child)
	p.children = append(p.children, child)
	c.parent = parent
	if t.debug {
		t.debugCheckTreeDepth(child)
		t.debugCheckChildCount(parent)
	}
}

// RemoveChild detaches child from its current parent.
// No-op if child has no parent.
func (t *Tree) RemoveChild(child NodeRef) {
	c := t.Get(child)
	if c.parent == NoNode {
		return
	}
	p := t.Get(c.parent)
	for i, r := range p.children {
		if r == child {
			copy(p.children[i:], p.children[i+1:])
			p.children = p.children[:len(p.children)-1]
			break
		}
	}
	c.parent = NoNode
}

// Parent returns ref's parent, or NoNode.
func (t *Tree) Parent(ref NodeRef) NodeRef {
	return t.Get(ref).parent
}

// Children returns ref's children in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (t *Tree) Children(ref NodeRef) []NodeRef {
	return t.Get(ref).children
}

// IsAncestorOrSelf reports whether candidate is ref or one of its ancestors.
func (t *Tree) IsAncestorOrSelf(candidate, ref NodeRef) bool {
	for cur := ref; cur != NoNode; cur = t.Get(cur).parent {
		if cur == candidate {
			return true
		}
	}
	return false
}

// --- Handlers ---

type handlerPtr[T any] interface {
	*T
	ActionHandler
}

// SetActionHandler attaches h to ref through a weak reference: the tree does
// not keep h alive. Once h is garbage collected the node behaves as if it had
// no handler. Passing nil detaches the current handler.
//
// T must not be zero-sized: weak references need a distinct heap object.
func SetActionHandler[T any, P handlerPtr[T]](t *Tree, ref NodeRef, h P) {
	n := t.Get(ref)
	if h == nil {
		n.handler = nil
		return
	}
	var zero T
	if unsafe.Sizeof(zero) == 0 {
		panic("hittest: SetActionHandler needs a handler type with non-zero size")
	}
	w := weak.Make((*T)(h))
	n.handler = func() ActionHandler {
		if p := w.Value(); p != nil {
			return P(p)
		}
		return nil
	}
}

// ClearActionHandler detaches ref's handler.
func (t *Tree) ClearActionHandler(ref NodeRef) {
	t.Get(ref).handler = nil
}

// ActionHandler returns ref's handler, or nil if none is attached or it has
// been collected.
func (t *Tree) ActionHandler(ref NodeRef) ActionHandler {
	return t.Get(ref).actionHandler()
}
