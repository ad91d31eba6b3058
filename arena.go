package hittest

import (
	"container/heap"
	"fmt"
)

// NodeRef is an opaque handle to a node slot in a Tree. A ref stays valid
// until the node is freed; after that the slot may be handed out again, and
// an old ref held across the reuse silently addresses the new node.
type NodeRef int

// NoNode is the "none" value for parent links and empty hit results.
const NoNode NodeRef = -1

// freeSet is a min-heap of freed slots so that Alloc always reuses the
// lowest free index.
type freeSet []NodeRef

func (f freeSet) Len() int           { return len(f) }
func (f freeSet) Less(i, j int) bool { return f[i] < f[j] }
func (f freeSet) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *freeSet) Push(x any)        { *f = append(*f, x.(NodeRef)) }
func (f *freeSet) Pop() any {
	old := *f
	n := len(old)
	x := old[n-1]
	*f = old[:n-1]
	return x
}

// Tree is a dense, index-addressed arena of hit-test nodes. It owns every
// parent/children link; nodes never link themselves.
//
// Tree is not safe for concurrent use. It is meant to be owned by the window
// state and touched only from the thread running the message loop.
type Tree struct {
	nodes []Node
	live  []bool
	free  freeSet
	debug bool

	// reused scratch buffers
	chainBuf []NodeRef
	queueBuf []NodeRef
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Alloc stores n in the lowest free slot, or appends a new slot if none is
// free, and returns its ref. The stored node starts detached: any parent or
// children carried by n are discarded.
func (t *Tree) Alloc(n Node) NodeRef {
	n.parent = NoNode
	n.children = nil
	if t.free.Len() > 0 {
		ref := heap.Pop(&t.free).(NodeRef)
		t.nodes[ref] = n
		t.live[ref] = true
		return ref
	}
	t.nodes = append(t.nodes, n)
	t.live = append(t.live, true)
	return NodeRef(len(t.nodes) - 1)
}

// Free marks ref's slot reusable. Children are not touched; detach or free
// them first, or use FreeRec.
func (t *Tree) Free(ref NodeRef) {
	t.mustLive(ref, "Free")
	t.nodes[ref] = Node{parent: NoNode}
	t.live[ref] = false
	heap.Push(&t.free, ref)
}

// FreeRec frees ref and every descendant, collected breadth-first. The
// parent of ref is not notified; call RemoveChild first if it survives.
func (t *Tree) FreeRec(ref NodeRef) {
	t.mustLive(ref, "FreeRec")
	queue := append(t.queueBuf[:0], ref)
	for i := 0; i < len(queue); i++ {
		queue = append(queue, t.Get(queue[i]).children...)
	}
	for _, r := range queue {
		t.Free(r)
	}
	t.queueBuf = queue[:0]
}

// Get returns the node stored at ref. The pointer is valid until the next
// Alloc. Panics if ref is out of range or freed.
func (t *Tree) Get(ref NodeRef) *Node {
	t.mustLive(ref, "Get")
	return &t.nodes[ref]
}

// IsLive reports whether ref names an allocated slot.
func (t *Tree) IsLive(ref NodeRef) bool {
	return ref >= 0 && int(ref) < len(t.nodes) && t.live[ref]
}

// Len returns the number of slots, live or free.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// LiveCount returns the number of allocated nodes.
func (t *Tree) LiveCount() int {
	return len(t.nodes) - len(t.free)
}

// FreeCount returns the number of reusable slots.
func (t *Tree) FreeCount() int {
	return len(t.free)
}

// FreeRefs returns the reusable slots in ascending order.
func (t *Tree) FreeRefs() []NodeRef {
	out := make([]NodeRef, 0, len(t.free))
	for ref, ok := range t.live {
		if !ok {
			out = append(out, NodeRef(ref))
		}
	}
	return out
}

func (t *Tree) mustLive(ref NodeRef, op string) {
	if ref < 0 || int(ref) >= len(t.nodes) {
		panic(fmt.Sprintf("hittest: %s on out-of-range node %d (arena size %d)", op, ref, len(t.nodes)))
	}
	if !t.live[ref] {
		panic(fmt.Sprintf("hittest: %s on freed node %d", op, ref))
	}
}
