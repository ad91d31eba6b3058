package hittest

import (
	"fmt"
	"io"
	"strings"
)

// SetDebugMode enables or disables debug checks. When enabled, AddChild logs
// a warning when tree depth or a node's child count crosses a threshold.
func (t *Tree) SetDebugMode(enabled bool) {
	t.debug = enabled
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func (t *Tree) debugCheckTreeDepth(ref NodeRef) {
	depth := 0
	for p := ref; p != NoNode; p = t.nodes[p].parent {
		depth++
		if depth > len(t.nodes) {
			Logger().Warn("hittest: parent chain loops", "node", int(ref))
			return
		}
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("hittest: tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth,
			"node", int(ref), "name", t.nodes[ref].Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func (t *Tree) debugCheckChildCount(ref NodeRef) {
	n := &t.nodes[ref]
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("hittest: child count exceeds threshold",
			"node", int(ref), "name", n.Name,
			"children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// Dump writes the subtree rooted at ref to w, one node per line, indented by
// depth, with each node's resolved client-space box.
func (t *Tree) Dump(w io.Writer, ref NodeRef, client Size) error {
	parent := client.Rect()
	if p := t.Parent(ref); p != NoNode {
		parent = t.ResolveBox(p, client)
	}
	return t.dump(w, ref, parent, 0)
}

func (t *Tree) dump(w io.Writer, ref NodeRef, parent Rect, depth int) error {
	n := t.Get(ref)
	box := n.resolve(parent)
	name := n.Name
	if name == "" {
		name = "-"
	}
	var handler string
	if n.actionHandler() != nil {
		handler = " [handler]"
	}
	if _, err := fmt.Fprintf(w, "%s#%d %s (%g,%g %gx%g)%s\n",
		strings.Repeat("  ", depth), ref, name,
		box.X, box.Y, box.Width, box.Height, handler); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := t.dump(w, c, box, depth+1); err != nil {
			return err
		}
	}
	return nil
}
