package hittest

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// layoutField selects one geometry field of a node.
type layoutField func(*Node) *float64

func fieldLeft(n *Node) *float64   { return &n.Left }
func fieldTop(n *Node) *float64    { return &n.Top }
func fieldWidth(n *Node) *float64  { return &n.Width }
func fieldHeight(n *Node) *float64 { return &n.Height }

func fieldLeftFactor(n *Node) *float64 { return &n.LeftAdjustmentFactor }
func fieldTopFactor(n *Node) *float64  { return &n.TopAdjustmentFactor }

// TweenGroup animates up to 4 geometry fields of one node simultaneously.
// Create one with TweenPosition, TweenSize or TweenAnchor and call Update(dt)
// each frame. The node is looked up by ref on every update, so the group
// survives arena growth. If the slot is free at the next Update, the group
// stops. A slot freed and reallocated between two updates is not detected and
// the group keeps writing to the new node; call Stop before freeing a node
// that may still be animating.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]layoutField
	tree   *Tree
	ref    NodeRef
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// node. If the node has been freed, Done is set and nothing is written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.tree.IsLive(g.ref) {
		g.Done = true
		return
	}

	n := g.tree.Get(g.ref)
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i](n) = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// Ref returns the animated node.
func (g *TweenGroup) Ref() NodeRef {
	return g.ref
}

// Stop ends the group without writing further values.
func (g *TweenGroup) Stop() {
	g.Done = true
}

func newTweenGroup(tree *Tree, ref NodeRef, duration float32, fn ease.TweenFunc, to []float64, fields ...layoutField) *TweenGroup {
	n := tree.Get(ref)
	g := &TweenGroup{count: len(fields), tree: tree, ref: ref}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f(n)), float32(to[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}

// TweenPosition animates the node's fixed Left and Top offsets.
func TweenPosition(tree *Tree, ref NodeRef, toLeft, toTop float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(tree, ref, duration, fn, []float64{toLeft, toTop}, fieldLeft, fieldTop)
}

// TweenSize animates the node's fixed Width and Height.
func TweenSize(tree *Tree, ref NodeRef, toWidth, toHeight float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(tree, ref, duration, fn, []float64{toWidth, toHeight}, fieldWidth, fieldHeight)
}

// TweenAnchor animates the node's LeftAdjustmentFactor and
// TopAdjustmentFactor, sliding it across its parent independent of the
// parent's size.
func TweenAnchor(tree *Tree, ref NodeRef, toLeftFactor, toTopFactor float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(tree, ref, duration, fn, []float64{toLeftFactor, toTopFactor}, fieldLeftFactor, fieldTopFactor)
}
