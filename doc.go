// Package hittest is the interaction core of the sprite-atlas visualizer:
// an arena-backed tree of hit-test rectangles and a pointer input manager
// that routes move, press and release notifications through it.
//
// # Tree
//
// A [Tree] stores [Node] records in a dense slice and hands out [NodeRef]
// indices. Freed slots are reused lowest-index first, so UI that churns (file
// list cells, popups) does not grow the arena.
//
//	tree := hittest.NewTree()
//	root := tree.Alloc(hittest.FillParent("client"))
//	panel := tree.Alloc(hittest.Node{Name: "panel", Left: 8, Top: 8, Width: 240, HeightAdjustmentFactor: 1, Height: -16})
//	tree.AddChild(root, panel)
//
// Node geometry mixes fixed values with factors of the parent's resolved
// size. A close button anchored 32 units from the right edge of its parent:
//
//	hittest.Node{LeftAdjustmentFactor: 1, Left: -32, Width: 24, Height: 24}
//
// Tear down a subtree with [Tree.RemoveChild] followed by [Tree.FreeRec].
//
// # Hit testing
//
// [Tree.PerformTest] returns the topmost node under a point. Later siblings
// win over earlier ones, children win over their parent, and a node whose
// handler reports HitActive() == false hides its whole subtree.
//
// # Pointer input
//
// Attach an [ActionHandler] with [SetActionHandler] (the tree holds it
// weakly) and feed raw input to a [PointerInputManager]:
//
//	m := hittest.NewPointerInputManager(capturer)
//	m.OnMouseMove(tree, root, x, y, clientSize)
//	m.OnMouseLeftDown(tree, root, x, y, clientSize)
//	m.OnMouseLeftUp(tree, root, x, y, clientSize)
//	cursor := m.Cursor(tree)
//
// Events bubble from the hit node to the root until a handler returns
// [StopPropagation]. Returning [CaptureElement] from a down or up handler
// routes all later input to that node until it returns
// [ReleaseCaptureElement].
//
// Package ebitenhost drives a manager from an [Ebitengine] window, and
// package ecs forwards dispatched events into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package hittest
