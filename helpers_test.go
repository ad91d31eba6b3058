package hittest

import (
	"errors"
	"runtime"
	"testing"
)

// recorder is a test ActionHandler that logs every call as "name:event".
type recorder struct {
	BaseActionHandler
	name     string
	log      *[]string
	inactive bool
	cursor   Cursor
	ctl      map[EventType]EventContinueControl
	hooks    map[EventType]func(sender NodeRef, tree *Tree, ev PointerEvent)
	events   []PointerEvent
}

func (r *recorder) HitActive(NodeRef) bool { return !r.inactive }
func (r *recorder) Cursor(NodeRef) Cursor  { return r.cursor }

func (r *recorder) handle(e EventType, sender NodeRef, tree *Tree, ev PointerEvent) EventContinueControl {
	*r.log = append(*r.log, r.name+":"+e.String())
	r.events = append(r.events, ev)
	if fn := r.hooks[e]; fn != nil {
		fn(sender, tree, ev)
	}
	return r.ctl[e]
}

func (r *recorder) OnPointerEnter(s NodeRef, t *Tree, ev PointerEvent) EventContinueControl {
	return r.handle(EventPointerEnter, s, t, ev)
}

func (r *recorder) OnPointerLeave(s NodeRef, t *Tree, ev PointerEvent) EventContinueControl {
	return r.handle(EventPointerLeave, s, t, ev)
}

func (r *recorder) OnPointerMove(s NodeRef, t *Tree, ev PointerEvent) EventContinueControl {
	return r.handle(EventPointerMove, s, t, ev)
}

func (r *recorder) OnPointerDown(s NodeRef, t *Tree, ev PointerEvent) EventContinueControl {
	return r.handle(EventPointerDown, s, t, ev)
}

func (r *recorder) OnPointerUp(s NodeRef, t *Tree, ev PointerEvent) EventContinueControl {
	return r.handle(EventPointerUp, s, t, ev)
}

func (r *recorder) OnClick(s NodeRef, t *Tree, ev PointerEvent) EventContinueControl {
	return r.handle(EventClick, s, t, ev)
}

// fixture is a tree whose nodes all carry recorders sharing one log.
type fixture struct {
	tree     *Tree
	root     NodeRef
	client   Size
	log      []string
	handlers map[string]*recorder
	refs     map[string]NodeRef
}

func newFixture(t *testing.T, client Size) *fixture {
	f := &fixture{
		tree:     NewTree(),
		client:   client,
		handlers: map[string]*recorder{},
		refs:     map[string]NodeRef{},
	}
	f.root = f.tree.Alloc(FillParent("root"))
	f.attach("root", f.root)
	// The tree only holds handlers weakly.
	t.Cleanup(func() { runtime.KeepAlive(f.handlers) })
	return f
}

func (f *fixture) attach(name string, ref NodeRef) *recorder {
	r := &recorder{
		name:  name,
		log:   &f.log,
		ctl:   map[EventType]EventContinueControl{},
		hooks: map[EventType]func(NodeRef, *Tree, PointerEvent){},
	}
	f.handlers[name] = r
	f.refs[name] = ref
	SetActionHandler(f.tree, ref, r)
	return r
}

// add allocates n under parent and attaches a recorder named n.Name.
func (f *fixture) add(parent NodeRef, n Node) NodeRef {
	ref := f.tree.Alloc(n)
	f.tree.AddChild(parent, ref)
	f.attach(n.Name, ref)
	return ref
}

func (f *fixture) h(name string) *recorder {
	return f.handlers[name]
}

func (f *fixture) takeLog() []string {
	out := f.log
	f.log = nil
	return out
}

// fakeCapturer mirrors a platform capture and fails on double acquire or
// release, so tests catch a manager out of sync with it.
type fakeCapturer struct {
	captured bool
	acquires int
	releases int
	err      error
}

func (c *fakeCapturer) SetCapture() error {
	if c.err != nil {
		return c.err
	}
	if c.captured {
		return errors.New("capture already held")
	}
	c.captured = true
	c.acquires++
	return nil
}

func (c *fakeCapturer) ReleaseCapture() error {
	if c.err != nil {
		return c.err
	}
	if !c.captured {
		return errors.New("capture not held")
	}
	c.captured = false
	c.releases++
	return nil
}
