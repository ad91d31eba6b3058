package ebitenhost

import (
	"errors"
	"runtime"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	hittest "github.com/Pctg-x8/peridot-sprite-atlas-visualizer-sub000"
)

type fakeSource struct {
	x, y      int
	pressed   bool
	unfocused bool
}

func (s *fakeSource) CursorPosition() (int, int) { return s.x, s.y }
func (s *fakeSource) LeftPressed() bool          { return s.pressed }
func (s *fakeSource) Focused() bool              { return !s.unfocused }

type button struct {
	hittest.BaseActionHandler
	name    string
	log     *[]string
	cursor  hittest.Cursor
	capture bool
	moves   int
}

func (b *button) record(e string) {
	*b.log = append(*b.log, b.name+":"+e)
}

func (b *button) Cursor(hittest.NodeRef) hittest.Cursor { return b.cursor }

func (b *button) OnPointerEnter(hittest.NodeRef, *hittest.Tree, hittest.PointerEvent) hittest.EventContinueControl {
	b.record("enter")
	return 0
}

func (b *button) OnPointerLeave(hittest.NodeRef, *hittest.Tree, hittest.PointerEvent) hittest.EventContinueControl {
	b.record("leave")
	return 0
}

func (b *button) OnPointerMove(hittest.NodeRef, *hittest.Tree, hittest.PointerEvent) hittest.EventContinueControl {
	b.moves++
	return 0
}

func (b *button) OnPointerDown(hittest.NodeRef, *hittest.Tree, hittest.PointerEvent) hittest.EventContinueControl {
	b.record("down")
	if b.capture {
		return hittest.CaptureElement | hittest.StopPropagation
	}
	return 0
}

func (b *button) OnPointerUp(hittest.NodeRef, *hittest.Tree, hittest.PointerEvent) hittest.EventContinueControl {
	b.record("up")
	if b.capture {
		return hittest.ReleaseCaptureElement
	}
	return 0
}

func (b *button) OnClick(hittest.NodeRef, *hittest.Tree, hittest.PointerEvent) hittest.EventContinueControl {
	b.record("click")
	return 0
}

type testHost struct {
	*Host
	src    *fakeSource
	btn    *button
	log    []string
	shapes []ebiten.CursorShapeType
}

// newTestHost builds a 200x100 client with one 50x20 button at (10,10).
func newTestHost(t *testing.T) *testHost {
	t.Helper()
	tree := hittest.NewTree()
	root := tree.Alloc(hittest.FillParent("root"))
	ref := tree.Alloc(hittest.Node{Name: "btn", Left: 10, Top: 10, Width: 50, Height: 20})
	tree.AddChild(root, ref)

	th := &testHost{Host: NewHost(tree, root), src: &fakeSource{}}
	th.btn = &button{name: "btn", log: &th.log, cursor: hittest.CursorPointer}
	hittest.SetActionHandler(tree, ref, th.btn)
	t.Cleanup(func() { runtime.KeepAlive(th.btn) })

	th.SetPointerSource(th.src)
	th.setCursor = func(s ebiten.CursorShapeType) { th.shapes = append(th.shapes, s) }
	th.Layout(200, 100)
	return th
}

func (th *testHost) tick(t *testing.T, x, y int, pressed bool) {
	t.Helper()
	th.src.x, th.src.y, th.src.pressed = x, y, pressed
	if err := th.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestHost_HoverAppliesCursor(t *testing.T) {
	th := newTestHost(t)

	th.tick(t, 20, 20, false)
	if !slices.Equal(th.log, []string{"btn:enter"}) {
		t.Errorf("log = %v, want [btn:enter]", th.log)
	}
	if th.Cursor() != hittest.CursorPointer {
		t.Errorf("Cursor() = %v, want CursorPointer", th.Cursor())
	}

	// No movement: nothing dispatched, cursor not re-applied.
	th.tick(t, 20, 20, false)
	if th.btn.moves != 1 || len(th.shapes) != 1 {
		t.Errorf("idle tick dispatched: moves=%d shapes=%v", th.btn.moves, th.shapes)
	}

	th.tick(t, 150, 80, false)
	want := []ebiten.CursorShapeType{ebiten.CursorShapePointer, ebiten.CursorShapeDefault}
	if !slices.Equal(th.shapes, want) {
		t.Errorf("cursor shapes = %v, want %v", th.shapes, want)
	}
	if th.log[len(th.log)-1] != "btn:leave" {
		t.Errorf("log = %v, want trailing btn:leave", th.log)
	}
}

func TestHost_PressReleaseClicks(t *testing.T) {
	th := newTestHost(t)
	th.tick(t, 20, 20, false)
	th.tick(t, 20, 20, true)
	th.tick(t, 22, 21, false)

	want := []string{"btn:enter", "btn:down", "btn:up", "btn:click"}
	if !slices.Equal(th.log, want) {
		t.Errorf("log = %v, want %v", th.log, want)
	}
}

func TestHost_CaptureFollowsPointerOutsideWindow(t *testing.T) {
	th := newTestHost(t)
	th.btn.capture = true
	th.tick(t, 20, 20, false)
	th.tick(t, 20, 20, true)
	if !th.Captured() {
		t.Fatal("host should hold capture after down")
	}

	moves := th.btn.moves
	th.tick(t, 500, -30, true)
	if th.btn.moves != moves+1 {
		t.Errorf("captured move outside window not routed: moves=%d, want %d", th.btn.moves, moves+1)
	}
	if slices.Contains(th.log, "btn:leave") {
		t.Errorf("capture should suppress leave, log = %v", th.log)
	}

	th.tick(t, 500, -30, false)
	if th.Captured() {
		t.Error("capture should be released on up")
	}
	if th.Input.State() != hittest.PointerStateNone {
		t.Errorf("state after release outside = %v, want none", th.Input.State())
	}
}

func TestHost_LeavingWindowClearsHover(t *testing.T) {
	th := newTestHost(t)
	th.tick(t, 20, 20, false)
	th.tick(t, 300, 20, false)

	if !slices.Equal(th.log, []string{"btn:enter", "btn:leave"}) {
		t.Errorf("log = %v, want [btn:enter btn:leave]", th.log)
	}
	if th.Input.State() != hittest.PointerStateNone {
		t.Errorf("state = %v, want none", th.Input.State())
	}
}

func TestHost_SetCaptureTwiceFails(t *testing.T) {
	th := newTestHost(t)
	if err := th.SetCapture(); err != nil {
		t.Fatalf("first SetCapture: %v", err)
	}
	if err := th.SetCapture(); err == nil {
		t.Error("second SetCapture should fail")
	}
	if err := th.ReleaseCapture(); err != nil {
		t.Fatalf("ReleaseCapture: %v", err)
	}
	if err := th.ReleaseCapture(); err == nil {
		t.Error("ReleaseCapture without capture should fail")
	}
}

func TestHost_DebugLine(t *testing.T) {
	th := newTestHost(t)
	th.tick(t, 20, 20, false)
	want := "state: entering  focus: #1 btn  nodes: 2 live / 0 free"
	if got := th.debugLine(); got != want {
		t.Errorf("debugLine() = %q, want %q", got, want)
	}
}

func TestCursorShape(t *testing.T) {
	tests := []struct {
		in   hittest.Cursor
		want ebiten.CursorShapeType
	}{
		{hittest.CursorDefault, ebiten.CursorShapeDefault},
		{hittest.CursorPointer, ebiten.CursorShapePointer},
		{hittest.CursorText, ebiten.CursorShapeText},
		{hittest.CursorCrosshair, ebiten.CursorShapeCrosshair},
		{hittest.CursorMove, ebiten.CursorShapeMove},
		{hittest.CursorEWResize, ebiten.CursorShapeEWResize},
		{hittest.CursorNSResize, ebiten.CursorShapeNSResize},
		{hittest.CursorNESWResize, ebiten.CursorShapeNESWResize},
		{hittest.CursorNWSEResize, ebiten.CursorShapeNWSEResize},
		{hittest.CursorNotAllowed, ebiten.CursorShapeNotAllowed},
	}
	for _, tt := range tests {
		if got := cursorShape(tt.in); got != tt.want {
			t.Errorf("cursorShape(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHost_UpdateFuncRunsAfterInput(t *testing.T) {
	th := newTestHost(t)
	errStop := errors.New("stop")
	var focus hittest.NodeRef = hittest.NoNode
	th.SetUpdateFunc(func() error {
		focus = th.Input.Focus()
		return errStop
	})

	th.src.x, th.src.y = 20, 20
	if err := th.Update(); !errors.Is(err, errStop) {
		t.Errorf("Update() = %v, want %v", err, errStop)
	}
	if focus == hittest.NoNode || th.Tree.Get(focus).Name != "btn" {
		t.Errorf("update func saw focus %d, want btn", focus)
	}
}

func TestHost_CaptureLostResyncsCapturer(t *testing.T) {
	th := newTestHost(t)
	th.btn.capture = true
	th.tick(t, 20, 20, false)
	th.tick(t, 20, 20, true)
	if !th.Captured() {
		t.Fatal("host should hold capture after down")
	}

	th.CaptureLost()
	if th.Captured() {
		t.Error("CaptureLost should clear host capture")
	}
	if th.Input.State() != hittest.PointerStateEntering {
		t.Errorf("state after CaptureLost = %v, want entering", th.Input.State())
	}

	// The next press captures again instead of failing on a stale flag.
	th.tick(t, 20, 20, false)
	th.tick(t, 20, 20, true)
	if !th.Captured() || th.Input.State() != hittest.PointerStateCapturing {
		t.Errorf("recapture: captured=%v state=%v", th.Captured(), th.Input.State())
	}
}

func TestHost_FocusLossEndsCapture(t *testing.T) {
	th := newTestHost(t)
	th.btn.capture = true
	th.tick(t, 20, 20, false)
	th.tick(t, 20, 20, true)

	th.src.unfocused = true
	th.tick(t, 300, 20, false)
	if th.Captured() {
		t.Error("focus loss should end capture")
	}
	// Without capture the pointer outside the window is a leave.
	if th.log[len(th.log)-1] != "btn:leave" {
		t.Errorf("log = %v, want trailing btn:leave", th.log)
	}
	if th.Input.State() != hittest.PointerStateNone {
		t.Errorf("state = %v, want none", th.Input.State())
	}
}
