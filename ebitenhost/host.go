// Package ebitenhost drives a hittest.PointerInputManager from an
// Ebitengine window: it polls the cursor and left button every tick, turns
// them into move/down/up notifications, keeps capture state for the manager
// and applies the cursor shape handlers ask for.
package ebitenhost

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"

	hittest "github.com/Pctg-x8/peridot-sprite-atlas-visualizer-sub000"
)

// PointerSource reports raw pointer state once per tick.
type PointerSource interface {
	CursorPosition() (x, y int)
	LeftPressed() bool
	// Focused reports whether the window has input focus. Losing focus
	// while captured ends the capture.
	Focused() bool
}

type ebitenSource struct{}

func (ebitenSource) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (ebitenSource) LeftPressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}
func (ebitenSource) Focused() bool { return ebiten.IsFocused() }

// Host connects a hit-test tree to an Ebitengine window.
type Host struct {
	Tree  *hittest.Tree
	Root  hittest.NodeRef
	Input *hittest.PointerInputManager

	source    PointerSource
	setCursor func(ebiten.CursorShapeType)
	client    hittest.Size

	captured   bool
	wasPressed bool
	wasInside  bool
	hasLast    bool
	lastX      float64
	lastY      float64
	cursor     hittest.Cursor

	injectQueue []syntheticPointerEvent
	script      *Script
	update      func() error
}

// NewHost creates a host for the tree rooted at root. The host is the
// manager's capturer.
func NewHost(tree *hittest.Tree, root hittest.NodeRef) *Host {
	h := &Host{
		Tree:      tree,
		Root:      root,
		source:    ebitenSource{},
		setCursor: ebiten.SetCursorShape,
	}
	h.Input = hittest.NewPointerInputManager(h)
	return h
}

// SetPointerSource replaces the Ebitengine pointer polling.
func (h *Host) SetPointerSource(src PointerSource) {
	h.source = src
}

// ClientSize returns the size last reported through Layout.
func (h *Host) ClientSize() hittest.Size {
	return h.client
}

// Layout records the client size and returns it unchanged, for use from
// ebiten.Game.Layout.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.client = hittest.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

// SetUpdateFunc registers fn to run at the end of every tick, after input
// has been dispatched. A non-nil error stops the game loop.
func (h *Host) SetUpdateFunc(fn func() error) {
	h.update = fn
}

// Update runs one tick: advances the script, feeds one pointer sample to the
// input manager, applies the resulting cursor and calls the update func.
func (h *Host) Update() error {
	if h.script != nil {
		h.script.step(h)
	}
	if h.captured && !h.source.Focused() {
		h.CaptureLost()
	}
	x, y, pressed := h.poll()
	h.process(x, y, pressed)
	h.applyCursor()
	if h.update != nil {
		return h.update()
	}
	return nil
}

// poll pops one injected event if any are queued; otherwise it samples the
// pointer source.
func (h *Host) poll() (float64, float64, bool) {
	if len(h.injectQueue) > 0 {
		evt := h.injectQueue[0]
		copy(h.injectQueue, h.injectQueue[1:])
		h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]
		return evt.x, evt.y, evt.pressed
	}
	cx, cy := h.source.CursorPosition()
	return float64(cx), float64(cy), h.source.LeftPressed()
}

func (h *Host) process(x, y float64, pressed bool) {
	inside := h.client.Rect().Contains(x, y)
	moved := !h.hasLast || x != h.lastX || y != h.lastY

	switch {
	case pressed && !h.wasPressed:
		if moved {
			h.Input.OnMouseMove(h.Tree, h.Root, x, y, h.client)
		}
		h.Input.OnMouseLeftDown(h.Tree, h.Root, x, y, h.client)
	case !pressed && h.wasPressed:
		h.Input.OnMouseLeftUp(h.Tree, h.Root, x, y, h.client)
	case moved:
		switch {
		case inside || h.captured:
			h.Input.OnMouseMove(h.Tree, h.Root, x, y, h.client)
		case h.wasInside:
			h.Input.OnMouseLeaveWindow(h.Tree, x, y, h.client)
		}
	}

	h.wasPressed = pressed
	h.wasInside = inside
	h.hasLast = true
	h.lastX, h.lastY = x, y
}

func (h *Host) applyCursor() {
	c := h.Input.Cursor(h.Tree)
	if c == h.cursor {
		return
	}
	h.cursor = c
	h.setCursor(cursorShape(c))
}

// Cursor returns the cursor applied on the last tick.
func (h *Host) Cursor() hittest.Cursor {
	return h.cursor
}

// --- hittest.PointerCapturer ---

var (
	errAlreadyCaptured = errors.New("ebitenhost: pointer already captured")
	errNotCaptured     = errors.New("ebitenhost: pointer not captured")
)

// SetCapture marks the pointer as captured. Ebitengine keeps reporting the
// cursor while a button is held outside the window, so capture only changes
// how the host routes those samples.
func (h *Host) SetCapture() error {
	if h.captured {
		return errAlreadyCaptured
	}
	h.captured = true
	return nil
}

// ReleaseCapture ends a capture started with SetCapture.
func (h *Host) ReleaseCapture() error {
	if !h.captured {
		return errNotCaptured
	}
	h.captured = false
	return nil
}

// CaptureLost drops the capture without a release handshake, for when the
// platform has already taken it away. The input manager falls back to
// hovering the node that held it.
func (h *Host) CaptureLost() {
	if !h.captured {
		return
	}
	h.captured = false
	h.Input.OnCaptureLost()
}

// Captured reports whether the pointer is captured.
func (h *Host) Captured() bool {
	return h.captured
}

func cursorShape(c hittest.Cursor) ebiten.CursorShapeType {
	switch c {
	case hittest.CursorPointer:
		return ebiten.CursorShapePointer
	case hittest.CursorText:
		return ebiten.CursorShapeText
	case hittest.CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	case hittest.CursorMove:
		return ebiten.CursorShapeMove
	case hittest.CursorEWResize:
		return ebiten.CursorShapeEWResize
	case hittest.CursorNSResize:
		return ebiten.CursorShapeNSResize
	case hittest.CursorNESWResize:
		return ebiten.CursorShapeNESWResize
	case hittest.CursorNWSEResize:
		return ebiten.CursorShapeNWSEResize
	case hittest.CursorNotAllowed:
		return ebiten.CursorShapeNotAllowed
	default:
		return ebiten.CursorShapeDefault
	}
}
