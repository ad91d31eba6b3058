package ebitenhost

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	hittest "github.com/Pctg-x8/peridot-sprite-atlas-visualizer-sub000"
)

// DrawFunc renders one frame. The hit-test tree draws nothing by itself.
type DrawFunc func(screen *ebiten.Image)

type game struct {
	host *Host
	draw DrawFunc
	cfg  RunConfig
}

func (g *game) Update() error {
	if err := g.host.Update(); err != nil {
		return err
	}
	if g.cfg.ExitOnScriptDone && g.host.script != nil && g.host.script.Done() {
		hittest.Logger().Info("ebitenhost: input script finished")
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.draw != nil {
		g.draw(screen)
	}
	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nTPS: %.1f  FPS: %.1f",
			g.host.debugLine(), ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.host.Layout(outsideWidth, outsideHeight)
}

func (h *Host) debugLine() string {
	focus := h.Input.Focus()
	name := "-"
	if focus != hittest.NoNode && h.Tree.IsLive(focus) {
		name = h.Tree.Get(focus).Name
	}
	return fmt.Sprintf("state: %v  focus: #%d %s  nodes: %d live / %d free",
		h.Input.State(), focus, name, h.Tree.LiveCount(), h.Tree.FreeCount())
}

// Run opens a window and runs the host until the window closes. draw may be
// nil.
func Run(h *Host, cfg RunConfig, draw DrawFunc) error {
	cfg = cfg.withDefaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	h.Tree.SetDebugMode(cfg.Debug)

	if cfg.Script != "" {
		data, err := os.ReadFile(cfg.Script)
		if err != nil {
			return fmt.Errorf("read input script: %w", err)
		}
		script, err := LoadScript(data)
		if err != nil {
			return err
		}
		h.SetScript(script)
	}

	if err := ebiten.RunGame(&game{host: h, draw: draw, cfg: cfg}); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
