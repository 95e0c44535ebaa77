//go:build ebiten

package app

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"automata/internal/core"
	"automata/internal/render"
	"automata/internal/ui"
)

// Game adapts an automaton to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	palette []color.RGBA
	cells   *core.ByteGrid
	pacer   *core.Pacer

	scale    int
	tps      int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg Config) *Game {
	size := sim.Size()
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(sim, cfg.PanelWidth),
		overlay: ui.NewOverlay(sim, cfg.Scale),
		palette: render.Palette(sim.States()),
		pacer:   core.NewPacer(cfg.TPS),
		scale:   cfg.Scale,
		tps:     cfg.TPS,
		paused:  cfg.Paused,
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.sim.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sim.ClearGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.setTPS(g.tps * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.setTPS(g.tps / 2)
	}
	g.paint()

	g.overlay.Update()

	due := g.pacer.Due()
	switch {
	case g.tickOnce:
		g.sim.Step()
		g.tickOnce = false
	case !g.paused:
		for i := 0; i < due; i++ {
			g.sim.Step()
		}
	}
	g.hud.Update(g.paused, g.tps)
	return nil
}

// paint writes the default cell under the left mouse button and erases
// under the right one.
func (g *Game) paint() {
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	size := g.sim.Size()
	if x < 0 || y < 0 || x >= size.W || y >= size.H {
		return
	}
	c := g.sim.States().Default()
	if right {
		c = g.sim.States().Empty()
	}
	g.sim.Set(x, y, c)
}

func (g *Game) setTPS(tps int) {
	if tps < 1 {
		tps = 1
	}
	if tps > 960 {
		tps = 960
	}
	g.tps = tps
	g.pacer.SetTPS(tps)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.cells = render.Raster(g.sim, g.cells)
	g.painter.Blit(screen, g.cells, g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
