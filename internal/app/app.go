//go:build ebiten

package app

import (
	"time"

	"mad-life/internal/render"
	"mad-life/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the parameter panel in screen pixels.
const hudWidth = 240

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctl     *Controller
	painter *render.GridPainter
	hud     *ui.HUD
	palette render.Palette

	scale int
	chars []rune
}

// New constructs a Game for the provided controller.
func New(ctl *Controller, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	svc := ctl.Service()
	return &Game{
		ctl:     ctl,
		painter: render.NewGridPainter(svc.Rows(), svc.Cols()),
		hud:     ui.NewHUD(svc, hudWidth),
		palette: render.DefaultPalette(),
		scale:   scale,
	}
}

// WindowSize returns the window dimensions for the current grid.
func (g *Game) WindowSize() (int, int) {
	svc := g.ctl.Service()
	h := svc.Rows() * g.scale
	if h < minHeight {
		h = minHeight
	}
	return svc.Cols()*g.scale + g.hud.Width(), h
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		cmd, ok := CommandForRune(r)
		if !ok {
			continue
		}
		if !g.ctl.Do(cmd) {
			return ebiten.Termination
		}
	}

	svc := g.ctl.Service()
	gridWidth := svc.Cols() * g.scale
	g.hud.Update(gridWidth)
	g.handleMouse(gridWidth, svc.Rows()*g.scale)

	g.ctl.Tick(time.Now())
	g.syncSize()
	return nil
}

func (g *Game) handleMouse(gridWidth, gridHeight int) {
	left := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	right := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	if !left && !right {
		return
	}
	x, y := ebiten.CursorPosition()
	if x < 0 || y < 0 || x >= gridWidth || y >= gridHeight || g.hud.Contains(x) {
		return
	}
	r, c := y/g.scale, x/g.scale
	if left {
		g.ctl.ToggleCell(r, c)
		return
	}
	g.ctl.ToggleObstacle(r, c)
}

// syncSize reallocates the painter and resizes the window after the grid
// changed shape.
func (g *Game) syncSize() {
	grid := g.ctl.Service().Grid()
	if g.painter.Fits(grid) {
		return
	}
	g.painter = render.NewGridPainter(grid.Rows(), grid.Cols())
	ebiten.SetWindowSize(g.WindowSize())
}

// Draw renders the grid and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.ctl.Service().Grid()
	g.painter.Blit(screen, grid, g.palette, g.scale, 0)
	_, h := g.WindowSize()
	g.hud.Draw(screen, grid.Cols()*g.scale, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.WindowSize()
}

const minHeight = 360
