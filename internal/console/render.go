package console

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"mad-life/internal/core"
	"mad-life/internal/sim"
)

// Canvas is the part of tcell.Screen the renderer writes to.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Glyphs used for the four cell kinds.
const (
	GlyphDead          = '.'
	GlyphAlive         = 'O'
	GlyphDeadObstacle  = '#'
	GlyphAliveObstacle = '@'
)

var (
	styleDead          = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAlive         = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleDeadObstacle  = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	styleAliveObstacle = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleText          = tcell.StyleDefault
	styleHelp          = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func glyph(alive, obstacle bool) (rune, tcell.Style) {
	switch {
	case obstacle && alive:
		return GlyphAliveObstacle, styleAliveObstacle
	case obstacle:
		return GlyphDeadObstacle, styleDeadObstacle
	case alive:
		return GlyphAlive, styleAlive
	default:
		return GlyphDead, styleDead
	}
}

// DrawGrid writes g two columns per cell so the grid looks square, and
// returns the number of rows used. Cells outside width x height are clipped.
func DrawGrid(c Canvas, g *core.Grid, width, height int) int {
	rows := min(g.Rows(), height)
	cols := min(g.Cols(), width/2)
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			idx := g.Index(r, col)
			ch, style := glyph(g.AliveAt(idx), g.ObstacleAt(idx))
			c.SetContent(col*2, r, ch, nil, style)
			c.SetContent(col*2+1, r, ' ', nil, styleDead)
		}
	}
	return rows
}

// DrawText writes s at (x, y), clipped to width, and blanks the rest of the
// line.
func DrawText(c Canvas, x, y, width int, s string, style tcell.Style) {
	col := x
	for _, r := range s {
		if col >= width {
			return
		}
		c.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < width; col++ {
		c.SetContent(col, y, ' ', nil, style)
	}
}

// StatusLine summarizes the service state.
func StatusLine(s *sim.Service) string {
	state := "paused"
	if s.Running() {
		state = "running"
	}
	toric := "bounded"
	if s.Toric() {
		toric = "toric"
	}
	line := fmt.Sprintf("iter %d | %s | %s/%s | %s %dx%d | tick %dms | alive %d",
		s.Iteration(), state, s.RuleType(), s.Neighborhood(), toric,
		s.Rows(), s.Cols(), s.TickMs(), s.Grid().AliveCount())
	if t := s.IterationTarget(); t > 0 {
		line += fmt.Sprintf(" | target %d", t)
	}
	return line
}

const helpLine = "space run  s step  r reset  1-3 size  0,4-9 preset  p next  c rule  +/- speed  t toric  f file  n random  q quit"
