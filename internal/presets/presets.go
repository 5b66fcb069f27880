// Package presets holds the built-in seed patterns.
package presets

import (
	"errors"
	"fmt"
	"strings"

	"mad-life/internal/core"
)

// ErrTooLarge reports a pattern that does not fit the target grid.
var ErrTooLarge = errors.New("pattern does not fit grid")

// Cell is one pattern coordinate relative to the pattern's top-left corner.
type Cell struct {
	Row, Col int
	Alive    bool
	Obstacle bool
}

// Preset is a named seed pattern together with the grid size it is shown on.
type Preset struct {
	Name        string
	Description string
	Rows, Cols  int
	Cells       []Cell

	height, width int
}

// Bounds returns the pattern's height and width.
func (p Preset) Bounds() (int, int) { return p.height, p.width }

// Place clears g and writes the pattern centered on it.
func (p Preset) Place(g *core.Grid) error {
	if p.height > g.Rows() || p.width > g.Cols() {
		return fmt.Errorf("%w: %s is %dx%d, grid is %dx%d", ErrTooLarge, p.Name, p.height, p.width, g.Rows(), g.Cols())
	}
	g.Clear()
	offR := (g.Rows() - p.height) / 2
	offC := (g.Cols() - p.width) / 2
	for _, c := range p.Cells {
		g.SetAt(g.Index(offR+c.Row, offC+c.Col), c.Alive, c.Obstacle)
	}
	return nil
}

// fromArt expands rows of 'O' (alive), '#' (dead obstacle) and '@' (alive
// obstacle) into a coordinate list. Any other rune is a dead cell.
func fromArt(name, desc string, rows, cols int, art ...string) Preset {
	p := Preset{Name: name, Description: desc, Rows: rows, Cols: cols, height: len(art)}
	for r, line := range art {
		if len(line) > p.width {
			p.width = len(line)
		}
		for c, ch := range line {
			switch ch {
			case 'O':
				p.Cells = append(p.Cells, Cell{Row: r, Col: c, Alive: true})
			case '#':
				p.Cells = append(p.Cells, Cell{Row: r, Col: c, Obstacle: true})
			case '@':
				p.Cells = append(p.Cells, Cell{Row: r, Col: c, Alive: true, Obstacle: true})
			}
		}
	}
	return p
}

var catalog = []Preset{
	fromArt("glider", "smallest spaceship, travels diagonally", 20, 20,
		".O.",
		"..O",
		"OOO",
	),
	fromArt("blinker", "period 2 oscillator", 10, 10,
		"OOO",
	),
	fromArt("toad", "period 2 oscillator", 10, 10,
		".OOO",
		"OOO.",
	),
	fromArt("block", "still life", 10, 10,
		"OO",
		"OO",
	),
	fromArt("pulsar", "period 3 oscillator", 20, 20,
		"..OOO...OOO..",
		".............",
		"O....O.O....O",
		"O....O.O....O",
		"O....O.O....O",
		"..OOO...OOO..",
		".............",
		"..OOO...OOO..",
		"O....O.O....O",
		"O....O.O....O",
		"O....O.O....O",
		".............",
		"..OOO...OOO..",
	),
	fromArt("spaceship", "lightweight spaceship, travels horizontally", 20, 40,
		".O..O",
		"O....",
		"O...O",
		"OOOO.",
	),
	fromArt("glider-gun", "Gosper glider gun", 40, 60,
		"........................O...........",
		"......................O.O...........",
		"............OO......OO............OO",
		"...........O...O....OO............OO",
		"OO........O.....O...OO..............",
		"OO........O...O.OO....O.O...........",
		"..........O.....O.......O...........",
		"...........O...O....................",
		"............OO......................",
	),
	fromArt("obstacle-wall", "glider flying into a wall of static cells", 20, 20,
		".O..........",
		"..O.........",
		"OOO.........",
		"............",
		"............",
		"..........#.",
		"..........#.",
		"..........#.",
		"..........@.",
		"..........#.",
		"..........#.",
		"..........#.",
	),
	fromArt("beacon", "period 2 oscillator", 10, 10,
		"OO..",
		"O...",
		"...O",
		"..OO",
	),
	fromArt("r-pentomino", "methuselah, settles after 1103 generations", 50, 50,
		".OO",
		"OO.",
		".O.",
	),
}

// Names lists preset identifiers in menu order.
func Names() []string {
	out := make([]string, len(catalog))
	for i, p := range catalog {
		out[i] = p.Name
	}
	return out
}

// Len returns the number of presets.
func Len() int { return len(catalog) }

// At returns the preset at index i.
func At(i int) (Preset, bool) {
	if i < 0 || i >= len(catalog) {
		return Preset{}, false
	}
	return catalog[i], true
}

// ByName finds a preset by case-insensitive name and returns its index.
func ByName(name string) (Preset, int, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, p := range catalog {
		if p.Name == name {
			return p, i, true
		}
	}
	return Preset{}, -1, false
}
