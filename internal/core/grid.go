package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange reports a coordinate outside a bounded (non-toric) grid.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrInvalidDimensions reports a non-positive row or column count.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)

// DefaultRows and DefaultCols size a grid when nothing else was requested.
const (
	DefaultRows = 20
	DefaultCols = 20
)

// Grid stores per-cell alive and obstacle bits in two row-major matrices of
// identical shape. Obstacle and alive are independent: an obstacle may be
// alive or dead.
type Grid struct {
	rows, cols int
	toric      bool
	alive      []bool
	obstacle   []bool
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(rows, cols int) (*Grid, error) {
	g := &Grid{}
	if err := g.Resize(rows, cols); err != nil {
		return nil, err
	}
	return g, nil
}

// NewDefaultGrid returns an empty DefaultRows x DefaultCols grid.
func NewDefaultGrid() *Grid {
	g := &Grid{}
	g.alloc(DefaultRows, DefaultCols)
	return g
}

func (g *Grid) alloc(rows, cols int) {
	g.rows, g.cols = rows, cols
	g.alive = make([]bool, rows*cols)
	g.obstacle = make([]bool, rows*cols)
}

// Resize reallocates both matrices with every cell dead and non-obstacle.
// The toric flag is kept. Non-positive dimensions are rejected and leave the
// grid unchanged.
func (g *Grid) Resize(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	g.alloc(rows, cols)
	return nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size reports the grid dimensions.
func (g *Grid) Size() Size { return Size{Rows: g.rows, Cols: g.cols} }

// Toric reports whether coordinates wrap around the edges.
func (g *Grid) Toric() bool { return g.toric }

// SetToric switches wrap-around coordinate resolution on or off.
func (g *Grid) SetToric(toric bool) { g.toric = toric }

// Index returns the linear slice index for in-range coordinates (r, c).
func (g *Grid) Index(r, c int) int { return r*g.cols + c }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(r, c int) (int, int) {
	r = (r%g.rows + g.rows) % g.rows
	c = (c%g.cols + g.cols) % g.cols
	return r, c
}

// Resolve maps (r, c) to a linear index. Toric grids wrap; bounded grids
// report ok=false for coordinates outside [0,rows) x [0,cols).
func (g *Grid) Resolve(r, c int) (int, bool) {
	if g.toric {
		r, c = g.Wrap(r, c)
		return g.Index(r, c), true
	}
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return 0, false
	}
	return g.Index(r, c), true
}

func (g *Grid) resolve(r, c int) (int, error) {
	idx, ok := g.Resolve(r, c)
	if !ok {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfRange, r, c, g.rows, g.cols)
	}
	return idx, nil
}

// Cell reports whether (r, c) is alive.
func (g *Grid) Cell(r, c int) (bool, error) {
	idx, err := g.resolve(r, c)
	if err != nil {
		return false, err
	}
	return g.alive[idx], nil
}

// SetCell sets the alive flag at (r, c). Obstacles are updated too; the
// obstacle bit itself is untouched.
func (g *Grid) SetCell(r, c int, alive bool) error {
	idx, err := g.resolve(r, c)
	if err != nil {
		return err
	}
	g.alive[idx] = alive
	return nil
}

// Obstacle reports whether (r, c) is static terrain.
func (g *Grid) Obstacle(r, c int) (bool, error) {
	idx, err := g.resolve(r, c)
	if err != nil {
		return false, err
	}
	return g.obstacle[idx], nil
}

// SetObstacle marks or clears (r, c) as an obstacle without touching its
// alive flag.
func (g *Grid) SetObstacle(r, c int, obstacle bool) error {
	idx, err := g.resolve(r, c)
	if err != nil {
		return err
	}
	g.obstacle[idx] = obstacle
	return nil
}

// AliveAt reads the alive flag at a linear index.
func (g *Grid) AliveAt(idx int) bool { return g.alive[idx] }

// ObstacleAt reads the obstacle flag at a linear index.
func (g *Grid) ObstacleAt(idx int) bool { return g.obstacle[idx] }

// SetAt writes both flags at a linear index. Steppers use it to fill disjoint
// rows of a scratch buffer concurrently.
func (g *Grid) SetAt(idx int, alive, obstacle bool) {
	g.alive[idx] = alive
	g.obstacle[idx] = obstacle
}

// AliveCount returns the number of alive cells, obstacles included.
func (g *Grid) AliveCount() int {
	n := 0
	for _, a := range g.alive {
		if a {
			n++
		}
	}
	return n
}

// Clear kills every cell and removes every obstacle.
func (g *Grid) Clear() {
	for i := range g.alive {
		g.alive[i] = false
		g.obstacle[i] = false
	}
}

// Equal reports whether both grids have the same shape and identical alive
// and obstacle bits everywhere. The toric flag is not compared.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.alive {
		if g.alive[i] != other.alive[i] || g.obstacle[i] != other.obstacle[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy that shares no storage with g.
func (g *Grid) Clone() *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, toric: g.toric}
	out.alive = append([]bool(nil), g.alive...)
	out.obstacle = append([]bool(nil), g.obstacle...)
	return out
}

// CopyFrom makes g a deep copy of src, reusing g's storage when the shapes
// already match.
func (g *Grid) CopyFrom(src *Grid) {
	g.Reshape(src)
	g.toric = src.toric
	copy(g.alive, src.alive)
	copy(g.obstacle, src.obstacle)
}

// Reshape reallocates g to src's dimensions if they differ. Contents are
// undefined afterwards unless the shape already matched.
func (g *Grid) Reshape(src *Grid) {
	if g.rows == src.rows && g.cols == src.cols && len(g.alive) == len(src.alive) {
		return
	}
	g.alloc(src.rows, src.cols)
}
