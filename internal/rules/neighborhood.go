package rules

import (
	"fmt"
	"strings"

	"mad-life/internal/core"
)

// NeighborhoodType selects a neighbor offset pattern.
type NeighborhoodType uint8

const (
	// NeighborhoodDefault defers to the rule's own neighborhood.
	NeighborhoodDefault NeighborhoodType = iota
	// NeighborhoodMoore counts the 8 surrounding cells.
	NeighborhoodMoore
	// NeighborhoodVonNeumann counts the 4 orthogonal cells.
	NeighborhoodVonNeumann
)

func (n NeighborhoodType) String() string {
	switch n {
	case NeighborhoodDefault:
		return "default"
	case NeighborhoodMoore:
		return "moore"
	case NeighborhoodVonNeumann:
		return "vonneumann"
	default:
		return fmt.Sprintf("NeighborhoodType(%d)", uint8(n))
	}
}

// ParseNeighborhood accepts "moore", "vonneumann" (or "von-neumann") and
// "default".
func ParseNeighborhood(s string) (NeighborhoodType, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "", "default":
		return NeighborhoodDefault, nil
	case "moore":
		return NeighborhoodMoore, nil
	case "vonneumann":
		return NeighborhoodVonNeumann, nil
	}
	return NeighborhoodDefault, fmt.Errorf("unknown neighborhood %q", s)
}

// Neighborhood counts alive neighbors of a cell.
type Neighborhood interface {
	Type() NeighborhoodType
	Count(g *core.Grid, r, c int) int
}

type offsetNeighborhood struct {
	typ     NeighborhoodType
	offsets [][2]int
}

var (
	// Moore is the 8-neighbor pattern.
	Moore Neighborhood = offsetNeighborhood{
		typ: NeighborhoodMoore,
		offsets: [][2]int{
			{-1, -1}, {-1, 0}, {-1, 1},
			{0, -1}, {0, 1},
			{1, -1}, {1, 0}, {1, 1},
		},
	}
	// VonNeumann is the 4-neighbor pattern.
	VonNeumann Neighborhood = offsetNeighborhood{
		typ:     NeighborhoodVonNeumann,
		offsets: [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	}
)

func (n offsetNeighborhood) Type() NeighborhoodType { return n.typ }

// Count returns how many offset coordinates hold an alive cell. Toric grids
// wrap; off-grid neighbors of bounded grids count as dead. Alive obstacles
// count like any other cell.
func (n offsetNeighborhood) Count(g *core.Grid, r, c int) int {
	count := 0
	for _, o := range n.offsets {
		idx, ok := g.Resolve(r+o[0], c+o[1])
		if ok && g.AliveAt(idx) {
			count++
		}
	}
	return count
}

// NeighborhoodFor returns the strategy for t, or nil for NeighborhoodDefault.
func NeighborhoodFor(t NeighborhoodType) Neighborhood {
	switch t {
	case NeighborhoodMoore:
		return Moore
	case NeighborhoodVonNeumann:
		return VonNeumann
	default:
		return nil
	}
}
