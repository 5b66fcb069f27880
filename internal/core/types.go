package core

import (
	"fmt"
	"strings"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	Rows int
	Cols int
}

// GridSize enumerates the predefined grid dimensions offered by front-ends.
type GridSize uint8

const (
	// GridSmall is a 10x10 grid.
	GridSmall GridSize = iota
	// GridNormal is a 20x20 grid.
	GridNormal
	// GridLarge is a 50x50 grid.
	GridLarge
)

// Size returns the dimensions for a predefined size. Unknown values map to
// GridNormal.
func (s GridSize) Size() Size {
	switch s {
	case GridSmall:
		return Size{Rows: 10, Cols: 10}
	case GridLarge:
		return Size{Rows: 50, Cols: 50}
	default:
		return Size{Rows: DefaultRows, Cols: DefaultCols}
	}
}

func (s GridSize) String() string {
	switch s {
	case GridSmall:
		return "small"
	case GridNormal:
		return "normal"
	case GridLarge:
		return "large"
	default:
		return fmt.Sprintf("GridSize(%d)", uint8(s))
	}
}

// ParseGridSize accepts "small", "normal" or "large".
func ParseGridSize(s string) (GridSize, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small", "s":
		return GridSmall, nil
	case "normal", "n", "":
		return GridNormal, nil
	case "large", "l":
		return GridLarge, nil
	}
	return GridNormal, fmt.Errorf("unknown grid size %q", s)
}

// GridSizes lists the predefined sizes in menu order.
func GridSizes() []GridSize {
	return []GridSize{GridSmall, GridNormal, GridLarge}
}
