package render

import (
	"image/color"

	"mad-life/internal/core"
)

// Palette maps the four cell kinds to colors.
type Palette struct {
	Dead          color.RGBA
	Alive         color.RGBA
	DeadObstacle  color.RGBA
	AliveObstacle color.RGBA
}

// DefaultPalette draws live cells white on black and obstacles in red tones.
func DefaultPalette() Palette {
	return Palette{
		Dead:          color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xff},
		Alive:         color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		DeadObstacle:  color.RGBA{R: 0x6a, G: 0x1e, B: 0x1e, A: 0xff},
		AliveObstacle: color.RGBA{R: 0xff, G: 0x70, B: 0x40, A: 0xff},
	}
}

// Color returns the palette entry for a cell.
func (p Palette) Color(alive, obstacle bool) color.RGBA {
	switch {
	case obstacle && alive:
		return p.AliveObstacle
	case obstacle:
		return p.DeadObstacle
	case alive:
		return p.Alive
	default:
		return p.Dead
	}
}

// FillGridRGBA writes one RGBA pixel per cell of g into buf, row-major.
// buf must hold at least 4*rows*cols bytes.
func FillGridRGBA(buf []byte, g *core.Grid, p Palette) {
	n := g.Rows() * g.Cols()
	for i := 0; i < n; i++ {
		col := p.Color(g.AliveAt(i), g.ObstacleAt(i))
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
