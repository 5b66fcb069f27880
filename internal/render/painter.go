//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"mad-life/internal/core"
)

// GridPainter uploads a grid into a single image, one pixel per cell.
type GridPainter struct {
	rows, cols int
	img        *ebiten.Image
	buf        []byte
}

// NewGridPainter allocates a painter for a rows x cols grid.
func NewGridPainter(rows, cols int) *GridPainter {
	return &GridPainter{
		rows: rows,
		cols: cols,
		img:  ebiten.NewImage(cols, rows),
		buf:  make([]byte, 4*rows*cols),
	}
}

// Fits reports whether the painter matches g's dimensions.
func (gp *GridPainter) Fits(g *core.Grid) bool {
	return g.Rows() == gp.rows && g.Cols() == gp.cols
}

// Blit uploads g and draws it scaled at the given offset.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.Grid, p Palette, scale int, offY float64) {
	if !gp.Fits(g) {
		return
	}
	FillGridRGBA(gp.buf, g, p)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(0, offY)
	dst.DrawImage(gp.img, op)
}
