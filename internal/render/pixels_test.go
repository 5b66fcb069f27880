package render

import (
	"testing"

	"mad-life/internal/core"
)

func TestFillGridRGBA(t *testing.T) {
	g, _ := core.NewGrid(2, 2)
	_ = g.SetCell(0, 1, true)
	_ = g.SetObstacle(1, 0, true)
	_ = g.SetCell(1, 1, true)
	_ = g.SetObstacle(1, 1, true)

	p := DefaultPalette()
	buf := make([]byte, 4*4)
	FillGridRGBA(buf, g, p)

	want := []struct{ r, g, b, a uint8 }{
		{p.Dead.R, p.Dead.G, p.Dead.B, p.Dead.A},
		{p.Alive.R, p.Alive.G, p.Alive.B, p.Alive.A},
		{p.DeadObstacle.R, p.DeadObstacle.G, p.DeadObstacle.B, p.DeadObstacle.A},
		{p.AliveObstacle.R, p.AliveObstacle.G, p.AliveObstacle.B, p.AliveObstacle.A},
	}
	for i, w := range want {
		got := buf[i*4 : i*4+4]
		if got[0] != w.r || got[1] != w.g || got[2] != w.b || got[3] != w.a {
			t.Fatalf("pixel %d = %v, want %v", i, got, w)
		}
	}
}

func TestPaletteColorsDistinct(t *testing.T) {
	p := DefaultPalette()
	seen := map[[4]uint8]bool{}
	for _, alive := range []bool{false, true} {
		for _, obs := range []bool{false, true} {
			c := p.Color(alive, obs)
			key := [4]uint8{c.R, c.G, c.B, c.A}
			if seen[key] {
				t.Fatalf("palette reuses color %v", c)
			}
			seen[key] = true
		}
	}
}
