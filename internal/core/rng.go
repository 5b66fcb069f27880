package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.r.Float64() < p
}

// FillRandom sets every non-obstacle cell alive with probability density.
// Obstacles keep their current alive flag.
func FillRandom(r *RNG, g *Grid, density float64) {
	for i := range g.alive {
		if g.obstacle[i] {
			continue
		}
		g.alive[i] = r.Chance(density)
	}
}
