package rules

type basicRule struct{}

func (basicRule) Name() string { return "basic" }

func (basicRule) Neighborhood() Neighborhood { return VonNeumann }

// Next keeps a live cell with at least one neighbor and births a dead cell
// with at least two.
func (basicRule) Next(alive bool, neighbors int) bool {
	if alive {
		return neighbors >= 1
	}
	return neighbors >= 2
}

func init() {
	Register(Basic, basicRule{})
}
