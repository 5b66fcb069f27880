package rules

type conwayRule struct{}

// Name returns the rule identifier.
func (conwayRule) Name() string { return "conway" }

// Neighborhood returns the Moore pattern.
func (conwayRule) Neighborhood() Neighborhood { return Moore }

// Next applies birth on exactly 3 neighbors and survival on 2 or 3.
func (conwayRule) Next(alive bool, neighbors int) bool {
	if !alive {
		return neighbors == 3
	}
	return neighbors == 2 || neighbors == 3
}

func init() {
	Register(Conway, conwayRule{})
}
