package rules

import (
	"fmt"
	"sort"
	"strings"

	"mad-life/internal/core"
)

// RuleType identifies one of the registered rules.
type RuleType uint8

const (
	// Conway is B3/S23.
	Conway RuleType = iota
	// Basic is the permissive alternative rule.
	Basic
)

func (t RuleType) String() string {
	if r, ok := registry[t]; ok {
		return r.Name()
	}
	return fmt.Sprintf("RuleType(%d)", uint8(t))
}

// ParseRuleType maps a rule name to its type, case-insensitively.
func ParseRuleType(s string) (RuleType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, r := range registry {
		if r.Name() == name {
			return t, nil
		}
	}
	return Conway, fmt.Errorf("unknown rule %q", s)
}

// Rule maps a cell's current state and alive-neighbor count to its next
// state. Implementations hold no per-cell state.
type Rule interface {
	Name() string
	// Neighborhood is the pattern the rule is defined over.
	Neighborhood() Neighborhood
	Next(alive bool, neighbors int) bool
}

var registry = map[RuleType]Rule{}

// Register adds a rule under the provided type.
func Register(t RuleType, r Rule) {
	if r == nil {
		return
	}
	registry[t] = r
}

// Lookup returns the rule registered for t.
func Lookup(t RuleType) (Rule, bool) {
	r, ok := registry[t]
	return r, ok
}

// Types lists the registered rule types in ascending order.
func Types() []RuleType {
	out := make([]RuleType, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ComputeNextState evaluates rule at (r, c) of g. Obstacles return their
// current alive flag unchanged. A nil nbhd uses the rule's own neighborhood.
// (r, c) must be in range.
func ComputeNextState(rule Rule, nbhd Neighborhood, g *core.Grid, r, c int) bool {
	idx := g.Index(r, c)
	current := g.AliveAt(idx)
	if g.ObstacleAt(idx) {
		return current
	}
	if nbhd == nil {
		nbhd = rule.Neighborhood()
	}
	return rule.Next(current, nbhd.Count(g, r, c))
}
