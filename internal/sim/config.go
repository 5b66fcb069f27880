package sim

import (
	"strconv"

	"mad-life/internal/core"
	"mad-life/internal/rules"
)

// MinTickMs is the fastest tick the service accepts.
const MinTickMs = 10

// Config controls the initial state of a Service.
type Config struct {
	Rows  int
	Cols  int
	Toric bool

	Rule         rules.RuleType
	Neighborhood rules.NeighborhoodType

	TickMs int

	// IterationTarget stops stepping once reached; 0 runs forever.
	IterationTarget int
	// SaveIterations persists generations 1..SaveIterations of named grids;
	// 0 disables persistence.
	SaveIterations int

	// Workers bounds row-parallel stepping; 0 uses runtime.NumCPU().
	Workers int

	InputDir  string
	OutputDir string
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Rows:   core.DefaultRows,
		Cols:   core.DefaultCols,
		Rule:   rules.Conway,
		TickMs: int(core.DefaultTick.Milliseconds()),
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
// Unparsable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := core.ParseGridSize(v); err == nil {
			s := parsed.Size()
			c.Rows, c.Cols = s.Rows, s.Cols
		}
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["toric"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Toric = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := rules.ParseRuleType(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["neighborhood"]; ok {
		if parsed, err := rules.ParseNeighborhood(v); err == nil {
			c.Neighborhood = parsed
		}
	}
	if v, ok := cfg["tick_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= MinTickMs {
			c.TickMs = parsed
		}
	}
	if v, ok := cfg["iteration_target"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.IterationTarget = parsed
		}
	}
	if v, ok := cfg["save_iterations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.SaveIterations = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["input_dir"]; ok && v != "" {
		c.InputDir = v
	}
	if v, ok := cfg["output_dir"]; ok && v != "" {
		c.OutputDir = v
	}
	return c
}
