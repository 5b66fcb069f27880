package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"mad-life/internal/gridio"
	"mad-life/internal/sim"
)

// Config represents the command-line parameters shared by the binaries.
type Config struct {
	Size  string
	Rows  int
	Cols  int
	Toric bool

	Rule         string
	Neighborhood string

	TickMs int
	Scale  int
	TPS    int

	Preset  string
	Input   string
	Random  bool
	Seed    int64
	Density float64

	InputDir        string
	OutputDir       string
	IterationTarget int
	SaveIterations  int
	Workers         int

	Sound   bool
	Volume  float64
	LogPath string

	Overrides kvList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := sim.DefaultConfig()
	return &Config{
		Rule:      d.Rule.String(),
		TickMs:    d.TickMs,
		Scale:     16,
		TPS:       60,
		Seed:      42,
		Density:   0.3,
		InputDir:  gridio.DefaultInputDir,
		OutputDir: gridio.DefaultOutputDir,
		Sound:     true,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Size, "size", c.Size, "grid size preset: small, normal or large")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows (overrides -size)")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns (overrides -size)")
	fs.BoolVar(&c.Toric, "toric", c.Toric, "wrap neighbors around the grid edges")
	fs.StringVar(&c.Rule, "rule", c.Rule, "evolution rule: conway or basic")
	fs.StringVar(&c.Neighborhood, "neighborhood", c.Neighborhood, "neighborhood override: moore or von-neumann")
	fs.IntVar(&c.TickMs, "tick", c.TickMs, "milliseconds between generations")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.StringVar(&c.Preset, "preset", c.Preset, "preset pattern to load at startup")
	fs.StringVar(&c.Input, "input", c.Input, "grid file to load at startup")
	fs.BoolVar(&c.Random, "random", c.Random, "start from a random fill")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random fills")
	fs.Float64Var(&c.Density, "density", c.Density, "alive probability for random fills")
	fs.StringVar(&c.InputDir, "input-dir", c.InputDir, "directory listed for input files")
	fs.StringVar(&c.OutputDir, "output-dir", c.OutputDir, "directory for persisted iterations")
	fs.IntVar(&c.IterationTarget, "iterations", c.IterationTarget, "stop after this many generations (0 = unlimited)")
	fs.IntVar(&c.SaveIterations, "save", c.SaveIterations, "persist the first N generations of a loaded grid")
	fs.IntVar(&c.Workers, "workers", c.Workers, "row workers per step (0 = number of CPUs)")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play feedback tones")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "sound volume in log2 steps (0 = unity)")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "write logs to this file")
	fs.Var(&c.Overrides, "set", "simulation override in key=value form (repeatable)")
}

// Map renders the simulation-related fields as FromMap keys. Values passed
// with -set win over the dedicated flags.
func (c *Config) Map() map[string]string {
	m := map[string]string{
		"toric":            strconv.FormatBool(c.Toric),
		"rule":             c.Rule,
		"tick_ms":          strconv.Itoa(c.TickMs),
		"iteration_target": strconv.Itoa(c.IterationTarget),
		"save_iterations":  strconv.Itoa(c.SaveIterations),
		"workers":          strconv.Itoa(c.Workers),
		"input_dir":        c.InputDir,
		"output_dir":       c.OutputDir,
	}
	if c.Size != "" {
		m["size"] = c.Size
	}
	if c.Rows > 0 {
		m["rows"] = strconv.Itoa(c.Rows)
	}
	if c.Cols > 0 {
		m["cols"] = strconv.Itoa(c.Cols)
	}
	if c.Neighborhood != "" {
		m["neighborhood"] = c.Neighborhood
	}
	for _, kv := range c.Overrides {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return m
}

// SimConfig resolves the simulation configuration.
func (c *Config) SimConfig() sim.Config {
	return sim.FromMap(c.Map())
}

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("override %q is not key=value", value)
	}
	*l = append(*l, value)
	return nil
}
