// Package sim drives generation stepping over a core.Grid.
package sim

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"mad-life/internal/core"
	"mad-life/internal/gridio"
	"mad-life/internal/presets"
	"mad-life/internal/rules"
)

var (
	// ErrUnknownRule reports a rule type with no registered strategy.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrUnknownPreset reports a preset index or name outside the catalog.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrNoStore reports a file operation on a service built without a store.
	ErrNoStore = errors.New("no grid store configured")
)

// GridReader loads grids from files.
type GridReader interface {
	ReadGrid(path string) (*core.Grid, error)
}

// IterationWriter persists a generation of a named grid.
type IterationWriter interface {
	WriteGridIteration(baseName string, iteration int, g *core.Grid) error
}

// Store is the file collaborator consumed by the service.
type Store interface {
	GridReader
	IterationWriter
}

type inputLister interface {
	ListInputFiles() ([]string, error)
}

// StepResult tells the caller what a Step call did.
type StepResult uint8

const (
	// StepAdvanced committed a new generation.
	StepAdvanced StepResult = iota
	// StepStabilized found the next generation identical to the current one
	// and stopped the clock.
	StepStabilized
	// StepTargetReached was a no-op because the iteration target was met.
	StepTargetReached
)

func (r StepResult) String() string {
	switch r {
	case StepAdvanced:
		return "advanced"
	case StepStabilized:
		return "stabilized"
	case StepTargetReached:
		return "target reached"
	default:
		return fmt.Sprintf("StepResult(%d)", uint8(r))
	}
}

// Service owns the live grid and its scratch buffer and advances them one
// generation at a time.
//
// Running and TickMs may be read and written from any goroutine. Everything
// else must be serialized with Step by the caller: mutate only from the
// goroutine that steps, or while stopped.
type Service struct {
	store  Store
	logger *log.Logger

	running atomic.Bool
	tickMs  atomic.Int64

	grid    *core.Grid
	buffer  *core.Grid
	initial *core.Grid

	ruleType rules.RuleType
	rule     rules.Rule
	nbhdType rules.NeighborhoodType
	nbhd     rules.Neighborhood

	iteration       int
	iterationTarget int
	saveIterations  int
	outputBase      string
	workers         int
	preset          int
}

// New builds a Service from cfg. store may be nil, which disables file
// loading and persistence.
func New(cfg Config, store Store) (*Service, error) {
	g, err := core.NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	g.SetToric(cfg.Toric)
	s := &Service{
		store:  store,
		logger: log.Default(),
		grid:   g,
		buffer: g.Clone(),
		preset: -1,
	}
	if err := s.SetRuleType(cfg.Rule); err != nil {
		return nil, err
	}
	s.SetNeighborhood(cfg.Neighborhood)
	s.SetTickMs(cfg.TickMs)
	s.SetIterationTarget(cfg.IterationTarget)
	s.SetSaveIterations(cfg.SaveIterations)
	s.SetWorkers(cfg.Workers)
	return s, nil
}

// SetLogger replaces the logger used for non-fatal failures.
func (s *Service) SetLogger(l *log.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Start sets the service running.
func (s *Service) Start() { s.running.Store(true) }

// Pause stops the service.
func (s *Service) Pause() { s.running.Store(false) }

// Toggle flips between running and stopped and returns the new state.
func (s *Service) Toggle() bool {
	for {
		cur := s.running.Load()
		if s.running.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Running reports whether the caller's loop should keep stepping.
func (s *Service) Running() bool { return s.running.Load() }

// Step advances one generation. It blocks until every row partition is done.
func (s *Service) Step() StepResult {
	if s.iterationTarget > 0 && s.iteration >= s.iterationTarget {
		s.running.Store(false)
		return StepTargetReached
	}

	s.buffer.Reshape(s.grid)
	s.buffer.SetToric(s.grid.Toric())
	s.evolve()
	s.iteration++

	if s.buffer.Equal(s.grid) {
		s.running.Store(false)
		return StepStabilized
	}

	s.grid, s.buffer = s.buffer, s.grid
	s.persist()
	if s.iterationTarget > 0 && s.iteration >= s.iterationTarget {
		s.running.Store(false)
	}
	return StepAdvanced
}

// evolve fills the buffer from the live grid, splitting rows into contiguous
// ranges across workers. Workers read only the live grid and write disjoint
// buffer rows.
func (s *Service) evolve() {
	rows := s.grid.Rows()
	workers := min(s.workers, rows)
	if workers <= 1 {
		s.evolveRows(0, rows)
		return
	}

	var eg errgroup.Group
	per, rem := rows/workers, rows%workers
	from := 0
	for i := 0; i < workers; i++ {
		to := from + per
		if i < rem {
			to++
		}
		lo, hi := from, to
		eg.Go(func() error {
			s.evolveRows(lo, hi)
			return nil
		})
		from = to
	}
	// evolveRows cannot fail; Wait only joins the workers.
	_ = eg.Wait()
}

func (s *Service) evolveRows(from, to int) {
	src, dst := s.grid, s.buffer
	cols := src.Cols()
	for r := from; r < to; r++ {
		for c := 0; c < cols; c++ {
			idx := src.Index(r, c)
			next := rules.ComputeNextState(s.rule, s.nbhd, src, r, c)
			dst.SetAt(idx, next, src.ObstacleAt(idx))
		}
	}
}

func (s *Service) persist() {
	if s.store == nil || s.outputBase == "" || s.saveIterations <= 0 || s.iteration > s.saveIterations {
		return
	}
	if err := s.store.WriteGridIteration(s.outputBase, s.iteration, s.grid); err != nil {
		s.logger.Printf("sim: persisting %s iteration %d: %v", s.outputBase, s.iteration, err)
	}
}

// Reset restores the initial snapshot, or an empty default grid when there
// is none, keeping the current toric setting. The iteration counter goes
// back to 0.
func (s *Service) Reset() {
	toric := s.grid.Toric()
	if s.initial != nil {
		s.grid = s.initial.Clone()
	} else {
		s.grid = core.NewDefaultGrid()
	}
	s.grid.SetToric(toric)
	s.buffer = s.grid.Clone()
	s.iteration = 0
}

// adopt makes g the live grid and the new initial snapshot.
func (s *Service) adopt(g *core.Grid, base string) {
	g.SetToric(s.grid.Toric())
	s.grid = g
	s.buffer = g.Clone()
	s.initial = g.Clone()
	s.outputBase = base
	s.iteration = 0
}

// LoadFile reads a grid through the store and captures it as the initial
// snapshot. Iterations are persisted under the file's base name. On failure
// the current grid is left untouched.
func (s *Service) LoadFile(path string) error {
	if s.store == nil {
		return ErrNoStore
	}
	g, err := s.store.ReadGrid(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.adopt(g, gridio.BaseName(path))
	s.preset = -1
	return nil
}

// ListInputFiles enumerates loadable files when the store supports it.
func (s *Service) ListInputFiles() ([]string, error) {
	l, ok := s.store.(inputLister)
	if !ok {
		return nil, nil
	}
	return l.ListInputFiles()
}

// Presets lists the preset identifiers in index order.
func (s *Service) Presets() []string { return presets.Names() }

// PresetIndex returns the index of the last loaded preset, or -1.
func (s *Service) PresetIndex() int { return s.preset }

// LoadPreset resizes the grid to the preset's size, places the pattern at
// its center and captures the result as the initial snapshot.
func (s *Service) LoadPreset(index int) error {
	p, ok := presets.At(index)
	if !ok {
		return fmt.Errorf("%w: index %d", ErrUnknownPreset, index)
	}
	g, err := core.NewGrid(p.Rows, p.Cols)
	if err != nil {
		return err
	}
	if err := p.Place(g); err != nil {
		return err
	}
	s.adopt(g, p.Name)
	s.preset = index
	return nil
}

// LoadPresetByName is LoadPreset addressed by name.
func (s *Service) LoadPresetByName(name string) error {
	_, idx, ok := presets.ByName(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return s.LoadPreset(idx)
}

// Randomize fills a fresh grid of the current size with live cells at the
// given density and captures it as the initial snapshot.
func (s *Service) Randomize(seed int64, density float64) {
	g := core.NewDefaultGrid()
	_ = g.Resize(s.grid.Rows(), s.grid.Cols())
	core.FillRandom(core.NewRNG(seed), g, density)
	s.adopt(g, "random")
	s.preset = -1
}

// Grid exposes the live grid. Callers must not retain it across steps or
// mutate it concurrently with Step.
func (s *Service) Grid() *core.Grid { return s.grid }

// Snapshot returns a deep copy of the live grid.
func (s *Service) Snapshot() *core.Grid { return s.grid.Clone() }

// HasInitial reports whether Reset restores a captured snapshot.
func (s *Service) HasInitial() bool { return s.initial != nil }

// Rows returns the live grid's row count.
func (s *Service) Rows() int { return s.grid.Rows() }

// Cols returns the live grid's column count.
func (s *Service) Cols() int { return s.grid.Cols() }

// SetGridDimensions replaces the grid with an empty one of the given size.
// The initial snapshot is dropped, so Reset afterwards yields the default
// empty grid.
func (s *Service) SetGridDimensions(rows, cols int) error {
	g, err := core.NewGrid(rows, cols)
	if err != nil {
		return err
	}
	g.SetToric(s.grid.Toric())
	s.grid = g
	s.buffer = g.Clone()
	s.initial = nil
	s.outputBase = ""
	s.iteration = 0
	s.preset = -1
	return nil
}

// SetGridSize applies one of the predefined sizes.
func (s *Service) SetGridSize(size core.GridSize) error {
	d := size.Size()
	return s.SetGridDimensions(d.Rows, d.Cols)
}

// Toric reports whether the grid wraps at its edges.
func (s *Service) Toric() bool { return s.grid.Toric() }

// SetToric switches edge wrapping on the live grid and its buffer.
func (s *Service) SetToric(toric bool) {
	s.grid.SetToric(toric)
	s.buffer.SetToric(toric)
}

// Cell reads the alive flag at (r, c).
func (s *Service) Cell(r, c int) (bool, error) { return s.grid.Cell(r, c) }

// SetCell writes the alive flag at (r, c).
func (s *Service) SetCell(r, c int, alive bool) error { return s.grid.SetCell(r, c, alive) }

// Obstacle reads the obstacle flag at (r, c).
func (s *Service) Obstacle(r, c int) (bool, error) { return s.grid.Obstacle(r, c) }

// SetObstacle writes the obstacle flag at (r, c).
func (s *Service) SetObstacle(r, c int, obstacle bool) error {
	return s.grid.SetObstacle(r, c, obstacle)
}

// ToggleCell flips the alive flag at (r, c).
func (s *Service) ToggleCell(r, c int) error {
	alive, err := s.grid.Cell(r, c)
	if err != nil {
		return err
	}
	return s.grid.SetCell(r, c, !alive)
}

// ToggleObstacle flips the obstacle flag at (r, c).
func (s *Service) ToggleObstacle(r, c int) error {
	obs, err := s.grid.Obstacle(r, c)
	if err != nil {
		return err
	}
	return s.grid.SetObstacle(r, c, !obs)
}

// RuleType returns the selected rule.
func (s *Service) RuleType() rules.RuleType { return s.ruleType }

// SetRuleType rebinds the rule consulted by Step.
func (s *Service) SetRuleType(t rules.RuleType) error {
	r, ok := rules.Lookup(t)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownRule, t)
	}
	s.ruleType, s.rule = t, r
	return nil
}

// CycleRule switches to the next registered rule and returns it.
func (s *Service) CycleRule() rules.RuleType {
	types := rules.Types()
	next := types[0]
	for i, t := range types {
		if t == s.ruleType {
			next = types[(i+1)%len(types)]
			break
		}
	}
	_ = s.SetRuleType(next)
	return next
}

// Neighborhood returns the neighborhood override.
func (s *Service) Neighborhood() rules.NeighborhoodType { return s.nbhdType }

// SetNeighborhood pins the neighbor pattern; NeighborhoodDefault follows
// the rule.
func (s *Service) SetNeighborhood(t rules.NeighborhoodType) {
	s.nbhdType = t
	s.nbhd = rules.NeighborhoodFor(t)
}

// TickMs returns the step interval in milliseconds.
func (s *Service) TickMs() int { return int(s.tickMs.Load()) }

// Tick returns the step interval.
func (s *Service) Tick() time.Duration { return time.Duration(s.tickMs.Load()) * time.Millisecond }

// SetTickMs sets the step interval, clamped to at least MinTickMs.
func (s *Service) SetTickMs(ms int) {
	if ms < MinTickMs {
		ms = MinTickMs
	}
	s.tickMs.Store(int64(ms))
}

// Iteration returns the number of generations stepped since the last load
// or reset.
func (s *Service) Iteration() int { return s.iteration }

// IterationTarget returns the run-length limit; 0 means unlimited.
func (s *Service) IterationTarget() int { return s.iterationTarget }

// SetIterationTarget sets the run-length limit. Negative values mean 0.
func (s *Service) SetIterationTarget(n int) { s.iterationTarget = max(n, 0) }

// SaveIterations returns the persistence window.
func (s *Service) SaveIterations() int { return s.saveIterations }

// SetSaveIterations persists generations 1..n of named grids. Negative
// values mean 0.
func (s *Service) SetSaveIterations(n int) { s.saveIterations = max(n, 0) }

// OutputBase returns the prefix used for persisted iteration files.
func (s *Service) OutputBase() string { return s.outputBase }

// Workers returns the parallelism bound for Step.
func (s *Service) Workers() int { return s.workers }

// SetWorkers bounds row parallelism; n <= 0 uses the number of CPUs.
func (s *Service) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	s.workers = n
}
