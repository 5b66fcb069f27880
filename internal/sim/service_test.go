package sim

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mad-life/internal/core"
	"mad-life/internal/gridio"
	"mad-life/internal/rules"
)

type write struct {
	base      string
	iteration int
	grid      *core.Grid
}

type memStore struct {
	grids    map[string]*core.Grid
	writes   []write
	writeErr error
}

func (m *memStore) ReadGrid(path string) (*core.Grid, error) {
	g, ok := m.grids[path]
	if !ok {
		return nil, gridio.ErrFileRead
	}
	return g.Clone(), nil
}

func (m *memStore) WriteGridIteration(base string, iteration int, g *core.Grid) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, write{base: base, iteration: iteration, grid: g.Clone()})
	return nil
}

func newService(t *testing.T, rows, cols int, store Store) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = rows, cols
	s, err := New(cfg, store)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func setAlive(t *testing.T, s *Service, cells ...[2]int) {
	t.Helper()
	for _, rc := range cells {
		if err := s.SetCell(rc[0], rc[1], true); err != nil {
			t.Fatalf("SetCell(%d,%d): %v", rc[0], rc[1], err)
		}
	}
}

func gridWith(t *testing.T, rows, cols int, cells ...[2]int) *core.Grid {
	t.Helper()
	g, err := core.NewGrid(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	for _, rc := range cells {
		_ = g.SetCell(rc[0], rc[1], true)
	}
	return g
}

func TestBlinkerOscillation(t *testing.T) {
	s := newService(t, 5, 5, nil)
	setAlive(t, s, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	if res := s.Step(); res != StepAdvanced {
		t.Fatalf("first step = %v", res)
	}
	vertical := gridWith(t, 5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	if !s.Grid().Equal(vertical) {
		t.Fatal("blinker did not turn vertical after one step")
	}

	s.Step()
	horizontal := gridWith(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	if !s.Grid().Equal(horizontal) {
		t.Fatal("blinker did not return to horizontal after two steps")
	}
	if s.Iteration() != 2 {
		t.Fatalf("iteration = %d, want 2", s.Iteration())
	}
}

func TestBlockStillLifeStabilizes(t *testing.T) {
	s := newService(t, 4, 4, nil)
	setAlive(t, s, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2})
	before := s.Snapshot()
	s.Start()

	if res := s.Step(); res != StepStabilized {
		t.Fatalf("step = %v, want stabilized", res)
	}
	if !s.Grid().Equal(before) {
		t.Fatal("block changed")
	}
	if s.Running() {
		t.Fatal("stabilization must stop the service")
	}
	if s.Iteration() != 1 {
		t.Fatalf("stabilized step should still count, iteration = %d", s.Iteration())
	}
}

func TestIdempotentStabilization(t *testing.T) {
	s := newService(t, 6, 6, nil)
	s.Start()
	first := s.Step()
	afterFirst := s.Snapshot()
	second := s.Step()
	if first != StepStabilized || second != StepStabilized {
		t.Fatalf("results = %v, %v", first, second)
	}
	if !afterFirst.Equal(s.Grid()) {
		t.Fatal("all-dead grid changed between stabilized steps")
	}
	if s.Running() {
		t.Fatal("service still running after stabilization")
	}
}

func TestToricWrapThroughService(t *testing.T) {
	s := newService(t, 3, 3, nil)
	s.SetToric(true)
	setAlive(t, s, [2]int{2, 2})
	alive, err := s.Cell(-1, -1)
	if err != nil || !alive {
		t.Fatalf("Cell(-1,-1) = %v, %v; want wrapped (2,2)", alive, err)
	}

	s.SetToric(false)
	if _, err := s.Cell(-1, -1); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("bounded Cell(-1,-1) err = %v", err)
	}
}

func TestToricBlinkerAcrossEdge(t *testing.T) {
	s := newService(t, 5, 5, nil)
	s.SetToric(true)
	setAlive(t, s, [2]int{0, 4}, [2]int{0, 0}, [2]int{0, 1})
	s.Step()
	want := gridWith(t, 5, 5, [2]int{4, 0}, [2]int{0, 0}, [2]int{1, 0})
	if !s.Grid().Equal(want) {
		t.Fatal("blinker straddling the edge did not wrap")
	}
}

func TestObstacleInvariance(t *testing.T) {
	s := newService(t, 5, 5, nil)
	if err := s.SetObstacle(2, 2, true); err != nil {
		t.Fatal(err)
	}
	setAlive(t, s, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 3})

	before, _ := s.Cell(2, 2)
	s.Step()
	after, _ := s.Cell(2, 2)
	if before != after {
		t.Fatalf("obstacle alive flag changed %v -> %v", before, after)
	}
	if obs, _ := s.Obstacle(2, 2); !obs {
		t.Fatal("obstacle mask lost across step")
	}
}

func TestAliveObstacleSurvivesIsolation(t *testing.T) {
	s := newService(t, 3, 3, nil)
	_ = s.SetObstacle(1, 1, true)
	setAlive(t, s, [2]int{1, 1})
	s.Step()
	if alive, _ := s.Cell(1, 1); !alive {
		t.Fatal("isolated alive obstacle died")
	}
}

func TestIterationTargetStops(t *testing.T) {
	s := newService(t, 20, 20, nil)
	if err := s.LoadPresetByName("glider"); err != nil {
		t.Fatal(err)
	}
	s.SetIterationTarget(2)
	s.Start()

	if res := s.Step(); res != StepAdvanced || !s.Running() {
		t.Fatalf("step 1 = %v running=%v", res, s.Running())
	}
	if res := s.Step(); res != StepAdvanced {
		t.Fatalf("step 2 = %v", res)
	}
	if s.Running() {
		t.Fatal("reaching the target should stop the service")
	}
	frozen := s.Snapshot()
	s.Start()
	if res := s.Step(); res != StepTargetReached {
		t.Fatalf("step 3 = %v, want target reached", res)
	}
	if s.Running() || s.Iteration() != 2 || !frozen.Equal(s.Grid()) {
		t.Fatal("step past the target must be a stopping no-op")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seq := newService(t, 10, 10, nil)
	par := newService(t, 10, 10, nil)
	seq.SetWorkers(1)
	par.SetWorkers(7)
	for _, s := range []*Service{seq, par} {
		if err := s.LoadPresetByName("glider-gun"); err != nil {
			t.Fatal(err)
		}
		s.SetToric(true)
	}
	for i := 0; i < 80; i++ {
		seq.Step()
		par.Step()
		if !seq.Grid().Equal(par.Grid()) {
			t.Fatalf("parallel step diverged at generation %d", i+1)
		}
	}
	if seq.Grid().AliveCount() == 0 {
		t.Fatal("glider gun died out")
	}
}

func TestMoreWorkersThanRows(t *testing.T) {
	s := newService(t, 3, 3, nil)
	s.SetWorkers(16)
	setAlive(t, s, [2]int{1, 0}, [2]int{1, 1}, [2]int{1, 2})
	s.Step()
	want := gridWith(t, 3, 3, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1})
	if !s.Grid().Equal(want) {
		t.Fatal("clamped worker count produced wrong generation")
	}
}

func TestPersistenceWindow(t *testing.T) {
	seed := gridWith(t, 20, 20, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2})
	store := &memStore{grids: map[string]*core.Grid{"Input/seed.txt": seed}}
	s := newService(t, 20, 20, store)
	s.SetSaveIterations(2)

	if err := s.LoadFile("Input/seed.txt"); err != nil {
		t.Fatal(err)
	}
	if s.OutputBase() != "seed" {
		t.Fatalf("output base = %q", s.OutputBase())
	}
	for i := 0; i < 4; i++ {
		s.Step()
	}
	if len(store.writes) != 2 {
		t.Fatalf("wrote %d iterations, want 2", len(store.writes))
	}
	for i, w := range store.writes {
		if w.base != "seed" || w.iteration != i+1 {
			t.Fatalf("write %d = %s/%d", i, w.base, w.iteration)
		}
	}
}

func TestPersistenceFailureIsLoggedNotFatal(t *testing.T) {
	seed := gridWith(t, 5, 5, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	store := &memStore{grids: map[string]*core.Grid{"b.txt": seed}, writeErr: gridio.ErrFileWrite}
	s := newService(t, 5, 5, store)
	var logs bytes.Buffer
	s.SetLogger(log.New(&logs, "", 0))
	s.SetSaveIterations(5)
	_ = s.LoadFile("b.txt")
	s.Start()

	if res := s.Step(); res != StepAdvanced {
		t.Fatalf("step = %v", res)
	}
	if !s.Running() || s.Iteration() != 1 {
		t.Fatal("write failure must not stop the simulation")
	}
	if !strings.Contains(logs.String(), "iteration 1") {
		t.Fatalf("expected failure to be logged, got %q", logs.String())
	}
}

func TestLoadFailureKeepsGrid(t *testing.T) {
	store := &memStore{grids: map[string]*core.Grid{}}
	s := newService(t, 5, 5, store)
	setAlive(t, s, [2]int{1, 1})
	before := s.Snapshot()

	err := s.LoadFile("missing.txt")
	if !errors.Is(err, gridio.ErrFileRead) {
		t.Fatalf("err = %v, want ErrFileRead", err)
	}
	if !s.Grid().Equal(before) {
		t.Fatal("failed load modified the grid")
	}

	noStore := newService(t, 5, 5, nil)
	if err := noStore.LoadFile("x.txt"); !errors.Is(err, ErrNoStore) {
		t.Fatalf("err = %v, want ErrNoStore", err)
	}
}

func TestResetRestoresSnapshotKeepingToric(t *testing.T) {
	seed := gridWith(t, 6, 6, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	store := &memStore{grids: map[string]*core.Grid{"s.txt": seed}}
	s := newService(t, 20, 20, store)
	s.SetToric(true)
	if err := s.LoadFile("s.txt"); err != nil {
		t.Fatal(err)
	}
	if !s.Toric() {
		t.Fatal("loading a file disabled toric mode")
	}
	s.Step()
	s.Step()
	s.Step()
	s.Reset()
	if !s.Grid().Equal(seed) {
		t.Fatal("reset did not restore the loaded grid")
	}
	if !s.Toric() {
		t.Fatal("reset disabled toric mode")
	}
	if s.Iteration() != 0 {
		t.Fatalf("iteration after reset = %d", s.Iteration())
	}

	// The snapshot must not alias the live grid.
	_ = s.SetCell(0, 0, true)
	s.Reset()
	if alive, _ := s.Cell(0, 0); alive {
		t.Fatal("edits leaked into the initial snapshot")
	}
}

func TestResetWithoutSnapshot(t *testing.T) {
	s := newService(t, 8, 9, nil)
	setAlive(t, s, [2]int{3, 3})
	s.Step()
	s.Reset()
	if s.Rows() != core.DefaultRows || s.Cols() != core.DefaultCols {
		t.Fatalf("reset grid is %dx%d", s.Rows(), s.Cols())
	}
	if s.Grid().AliveCount() != 0 || s.Iteration() != 0 {
		t.Fatal("reset without snapshot should give an empty grid at iteration 0")
	}
}

func TestLoadPreset(t *testing.T) {
	s := newService(t, 5, 5, nil)
	names := s.Presets()
	if len(names) == 0 {
		t.Fatal("no presets")
	}
	for i := range names {
		if err := s.LoadPreset(i); err != nil {
			t.Fatalf("LoadPreset(%d): %v", i, err)
		}
		if s.Grid().AliveCount() == 0 || !s.HasInitial() || s.Iteration() != 0 || s.PresetIndex() != i {
			t.Fatalf("preset %q not loaded correctly", names[i])
		}
	}
	if err := s.LoadPreset(len(names)); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("err = %v", err)
	}
	if err := s.LoadPresetByName("nope"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("err = %v", err)
	}
}

func TestSetGridDimensions(t *testing.T) {
	s := newService(t, 5, 5, nil)
	_ = s.LoadPresetByName("block")
	if err := s.SetGridDimensions(0, 3); !errors.Is(err, core.ErrInvalidDimensions) {
		t.Fatalf("err = %v", err)
	}
	if err := s.SetGridSize(core.GridLarge); err != nil {
		t.Fatal(err)
	}
	if s.Rows() != 50 || s.Cols() != 50 || s.HasInitial() {
		t.Fatal("SetGridSize did not install an empty 50x50 grid")
	}
	s.Step()
	if s.Rows() != 50 {
		t.Fatal("buffer shape drifted from grid")
	}
}

func TestRuleSwitching(t *testing.T) {
	s := newService(t, 5, 5, nil)
	if err := s.SetRuleType(rules.Basic); err != nil {
		t.Fatal(err)
	}
	setAlive(t, s, [2]int{2, 2}, [2]int{2, 3})
	s.Step()
	// Basic: each live cell has one orthogonal neighbor and survives; cells
	// touching both are born.
	for _, rc := range [][2]int{{2, 2}, {2, 3}} {
		if alive, _ := s.Cell(rc[0], rc[1]); !alive {
			t.Fatalf("(%d,%d) should survive under basic", rc[0], rc[1])
		}
	}
	if got := s.CycleRule(); got != rules.Conway {
		t.Fatalf("CycleRule = %v", got)
	}
	if err := s.SetRuleType(rules.RuleType(99)); !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("err = %v", err)
	}
	if s.RuleType() != rules.Conway {
		t.Fatal("failed SetRuleType changed the rule")
	}
}

func TestRunningFlag(t *testing.T) {
	s := newService(t, 5, 5, nil)
	if s.Running() {
		t.Fatal("new service should be stopped")
	}
	if !s.Toggle() || !s.Running() {
		t.Fatal("Toggle should start")
	}
	s.Pause()
	if s.Running() {
		t.Fatal("Pause should stop")
	}
	s.SetTickMs(1)
	if s.TickMs() != MinTickMs {
		t.Fatalf("tick = %d, want clamp to %d", s.TickMs(), MinTickMs)
	}
}

func TestParametersRoundTrip(t *testing.T) {
	s := newService(t, 5, 5, nil)
	if !s.SetIntParameter("tick_ms", 120) || s.TickMs() != 120 {
		t.Fatal("tick_ms not applied")
	}
	if !s.SetIntParameter("rows", 7) || s.Rows() != 7 {
		t.Fatal("rows not applied")
	}
	if s.SetIntParameter("cols", 0) {
		t.Fatal("cols=0 should be rejected")
	}
	if !s.SetBoolParameter("toric", true) || !s.Toric() {
		t.Fatal("toric not applied")
	}
	if s.SetIntParameter("bogus", 1) {
		t.Fatal("unknown key accepted")
	}
	snap := s.Parameters()
	if p, ok := snap.Lookup("rows"); !ok || p.Value != "7" {
		t.Fatalf("rows param = %+v", p)
	}
	if p, ok := snap.Lookup("rule"); !ok || p.Value != "conway" {
		t.Fatalf("rule param = %+v", p)
	}
	if len(s.ParameterControls()) == 0 {
		t.Fatal("no HUD controls")
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"rows":             "12",
		"cols":             "-3",
		"toric":            "true",
		"rule":             "basic",
		"neighborhood":     "moore",
		"tick_ms":          "5",
		"iteration_target": "40",
		"save_iterations":  "3",
		"output_dir":       "out",
	})
	if c.Rows != 12 || c.Cols != core.DefaultCols {
		t.Fatalf("dims = %dx%d", c.Rows, c.Cols)
	}
	if !c.Toric || c.Rule != rules.Basic || c.Neighborhood != rules.NeighborhoodMoore {
		t.Fatalf("unexpected config %+v", c)
	}
	if c.TickMs != DefaultConfig().TickMs {
		t.Fatalf("tick below minimum should be ignored, got %d", c.TickMs)
	}
	if c.IterationTarget != 40 || c.SaveIterations != 3 || c.OutputDir != "out" {
		t.Fatalf("unexpected config %+v", c)
	}
	if sized := FromMap(map[string]string{"size": "small"}); sized.Rows != 10 || sized.Cols != 10 {
		t.Fatalf("size=small gave %dx%d", sized.Rows, sized.Cols)
	}
}

func TestFileStoreIntegration(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	if err := os.MkdirAll(in, 0o755); err != nil {
		t.Fatal(err)
	}
	src := "5 5\n0 0 0 0 0\n0 0 0 0 0\n0 1 1 1 0\n0 0 0 0 0\n0 0 D 0 0\n"
	if err := os.WriteFile(filepath.Join(in, "blink.txt"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	store := gridio.NewStore(in, out)
	s := newService(t, 5, 5, store)
	s.SetSaveIterations(1)

	files, err := s.ListInputFiles()
	if err != nil || len(files) != 1 {
		t.Fatalf("ListInputFiles = %v, %v", files, err)
	}
	if err := s.LoadFile(files[0]); err != nil {
		t.Fatal(err)
	}
	s.Step()
	s.Step()

	got, err := gridio.ReadFile(filepath.Join(out, "blink_out-1.txt"))
	if err != nil {
		t.Fatalf("iteration 1 not persisted: %v", err)
	}
	want := gridWith(t, 5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
	_ = want.SetObstacle(4, 2, true)
	if !got.Equal(want) {
		t.Fatal("persisted iteration differs from expected generation")
	}
	if _, err := os.Stat(filepath.Join(out, "blink_out-2.txt")); !os.IsNotExist(err) {
		t.Fatal("iteration outside the save window was persisted")
	}
}
