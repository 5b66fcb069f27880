package app

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"mad-life/internal/rules"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	sc := parse(t).SimConfig()
	if sc.Rows != 20 || sc.Cols != 20 || sc.Toric {
		t.Fatalf("default grid %dx%d toric=%v", sc.Rows, sc.Cols, sc.Toric)
	}
	if sc.Rule != rules.Conway || sc.TickMs != 200 {
		t.Fatalf("default rule %v tick %d", sc.Rule, sc.TickMs)
	}
	if sc.InputDir != "Input" || sc.OutputDir != "Output" {
		t.Fatalf("default dirs %q %q", sc.InputDir, sc.OutputDir)
	}
}

func TestFlagsFeedSimConfig(t *testing.T) {
	cfg := parse(t,
		"-size", "large",
		"-cols", "30",
		"-toric",
		"-rule", "basic",
		"-neighborhood", "moore",
		"-tick", "50",
		"-iterations", "100",
		"-save", "5",
	)
	sc := cfg.SimConfig()
	if sc.Rows != 50 || sc.Cols != 30 {
		t.Fatalf("grid %dx%d, want 50x30", sc.Rows, sc.Cols)
	}
	if !sc.Toric || sc.Rule != rules.Basic || sc.Neighborhood != rules.NeighborhoodMoore {
		t.Fatalf("unexpected %+v", sc)
	}
	if sc.TickMs != 50 || sc.IterationTarget != 100 || sc.SaveIterations != 5 {
		t.Fatalf("unexpected %+v", sc)
	}
}

func TestOverridesWin(t *testing.T) {
	cfg := parse(t, "-rule", "basic", "-set", "rule=conway", "-set", "tick_ms=30")
	sc := cfg.SimConfig()
	if sc.Rule != rules.Conway || sc.TickMs != 30 {
		t.Fatalf("overrides not applied: %+v", sc)
	}
	fs := flag.NewFlagSet("bad", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	NewConfig().Bind(fs)
	if err := fs.Parse([]string{"-set", "novalue"}); err == nil {
		t.Fatal("malformed override accepted")
	}
}

func TestNewServiceStartupSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.txt")
	if err := os.WriteFile(path, []byte("3 3\n0 1 0\n0 1 0\n0 1 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	logger, closer, err := OpenLog("", "")
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()

	cfg := parse(t, "-input", path, "-preset", "glider", "-output-dir", filepath.Join(dir, "out"))
	svc, _, err := NewService(cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if svc.Rows() != 3 || svc.OutputBase() != "seed" {
		t.Fatalf("input file should win, got %dx%d base %q", svc.Rows(), svc.Cols(), svc.OutputBase())
	}

	cfg = parse(t, "-preset", "glider")
	svc, _, err = NewService(cfg, logger)
	if err != nil || svc.PresetIndex() < 0 {
		t.Fatalf("preset not loaded: %v", err)
	}

	cfg = parse(t, "-preset", "missing")
	if _, _, err := NewService(cfg, logger); err == nil {
		t.Fatal("unknown preset should fail startup")
	}

	cfg = parse(t, "-random", "-size", "small", "-density", "1")
	svc, _, err = NewService(cfg, logger)
	if err != nil {
		t.Fatal(err)
	}
	if got := svc.Grid().AliveCount(); got != 100 {
		t.Fatalf("random fill alive = %d, want 100", got)
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.log")
	logger, closer, err := OpenLog(path, "life ")
	if err != nil {
		t.Fatal(err)
	}
	logger.Print("hello")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		t.Fatalf("log file empty: %v", err)
	}
}
