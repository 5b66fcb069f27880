package app

import (
	"io"
	"log"
	"os"

	"mad-life/internal/gridio"
	"mad-life/internal/sim"
)

// NewService builds the file store and service described by cfg and loads
// the startup pattern. -input wins over -preset, which wins over -random.
func NewService(cfg *Config, logger *log.Logger) (*sim.Service, *gridio.Store, error) {
	sc := cfg.SimConfig()
	store := gridio.NewStore(sc.InputDir, sc.OutputDir)
	svc, err := sim.New(sc, store)
	if err != nil {
		return nil, nil, err
	}
	svc.SetLogger(logger)

	switch {
	case cfg.Input != "":
		err = svc.LoadFile(cfg.Input)
	case cfg.Preset != "":
		err = svc.LoadPresetByName(cfg.Preset)
	case cfg.Random:
		svc.Randomize(cfg.Seed, cfg.Density)
	}
	if err != nil {
		return nil, nil, err
	}
	return svc, store, nil
}

// OpenLog returns a logger writing to path, or discarding output when path
// is empty. The returned closer is never nil.
func OpenLog(path, prefix string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard, prefix, log.LstdFlags), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nopCloser{}, err
	}
	return log.New(f, prefix, log.LstdFlags), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
