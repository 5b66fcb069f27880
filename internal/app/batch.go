package app

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"mad-life/internal/sim"
)

// DefaultBatchIterations caps a batch run when neither an iteration target
// nor a save window is configured.
const DefaultBatchIterations = 100

// BatchResult summarizes one evolved input file.
type BatchResult struct {
	File       string
	Iterations int
	Alive      int
	Outcome    sim.StepResult
	Elapsed    time.Duration
	Err        error
}

// RunBatch evolves every file with its own service, at most parallel files
// at a time. Each run stops on stabilization or at the iteration target.
// Per-file failures are reported in the results; the returned error is only
// set when ctx is cancelled.
func RunBatch(ctx context.Context, cfg sim.Config, store sim.Store, files []string, parallel int, logger *log.Logger) ([]BatchResult, error) {
	if cfg.IterationTarget <= 0 {
		cfg.IterationTarget = cfg.SaveIterations
	}
	if cfg.IterationTarget <= 0 {
		cfg.IterationTarget = DefaultBatchIterations
	}
	// Files already run concurrently; keep each step single-threaded unless
	// asked otherwise.
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	results := make([]BatchResult, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		eg.SetLimit(parallel)
	}
	for i, file := range files {
		eg.Go(func() error {
			results[i] = runOne(ctx, cfg, store, file, logger)
			return ctx.Err()
		})
	}
	err := eg.Wait()
	return results, err
}

func runOne(ctx context.Context, cfg sim.Config, store sim.Store, file string, logger *log.Logger) BatchResult {
	start := time.Now()
	res := BatchResult{File: file}
	svc, err := sim.New(cfg, store)
	if err != nil {
		res.Err = err
		return res
	}
	svc.SetLogger(logger)
	if err := svc.LoadFile(file); err != nil {
		res.Err = err
		return res
	}
	for ctx.Err() == nil {
		res.Outcome = svc.Step()
		if res.Outcome != sim.StepAdvanced {
			break
		}
		if svc.Iteration() >= svc.IterationTarget() {
			res.Outcome = sim.StepTargetReached
			break
		}
	}
	res.Iterations = svc.Iteration()
	res.Alive = svc.Grid().AliveCount()
	res.Elapsed = time.Since(start)
	return res
}
