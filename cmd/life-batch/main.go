package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	"mad-life/internal/app"
	"mad-life/internal/gridio"
	"mad-life/internal/sim"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	parallel := flag.Int("parallel", runtime.NumCPU(), "input files evolved concurrently")
	flag.Parse()

	logger, closer, err := app.OpenLog(cfg.LogPath, "life-batch ")
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closer.Close()
	if cfg.LogPath == "" {
		logger = log.Default()
	}

	sc := cfg.SimConfig()
	store := gridio.NewStore(sc.InputDir, sc.OutputDir)

	files := flag.Args()
	if cfg.Input != "" {
		files = append([]string{cfg.Input}, files...)
	}
	if len(files) == 0 {
		files, err = store.ListInputFiles()
		if err != nil {
			log.Fatalf("list inputs: %v", err)
		}
	}
	if len(files) == 0 {
		log.Fatalf("no input files in %s", sc.InputDir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Evolving %d files (%s, %d parallel, saving %d iterations to %s)\n",
		len(files), sc.Rule, *parallel, sc.SaveIterations, sc.OutputDir)

	results, err := app.RunBatch(ctx, sc, store, files, *parallel, logger)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("%-32s error: %v\n", r.File, r.Err)
			continue
		}
		fmt.Printf("%-32s %-14s iterations %-6d alive %-6d %v\n", r.File, outcome(r.Outcome), r.Iterations, r.Alive, r.Elapsed.Round(time.Microsecond))
	}
	if err != nil {
		log.Fatalf("batch interrupted: %v", err)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func outcome(r sim.StepResult) string {
	if r == sim.StepAdvanced {
		return "interrupted"
	}
	return r.String()
}
