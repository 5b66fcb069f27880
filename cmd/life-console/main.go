package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"mad-life/internal/app"
	"mad-life/internal/console"
	"mad-life/internal/sound"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	// The terminal belongs to tcell; logs go to -log or nowhere.
	logger, closer, err := app.OpenLog(cfg.LogPath, "life-console ")
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closer.Close()

	svc, _, err := app.NewService(cfg, logger)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	player, err := sound.Open(cfg.Sound, cfg.Volume)
	if err != nil {
		logger.Printf("sound disabled: %v", err)
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctl := app.NewController(svc, player, logger, cfg.Seed, cfg.Density)
	if err := console.New(screen, ctl).Run(ctx); err != nil && ctx.Err() == nil {
		logger.Printf("console: %v", err)
	}
}
