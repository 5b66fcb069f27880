//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"mad-life/internal/app"
	"mad-life/internal/sound"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, closer, err := app.OpenLog(cfg.LogPath, "life ")
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer closer.Close()
	if cfg.LogPath == "" {
		logger = log.Default()
	}

	svc, _, err := app.NewService(cfg, logger)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	player, err := sound.Open(cfg.Sound, cfg.Volume)
	if err != nil {
		logger.Printf("sound disabled: %v", err)
	}
	defer player.Close()

	ctl := app.NewController(svc, player, logger, cfg.Seed, cfg.Density)
	game := app.New(ctl, cfg.Scale)

	ebiten.SetWindowTitle("mad-life")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
