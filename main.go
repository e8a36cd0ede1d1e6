package main

import (
	"errors"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hookshot/config"
	"github.com/milk9111/hookshot/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logging.Setup("info", true)
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.LogLevel, cfg.PrettyLogs())

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Release:     "hookshot",
			Environment: "desktop",
		}); err != nil {
			log.Warn().Err(err).Msg("sentry disabled")
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("hookshot")

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game exited")
		sentry.CaptureException(err)
	}
}
