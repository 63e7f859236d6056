package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dos-defender/internal/core"
	"github.com/vovakirdan/dos-defender/internal/platform/feed"
	"github.com/vovakirdan/dos-defender/internal/platform/sound"
	"github.com/vovakirdan/dos-defender/internal/platform/tui"
	"github.com/vovakirdan/dos-defender/internal/storage"
)

var (
	flagSeed     int64
	flagFPS      int
	flagSound    bool
	flagPlayFeed string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play DOS Defender in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/Right, A/D   - Move (hold)
  Down/S            - Stop
  Space/Up          - Fire
  P/Esc             - Pause
  Enter             - Start / next level
  R                 - Play again after game over
  M                 - Mute
  Ctrl+S            - Save screenshot
  Q/Ctrl+C          - Quit

Examples:
  defender play
  defender play --preset easy
  defender play --seed 42 --sound=false
  defender play --feed :8765   # spectators connect to ws://host:8765/ws`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().IntVar(&flagFPS, "fps", tui.DefaultTickRate, "Frames per second")
	playCmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound effects")
	playCmd.Flags().StringVar(&flagPlayFeed, "feed", "", "Serve a spectator snapshot feed on this address")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go nowhere unless --log-file is set
	logger, closeLog, err := newLogger("defender", io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}

	opts := tui.Options{
		Config:  cfg,
		Runtime: rt,
		Store:   store,
		Logger:  logger,
	}

	if flagSound {
		audio := sound.NewManager(logger)
		if err := audio.Initialize(); err != nil {
			logger.Warn("audio unavailable", "error", err)
		}
		defer audio.Close()
		opts.Sound = audio
	}

	if flagPlayFeed != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub := feed.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(ctx, flagPlayFeed); err != nil {
				logger.Error("feed stopped", "error", err)
			}
		}()
		opts.Feed = hub
	}

	return tui.Run(opts)
}
