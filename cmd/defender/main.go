// defender is DOS Defender, a terminal arcade shooter.
//
// Usage:
//
//	defender play              - Play in the current terminal
//	defender serve             - Start the SSH server for remote play
//	defender scores            - Show high scores
//	defender sim               - Run a headless autopilot simulation
//
// Global flags:
//
//	--config <path>     - Custom game config YAML
//	--preset <name>     - Difficulty preset: easy, normal, hard, fixed
//	--db <path>         - Scores database (default: ~/.defender/scores.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dos-defender/internal/config"
)

var (
	flagConfig   string
	flagPreset   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "defender",
	Short: "DOS Defender - defend the sector from descending invaders",
	Long: `DOS Defender is a top-down arcade shooter for the terminal.

Move your ship along the bottom of the screen, shoot the descending
enemies and collect rapid-fire and shield power-ups. Clearing a wave
advances to a faster, larger one.

Available commands:
  play     - Play in the current terminal
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Run a headless simulation driven by the autopilot

Examples:
  defender play
  defender play --preset hard --seed 42
  defender serve --ssh :2222
  defender sim --frames 10000 --seed 7`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.defender/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// loadConfig loads the game config and applies the difficulty preset.
func loadConfig() (config.DefenderConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.DefenderConfig{}, err
	}
	if flagPreset != "" {
		preset := config.ParsePreset(flagPreset)
		if preset == "" {
			return config.DefenderConfig{}, fmt.Errorf("unknown preset %q", flagPreset)
		}
		config.ApplyDefenderPreset(&cfg, preset)
	}
	return cfg, nil
}

// newLogger builds the command logger. Without --log-file it writes to
// fallback, which is io.Discard for commands that own the terminal.
// The returned closer releases the log file.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
