package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dos-defender/internal/core"
	"github.com/vovakirdan/dos-defender/internal/games/defender"
	"github.com/vovakirdan/dos-defender/internal/platform/feed"
	"github.com/vovakirdan/dos-defender/internal/storage"
)

var (
	flagSimFrames  int
	flagSimSeed    int64
	flagSimStepMs  float64
	flagSimWidth   float64
	flagSimHeight  float64
	flagSimRestart bool
	flagSimFeed    string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation driven by the autopilot",
	Long: `Run the game without a terminal. A scripted pilot plays on a manual
clock, so a given seed always produces the same run and final hash.

With --feed the run is paced in real time and streamed to spectators.

Examples:
  defender sim
  defender sim --frames 20000 --seed 7 --restart
  defender sim --feed :8765`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 3600, "Number of frames to simulate")
	simCmd.Flags().Int64Var(&flagSimSeed, "seed", 1, "RNG seed")
	simCmd.Flags().Float64Var(&flagSimStepMs, "step-ms", 1000.0/60.0, "Milliseconds per frame")
	simCmd.Flags().Float64Var(&flagSimWidth, "width", 800, "Playfield width")
	simCmd.Flags().Float64Var(&flagSimHeight, "height", 600, "Playfield height")
	simCmd.Flags().BoolVar(&flagSimRestart, "restart", false, "Start a new run after game over")
	simCmd.Flags().StringVar(&flagSimFeed, "feed", "", "Serve a spectator snapshot feed on this address")
}

// simResult summarizes a headless run.
type simResult struct {
	Frames    int
	Runs      int
	BestScore int
	Final     defender.Snapshot
	Events    map[defender.EventType]int
}

func runSim(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger("defender-sim", os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	clock := core.NewManualClock(time.Unix(0, 0))
	sim := defender.New(cfg, defender.NewField(flagSimWidth, flagSimHeight),
		defender.WithClock(clock),
		defender.WithStore(storage.NewMemoryStore()),
		defender.WithSeed(flagSimSeed),
		defender.WithLogger(logger),
	)

	var hub *feed.Hub
	if flagSimFeed != "" {
		hub = feed.NewHub(logger)
		go func() {
			if err := hub.ListenAndServe(ctx, flagSimFeed); err != nil {
				logger.Error("feed stopped", "error", err)
			}
		}()
	}

	res := simResult{Events: make(map[defender.EventType]int)}
	sim.Subscribe(func(e defender.Event) {
		res.Events[e.Type]++
		if e.Type == defender.EventGameOver {
			res.Runs++
			res.BestScore = core.Max(res.BestScore, e.Score)
		}
	})

	pilot := &defender.Autopilot{RestartOnGameOver: flagSimRestart}
	step := time.Duration(flagSimStepMs * float64(time.Millisecond))
	snap := sim.Snapshot()

	for res.Frames < flagSimFrames {
		if ctx.Err() != nil {
			break
		}
		for _, cmd := range pilot.Decide(snap) {
			sim.Command(cmd)
		}
		clock.AdvanceMs(flagSimStepMs)
		snap, err = sim.Tick(flagSimStepMs)
		if err != nil {
			return fmt.Errorf("frame %d: %w", res.Frames, err)
		}
		res.Frames++

		if hub != nil {
			hub.Publish(snap)
			time.Sleep(step)
		}
		if snap.State == defender.StateGameOver && !flagSimRestart {
			break
		}
	}
	res.Final = snap
	res.BestScore = core.Max(res.BestScore, snap.Score)

	logger.Info("simulation finished", "frames", res.Frames, "runs", res.Runs, "best", res.BestScore)
	printSimResult(res)
	return nil
}

func printSimResult(res simResult) {
	fmt.Printf("Frames      %d\n", res.Frames)
	fmt.Printf("State       %s\n", res.Final.State)
	fmt.Printf("Level       %d\n", res.Final.Level)
	fmt.Printf("Score       %d\n", res.Final.Score)
	fmt.Printf("Lives       %d\n", res.Final.Lives)
	fmt.Printf("Runs ended  %d\n", res.Runs)
	fmt.Printf("Best score  %d\n", res.BestScore)
	fmt.Printf("Hash        %016x\n", res.Final.Hash())
	fmt.Println()
	fmt.Println("Events:")
	for t := defender.EventShotFired; t <= defender.EventStateChanged; t++ {
		if n := res.Events[t]; n > 0 {
			fmt.Printf("  %-18s %d\n", t, n)
		}
	}
}
