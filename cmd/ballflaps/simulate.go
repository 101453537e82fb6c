package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballflaps/internal/core"
	"github.com/vovakirdan/ballflaps/internal/engine"
	"github.com/vovakirdan/ballflaps/internal/host"
	"github.com/vovakirdan/ballflaps/internal/platform/tui"
	"github.com/vovakirdan/ballflaps/internal/render"
	"github.com/vovakirdan/ballflaps/internal/storage"
)

var (
	flagFrames   int
	flagRealtime bool
	flagRecord   bool
	flagShow     bool
	flagOffset   float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless session flown by the autopilot",
	Long: `Run one session without a terminal UI. The autopilot flaps whenever
the ball sinks below the middle of the next gap. The session ends on a
crash or after --frames frames.

Examples:
  ballflaps simulate --seed 42
  ballflaps simulate --frames 10000 --show
  ballflaps simulate --realtime --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Maximum frames to simulate")
	simulateCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace frames at --fps instead of running flat out")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the result to the scores database")
	simulateCmd.Flags().BoolVar(&flagShow, "show", false, "Print the final frame")
	simulateCmd.Flags().Float64Var(&flagOffset, "offset", host.NewAutopilot().Offset, "Autopilot aim below the gap center")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	eng, err := engine.New(cfg, engine.WithSeed(flagSeed))
	if err != nil {
		return err
	}

	var best host.BestScores = host.NewMemoryBest(0)
	var store *storage.Store
	if flagRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("error opening scores database: %w", err)
		}
		defer store.Close()
		best = store.ForGame(storage.GameID)
	}

	var over *engine.GameOverEvent
	ctrl := host.NewController(eng, best,
		host.WithLogger(logger),
		host.WithScoreCallback(func(score int) {
			logger.Debug("scored", "score", score)
		}),
		host.WithGameOverCallback(func(ev engine.GameOverEvent) {
			over = &ev
		}),
	)
	if err := ctrl.Start(cfg.Playfield.Width, cfg.Playfield.Height); err != nil {
		return err
	}

	pilot := host.Autopilot{Offset: flagOffset}
	frames := 0
	frame := func() bool {
		if pilot.ShouldFlap(ctrl.Snapshot()) {
			ctrl.Flap()
		}
		ctrl.Frame()
		frames++
		return over == nil && frames < flagFrames
	}

	rate := 0
	if flagRealtime {
		rate = flagFPS
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	loop := host.NewLoop(rate, frame)
	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	snap := ctrl.Snapshot()
	if flagShow {
		screen := core.NewScreen(60, 30)
		r := render.New(core.DefaultBallColor)
		r.SetBest(ctrl.Best())
		r.Draw(screen, snap)
		fmt.Println(tui.RenderScreen(screen))
		fmt.Println()
	}

	cause := "none"
	if over != nil {
		cause = over.Cause.String()
	}
	fmt.Printf("Score:  %d\n", snap.Score)
	fmt.Printf("Cause:  %s\n", cause)
	fmt.Printf("Frames: %d\n", snap.Frame)

	if flagRecord && over != nil {
		if _, err := store.SaveScore(storage.ScoreEntry{
			Player: "autopilot",
			Score:  over.Score,
			Cause:  cause,
			Frames: over.Frame,
		}); err != nil {
			return fmt.Errorf("error saving score: %w", err)
		}
	}
	return nil
}
