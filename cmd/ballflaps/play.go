package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ballflaps/internal/audio"
	"github.com/vovakirdan/ballflaps/internal/core"
	"github.com/vovakirdan/ballflaps/internal/engine"
	"github.com/vovakirdan/ballflaps/internal/platform/tui"
	"github.com/vovakirdan/ballflaps/internal/storage"
)

var (
	flagMute  bool
	flagColor string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start Ball Flaps in the current terminal.

Controls:
  Enter          - Start from the title screen
  Left/Right     - Pick the ball color
  Space/W/Up     - Flap
  R              - Restart (after game over)
  Tab            - High scores
  M              - Toggle sound
  Ctrl+S         - Save a screenshot to ~/.ballflaps/screenshots
  Q/Ctrl+C       - Quit

Examples:
  ballflaps play
  ballflaps play --color green
  ballflaps play --mute --seed 7
  ballflaps play --config ./hard.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagColor, "color", string(core.DefaultBallColor), "Initial ball color: red, green, blue, yellow, pink")
}

func runPlay(_ *cobra.Command, _ []string) error {
	ball, err := core.ParseBallColor(flagColor)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	var sounds engine.Sounds
	if !flagMute {
		sm := audio.NewSoundManager()
		if audioErr := sm.Initialize(); audioErr != nil {
			logger.Warn("sound disabled", "error", audioErr)
		} else {
			defer sm.Cleanup()
			sounds = sm
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - best score lives for this run only
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Game:    cfg,
		Runtime: rt,
		Ball:    ball,
		Sounds:  sounds,
		Store:   store,
		Player:  playerName(),
		Logger:  logger,
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
