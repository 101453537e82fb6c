// ballflaps is a terminal arcade game: keep the ball airborne and thread it
// through the gaps of scrolling columns.
//
// Usage:
//
//	ballflaps play           - Play in this terminal
//	ballflaps serve          - Start SSH server for remote play
//	ballflaps scores         - Show high scores
//	ballflaps simulate       - Run a headless autopilot session
//	ballflaps config         - Print the effective game configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.ballflaps/scores.db)
//	--config <path>     - Load game constants from a YAML file
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballflaps/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
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
	Use:   "ballflaps",
	Short: "Ball Flaps - a one-button arcade game for your terminal",
	Long: `Ball Flaps is a terminal arcade game. Flap to keep the ball in the air
and fly it through the gaps between the columns. Past a score threshold a
shooter joins in and fires bullets across the field.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run a headless session flown by the autopilot
  config    - Print the effective configuration as YAML

Examples:
  ballflaps play
  ballflaps play --color pink --mute
  ballflaps serve --ssh :2222
  ballflaps simulate --frames 5000 --seed 42`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ballflaps/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Logs go to --log-file when set and
// to fallback otherwise. The returned closer releases the file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, func() { f.Close() }
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "ballflaps",
		ReportTimestamp: true,
	})
	return logger, closer, nil
}

// loadConfig resolves the game constants from --config or the search path.
func loadConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, fmt.Errorf("cannot load config: %w", err)
	}
	return cfg, nil
}
