package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballflaps/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the game constants as YAML after applying --config or the
configuration search path (~/.ballflaps/configs, ./configs, built-in).

Save the output as a starting point for a custom config:
  ballflaps config > ~/.ballflaps/configs/ballflaps.yaml`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	},
}
