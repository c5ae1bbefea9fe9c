package main

import (
	"github.com/nvandessel/braintwin/internal/simulation"
	"github.com/nvandessel/braintwin/internal/tui"
	"github.com/spf13/cobra"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal version of the simulation page",
		Long: `Adjust stress, sleep quality and activity with the arrow keys and press
enter to run the simulation. The chart, per-hormone statistics and the
explanation appear below the sliders.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return tui.Run(
				simulation.NewEngine(cfg.Simulation.EngineOptions()...),
				cfg.Simulation.Input(),
			)
		},
	}
}
