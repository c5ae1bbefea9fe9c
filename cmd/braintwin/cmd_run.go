package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nvandessel/braintwin/internal/logging"
	"github.com/nvandessel/braintwin/internal/simulation"
	"github.com/nvandessel/braintwin/internal/visualization"
	"github.com/spf13/cobra"
)

// runOutput is the JSON shape printed by `run --format json`.
type runOutput struct {
	Input       simulation.Input      `json:"input"`
	Series      simulation.TimeSeries `json:"series"`
	Summary     []simulation.Stats    `json:"summary"`
	Explanation string                `json:"explanation"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one simulation and print the result",
		Long: `Simulate cortisol, dopamine and serotonin over ten seconds for the given
stress, sleep quality and activity levels.

Unset flags fall back to the simulation defaults in ~/.braintwin/config.yaml.

Examples:
  braintwin run --stress 80 --sleep 3 --activity 2
  braintwin run --format svg > chart.svg
  braintwin run --seed 7 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg, cmd.ErrOrStderr())

			in := cfg.Simulation.Input()
			if cmd.Flags().Changed("stress") {
				in.Stress, _ = cmd.Flags().GetInt("stress")
			}
			if cmd.Flags().Changed("sleep") {
				in.SleepQuality, _ = cmd.Flags().GetInt("sleep")
			}
			if cmd.Flags().Changed("activity") {
				in.ActivityLevel, _ = cmd.Flags().GetInt("activity")
			}
			if cmd.Flags().Changed("seed") {
				cfg.Simulation.Seed, _ = cmd.Flags().GetUint64("seed")
			}
			if cmd.Flags().Changed("noise-scale") {
				cfg.Simulation.NoiseScale, _ = cmd.Flags().GetFloat64("noise-scale")
				if cfg.Simulation.NoiseScale < 0 {
					return fmt.Errorf("noise-scale must be non-negative, got %g", cfg.Simulation.NoiseScale)
				}
			}

			format, _ := cmd.Flags().GetString("format")
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				format = string(visualization.FormatJSON)
			}
			width, _ := cmd.Flags().GetInt("width")

			start := time.Now()
			engine := simulation.NewEngine(cfg.Simulation.EngineOptions()...)
			res, err := engine.Simulate(in)
			if err != nil {
				return err
			}
			logger.Debug("simulation run",
				"stress", in.Stress, "sleep", in.SleepQuality, "activity", in.ActivityLevel,
				"seed", cfg.Simulation.Seed, "duration", time.Since(start))
			logging.Trace(logger, "simulation series",
				"cortisol", res.Series.Cortisol, "dopamine", res.Series.Dopamine, "serotonin", res.Series.Serotonin)

			out := cmd.OutOrStdout()
			switch visualization.Format(format) {
			case visualization.FormatText:
				fmt.Fprint(out, visualization.RenderText(res, width))

			case visualization.FormatMarkdown:
				fmt.Fprintln(out, res.Explanation)

			case visualization.FormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(runOutput{
					Input:       res.Input,
					Series:      res.Series,
					Summary:     res.Summary(),
					Explanation: res.Explanation,
				}); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}

			case visualization.FormatSVG:
				svg, err := visualization.RenderSVG(visualization.BuildFigure(res))
				if err != nil {
					return fmt.Errorf("render SVG: %w", err)
				}
				out.Write(svg)

			default:
				return fmt.Errorf("unsupported format %q (use 'text', 'markdown', 'json', or 'svg')", format)
			}

			return nil
		},
	}

	cmd.Flags().Int("stress", simulation.DefaultInput().Stress, "Perceived stress (0-100)")
	cmd.Flags().Int("sleep", simulation.DefaultInput().SleepQuality, "Sleep quality (0-10)")
	cmd.Flags().Int("activity", simulation.DefaultInput().ActivityLevel, "Lifestyle activity (0-10)")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible noise (0 = unseeded)")
	cmd.Flags().Float64("noise-scale", simulation.DefaultNoiseScale, "Standard deviation of the per-sample noise")
	cmd.Flags().String("format", "text", "Output format: text, markdown, json, or svg")
	cmd.Flags().Int("width", 72, "Chart width in columns (text format only)")

	return cmd
}
