package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/braintwin/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show braintwin configuration",
		Long: `View the effective braintwin configuration.

Configuration is read from ~/.braintwin/config.yaml and then overridden by
BRAINTWIN_* environment variables.

Examples:
  braintwin config list                  # Show all settings
  braintwin config list --yaml           # Print a config.yaml you can edit
  braintwin config get server.addr       # Get a specific setting`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigGetCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			yamlOut, _ := cmd.Flags().GetBool("yaml")
			out := cmd.OutOrStdout()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			switch {
			case jsonOut:
				return json.NewEncoder(out).Encode(cfg)
			case yamlOut:
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprintln(out, "Configuration (~/.braintwin/config.yaml):")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Logging:")
			fmt.Fprintf(out, "  logging.level:              %s\n", valueOrDefault(cfg.Logging.Level, "info"))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Server Settings:")
			fmt.Fprintf(out, "  server.addr:                %s\n", cfg.Server.Addr)
			fmt.Fprintf(out, "  server.open_browser:        %v\n", cfg.Server.OpenBrowser)
			fmt.Fprintf(out, "  server.rate_per_second:     %g\n", cfg.Server.RatePerSecond)
			fmt.Fprintf(out, "  server.burst:               %d\n", cfg.Server.Burst)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Simulation Settings:")
			fmt.Fprintf(out, "  simulation.stress:          %d\n", cfg.Simulation.Stress)
			fmt.Fprintf(out, "  simulation.sleep_quality:   %d\n", cfg.Simulation.SleepQuality)
			fmt.Fprintf(out, "  simulation.activity_level:  %d\n", cfg.Simulation.ActivityLevel)
			fmt.Fprintf(out, "  simulation.noise_scale:     %g\n", cfg.Simulation.NoiseScale)
			if cfg.Simulation.Seed != 0 {
				fmt.Fprintf(out, "  simulation.seed:            %d\n", cfg.Simulation.Seed)
			} else {
				fmt.Fprintf(out, "  simulation.seed:            (unseeded)\n")
			}

			return nil
		},
	}

	cmd.Flags().Bool("yaml", false, "Output as YAML")

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			key := args[0]
			out := cmd.OutOrStdout()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			value, found := getConfigValue(cfg, key)
			if !found {
				if jsonOut {
					json.NewEncoder(out).Encode(map[string]interface{}{
						"error": "key not found",
						"key":   key,
					})
				} else {
					fmt.Fprintf(out, "Unknown configuration key: %s\n", key)
				}
				return nil
			}

			if jsonOut {
				json.NewEncoder(out).Encode(map[string]interface{}{
					"key":   key,
					"value": value,
				})
			} else {
				fmt.Fprintf(out, "%s = %v\n", key, value)
			}

			return nil
		},
	}
}

// getConfigValue retrieves a configuration value by dot-notation key.
func getConfigValue(cfg *config.TwinConfig, key string) (interface{}, bool) {
	switch key {
	case "logging.level":
		return cfg.Logging.Level, true
	case "server.addr":
		return cfg.Server.Addr, true
	case "server.open_browser":
		return cfg.Server.OpenBrowser, true
	case "server.rate_per_second":
		return cfg.Server.RatePerSecond, true
	case "server.burst":
		return cfg.Server.Burst, true
	case "simulation.stress":
		return cfg.Simulation.Stress, true
	case "simulation.sleep_quality":
		return cfg.Simulation.SleepQuality, true
	case "simulation.activity_level":
		return cfg.Simulation.ActivityLevel, true
	case "simulation.noise_scale":
		return cfg.Simulation.NoiseScale, true
	case "simulation.seed":
		return cfg.Simulation.Seed, true
	default:
		return nil, false
	}
}

// valueOrDefault returns the value if non-empty, otherwise the default.
func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
