package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nvandessel/braintwin/internal/config"
	"github.com/nvandessel/braintwin/internal/logging"
	"github.com/spf13/cobra"
)

// Overridden at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "braintwin",
		Short: "Digital twin brain simulation",
		Long: `braintwin simulates how perceived stress, sleep quality and lifestyle
activity shape cortisol, dopamine and serotonin levels over a short window.

Run a single simulation in the terminal, serve the interactive web page, or
expose the model to AI agents over MCP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newServeCmd(),
		newTUICmd(),
		newMCPServerCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

// loadConfig reads and validates the user configuration.
func loadConfig() (*config.TwinConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the operational logger. Logs always go to w, never to
// the command's stdout, which carries results or the MCP stream.
func newLogger(cfg *config.TwinConfig, w io.Writer) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, w)
}
