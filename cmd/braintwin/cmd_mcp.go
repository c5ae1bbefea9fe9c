package main

import (
	"context"

	"github.com/nvandessel/braintwin/internal/mcp"
	"github.com/nvandessel/braintwin/internal/simulation"
	"github.com/spf13/cobra"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Expose the brain twin to MCP clients over stdin/stdout.

Tools:
  twin_simulate  run the model and return the series, summary and explanation
  twin_chart     render the response chart as SVG or a Plotly figure

Resources:
  twin://model   the model equations and input ranges

Example client configuration:
  {"mcpServers": {"braintwin": {"command": "braintwin", "args": ["mcp-server"]}}}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			server := mcp.NewServer(&mcp.Config{
				Name:     "braintwin",
				Version:  version,
				Defaults: cfg.Simulation.Input(),
				Logger:   newLogger(cfg, cmd.ErrOrStderr()),
			}, simulation.NewEngine(cfg.Simulation.EngineOptions()...))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return server.Run(ctx)
		},
	}
}
