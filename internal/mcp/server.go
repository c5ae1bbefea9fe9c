// Package mcp provides an MCP (Model Context Protocol) server for braintwin.
package mcp

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/braintwin/internal/logging"
	"github.com/nvandessel/braintwin/internal/ratelimit"
	"github.com/nvandessel/braintwin/internal/simulation"
)

// Server wraps the MCP SDK server and exposes the simulation as tools.
type Server struct {
	server       *sdk.Server
	engine       *simulation.Engine
	defaults     simulation.Input
	toolLimiters ratelimit.ToolLimiters
	logger       *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "braintwin")
	Version string // Server version

	// Defaults fill in any input a tool call leaves out.
	Defaults simulation.Input

	Logger *slog.Logger
}

// NewServer creates a new MCP server with the twin tools registered.
// A nil engine uses the package-level simulation stream.
func NewServer(cfg *Config, engine *simulation.Engine) *Server {
	if engine == nil {
		engine = simulation.NewEngine()
	}
	defaults := cfg.Defaults
	if defaults.Validate() != nil {
		defaults = simulation.DefaultInput()
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		server:       mcpServer,
		engine:       engine,
		defaults:     defaults,
		toolLimiters: ratelimit.NewToolLimiters(),
		logger:       logging.OrDiscard(cfg.Logger),
	}

	s.registerTools()
	s.registerResources()

	return s
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	notifySignals(sigChan)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.server.Run(ctx, &sdk.StdioTransport{})
}
