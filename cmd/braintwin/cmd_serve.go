package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/nvandessel/braintwin/internal/simulation"
	"github.com/nvandessel/braintwin/internal/visualization"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive simulation page",
		Long: `Start a local web server with sliders for stress, sleep quality and
activity, a Run Simulation button, the neurotransmitter chart and a
plain-language explanation of the result.

The server binds to localhost on a free port unless --addr or server.addr
says otherwise. Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
			}
			noOpen, _ := cmd.Flags().GetBool("no-open")
			if !cfg.Server.OpenBrowser {
				noOpen = true
			}

			logger := newLogger(cfg, cmd.ErrOrStderr())
			srv := visualization.NewServer(
				simulation.NewEngine(cfg.Simulation.EngineOptions()...),
				visualization.ServerOptions{
					Addr:          cfg.Server.Addr,
					Defaults:      cfg.Simulation.Input(),
					RatePerSecond: cfg.Server.RatePerSecond,
					Burst:         cfg.Server.Burst,
					Logger:        logger,
				},
			)
			return runWebServer(cmd, cmd.Context(), srv, noOpen)
		},
	}

	cmd.Flags().String("addr", "localhost:0", "Listen address (host:port)")
	cmd.Flags().Bool("no-open", false, "Don't open the browser after the server starts")

	return cmd
}

// runWebServer starts srv and blocks until Ctrl-C or ctx is cancelled.
func runWebServer(cmd *cobra.Command, ctx context.Context, srv *visualization.Server, noOpen bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	srvCtx, srvCancel := context.WithCancel(ctx)
	defer srvCancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	notifySignals(sigCh)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			srvCancel()
		case <-srvCtx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(srvCtx) }()

	// Wait for server to start
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && srv.Addr() == "" {
		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case <-time.After(10 * time.Millisecond):
		}
	}

	addr := srv.Addr()
	if addr == "" {
		return fmt.Errorf("server failed to start")
	}

	url := "http://" + addr
	fmt.Fprintf(cmd.OutOrStdout(), "Brain twin running at %s\n", url)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl-C to stop.\n")

	if !noOpen {
		if err := visualization.OpenBrowser(url); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, url)
		}
	}

	// Block until server exits
	if err := <-errCh; err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
