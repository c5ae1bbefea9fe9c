package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/nvandessel/braintwin/internal/simulation"
)

// auditTool records a completed tool invocation. Successful calls log at
// debug, failures at warn.
func (s *Server) auditTool(toolName string, start time.Time, err error, in simulation.Input, seeded bool) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("tool", toolName),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		slog.Int("stress", in.Stress),
		slog.Int("sleep_quality", in.SleepQuality),
		slog.Int("activity_level", in.ActivityLevel),
		slog.Bool("seeded", seeded),
	}
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("status", "error"), slog.String("error", err.Error()))
	} else {
		attrs = append(attrs, slog.String("status", "success"))
	}
	s.logger.LogAttrs(context.Background(), level, "tool call", attrs...)
}
