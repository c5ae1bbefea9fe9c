package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/braintwin/internal/ratelimit"
	"github.com/nvandessel/braintwin/internal/simulation"
	"github.com/nvandessel/braintwin/internal/visualization"
)

// ModelURI identifies the resource describing the response model.
const ModelURI = "twin://model"

// registerTools registers all twin MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolSimulate,
		Description: "Simulate cortisol, dopamine and serotonin levels over ten seconds for a stress, sleep and activity profile",
	}, s.handleTwinSimulate)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolChart,
		Description: "Render the neurotransmitter response chart as SVG or as a Plotly figure (JSON)",
	}, s.handleTwinChart)
}

// registerResources registers MCP resources for auto-loading into context.
func (s *Server) registerResources() {
	s.server.AddResource(&sdk.Resource{
		URI:         ModelURI,
		Name:        "twin-model",
		Description: "The equations behind the simulated hormone curves and the valid input ranges.",
		MIMEType:    "text/markdown",
	}, s.handleModelResource)
}

// resolveInput applies server defaults to the fields a caller left out.
func (s *Server) resolveInput(stress, sleep, activity *int) simulation.Input {
	in := s.defaults
	if stress != nil {
		in.Stress = *stress
	}
	if sleep != nil {
		in.SleepQuality = *sleep
	}
	if activity != nil {
		in.ActivityLevel = *activity
	}
	return in
}

// run executes one simulation, on a private seeded engine when seed is set.
func (s *Server) run(in simulation.Input, seed *uint64) (*simulation.Result, error) {
	engine := s.engine
	if seed != nil {
		engine = simulation.NewEngine(
			simulation.WithSeed(*seed),
			simulation.WithNoiseScale(s.engine.NoiseScale()),
		)
	}
	return engine.Simulate(in)
}

// handleTwinSimulate implements the twin_simulate tool.
func (s *Server) handleTwinSimulate(ctx context.Context, req *sdk.CallToolRequest, args TwinSimulateInput) (_ *sdk.CallToolResult, _ TwinSimulateOutput, retErr error) {
	start := time.Now()
	in := s.resolveInput(args.Stress, args.SleepQuality, args.ActivityLevel)
	defer func() {
		s.auditTool(ratelimit.ToolSimulate, start, retErr, in, args.Seed != nil)
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolSimulate); err != nil {
		return nil, TwinSimulateOutput{}, err
	}

	res, err := s.run(in, args.Seed)
	if err != nil {
		return nil, TwinSimulateOutput{}, err
	}

	return nil, TwinSimulateOutput{
		Input:       res.Input,
		Series:      res.Series,
		Summary:     res.Summary(),
		Explanation: res.Explanation,
	}, nil
}

// handleTwinChart implements the twin_chart tool.
func (s *Server) handleTwinChart(ctx context.Context, req *sdk.CallToolRequest, args TwinChartInput) (_ *sdk.CallToolResult, _ TwinChartOutput, retErr error) {
	start := time.Now()
	in := s.resolveInput(args.Stress, args.SleepQuality, args.ActivityLevel)
	defer func() {
		s.auditTool(ratelimit.ToolChart, start, retErr, in, args.Seed != nil)
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolChart); err != nil {
		return nil, TwinChartOutput{}, err
	}

	format := visualization.Format(args.Format)
	if format == "" {
		format = visualization.FormatSVG
	}
	if format != visualization.FormatSVG && format != visualization.FormatJSON {
		return nil, TwinChartOutput{}, fmt.Errorf("unsupported format %q (use 'svg' or 'json')", args.Format)
	}

	res, err := s.run(in, args.Seed)
	if err != nil {
		return nil, TwinChartOutput{}, err
	}

	fig := visualization.BuildFigure(res)
	if format == visualization.FormatJSON {
		return nil, TwinChartOutput{
			Format: string(format),
			Input:  res.Input,
			Figure: &fig,
		}, nil
	}

	svg, err := visualization.RenderSVG(fig)
	if err != nil {
		return nil, TwinChartOutput{}, fmt.Errorf("render SVG: %w", err)
	}
	return nil, TwinChartOutput{
		Format: string(format),
		Input:  res.Input,
		SVG:    string(svg),
	}, nil
}

// handleModelResource returns the model equations as markdown.
func (s *Server) handleModelResource(ctx context.Context, req *sdk.ReadResourceRequest) (*sdk.ReadResourceResult, error) {
	return &sdk.ReadResourceResult{
		Contents: []*sdk.ResourceContents{
			{
				URI:      ModelURI,
				MIMEType: "text/markdown",
				Text:     modelDescription(s.engine.NoiseScale(), s.defaults),
			},
		},
	}, nil
}

func modelDescription(noise float64, defaults simulation.Input) string {
	return fmt.Sprintf(`# Brain Twin Response Model

Each run samples %d evenly spaced points over 0 to %g seconds. With s = stress/100,
q = sleep_quality/10, a = activity_level/10 and N a standard normal draw per sample:

- **Cortisol:** 0.5 + s * exp(-0.4 t) + %g N
- **Dopamine:** 0.5 + 0.3 a - 0.1 s + %g N
- **Serotonin:** 0.5 + 0.3 q - 0.05 s + %g N

Every value is clipped to [0, 1].

## Inputs

| Field | Range | Default |
|-------|-------|---------|
| stress | %d-%d | %d |
| sleep_quality | %d-%d | %d |
| activity_level | %d-%d | %d |

Values outside a range are rejected, not clamped.
`,
		simulation.Samples, simulation.Duration,
		noise, noise, noise,
		simulation.MinStress, simulation.MaxStress, defaults.Stress,
		simulation.MinSleepQuality, simulation.MaxSleepQuality, defaults.SleepQuality,
		simulation.MinActivity, simulation.MaxActivity, defaults.ActivityLevel,
	)
}
