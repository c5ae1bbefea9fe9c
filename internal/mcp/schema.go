package mcp

import (
	"github.com/nvandessel/braintwin/internal/simulation"
	"github.com/nvandessel/braintwin/internal/visualization"
)

// TwinSimulateInput defines the input for twin_simulate tool.
type TwinSimulateInput struct {
	Stress        *int    `json:"stress,omitempty" jsonschema:"Perceived stress from 0 to 100 (default 50)"`
	SleepQuality  *int    `json:"sleep_quality,omitempty" jsonschema:"Sleep quality from 0 to 10 (default 7)"`
	ActivityLevel *int    `json:"activity_level,omitempty" jsonschema:"Lifestyle activity from 0 to 10 (default 5)"`
	Seed          *uint64 `json:"seed,omitempty" jsonschema:"Seed for reproducible noise; omit for a fresh draw"`
}

// TwinSimulateOutput defines the output for twin_simulate tool.
type TwinSimulateOutput struct {
	Input       simulation.Input      `json:"input" jsonschema:"Inputs the run used after defaults were applied"`
	Series      simulation.TimeSeries `json:"series" jsonschema:"Time axis and the three hormone levels"`
	Summary     []simulation.Stats    `json:"summary" jsonschema:"Min, mean, max and final value per hormone"`
	Explanation string                `json:"explanation" jsonschema:"Markdown explanation of the run"`
}

// TwinChartInput defines the input for twin_chart tool.
type TwinChartInput struct {
	Stress        *int    `json:"stress,omitempty" jsonschema:"Perceived stress from 0 to 100 (default 50)"`
	SleepQuality  *int    `json:"sleep_quality,omitempty" jsonschema:"Sleep quality from 0 to 10 (default 7)"`
	ActivityLevel *int    `json:"activity_level,omitempty" jsonschema:"Lifestyle activity from 0 to 10 (default 5)"`
	Seed          *uint64 `json:"seed,omitempty" jsonschema:"Seed for reproducible noise; omit for a fresh draw"`
	Format        string  `json:"format,omitempty" jsonschema:"Chart format: 'svg' (default) or 'json' (Plotly figure)"`
}

// TwinChartOutput defines the output for twin_chart tool.
type TwinChartOutput struct {
	Format string                `json:"format" jsonschema:"Format of the chart field"`
	Input  simulation.Input      `json:"input" jsonschema:"Inputs the run used"`
	SVG    string                `json:"svg,omitempty" jsonschema:"SVG document when format is svg"`
	Figure *visualization.Figure `json:"figure,omitempty" jsonschema:"Plotly-compatible figure when format is json"`
}
