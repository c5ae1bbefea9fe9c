package simulation

import (
	"fmt"
	"math"
)

// Hormone names, in display order.
const (
	Cortisol  = "Cortisol"
	Dopamine  = "Dopamine"
	Serotonin = "Serotonin"
)

// TimeSeries pairs the shared time axis with the three normalized levels.
// All slices have the same length.
type TimeSeries struct {
	Time      []float64 `json:"time"`
	Cortisol  []float64 `json:"cortisol"`
	Dopamine  []float64 `json:"dopamine"`
	Serotonin []float64 `json:"serotonin"`
}

// Levels returns the three level series keyed by hormone name, in display
// order.
func (ts TimeSeries) Levels() []Level {
	return []Level{
		{Name: Cortisol, Values: ts.Cortisol},
		{Name: Dopamine, Values: ts.Dopamine},
		{Name: Serotonin, Values: ts.Serotonin},
	}
}

// Level is one named series.
type Level struct {
	Name   string
	Values []float64
}

// Result is the outcome of a single run.
type Result struct {
	Input       Input      `json:"input"`
	Series      TimeSeries `json:"series"`
	Explanation string     `json:"explanation"`
}

// Stats summarizes one series.
type Stats struct {
	Name  string  `json:"name"`
	Min   float64 `json:"min"`
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Final float64 `json:"final"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%s min=%.2f mean=%.2f max=%.2f final=%.2f", s.Name, s.Min, s.Mean, s.Max, s.Final)
}

// Summary returns per-hormone statistics in display order.
func (r *Result) Summary() []Stats {
	levels := r.Series.Levels()
	out := make([]Stats, 0, len(levels))
	for _, lvl := range levels {
		out = append(out, summarize(lvl.Name, lvl.Values))
	}
	return out
}

func summarize(name string, values []float64) Stats {
	s := Stats{Name: name}
	if len(values) == 0 {
		return s
	}
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	sum := 0.0
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(values))
	s.Final = values[len(values)-1]
	return s
}
