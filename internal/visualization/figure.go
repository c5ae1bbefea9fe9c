// Package visualization renders simulation results as charts and text, and
// serves the interactive web page.
package visualization

import (
	"fmt"

	"github.com/nvandessel/braintwin/internal/simulation"
)

// Format specifies the output format for a rendered run.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatSVG      Format = "svg"
)

// Dash is a line style.
type Dash string

const (
	DashSolid Dash = "solid"
	DashDash  Dash = "dash"
	DashDot   Dash = "dot"
)

// Page styling shared by the chart and the web page.
const (
	ChartTitle      = "Neurotransmitter Response Over Time"
	XAxisTitle      = "Time (s)"
	YAxisTitle      = "Normalized Level"
	BackgroundColor = "#111111"
	ForegroundColor = "#fdfdfd"
	AccentColor     = "#00FFFF"
	FontFamily      = "Poppins"
	lineWidth       = 6
)

// traceStyles fixes the colour and dash of each hormone.
var traceStyles = map[string]Line{
	simulation.Cortisol:  {Color: "#FF4136", Width: lineWidth, Dash: DashSolid},
	simulation.Dopamine:  {Color: "#2ECC40", Width: lineWidth, Dash: DashDash},
	simulation.Serotonin: {Color: "#0074D9", Width: lineWidth, Dash: DashDot},
}

// Figure is a line chart description. Field names follow plotly's figure
// schema so the JSON can be handed to a plotting frontend unchanged.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one line series.
type Trace struct {
	X             []float64 `json:"x"`
	Y             []float64 `json:"y"`
	Mode          string    `json:"mode"`
	Name          string    `json:"name"`
	Line          Line      `json:"line"`
	HoverTemplate string    `json:"hovertemplate"`
}

// HoverText formats the value at index i the way the hover template does.
func (t Trace) HoverText(i int) string {
	return fmt.Sprintf("%s: %.2f", t.Name, t.Y[i])
}

// Line is the stroke style of a trace.
type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
	Dash  Dash   `json:"dash"`
}

// Layout holds figure-wide presentation settings.
type Layout struct {
	Title        string `json:"title"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
	PlotBGColor  string `json:"plot_bgcolor"`
	PaperBGColor string `json:"paper_bgcolor"`
	Font         Font   `json:"font"`
	Legend       Legend `json:"legend"`
	Margin       Margin `json:"margin"`
	HoverMode    string `json:"hovermode"`
}

type Axis struct {
	Title string `json:"title"`
}

type Font struct {
	Color  string `json:"color"`
	Family string `json:"family"`
}

type Legend struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	BGColor string  `json:"bgcolor"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// BuildFigure turns a run into a three-trace chart sharing the time axis.
func BuildFigure(res *simulation.Result) Figure {
	levels := res.Series.Levels()
	traces := make([]Trace, 0, len(levels))
	for _, lvl := range levels {
		traces = append(traces, Trace{
			X:             res.Series.Time,
			Y:             lvl.Values,
			Mode:          "lines",
			Name:          lvl.Name,
			Line:          traceStyles[lvl.Name],
			HoverTemplate: lvl.Name + ": %{y:.2f}",
		})
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title:        ChartTitle,
			XAxis:        Axis{Title: XAxisTitle},
			YAxis:        Axis{Title: YAxisTitle},
			PlotBGColor:  BackgroundColor,
			PaperBGColor: BackgroundColor,
			Font:         Font{Color: ForegroundColor, Family: FontFamily},
			Legend:       Legend{X: 0.75, Y: 1.15, BGColor: "rgba(0,0,0,0)"},
			Margin:       Margin{L: 20, R: 20, T: 60, B: 20},
			HoverMode:    "x unified",
		},
	}
}
