package visualization

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/nvandessel/braintwin/internal/simulation"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(AccentColor)).Bold(true).MarginBottom(1)
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(20)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Italic(true)
	graphStyle   = lipgloss.NewStyle().Padding(1, 0)
)

// asciiColors matches the chart colours as closely as the ANSI palette allows.
var asciiColors = map[string]asciigraph.AnsiColor{
	simulation.Cortisol:  asciigraph.Red,
	simulation.Dopamine:  asciigraph.Green,
	simulation.Serotonin: asciigraph.Blue,
}

// markdownMarkers are stripped when the explanation is printed to a terminal.
var markdownMarkers = strings.NewReplacer("### ", "", "**", "", "*", "")

// RenderChart plots all three levels as an ASCII chart width columns wide.
func RenderChart(res *simulation.Result, width int) string {
	levels := res.Series.Levels()
	data := make([][]float64, 0, len(levels))
	names := make([]string, 0, len(levels))
	colors := make([]asciigraph.AnsiColor, 0, len(levels))
	for _, lvl := range levels {
		data = append(data, lvl.Values)
		names = append(names, lvl.Name)
		colors = append(colors, asciiColors[lvl.Name])
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(12),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption(fmt.Sprintf("%s vs %s, 0-%gs", YAxisTitle, XAxisTitle, simulation.Duration)),
	)
}

// RenderText renders a run for a terminal: the input echo, an ASCII chart
// of all three levels, per-hormone statistics and the explanation.
// width is the chart width in columns; values below 20 use the default.
func RenderText(res *simulation.Result, width int) string {
	if width < 20 {
		width = 72
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Digital Twin: Brain Simulation"))
	b.WriteString("\n")

	b.WriteString(graphStyle.Render(RenderChart(res, width)))
	b.WriteString("\n")

	b.WriteString(RenderSummary(res.Summary()))
	b.WriteString("\n")

	b.WriteString(RenderExplanation(res.Explanation))

	return b.String()
}

// RenderSummary prints one coloured statistics line per hormone.
func RenderSummary(stats []simulation.Stats) string {
	var b strings.Builder
	for _, s := range stats {
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(traceStyles[s.Name].Color)).Bold(true).Width(11).Render(s.Name)
		fmt.Fprintf(&b, "%s min %.2f  mean %.2f  max %.2f  final %.2f\n", name, s.Min, s.Mean, s.Max, s.Final)
	}
	return b.String()
}

// RenderExplanation styles the markdown explanation for a terminal.
func RenderExplanation(md string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(md), "\n") {
		line = strings.TrimRight(line, " ")
		switch {
		case strings.HasPrefix(line, "### "):
			b.WriteString(headingStyle.Render(markdownMarkers.Replace(line)))
		case strings.HasPrefix(line, "- **"):
			label, value, _ := strings.Cut(markdownMarkers.Replace(strings.TrimPrefix(line, "- ")), ":")
			b.WriteString(labelStyle.Render(label+":") + strings.TrimSpace(value))
		case strings.HasPrefix(line, "**"):
			b.WriteString(headingStyle.Render(markdownMarkers.Replace(line)))
		case strings.HasPrefix(line, "🧠 *"), strings.HasSuffix(line, "*"):
			b.WriteString(dimStyle.Render(markdownMarkers.Replace(line)))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	return b.String()
}
