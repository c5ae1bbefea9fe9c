package visualization

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// SVG canvas geometry. The plot area is fixed to y in [0, 1] since every
// level is normalized.
const (
	svgWidth      = 900
	svgHeight     = 500
	svgLeft       = 70
	svgRight      = 30
	svgTop        = 80
	svgBottom     = 60
	xTickInterval = 2.0
	yTickInterval = 0.2
)

// dashArrays maps line styles to stroke-dasharray values sized for
// lineWidth.
var dashArrays = map[Dash]string{
	DashSolid: "",
	DashDash:  "18 10",
	DashDot:   "1 12",
}

var svgFuncs = template.FuncMap{
	"add":  func(a, b float64) float64 { return a + b },
	"sub":  func(a, b float64) float64 { return a - b },
	"half": func(a float64) float64 { return a / 2 },
}

type svgTick struct {
	Pos   float64
	Label string
}

type svgSeries struct {
	Name      string
	Color     string
	Width     int
	DashArray string
	Points    string
}

type svgBand struct {
	X     float64
	Width float64
	Label string
}

type svgLegendItem struct {
	X         float64
	Color     string
	Width     int
	DashArray string
	Name      string
}

type svgTemplateData struct {
	Width, Height int
	Left, Top     float64
	PlotW, PlotH  float64
	Bottom, Right float64
	Title         string
	XTitle        string
	YTitle        string
	Background    string
	Foreground    string
	FontFamily    string
	XTicks        []svgTick
	YTicks        []svgTick
	Series        []svgSeries
	Bands         []svgBand
	Legend        []svgLegendItem
}

// plotArea maps data coordinates to canvas pixels.
type plotArea struct {
	left, top, w, h float64
	xmin, xmax      float64
}

func (p plotArea) x(v float64) float64 {
	if p.xmax == p.xmin {
		return p.left
	}
	return p.left + (v-p.xmin)/(p.xmax-p.xmin)*p.w
}

func (p plotArea) y(v float64) float64 {
	return p.top + (1-v)*p.h
}

// RenderSVG draws the figure as a standalone SVG document. Every time
// sample gets a transparent hover band whose tooltip lists all trace values
// at that instant, formatted to two decimals.
func RenderSVG(fig Figure) ([]byte, error) {
	if len(fig.Data) == 0 {
		return nil, fmt.Errorf("figure has no traces")
	}
	xs := fig.Data[0].X
	for _, tr := range fig.Data {
		if len(tr.X) != len(xs) || len(tr.Y) != len(xs) {
			return nil, fmt.Errorf("trace %q length mismatch: x=%d y=%d, want %d", tr.Name, len(tr.X), len(tr.Y), len(xs))
		}
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("figure has no samples")
	}

	area := plotArea{
		left: svgLeft,
		top:  svgTop,
		w:    svgWidth - svgLeft - svgRight,
		h:    svgHeight - svgTop - svgBottom,
		xmin: xs[0],
		xmax: xs[len(xs)-1],
	}

	data := svgTemplateData{
		Width:      svgWidth,
		Height:     svgHeight,
		Left:       area.left,
		Top:        area.top,
		PlotW:      area.w,
		PlotH:      area.h,
		Bottom:     area.top + area.h,
		Right:      area.left + area.w,
		Title:      fig.Layout.Title,
		XTitle:     fig.Layout.XAxis.Title,
		YTitle:     fig.Layout.YAxis.Title,
		Background: fig.Layout.PlotBGColor,
		Foreground: fig.Layout.Font.Color,
		FontFamily: fig.Layout.Font.Family,
	}

	for v := area.xmin; v <= area.xmax+1e-9; v += xTickInterval {
		data.XTicks = append(data.XTicks, svgTick{Pos: area.x(v), Label: fmt.Sprintf("%g", v)})
	}
	for i := 0; i <= 5; i++ {
		v := float64(i) * yTickInterval
		data.YTicks = append(data.YTicks, svgTick{Pos: area.y(v), Label: fmt.Sprintf("%.1f", v)})
	}

	legendX := area.left + area.w - float64(len(fig.Data))*130
	for i, tr := range fig.Data {
		var pts strings.Builder
		for j := range xs {
			if j > 0 {
				pts.WriteByte(' ')
			}
			fmt.Fprintf(&pts, "%.2f,%.2f", area.x(xs[j]), area.y(tr.Y[j]))
		}
		data.Series = append(data.Series, svgSeries{
			Name:      tr.Name,
			Color:     tr.Line.Color,
			Width:     tr.Line.Width,
			DashArray: dashArrays[tr.Line.Dash],
			Points:    pts.String(),
		})
		data.Legend = append(data.Legend, svgLegendItem{
			X:         legendX + float64(i)*130,
			Color:     tr.Line.Color,
			Width:     tr.Line.Width,
			DashArray: dashArrays[tr.Line.Dash],
			Name:      tr.Name,
		})
	}

	data.Bands = hoverBands(fig, area)

	tmplBytes, err := templates.ReadFile("templates/chart.svg.tmpl")
	if err != nil {
		return nil, fmt.Errorf("read SVG template: %w", err)
	}

	tmpl, err := template.New("chart").Funcs(svgFuncs).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parse SVG template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute SVG template: %w", err)
	}
	return buf.Bytes(), nil
}

// hoverBands splits the plot into one vertical strip per sample, each
// bounded by the midpoints to its neighbours.
func hoverBands(fig Figure, area plotArea) []svgBand {
	xs := fig.Data[0].X
	bands := make([]svgBand, 0, len(xs))
	for i := range xs {
		var lo, hi float64
		if i > 0 {
			lo = (area.x(xs[i-1]) + area.x(xs[i])) / 2
		} else {
			lo = area.left
		}
		if i < len(xs)-1 {
			hi = (area.x(xs[i]) + area.x(xs[i+1])) / 2
		} else {
			hi = area.left + area.w
		}

		lines := make([]string, 0, len(fig.Data)+1)
		lines = append(lines, fmt.Sprintf("t = %.2f s", xs[i]))
		for _, tr := range fig.Data {
			lines = append(lines, tr.HoverText(i))
		}
		bands = append(bands, svgBand{X: lo, Width: hi - lo, Label: strings.Join(lines, "\n")})
	}
	return bands
}
