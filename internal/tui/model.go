// Package tui is a terminal version of the simulation page: three sliders,
// a run button, and the chart with its explanation underneath.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvandessel/braintwin/internal/simulation"
	"github.com/nvandessel/braintwin/internal/visualization"
)

var (
	accent   = lipgloss.NewStyle().Foreground(lipgloss.Color(visualization.AccentColor)).Bold(true)
	white    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4136"))
	button   = lipgloss.NewStyle().
			Background(lipgloss.Color(visualization.AccentColor)).
			Foreground(lipgloss.Color(visualization.BackgroundColor)).
			Bold(true).
			Padding(0, 2)
)

const barWidth = 30

type field struct {
	label    string
	min, max int
	bigStep  int
}

var fields = []field{
	{"Perceived Stress", simulation.MinStress, simulation.MaxStress, 10},
	{"Sleep Quality", simulation.MinSleepQuality, simulation.MaxSleepQuality, 2},
	{"Lifestyle Activity", simulation.MinActivity, simulation.MaxActivity, 2},
}

// resultMsg carries the outcome of one run back to Update.
type resultMsg struct {
	res *simulation.Result
	err error
}

// Model holds the slider positions and the last successful run.
type Model struct {
	engine  *simulation.Engine
	values  []int
	cursor  int
	running bool
	result  *simulation.Result
	err     error
	width   int
	height  int
}

// New returns a Model with the sliders at defaults. Out-of-range defaults
// are replaced by the built-in ones.
func New(engine *simulation.Engine, defaults simulation.Input) Model {
	if engine == nil {
		engine = simulation.NewEngine()
	}
	if defaults.Validate() != nil {
		defaults = simulation.DefaultInput()
	}
	return Model{
		engine: engine,
		values: []int{defaults.Stress, defaults.SleepQuality, defaults.ActivityLevel},
		width:  80,
		height: 24,
	}
}

// Input returns the current slider positions.
func (m Model) Input() simulation.Input {
	return simulation.Input{
		Stress:        m.values[0],
		SleepQuality:  m.values[1],
		ActivityLevel: m.values[2],
	}
}

// Result returns the last successful run, or nil before the first one.
func (m Model) Result() *simulation.Result { return m.result }

// Err returns the error from the last run, if it failed.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case resultMsg:
		m.running = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.result = msg.res
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k", "shift+tab":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < len(fields)-1 {
			m.cursor++
		}
	case "left", "h":
		m.nudge(-1)
	case "right", "l":
		m.nudge(1)
	case "pgdown", "H":
		m.nudge(-fields[m.cursor].bigStep)
	case "pgup", "L":
		m.nudge(fields[m.cursor].bigStep)
	case "home":
		m.nudge(fields[m.cursor].min - fields[m.cursor].max)
	case "end":
		m.nudge(fields[m.cursor].max - fields[m.cursor].min)
	case "enter", "r", " ":
		// One run per press; further presses wait for the result.
		if m.running {
			return m, nil
		}
		m.running = true
		return m, m.simulate(m.Input())
	}
	return m, nil
}

// nudge moves the selected slider by delta, staying inside its range.
func (m *Model) nudge(delta int) {
	f := fields[m.cursor]
	values := append([]int(nil), m.values...)
	values[m.cursor] = min(max(values[m.cursor]+delta, f.min), f.max)
	m.values = values
}

func (m Model) simulate(in simulation.Input) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		res, err := engine.Simulate(in)
		return resultMsg{res: res, err: err}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n  ")
	b.WriteString(accent.Render("🧠 Digital Twin: Brain Simulation"))
	b.WriteString("\n\n  ")
	b.WriteString(white.Render("Adjust Your Brain State"))
	b.WriteString("\n\n")

	for i, f := range fields {
		cursor := "  "
		label := dim.Render(fmt.Sprintf("%-20s", fmt.Sprintf("%s (%d-%d)", f.label, f.min, f.max)))
		if i == m.cursor {
			cursor = accent.Render("▸ ")
			label = white.Render(fmt.Sprintf("%-20s", fmt.Sprintf("%s (%d-%d)", f.label, f.min, f.max)))
		}
		fmt.Fprintf(&b, "  %s%s  %s %s\n", cursor, label, renderBar(m.values[i], f.min, f.max), white.Render(fmt.Sprintf("%3d", m.values[i])))
	}

	b.WriteString("\n  ")
	if m.running {
		b.WriteString(dim.Render("[ Running… ]"))
	} else {
		b.WriteString(button.Render("Run Simulation"))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("\n  ")
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	if m.result != nil {
		width := m.width - 12
		if width < 20 {
			width = 20
		}
		b.WriteString("\n")
		b.WriteString(visualization.RenderChart(m.result, width))
		b.WriteString("\n\n")
		b.WriteString(visualization.RenderSummary(m.result.Summary()))
		b.WriteString("\n")
		b.WriteString(visualization.RenderExplanation(m.result.Explanation))
	}

	b.WriteString("\n  ")
	b.WriteString(dimmer.Render("↑/↓ select  ←/→ adjust  H/L big step  enter run  q quit"))
	b.WriteString("\n")

	return b.String()
}

// renderBar draws a slider track with the knob at value.
func renderBar(value, lo, hi int) string {
	filled := 0
	if hi > lo {
		filled = (value - lo) * barWidth / (hi - lo)
	}
	return accent.Render(strings.Repeat("━", filled)) + white.Render("●") + dimmer.Render(strings.Repeat("─", barWidth-filled))
}

// Run starts the interactive terminal UI and blocks until the user quits.
func Run(engine *simulation.Engine, defaults simulation.Input) error {
	p := tea.NewProgram(New(engine, defaults), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
