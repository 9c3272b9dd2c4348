// Package tui implements the live monitor bubbletea model backing the
// dynsim watch command: it steps a hostsim.Host forward on a fixed
// ticker and renders body1's heave, surge and sway positions and a
// Braille trace of its heave, styled with the project's lipgloss theme.
package tui

import (
	"fmt"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oceanwave/hydrocore/internal/config"
	"github.com/oceanwave/hydrocore/internal/dynamo"
	"github.com/oceanwave/hydrocore/internal/hostsim"
	"github.com/oceanwave/hydrocore/internal/viz"
)

type tickMsg time.Time

// Model is the bubbletea program driving one running simulation.
type Model struct {
	cfg       *config.Config
	host      *hostsim.Host
	integ     dynamo.Integrator
	x         dynamo.State
	t         float64
	canvas    *viz.Canvas
	history   []float64
	err       error
	stepCount int
	theme     viz.Theme
}

// New builds a Model from a run configuration, loading the hydrodynamic
// database eagerly so New itself can fail before the program starts.
// themeName must name one of viz.ThemeNames().
func New(cfg *config.Config, themeName string) (*Model, error) {
	if !slices.Contains(viz.ThemeNames(), themeName) {
		return nil, fmt.Errorf("tui: unknown theme %q, want one of %v", themeName, viz.ThemeNames())
	}
	host, err := hostsim.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Model{
		cfg:    cfg,
		host:   host,
		integ:  hostsim.Integrator(cfg.Integrator),
		x:      hostsim.InitialState(cfg),
		canvas: viz.NewCanvas(70, 12),
		theme:  viz.GetTheme(themeName),
	}, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	if m.err != nil {
		return
	}
	m.x = m.integ.Step(m.host, m.x, nil, m.t, m.cfg.Dt)
	m.t += m.cfg.Dt
	m.stepCount++
	if !m.x.IsValid() {
		m.err = fmt.Errorf("state diverged at t=%.3f", m.t)
		return
	}

	z := hostsim.BodyPos(m.x, 1)[2]
	m.history = append(m.history, z)
	if maxSamples := 140; len(m.history) > maxSamples {
		m.history = m.history[len(m.history)-maxSamples:]
	}
	m.redraw()
}

func (m *Model) redraw() {
	m.canvas.Clear()
	if len(m.history) < 2 {
		return
	}

	minV, maxV := m.history[0], m.history[0]
	for _, v := range m.history {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}

	subW, subH := m.canvas.Width*2, m.canvas.Height*4
	for i, v := range m.history {
		x := int(float64(i) / float64(len(m.history)) * float64(subW-1))
		y := subH - 1 - int((v-minV)/span*float64(subH-1))
		m.canvas.Set(x, y)
	}
}

func (m *Model) View() string {
	title := viz.GradientText("hydrocore — live force monitor", m.theme.Primary, m.theme.Secondary)

	status := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Success).
		Render(fmt.Sprintf("t=%.2fs  step=%d", m.t, m.stepCount))
	if m.err != nil {
		status = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Error).Render(m.err.Error())
	}

	pos := hostsim.BodyPos(m.x, 1)
	info := fmt.Sprintf(
		"%s %s   %s %s   %s %s",
		viz.MetricLabel.Render("heave:"), viz.MetricValue.Render(fmt.Sprintf("%8.4f m", pos[2])),
		viz.MetricLabel.Render("surge:"), viz.MetricValue.Render(fmt.Sprintf("%8.4f m", pos[0])),
		viz.MetricLabel.Render("sway:"), viz.MetricValue.Render(fmt.Sprintf("%8.4f m", pos[1])),
	)

	trend := viz.MetricLabel.Render("heave trend: ") + viz.SparklineChart(m.history, 40)

	progress := ""
	if m.cfg.Duration > 0 {
		frac := m.t / m.cfg.Duration
		progress = viz.MetricLabel.Render("progress: ") + viz.ProgressBar(frac, 40)
	}

	panel := viz.GlassPanel.Render(m.canvas.String())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		status,
		info,
		trend,
		progress,
		viz.Separator(70),
		panel,
		viz.KeyHint.Render("q to quit"),
	)
}

// Run builds and executes the live monitor program for cfg under the
// named color theme, blocking until the user quits or the program errors.
func Run(cfg *config.Config, themeName string) error {
	m, err := New(cfg, themeName)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}
