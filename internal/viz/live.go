// Package viz renders a running simulation in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/molsim/internal/analyze"
	"github.com/san-kum/molsim/internal/sim"
	"github.com/san-kum/molsim/internal/state"
)

const (
	historyCapacity = 400
	stepsPerTick    = 10
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

type TickMsg time.Time

// Model steps a simulation a few timesteps per frame and shows the
// instantaneous thermodynamics with a temperature history sparkline.
type Model struct {
	st         *state.State
	integrator sim.Integrator
	thermostat sim.Thermostat
	steps      int

	running   bool
	err       error
	ktHistory []float64
}

// NewModel prepares a live view over an already initialized state.
func NewModel(st *state.State, integ sim.Integrator, th sim.Thermostat, steps int) Model {
	return Model{
		st:         st,
		integrator: integ,
		thermostat: th,
		steps:      steps,
		running:    true,
		ktHistory:  make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input and steps the simulation on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.err == nil && m.st.Counter < m.steps {
			m.advance()
		}
		if m.st.Counter >= m.steps {
			m.running = false
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < stepsPerTick && m.st.Counter < m.steps; i++ {
		if err := m.integrator.Advance(m.st); err != nil {
			m.err = err
			return
		}
		if m.thermostat != nil {
			if err := m.thermostat.Apply(m.st); err != nil {
				m.err = err
				return
			}
		}
	}

	if kt, err := analyze.Temperature(m.st); err == nil {
		m.ktHistory = append(m.ktHistory, kt)
		if len(m.ktHistory) > historyCapacity {
			m.ktHistory = m.ktHistory[1:]
		}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("molsim live"))
	b.WriteString("\n")

	status := "running"
	if m.err != nil {
		status = "error"
	} else if !m.running {
		if m.st.Counter >= m.steps {
			status = "done"
		} else {
			status = "paused"
		}
	}

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	row("status", status)
	row("step", fmt.Sprintf("%d / %d", m.st.Counter, m.steps))
	row("particles", fmt.Sprintf("%d", m.st.N()))

	if kt, err := analyze.Temperature(m.st); err == nil {
		row("kT", fmt.Sprintf("%.4f", kt))
	}
	if p, err := analyze.Pressure(m.st); err == nil {
		row("pressure", fmt.Sprintf("%.4f", p))
	}
	if ke, err := analyze.KineticEnergy(m.st); err == nil {
		row("kinetic", fmt.Sprintf("%.4f", ke))
	}
	if pe, err := analyze.PotentialEnergy(m.st); err == nil {
		row("potential", fmt.Sprintf("%.4f", pe))
	}

	if len(m.ktHistory) > 1 {
		graph := asciigraph.Plot(m.ktHistory,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("kT history"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · q quit"))
	b.WriteString("\n")
	return b.String()
}

// Run drives the live view until the user quits or the run completes.
func Run(st *state.State, integ sim.Integrator, th sim.Thermostat, steps int) error {
	p := tea.NewProgram(NewModel(st, integ, th, steps))
	_, err := p.Run()
	return err
}
