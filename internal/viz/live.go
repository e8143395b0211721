package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/stochsim/internal/markov"
)

const trailCapacity = 120

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type tickMsg time.Time

// Live is a bubbletea model that walks a Markov chain one draw per tick
// and renders the current state, the recent trail, and the occupancy
// distribution.
type Live struct {
	chain    *markov.Chain
	rng      *rand.Rand
	index    map[string]int
	current  string
	trail    []float64
	counts   map[string]int
	steps    int
	maxSteps int
	interval time.Duration
	paused   bool
	err      error
}

// NewLive prepares a live walk starting at start. fps bounds the draw
// rate; maxSteps <= 0 means walk until quit.
func NewLive(chain *markov.Chain, rng *rand.Rand, start string, maxSteps, fps int) *Live {
	if fps <= 0 {
		fps = 10
	}
	index := make(map[string]int)
	for i, s := range chain.States() {
		index[s] = i
	}
	return &Live{
		chain:    chain,
		rng:      rng,
		index:    index,
		current:  start,
		trail:    make([]float64, 0, trailCapacity),
		counts:   make(map[string]int),
		maxSteps: maxSteps,
		interval: time.Second / time.Duration(fps),
	}
}

func (m *Live) Init() tea.Cmd {
	return m.tick()
}

func (m *Live) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
		return m, nil

	case tickMsg:
		if m.paused {
			return m, m.tick()
		}
		if m.maxSteps > 0 && m.steps >= m.maxSteps {
			return m, tea.Quit
		}

		next, err := m.chain.Step(m.rng, m.current)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.current = next
		m.counts[next]++
		m.steps++
		m.trail = append(m.trail, float64(m.index[next]))
		if len(m.trail) > trailCapacity {
			m.trail = m.trail[1:]
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *Live) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s live walk", m.chain.Name())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("step %d   state %s\n", m.steps, currentStyle.Render(m.current)))

	if len(m.trail) > 1 {
		graph := asciigraph.Plot(m.trail,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("state index"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	states := m.chain.States()
	occupancy := make([]float64, len(states))
	if m.steps > 0 {
		for i, s := range states {
			occupancy[i] = float64(m.counts[s]) / float64(m.steps)
		}
	}
	b.WriteString(PlotDistribution(states, occupancy))

	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("space pause · q quit"))
	b.WriteString("\n")

	return b.String()
}

// Err reports a draw failure that ended the walk, if any.
func (m *Live) Err() error { return m.err }

// RunLive blocks running the live walk until quit or error.
func RunLive(chain *markov.Chain, rng *rand.Rand, start string, maxSteps, fps int) error {
	model := NewLive(chain, rng, start, maxSteps, fps)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return err
	}
	return model.Err()
}
