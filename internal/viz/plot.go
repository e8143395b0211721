// Package viz renders trajectories and distributions for the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const (
	plotWidth  = 80
	plotHeight = 10
	barWidth   = 40
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// PlotTrajectory renders the state-index sequence of a trajectory as an
// ascii line chart. The index encoding follows the order of states.
func PlotTrajectory(trajectory []string, states []string, caption string) string {
	if len(trajectory) == 0 {
		return "(empty trajectory)"
	}

	index := make(map[string]int, len(states))
	for i, s := range states {
		index[s] = i
	}

	data := make([]float64, len(trajectory))
	for i, s := range trajectory {
		data[i] = float64(index[s])
	}

	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotDistribution renders a probability vector as labeled bars.
func PlotDistribution(labels []string, dist []float64) string {
	var b strings.Builder
	for i, label := range labels {
		p := 0.0
		if i < len(dist) {
			p = dist[i]
		}
		n := int(p * barWidth)
		if n < 0 {
			n = 0
		}
		if n > barWidth {
			n = barWidth
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %.4f", p)))
		b.WriteString("\n")
	}
	return b.String()
}
