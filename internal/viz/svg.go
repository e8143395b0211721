package viz

import (
	"fmt"
	"os"
	"strings"
)

// TrajectorySVG renders a state trajectory as an SVG step plot: time on
// the x axis, the state's index among labels on the y axis. Returns ""
// when there is nothing to draw.
func TrajectorySVG(trajectory []string, labels []string, width, height int) string {
	if len(trajectory) < 2 || len(labels) == 0 {
		return ""
	}

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}

	// padding keeps the extreme states off the border
	padY := float64(height) * 0.1
	spanY := float64(height) - 2*padY
	levels := float64(len(labels) - 1)
	if levels == 0 {
		levels = 1
	}
	stepX := float64(width) / float64(len(trajectory)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	// state level labels
	for i, label := range labels {
		y := float64(height) - padY - float64(i)/levels*spanY
		sb.WriteString(fmt.Sprintf(`<text x="4" y="%.1f" fill="#666666" font-family="monospace" font-size="10">%s</text>
`, y-3, label))
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#222222" stroke-width="1"/>
`, y, width, y))
	}

	sb.WriteString(`<path fill="none" stroke="#00ff00" stroke-width="1.5" d="M`)
	for i, state := range trajectory {
		x := float64(i) * stepX
		y := float64(height) - padY - float64(index[state])/levels*spanY
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			// horizontal segment then the jump keeps transitions square
			sb.WriteString(fmt.Sprintf(" H%.1f V%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	return sb.String()
}

// WriteTrajectorySVG renders the trajectory and writes it to path.
func WriteTrajectorySVG(path string, trajectory []string, labels []string, width, height int) error {
	svg := TrajectorySVG(trajectory, labels, width, height)
	if svg == "" {
		return fmt.Errorf("trajectory too short to render: %d states", len(trajectory))
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
