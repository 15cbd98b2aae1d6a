package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899"))

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#444466"))

	// error grades for comparisons
	Good = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	Fair = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	Poor = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Bar renders a horizontal bar for a fraction in [0, 1].
func Bar(frac float64, width int) string {
	filled := min(max(int(frac*float64(width)), 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// grade picks the style for a position in [0, 1], 0 being best.
func grade(frac float64) lipgloss.Style {
	switch {
	case frac > 0.66:
		return Poor
	case frac > 0.33:
		return Fair
	}
	return Good
}
