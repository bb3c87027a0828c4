package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/wari/engine"
)

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DB4545")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5D878F"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// badgeStyles are keyed by engine.RiskBadgeClass.
var badgeStyles = map[string]lipgloss.Style{
	"risk-very-low":  lipgloss.NewStyle().Foreground(lipgloss.Color("#1FB8CD")),
	"risk-low":       lipgloss.NewStyle().Foreground(lipgloss.Color("#5D878F")),
	"risk-medium":    lipgloss.NewStyle().Foreground(lipgloss.Color("#D2BA4C")),
	"risk-high":      lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC185")).Bold(true),
	"risk-very-high": lipgloss.NewStyle().Foreground(lipgloss.Color("#DB4545")).Bold(true),
}

func renderBadge(tier string) string {
	style, ok := badgeStyles[engine.RiskBadgeClass(tier)]
	if !ok {
		return tier
	}
	return style.Render(tier)
}

func barStyle(color string) lipgloss.Style {
	if color == "" {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
