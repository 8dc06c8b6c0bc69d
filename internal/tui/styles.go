package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/cadastro/internal/validate"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette
// ---------------------------------------------------------------------------

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorBase     lipgloss.Color = "#1e1e2e"
)

const (
	colorAccent = colorMauve
	colorFocus  = colorLavender
	colorMuted  = colorOverlay1
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tabStyle         = lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted)
	activeTabStyle   = tabStyle.Foreground(colorBase).Background(colorAccent).Bold(true)
	labelStyle       = lipgloss.NewStyle().Width(18).Foreground(colorText)
	focusLabelStyle  = labelStyle.Foreground(colorFocus).Bold(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(colorMuted)
	photoStyle       = lipgloss.NewStyle().Foreground(colorTeal)
	hintStyle        = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)
	buttonStyle      = lipgloss.NewStyle().Padding(0, 1).Background(colorSurface1).Foreground(colorText)
	statusStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	modalStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocus).Padding(0, 1)
)

// toastStyle returns the banner style for a notification severity.
func toastStyle(sev validate.Severity) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorBase)
	switch sev {
	case validate.SeveritySuccess:
		return base.Background(colorGreen)
	case validate.SeverityWarning:
		return base.Background(colorYellow)
	default:
		return base.Background(colorRed)
	}
}
