package cli

import "github.com/charmbracelet/lipgloss"

// Shared output styles. Lipgloss degrades to plain text when the
// terminal has no colour support.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)

	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func passMark() string { return passStyle.Render("✓") }
func failMark() string { return failStyle.Render("✗") }
