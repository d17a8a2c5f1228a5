// Package view renders completion results for terminals.
package view

import "github.com/charmbracelet/lipgloss"

// Shared styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// kindStyles colors candidates by kind
var kindStyles = map[string]lipgloss.Style{
	"keyword":       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	"enum-value":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	"literal-value": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
}
