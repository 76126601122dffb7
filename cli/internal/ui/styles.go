// Package ui is the line-oriented terminal layer: colored status lines,
// candidate rendering, prompted input, and a progress spinner.
package ui

import "github.com/charmbracelet/lipgloss"

// ANSI colors matching the classic blue/green/yellow/red status scheme.
const (
	ColorInfo    = lipgloss.Color("4")
	ColorSuccess = lipgloss.Color("2")
	ColorWarn    = lipgloss.Color("3")
	ColorError   = lipgloss.Color("1")
	ColorDim     = lipgloss.Color("8")
)

// Styles holds every lipgloss style the CLI prints with.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles builds the styles on r so color output follows r's terminal.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Info:    r.NewStyle().Foreground(ColorInfo),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Warn:    r.NewStyle().Foreground(ColorWarn),
		Error:   r.NewStyle().Foreground(ColorError),
		Heading: r.NewStyle().Foreground(ColorSuccess).Bold(true),
		Label:   r.NewStyle().Foreground(ColorInfo).Bold(true),
		Dim:     r.NewStyle().Foreground(ColorDim),
	}
}
