// Package styles holds the lipgloss theme and small rendering helpers
// shared by the CLI commands and the popup.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors adapt to the terminal background: Light is used on light
// terminals, Dark on dark ones.
var (
	colorText    = lipgloss.AdaptiveColor{Light: "#1c1917", Dark: "#f5f5f4"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#78716c", Dark: "#a8a29e"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#2dd4bf"}
	colorBorder  = lipgloss.AdaptiveColor{Light: "#d6d3d1", Dark: "#44403c"}
	colorRaised  = lipgloss.AdaptiveColor{Light: "#e7e5e4", Dark: "#292524"}
	colorInverse = lipgloss.AdaptiveColor{Light: "#fafaf9", Dark: "#0c0a09"}
	colorError   = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#fbbf24"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "#15803d", Dark: "#4ade80"}
)

type Theme struct {
	Text           lipgloss.TerminalColor
	Accent         lipgloss.TerminalColor
	Border         lipgloss.TerminalColor
	SurfaceVariant lipgloss.TerminalColor

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	// Section frames an unfocused popup panel; SectionFocused the focused one.
	Section        lipgloss.Style
	SectionFocused lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

func NewTheme() *Theme {
	section := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	badge := lipgloss.NewStyle().Padding(0, 1)

	return &Theme{
		Text:           colorText,
		Accent:         colorAccent,
		Border:         colorBorder,
		SurfaceVariant: colorRaised,

		Title:        lipgloss.NewStyle().Foreground(colorText).Bold(true),
		Subtitle:     lipgloss.NewStyle().Foreground(colorMuted).Bold(true),
		Subtle:       lipgloss.NewStyle().Foreground(colorMuted),
		Highlight:    lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		ErrorStyle:   lipgloss.NewStyle().Foreground(colorError),
		WarningStyle: lipgloss.NewStyle().Foreground(colorWarning),
		SuccessStyle: lipgloss.NewStyle().Foreground(colorSuccess),

		Section:        section,
		SectionFocused: section.BorderForeground(colorAccent),

		Badge:      badge.Foreground(colorInverse).Background(colorAccent),
		BadgeMuted: badge.Foreground(colorText).Background(colorRaised),

		HelpKey:  lipgloss.NewStyle().Foreground(colorAccent),
		HelpDesc: lipgloss.NewStyle().Foreground(colorMuted),
	}
}
