// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Gutters, hints

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#E1A100", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Diff lines
	DiffAddColor    = lipgloss.AdaptiveColor{Light: "#2E8B57", Dark: "#73F59F"}
	DiffDeleteColor = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF8787"}
	DiffHunkColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}

	TitleStyle      = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	DirtyStyle      = lipgloss.NewStyle().Bold(true).Foreground(StatusWarningColor)
	GutterStyle     = lipgloss.NewStyle().Foreground(TextMutedColor)
	HintStyle       = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	HistoryStyle    = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	HistoryTopStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)

	DiffAddStyle    = lipgloss.NewStyle().Foreground(DiffAddColor)
	DiffDeleteStyle = lipgloss.NewStyle().Foreground(DiffDeleteColor)
	DiffHunkStyle   = lipgloss.NewStyle().Foreground(DiffHunkColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().Foreground(BorderFocusColor).Bold(true)
)
