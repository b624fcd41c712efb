// Package output provides styled terminal rendering helpers for curriculumwatch.
package output

import "github.com/charmbracelet/lipgloss"

// Color constants for consistent styling across the CLI. The palette
// matches the dashboard frontend so terminal and web reports read the
// same way.
var (
	// ColorPrimary is used for headers, table headings, and the Good tier.
	ColorPrimary = lipgloss.Color("#3B82F6")

	// ColorSuccess is used for improvements and the Excellent tier.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is used for regressions and the Critical tier.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is used for the NeedsImprovement tier.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#94A3B8")

	// ColorWhite is used for primary text.
	ColorWhite = lipgloss.Color("#F1F5F9")
)

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for negative values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for cautionary values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleLabel is used for metric labels.
	StyleLabel = lipgloss.NewStyle().
			Width(24)

	// StyleValue is used for metric values.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Width(12)
)

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(24)
		StyleValue = plain.Width(12)
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}
