package shared

import "github.com/charmbracelet/lipgloss"

// Layout, timing and key bindings for the progress screen.
const (
	DefaultPadding          = 2
	ProgressBarWidth        = 40
	MaxProgressBarWidth     = 100
	ProgressEllipsisLength  = 3
	ProgressPercentageScale = 100

	// MaxVisibleWarnings is how many warnings the progress screen lists.
	MaxVisibleWarnings = 5

	// TickIntervalMs drives the elapsed-time refresh.
	TickIntervalMs = 100

	KeyCtrlC = "ctrl+c"
	KeyQuit  = "q"
)

// Palette (256-color codes).
const (
	accentColorCode    = "62"
	dimColorCode       = "240"
	errorColorCode     = "196"
	highlightColorCode = "86"
	primaryColorCode   = "205"
	successColorCode   = "42"
	warningColorCode   = "226"
)

func PrimaryColor() lipgloss.Color { return lipgloss.Color(primaryColorCode) }
func SuccessColor() lipgloss.Color { return lipgloss.Color(successColorCode) }
func ErrorColor() lipgloss.Color   { return lipgloss.Color(errorColorCode) }

func foreground(code string, bold bool) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code)).Bold(bold)
}

// BoxStyle frames the warnings and failure sections.
func BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(accentColorCode)).
		Padding(0, 1)
}

func DimStyle() lipgloss.Style     { return foreground(dimColorCode, false) }
func LabelStyle() lipgloss.Style   { return foreground(highlightColorCode, true) }
func WarningStyle() lipgloss.Style { return foreground(warningColorCode, true) }

func RenderDim(text string) string     { return DimStyle().Render(text) }
func RenderLabel(text string) string   { return LabelStyle().Render(text) }
func RenderError(text string) string   { return foreground(errorColorCode, true).Render(text) }
func RenderSuccess(text string) string { return foreground(successColorCode, true).Render(text) }
func RenderTitle(text string) string   { return foreground(primaryColorCode, true).Render(text) }
