package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Phase keys understood by RenderTimeline.
const (
	PhaseLoad    = "load"
	PhaseConvert = "convert"
	PhaseDone    = "done"
)

// ActiveSymbol returns a circled dot symbol with ASCII fallback
func ActiveSymbol() string {
	if unicodeDisabled {
		return "[*]"
	}

	return "◉"
}

// CancelledSymbol returns a cancelled/prohibited symbol with ASCII fallback
func CancelledSymbol() string {
	if unicodeDisabled {
		return "[!]"
	}

	return "⊘"
}

// RenderTimeline renders the phase progression for the header:
// Load ── Convert ── Done. Phases before the current one are complete,
// later ones pending. A phase key with an "_error" suffix marks where the
// run failed; later phases then show as skipped.
func RenderTimeline(currentPhase string) string {
	phase := strings.ToLower(strings.TrimSpace(currentPhase))

	isError := strings.HasSuffix(phase, "_error")
	if isError {
		phase = strings.TrimSuffix(phase, "_error")
	}

	phases := []struct {
		name string
		key  string
	}{
		{"Load", PhaseLoad},
		{"Convert", PhaseConvert},
		{"Done", PhaseDone},
	}

	currentIdx := 0

	for i, p := range phases {
		if p.key == phase {
			currentIdx = i
			break
		}
	}

	parts := make([]string, 0, len(phases))

	for idx, p := range phases {
		var (
			symbol string
			style  lipgloss.Style
		)

		switch {
		case isError && idx == currentIdx:
			symbol = ErrorSymbol()
			style = lipgloss.NewStyle().Foreground(ErrorColor())
		case isError && idx > currentIdx:
			symbol = CancelledSymbol()
			style = DimStyle()
		case idx < currentIdx, idx == currentIdx && idx == len(phases)-1:
			symbol = SuccessSymbol()
			style = lipgloss.NewStyle().Foreground(SuccessColor())
		case idx == currentIdx:
			symbol = ActiveSymbol()
			style = lipgloss.NewStyle().Foreground(PrimaryColor())
		default:
			symbol = PendingSymbol()
			style = DimStyle()
		}

		parts = append(parts, style.Render(symbol+" "+p.name))
	}

	return strings.Join(parts, DimStyle().Render(" ── "))
}
