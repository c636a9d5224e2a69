package shared

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/ltfs2efu/internal/convert"
)

// ConversionDoneMsg is sent once the engine's Run has returned.
type ConversionDoneMsg struct {
	Result *convert.Result
	Err    error
}

// TickMsg refreshes the elapsed time while a conversion runs.
type TickMsg time.Time

// TickCmd schedules the next TickMsg.
func TickCmd() tea.Cmd {
	return tea.Tick(TickIntervalMs*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
