package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/ltfs2efu/internal/convert"
)

// ErrUnexpectedModel is returned if the program ends with a foreign model.
var ErrUnexpectedModel = errors.New("progress screen returned an unexpected model")

// Run shows the progress screen on out while runner converts input into
// output, and returns the conversion's own result and error.
func Run(ctx context.Context, runner Runner, input, output string, out io.Writer) (*convert.Result, error) {
	model := NewModel(ctx, runner, input, output)

	program := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(out))

	final, err := program.Run()
	if err != nil && model.done {
		// The screen failed after the run finished; its outcome still stands.
		return model.Result(), model.Err()
	}

	if err != nil {
		model.cancel()
		return nil, fmt.Errorf("progress screen failed: %w", err)
	}

	finished, ok := final.(*Model)
	if !ok {
		return nil, ErrUnexpectedModel
	}

	return finished.Result(), finished.Err()
}
