package tui

import (
	"fmt"
	"strings"

	"github.com/joe/ltfs2efu/internal/config"
	"github.com/joe/ltfs2efu/internal/tui/shared"
)

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(shared.RenderTitle(config.ProgramName+" "+config.Version) + "\n")
	b.WriteString(shared.RenderDim(m.input+" -> "+m.output) + "\n\n")
	b.WriteString(shared.RenderTimeline(m.phase) + "\n\n")

	switch {
	case m.done && m.err != nil:
		b.WriteString(m.renderFailure())
	case m.done:
		b.WriteString(m.renderSummary())
	default:
		b.WriteString(m.renderRunning())
	}

	if warnings := shared.RenderWarnings(m.warnings, shared.MaxVisibleWarnings); warnings != "" {
		title := fmt.Sprintf("Warnings (%d)", len(m.warnings))
		b.WriteString("\n" + shared.RenderWidgetBox(title, warnings, m.width) + "\n")
	}

	if !m.done {
		b.WriteString("\n" + shared.RenderDim("ctrl+c to cancel") + "\n")
	}

	return b.String()
}

func (m *Model) renderRunning() string {
	var b strings.Builder

	elapsed := shared.FormatDuration(m.now.Sub(m.started))

	switch {
	case m.cancelled:
		fmt.Fprintf(&b, "%s Cancelling...\n", m.spinner.View())
	case m.phase == shared.PhaseLoad:
		what := "Reading index"
		if m.compressed {
			what = "Reading compressed index"
		}

		fmt.Fprintf(&b, "%s %s  %s\n", m.spinner.View(), what, shared.RenderDim(elapsed))
		b.WriteString("  " + shared.RenderLoadProgress(m.progress, m.bytesRead, m.totalBytes) + "\n")
	default:
		fmt.Fprintf(&b, "%s Writing listing  %s\n", m.spinner.View(), shared.RenderDim(elapsed))
		fmt.Fprintf(&b, "  %s %d   %s %d\n",
			shared.RenderLabel("files"), m.files, shared.RenderLabel("directories"), m.dirs)

		if m.currentDir != "" {
			b.WriteString("  " + shared.RenderDim(m.truncate(m.currentDir)) + "\n")
		}
	}

	return b.String()
}

func (m *Model) renderSummary() string {
	var b strings.Builder

	r := m.result

	b.WriteString(shared.RenderSuccess(shared.SuccessSymbol()+" Listing written") + "\n")

	if r == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "  %s %d   %s %d   %s %d\n",
		shared.RenderLabel("records"), r.Written,
		shared.RenderLabel("files"), r.Files,
		shared.RenderLabel("directories"), r.Directories)

	if r.Skipped > 0 {
		fmt.Fprintf(&b, "  %s %d\n", shared.RenderLabel("skipped"), r.Skipped)
	}

	fmt.Fprintf(&b, "  %s in, %s out, %s\n",
		shared.FormatBytes(r.InputBytes), shared.FormatBytes(r.OutputBytes), shared.FormatDuration(r.Elapsed))

	if m.loadTime > 0 {
		fmt.Fprintf(&b, "  %s\n", shared.RenderDim("read at "+shared.FormatRate(m.bytesRead, m.loadTime)))
	}

	if r.Truncated {
		b.WriteString("  " + shared.WarningStyle().Render("index ended early; the listing may be incomplete") + "\n")
	}

	return b.String()
}

func (m *Model) renderFailure() string {
	return shared.RenderFailure(m.err, m.input, m.width)
}

// truncate shortens a path from the left to fit the screen.
func (m *Model) truncate(path string) string {
	limit := m.width - 2*shared.DefaultPadding
	if limit <= shared.ProgressEllipsisLength || len(path) <= limit {
		return path
	}

	return "..." + path[len(path)-limit+shared.ProgressEllipsisLength:]
}
