package shared

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// NewProgressModel creates a progress bar with the screen's colors.
func NewProgressModel(width int) progress.Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = width
	bar.ShowPercentage = false

	if !colorsDisabled {
		bar.EmptyColor = dimColorCode
		bar.FullColor = accentColorCode
	}

	return bar
}

// RenderASCIIProgress renders a progress bar in ASCII format.
// percent should be between 0.0 and 1.0, width is the total width of the bar.
// Returns a string like: "[=========>          ] 45%"
func RenderASCIIProgress(percent float64, width int) string {
	percent = min(max(percent, 0), 1)
	filled := int(percent * float64(width))

	var bar strings.Builder

	bar.WriteString("[")

	switch {
	case filled >= width:
		bar.WriteString(strings.Repeat("=", width))
	case percent > 0:
		equals := max(0, filled-1)
		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", width-equals-1))
	default:
		bar.WriteString(strings.Repeat(" ", width))
	}

	bar.WriteString("]")

	return fmt.Sprintf("%s %d%%", bar.String(), int(percent*ProgressPercentageScale))
}

// RenderLoadProgress renders how much of the index has been read, using the
// styled bar or the ASCII fallback when colors are disabled. An unknown
// total renders the byte count alone.
func RenderLoadProgress(model progress.Model, read, total int64) string {
	if total <= 0 {
		return FormatBytes(read) + " read"
	}

	percent := float64(read) / float64(total)
	counts := fmt.Sprintf("%s / %s", FormatBytes(read), FormatBytes(total))

	if colorsDisabled {
		return RenderASCIIProgress(percent, model.Width) + "  " + counts
	}

	return fmt.Sprintf("%s %3d%%  %s", model.ViewAs(percent), int(percent*ProgressPercentageScale), counts)
}
