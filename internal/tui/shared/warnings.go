package shared

import (
	"fmt"
	"strings"

	"github.com/joe/ltfs2efu/internal/ltfs"
)

// RenderWarnings lists index warnings oldest first. If maxEntries > 0,
// only the most recent maxEntries are shown, preceded by a count of the
// hidden ones.
func RenderWarnings(warnings []ltfs.Warning, maxEntries int) string {
	if len(warnings) == 0 {
		return ""
	}

	start := 0
	if maxEntries > 0 && maxEntries < len(warnings) {
		start = len(warnings) - maxEntries
	}

	lines := make([]string, 0, len(warnings)-start+1)
	if start > 0 {
		lines = append(lines, RenderDim(fmt.Sprintf("... %d earlier", start)))
	}

	for _, w := range warnings[start:] {
		lines = append(lines, WarningStyle().Render(WarningSymbol())+" "+w.String())
	}

	return strings.Join(lines, "\n")
}
