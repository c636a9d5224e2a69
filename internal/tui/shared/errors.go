package shared

import (
	"fmt"
	"strings"

	"github.com/joe/ltfs2efu/pkg/errors"
)

// RenderFailure renders a failed conversion with actionable suggestions.
// path names the file the failure most likely concerns and may be empty.
// Messages longer than maxWidth are cut when maxWidth > 0.
func RenderFailure(err error, path string, maxWidth int) string {
	if err == nil {
		return ""
	}

	enriched := errors.NewEnricher().Enrich(err, path)

	errMsg := enriched.Error()
	if maxWidth > ProgressEllipsisLength && len(errMsg) > maxWidth {
		errMsg = errMsg[:maxWidth-ProgressEllipsisLength] + "..."
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "%s %s\n", ErrorSymbol(), RenderError(errMsg))

	if suggestions := errors.FormatSuggestions(enriched); suggestions != "" {
		builder.WriteString("\n")
		builder.WriteString(suggestions)
		builder.WriteString("\n")
	}

	return builder.String()
}
