// Package errors turns conversion failures into categorized errors with
// suggestions a user can act on.
//
// Failures are matched by message against known patterns (a malformed
// index, a truncated tape dump, a lost SFTP session, a full disk) and
// paired with advice for that category.
//
// Basic Usage:
//
//	enricher := errors.NewEnricher()
//	if err := engine.Run(ctx); err != nil {
//	    enriched := enricher.Enrich(err, cfg.Input)
//	    fmt.Println(enriched.Error())
//	    fmt.Println(errors.FormatSuggestions(enriched))
//	}
//
// When no path is given, the enricher looks for one in the message:
//
//	err := errors.New("open /tapes/index.xml: permission denied")
//	enriched := enricher.Enrich(err, "") // AffectedPath() == "/tapes/index.xml"
package errors

import "strings"

// Exported constants.
const (
	CategoryDiskSpace  ErrorCategory = "disk_space"
	CategoryMalformed  ErrorCategory = "malformed_input"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryRemote     ErrorCategory = "remote"
	CategoryTooLarge   ErrorCategory = "too_large"
	CategoryTruncated  ErrorCategory = "truncated"
	CategoryUnknown    ErrorCategory = "unknown"
)

// ActionableError is a failure paired with a category and advice.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// ErrorCategory names a family of failures that share advice.
type ErrorCategory string

// NewActionableError builds an ActionableError from a bare message.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		message:     originalError,
		category:    category,
		suggestions: suggestions,
		path:        affectedPath,
	}
}

// Wrap builds an ActionableError that keeps cause reachable through
// errors.Is and errors.As, so exit-code mapping still sees the sentinel.
func Wrap(cause error, category ErrorCategory, suggestions []string, affectedPath string) ActionableError {
	return &actionableError{
		message:     cause.Error(),
		cause:       cause,
		category:    category,
		suggestions: suggestions,
		path:        affectedPath,
	}
}

// FormatSuggestions renders the suggestions of err as an indented bullet
// list, or "" when err carries none.
func FormatSuggestions(err error) string {
	actionable, ok := err.(ActionableError)
	if !ok || len(actionable.Suggestions()) == 0 {
		return ""
	}

	lines := make([]string, 0, len(actionable.Suggestions()))
	for _, suggestion := range actionable.Suggestions() {
		lines = append(lines, "  • "+suggestion)
	}

	return strings.Join(lines, "\n")
}

type actionableError struct {
	message     string
	cause       error
	category    ErrorCategory
	suggestions []string
	path        string
}

func (e *actionableError) Error() string           { return e.message }
func (e *actionableError) Unwrap() error           { return e.cause }
func (e *actionableError) OriginalError() string   { return e.message }
func (e *actionableError) Category() ErrorCategory { return e.category }
func (e *actionableError) Suggestions() []string   { return e.suggestions }
func (e *actionableError) AffectedPath() string    { return e.path }
