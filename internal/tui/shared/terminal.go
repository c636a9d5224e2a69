package shared

import "os"

// Set once at startup from the environment. NO_COLOR disables colors,
// TERM=dumb disables colors and non-ASCII symbols.
//
//nolint:gochecknoglobals // Terminal capabilities do not change during a run
var (
	colorsDisabled  = os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb"
	unicodeDisabled = os.Getenv("TERM") == "dumb"
)

// ErrorSymbol returns a cross with ASCII fallback
func ErrorSymbol() string {
	if unicodeDisabled {
		return "[x]"
	}

	return "✗"
}

// PendingSymbol returns an empty circle with ASCII fallback
func PendingSymbol() string {
	if unicodeDisabled {
		return "[ ]"
	}

	return "○"
}

// SuccessSymbol returns a check mark with ASCII fallback
func SuccessSymbol() string {
	if unicodeDisabled {
		return "[v]"
	}

	return "✓"
}

// WarningSymbol returns a warning sign with ASCII fallback
func WarningSymbol() string {
	if unicodeDisabled {
		return "[w]"
	}

	return "⚠"
}
