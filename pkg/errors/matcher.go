package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
// Categories are tried in order; the first match wins.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		rules: []categoryPatterns{
			{CategoryPermission, []string{
				"permission denied",
				"access denied",
				"operation not permitted",
			}},
			{CategoryDiskSpace, []string{
				"no space left on device",
				"disk full",
				"quota exceeded",
				"short write",
			}},
			{CategoryTooLarge, []string{
				"too large",
				"exceeds available memory",
			}},
			{CategoryTruncated, []string{
				"missing </",
				"unexpected eof",
				"short read",
			}},
			{CategoryMalformed, []string{
				"unable to find",
				"expected ",
				"malformed",
				"nesting exceeds",
				"gzip: invalid header",
			}},
			{CategoryPath, []string{
				"no such file or directory",
				"file does not exist",
				"file not found",
				"is a directory",
			}},
			{CategoryRemote, []string{
				"ssh:",
				"sftp",
				"connection refused",
				"no route to host",
				"i/o timeout",
			}},
		},
	}
}

type categoryPatterns struct {
	category ErrorCategory
	patterns []string
}

type patternMatcher struct {
	rules []categoryPatterns
}

// Match returns the error category based on pattern matching.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, rule := range m.rules {
		for _, pattern := range rule.patterns {
			if strings.Contains(lowerMsg, pattern) {
				return rule.category
			}
		}
	}

	return CategoryUnknown
}
