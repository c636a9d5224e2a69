package efu

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RecordSink receives records in document order.
type RecordSink interface {
	WriteRecord(r Record) error
}

// Filter decides which records reach the listing. Patterns are doublestar
// globs matched case-insensitively against the record path with every
// separator turned into '/'.
type Filter struct {
	include   []string
	exclude   []string
	separator string
}

// NewFilter validates the patterns and returns a Filter. An empty include
// list includes everything; exclusions always win.
func NewFilter(include, exclude []string, separator string) (*Filter, error) {
	normalize := func(patterns []string) ([]string, error) {
		out := make([]string, 0, len(patterns))
		for _, pattern := range patterns {
			normalized := strings.ToLower(pattern)
			if !doublestar.ValidatePattern(normalized) {
				return nil, fmt.Errorf("invalid glob pattern: %s", pattern) //nolint:err113 // Validation error with the offending pattern
			}
			out = append(out, normalized)
		}

		return out, nil
	}

	inc, err := normalize(include)
	if err != nil {
		return nil, err
	}

	exc, err := normalize(exclude)
	if err != nil {
		return nil, err
	}

	return &Filter{include: inc, exclude: exc, separator: separator}, nil
}

// IsEmpty reports whether the filter passes every record.
func (f *Filter) IsEmpty() bool {
	return f == nil || (len(f.include) == 0 && len(f.exclude) == 0)
}

// ShouldInclude returns true if a record with the given path belongs in the listing.
func (f *Filter) ShouldInclude(path string) bool {
	if f.IsEmpty() {
		return true
	}

	normalized := strings.ToLower(path)
	if f.separator != "" && f.separator != "/" {
		normalized = strings.ReplaceAll(normalized, f.separator, "/")
	}

	for _, pattern := range f.exclude {
		if doublestar.MatchUnvalidated(pattern, normalized) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}

	for _, pattern := range f.include {
		if doublestar.MatchUnvalidated(pattern, normalized) {
			return true
		}
	}

	return false
}

// FilteredSink forwards only the records its filter includes.
type FilteredSink struct {
	next    RecordSink
	filter  *Filter
	skipped int
}

// NewFilteredSink wraps next with filter. A nil or empty filter forwards everything.
func NewFilteredSink(next RecordSink, filter *Filter) *FilteredSink {
	return &FilteredSink{next: next, filter: filter}
}

// Skipped returns how many records the filter dropped.
func (s *FilteredSink) Skipped() int {
	return s.skipped
}

// WriteRecord implements RecordSink.
func (s *FilteredSink) WriteRecord(r Record) error {
	if !s.filter.ShouldInclude(r.Path) {
		s.skipped++
		return nil
	}

	return s.next.WriteRecord(r)
}
