package ltfs

import (
	"errors"
	"fmt"
)

// Exported variables.
var (
	// ErrMalformed is matched by every ParseError caused by an expected literal
	// that is missing from the document.
	ErrMalformed = errors.New("malformed index document")
	// ErrTooDeep is matched by ParseErrors raised when directory nesting
	// exceeds Options.MaxDepth.
	ErrTooDeep = errors.New("directory nesting too deep")
)

// Kind classifies a fatal parse failure.
type Kind int

// Parse failure kinds.
const (
	// KindUnexpected means a literal was required at the cursor but something else was found.
	KindUnexpected Kind = iota + 1
	// KindNotFound means a literal was required somewhere after the cursor and never appeared.
	KindNotFound
	// KindTooDeep means directory nesting exceeded the configured limit.
	KindTooDeep
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindUnexpected:
		return "unexpected"
	case KindNotFound:
		return "not-found"
	case KindTooDeep:
		return "too-deep"
	default:
		return "unknown"
	}
}

// ParseError is a fatal conversion failure. Context holds the document text
// at Offset, cut at the first line break, so the message shows the offending line.
type ParseError struct {
	Kind    Kind
	Want    string
	Offset  int
	Context string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case KindUnexpected:
		return fmt.Sprintf("expected %s at offset %d, got %q", e.Want, e.Offset, e.Context)
	case KindNotFound:
		return fmt.Sprintf("unable to find %s after offset %d (near %q)", e.Want, e.Offset, e.Context)
	case KindTooDeep:
		return fmt.Sprintf("directory nesting exceeds %s levels at offset %d (near %q)", e.Want, e.Offset, e.Context)
	default:
		return fmt.Sprintf("parse error at offset %d", e.Offset)
	}
}

// Unwrap lets errors.Is match ErrMalformed or ErrTooDeep.
func (e *ParseError) Unwrap() error {
	if e.Kind == KindTooDeep {
		return ErrTooDeep
	}

	return ErrMalformed
}

// maxContextLen bounds the snippet copied into a ParseError.
const maxContextLen = 255

// contextAt returns up to maxContextLen bytes of doc starting at pos,
// stopping at the first line break.
func contextAt(doc []byte, pos int) string {
	if pos < 0 || pos >= len(doc) {
		return ""
	}

	end := pos
	for end < len(doc) && end-pos < maxContextLen {
		if doc[end] == '\n' || (doc[end] == '\r' && end+1 < len(doc) && doc[end+1] == '\n') {
			break
		}
		end++
	}

	return string(doc[pos:end])
}

func newParseError(kind Kind, want string, doc []byte, pos int) *ParseError {
	return &ParseError{
		Kind:    kind,
		Want:    want,
		Offset:  pos,
		Context: contextAt(doc, pos),
	}
}
