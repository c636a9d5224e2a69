// Package ltfs reads the index document written to Linear Tape File System
// cartridges and turns its nested <directory> and <file> elements into flat
// listing records with full paths.
//
// The reader is deliberately not an XML parser. It understands only the
// handful of elements an index uses to describe the tree, skips every other
// tag, and never looks at attributes. The document buffer is read in place
// and never modified, so the same buffer may be parsed any number of times.
//
// Basic Usage:
//
//	w := efu.NewWriter(out)
//	_ = w.WriteHeader()
//	result, err := ltfs.Parse(doc, w, ltfs.Options{})
package ltfs

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/joe/ltfs2efu/internal/efu"
)

// DefaultMaxDepth bounds directory nesting (and therefore recursion).
const DefaultMaxDepth = 1024

// Options configures Parse. The zero value is usable.
type Options struct {
	// Separator joins path components. Defaults to DefaultSeparator.
	Separator string
	// MaxDepth is the deepest directory nesting accepted. Defaults to DefaultMaxDepth.
	MaxDepth int
	// Emitter receives progress events. May be nil.
	Emitter EventEmitter
	// Logger receives debug and warning logs. May be nil.
	Logger *slog.Logger
}

// Result summarizes a completed parse.
type Result struct {
	Files       int
	Directories int
	Warnings    []Warning
	// Truncated is set when an element was still open at end of input.
	Truncated bool
}

// Parse checks the prolog of doc and walks its directory tree, handing one
// record to sink per named file and per named directory that reaches a
// <contents> marker. Records reach the sink in document order.
//
// Malformed input aborts with a *ParseError; records already written stay
// written. An element left open at end of input is a warning, not an error.
func Parse(doc []byte, sink efu.RecordSink, opts Options) (*Result, error) {
	start, err := ScanProlog(doc)
	if err != nil {
		return nil, err
	}

	p := newParser(doc, sink, opts)

	_, _, err = p.walkDirectory(start, "", 0)
	if err != nil {
		return p.result, err
	}

	return p.result, nil
}

type parser struct {
	doc     []byte
	sink    efu.RecordSink
	sep     string
	limit   int
	emitter EventEmitter
	logger  *slog.Logger
	result  *Result
}

func newParser(doc []byte, sink efu.RecordSink, opts Options) *parser {
	p := &parser{
		doc:     doc,
		sink:    sink,
		sep:     opts.Separator,
		limit:   opts.MaxDepth,
		emitter: opts.Emitter,
		logger:  opts.Logger,
		result:  &Result{},
	}

	if p.sep == "" {
		p.sep = DefaultSeparator
	}
	if p.limit <= 0 {
		p.limit = DefaultMaxDepth
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}

	return p
}

// walkDirectory consumes one directory's children starting at pos, up to and
// including its </directory>. The root of the document is walked as a
// directory with an empty path.
//
// It returns ok=false when the input ran out before the directory closed;
// callers stop walking their own directory when that happens.
//
//nolint:cyclop,funlen // One case per recognized element
func (p *parser) walkDirectory(pos int, parent string, depth int) (int, bool, error) {
	if depth > p.limit {
		return 0, false, newParseError(KindTooDeep, strconv.Itoa(p.limit), p.doc, pos)
	}

	var (
		entry = efu.Record{Attributes: efu.AttrDirectory}
		named bool
		path  = parent
	)

	for pos < len(p.doc) {
		start := findTagStart(p.doc, pos)
		if start < 0 {
			if depth > 0 {
				p.truncated("missing </directory>", path, pos)
			}

			return 0, false, nil
		}

		t, next, err := splitTag(p.doc, start+1)
		if err != nil {
			return 0, false, err
		}

		switch {
		case matchTag(t, tagName) && !t.empty:
			value, after, err := captureValue(p.doc, t, next)
			if err != nil {
				return 0, false, err
			}

			named = true
			path = JoinPath(parent, value, p.sep)
			p.logger.Debug("directory", "path", path, "depth", depth)
			p.emit(DirectoryEntered{Path: path, Depth: depth})
			pos = after

		case matchTag(t, tagReadOnly):
			value, after, err := captureValue(p.doc, t, next)
			if err != nil {
				return 0, false, err
			}

			if value == valueTrue {
				entry.Attributes |= efu.AttrReadOnly
			}
			pos = after

		case matchTag(t, tagCreationTime):
			value, after, err := captureValue(p.doc, t, next)
			if err != nil {
				return 0, false, err
			}

			entry.Created = value
			pos = after

		case matchTag(t, tagModifyTime):
			value, after, err := captureValue(p.doc, t, next)
			if err != nil {
				return 0, false, err
			}

			entry.Modified = value
			pos = after

		case matchTag(t, tagDirectory):
			pos = next
			if t.empty {
				continue
			}

			after, ok, err := p.walkDirectory(next, path, depth+1)
			if err != nil || !ok {
				return 0, false, err
			}
			pos = after

		case matchTag(t, tagContents):
			if named {
				entry.Path = path
				if err := p.write(entry); err != nil {
					return 0, false, err
				}
			} else {
				p.warn("contents with no name", path, start)
			}
			pos = next

		case matchTag(t, tagFile):
			pos = next
			if t.empty {
				continue
			}

			after, ok, err := p.walkFile(next, path)
			if err != nil {
				return 0, false, err
			}
			if !ok {
				p.truncated("missing </file>", path, start)
				return 0, false, nil
			}
			pos = after

		case matchTag(t, closeDirectory):
			return next, true, nil

		default:
			pos = next
		}
	}

	return pos, true, nil
}

// walkFile consumes one file's fields up to and including </file>. The
// record is written even when the input runs out first, as long as the file
// was named; ok=false tells the caller the file never closed.
func (p *parser) walkFile(pos int, parent string) (int, bool, error) {
	var (
		entry efu.Record
		named bool
		ok    = true
	)

scan:
	for pos < len(p.doc) {
		start := findTagStart(p.doc, pos)
		if start < 0 {
			ok = false
			break
		}

		t, next, err := splitTag(p.doc, start+1)
		if err != nil {
			return 0, false, err
		}

		var field *string

		switch {
		case matchTag(t, tagName) && !t.empty:
			field = &entry.Path
			named = true
		case matchTag(t, tagLength):
			field = &entry.Size
		case matchTag(t, tagCreationTime):
			field = &entry.Created
		case matchTag(t, tagModifyTime):
			field = &entry.Modified
		case matchTag(t, tagReadOnly):
			value, after, err := captureValue(p.doc, t, next)
			if err != nil {
				return 0, false, err
			}

			if value == valueTrue {
				entry.Attributes |= efu.AttrReadOnly
			}
			pos = after

			continue
		case matchTag(t, closeFile):
			pos = next
			break scan
		default:
			pos = next
			continue
		}

		value, after, err := captureValue(p.doc, t, next)
		if err != nil {
			return 0, false, err
		}

		*field = value
		pos = after
	}

	if named {
		entry.Path = JoinPath(parent, entry.Path, p.sep)
		if err := p.write(entry); err != nil {
			return 0, false, err
		}
	}

	return pos, ok, nil
}

func (p *parser) write(r efu.Record) error {
	if err := p.sink.WriteRecord(r); err != nil {
		return fmt.Errorf("failed to write record for %s: %w", r.Path, err)
	}

	if r.IsDir() {
		p.result.Directories++
	} else {
		p.result.Files++
	}

	p.emit(RecordEmitted{Record: r})

	return nil
}

func (p *parser) warn(message, path string, offset int) {
	w := Warning{Message: message, Path: path, Offset: offset}
	p.result.Warnings = append(p.result.Warnings, w)
	p.logger.Warn(message, "path", path, "offset", offset)
	p.emit(w)
}

func (p *parser) truncated(message, path string, offset int) {
	p.result.Truncated = true
	p.warn(message, path, offset)
}

func (p *parser) emit(event Event) {
	if p.emitter != nil {
		p.emitter.Emit(event)
	}
}
