// Package convert runs one conversion: it loads an LTFS index, walks its
// directory tree and writes the EFU listing, reporting progress as events.
package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joe/ltfs2efu/internal/efu"
	"github.com/joe/ltfs2efu/internal/ltfs"
	"github.com/joe/ltfs2efu/pkg/fileops"
	"github.com/joe/ltfs2efu/pkg/filesystem"
)

// ProgressInterval is the number of records between RecordsProgress events.
const ProgressInterval = 500

// Exported variables.
var (
	ErrInvalidFilter = errors.New("invalid filter")
)

// Result summarizes a conversion.
type Result struct {
	// Files and Directories count the records the index produced.
	Files       int
	Directories int
	// Written is the number of records in the listing, Skipped the number
	// dropped by include/exclude patterns.
	Written  int
	Skipped  int
	Warnings []ltfs.Warning
	// Truncated is set when the index ended inside an open element.
	Truncated   bool
	InputBytes  int64
	OutputBytes int64
	Elapsed     time.Duration
}

// Engine converts one index into one listing.
type Engine struct {
	InputPath  string
	OutputPath string
	Separator  string
	MaxDepth   int
	Include    []string
	Exclude    []string
	FileOps    *fileops.FileOps
	Logger     *slog.Logger
	emitter    EventEmitter
	closeFunc  func()
}

// NewEngine creates an engine for the given input and output.
// Supports both local paths and SFTP URLs (sftp://user@host:port/path).
// Call Close when done to release remote connections.
func NewEngine(input, output string) (*Engine, error) {
	inputFS, outputFS, inPath, outPath, closer, err := filesystem.Endpoints(input, output)
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystems: %w", err)
	}

	engine := NewEngineWithFileOps(fileops.NewDualFileOps(inputFS, outputFS), inPath, outPath)
	engine.closeFunc = closer

	return engine, nil
}

// NewEngineWithFileOps creates an engine that reads and writes through ops.
func NewEngineWithFileOps(ops *fileops.FileOps, input, output string) *Engine {
	return &Engine{
		InputPath:  input,
		OutputPath: output,
		Separator:  ltfs.DefaultSeparator,
		MaxDepth:   ltfs.DefaultMaxDepth,
		FileOps:    ops,
		Logger:     slog.New(slog.DiscardHandler),
	}
}

// Close releases remote connections. Safe to call more than once.
func (e *Engine) Close() {
	if e.closeFunc != nil {
		e.closeFunc()
		e.closeFunc = nil
	}
}

// SetEventEmitter sets the event emitter for progress reporting.
// The emitter is optional - if nil, no events will be emitted.
func (e *Engine) SetEventEmitter(emitter EventEmitter) {
	e.emitter = emitter
}

// Run performs the conversion. The returned Result is never nil and holds
// whatever was counted before a failure. Output already written when a
// fatal error occurs is flushed and kept.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	result, err := e.run(ctx)
	result.Elapsed = time.Since(start)

	if err != nil {
		e.Logger.Error("conversion failed", "input", e.InputPath, "error", err)
		e.emit(ErrorOccurred{Err: err})

		return result, err
	}

	e.Logger.Info("conversion complete",
		"input", e.InputPath,
		"output", e.OutputPath,
		"files", result.Files,
		"directories", result.Directories,
		"written", result.Written,
		"warnings", len(result.Warnings),
		"elapsed", result.Elapsed,
	)
	e.emit(ConvertComplete{Result: result})

	return result, nil
}

func (e *Engine) run(ctx context.Context) (*Result, error) {
	result := &Result{}

	filter, err := efu.NewFilter(e.Include, e.Exclude, e.Separator)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	e.emit(LoadStarted{Path: e.InputPath, Compressed: fileops.IsCompressed(e.InputPath)})
	e.Logger.Debug("loading index", "path", e.InputPath)

	doc, stats, err := e.FileOps.LoadDocument(ctx, e.InputPath, func(read, total int64) {
		e.emit(LoadProgress{BytesRead: read, TotalBytes: total})
	})
	if err != nil {
		return result, err //nolint:wrapcheck // fileops errors already name the path
	}

	result.InputBytes = stats.Bytes
	e.emit(LoadComplete{Stats: stats})
	e.Logger.Info("index loaded",
		"path", e.InputPath,
		"bytes", stats.Bytes,
		"compressed", stats.Compressed,
		"elapsed", stats.ReadTime,
	)

	out, err := e.FileOps.CreateOutput(e.OutputPath)
	if err != nil {
		return result, err //nolint:wrapcheck // fileops errors already name the path
	}

	counter := fileops.NewCountingWriter(out)
	buffered := bufio.NewWriterSize(counter, fileops.BufferSize)
	writer := efu.NewWriter(buffered)
	sink := efu.NewFilteredSink(&cancelSink{ctx: ctx, next: writer}, filter)

	parseErr := writer.WriteHeader()
	if parseErr == nil {
		e.emit(ConvertStarted{Output: e.OutputPath})
		parseErr = e.parse(doc, sink, result)
	}

	flushErr := buffered.Flush()
	closeErr := out.Close()

	result.Written = writer.Records()
	result.Skipped = sink.Skipped()
	result.OutputBytes = counter.Count()

	switch {
	case parseErr != nil:
		return result, parseErr
	case flushErr != nil:
		return result, fmt.Errorf("failed to write %s: %w", e.OutputPath, flushErr)
	case closeErr != nil:
		return result, fmt.Errorf("%w %s: %w", fileops.ErrWriteOutput, e.OutputPath, closeErr)
	}

	return result, nil
}

func (e *Engine) parse(doc []byte, sink efu.RecordSink, result *Result) error {
	parsed, err := ltfs.Parse(doc, sink, ltfs.Options{
		Separator: e.Separator,
		MaxDepth:  e.MaxDepth,
		Emitter:   &parserEvents{engine: e},
		Logger:    e.Logger,
	})

	if parsed != nil {
		result.Files = parsed.Files
		result.Directories = parsed.Directories
		result.Warnings = parsed.Warnings
		result.Truncated = parsed.Truncated
	}

	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", e.InputPath, err)
	}

	return nil
}

// emit sends an event if an emitter is configured.
func (e *Engine) emit(event Event) {
	if e.emitter != nil {
		e.emitter.Emit(event)
	}
}

// cancelSink stops the walk once ctx is done.
type cancelSink struct {
	ctx  context.Context //nolint:containedctx // Scoped to a single Run
	next efu.RecordSink
}

func (s *cancelSink) WriteRecord(r efu.Record) error {
	if err := s.ctx.Err(); err != nil {
		return err //nolint:wrapcheck // The parser names the record
	}

	return s.next.WriteRecord(r) //nolint:wrapcheck // The parser names the record
}

// parserEvents translates parser events into conversion events.
type parserEvents struct {
	engine      *Engine
	files       int
	directories int
}

func (p *parserEvents) Emit(event ltfs.Event) {
	switch ev := event.(type) {
	case ltfs.DirectoryEntered:
		p.engine.emit(DirectoryEntered{Path: ev.Path, Depth: ev.Depth})
	case ltfs.RecordEmitted:
		if ev.Record.IsDir() {
			p.directories++
		} else {
			p.files++
		}

		if (p.files+p.directories)%ProgressInterval == 0 {
			p.engine.emit(RecordsProgress{Files: p.files, Directories: p.directories})
		}
	case ltfs.Warning:
		p.engine.emit(WarningRaised{Warning: ev})
	}
}
