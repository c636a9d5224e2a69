package convert

import (
	"github.com/joe/ltfs2efu/internal/ltfs"
	"github.com/joe/ltfs2efu/pkg/fileops"
)

// Event is the interface implemented by all conversion events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// Load phase events

// LoadStarted is emitted before the index is opened.
type LoadStarted struct {
	Path       string
	Compressed bool
}

func (LoadStarted) isEvent() {}

// LoadProgress is emitted as the index file is read.
type LoadProgress struct {
	BytesRead  int64
	TotalBytes int64
}

func (LoadProgress) isEvent() {}

// LoadComplete is emitted once the whole index is in memory.
type LoadComplete struct {
	Stats *fileops.LoadStats
}

func (LoadComplete) isEvent() {}

// Convert phase events

// ConvertStarted is emitted after the listing header is written.
type ConvertStarted struct {
	Output string
}

func (ConvertStarted) isEvent() {}

// DirectoryEntered is emitted when the walker names a directory.
type DirectoryEntered struct {
	Path  string
	Depth int
}

func (DirectoryEntered) isEvent() {}

// RecordsProgress is emitted every ProgressInterval records.
type RecordsProgress struct {
	Files       int
	Directories int
}

func (RecordsProgress) isEvent() {}

// WarningRaised is emitted for each non-fatal index problem.
type WarningRaised struct {
	Warning ltfs.Warning
}

func (WarningRaised) isEvent() {}

// ConvertComplete is emitted when the listing has been written and closed.
type ConvertComplete struct {
	Result *Result
}

func (ConvertComplete) isEvent() {}

// ErrorOccurred is emitted when the conversion stops on an error.
type ErrorOccurred struct {
	Err error
}

func (ErrorOccurred) isEvent() {}
