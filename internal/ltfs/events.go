package ltfs

import "github.com/joe/ltfs2efu/internal/efu"

// Event is the interface implemented by all parser events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// DirectoryEntered is emitted when a directory receives its name.
type DirectoryEntered struct {
	Path  string
	Depth int
}

func (DirectoryEntered) isEvent() {}

// RecordEmitted is emitted after a record has been handed to the sink.
type RecordEmitted struct {
	Record efu.Record
}

func (RecordEmitted) isEvent() {}

// Warning is a non-fatal problem with the index. Parsing continues.
type Warning struct {
	Message string
	Path    string
	Offset  int
}

func (Warning) isEvent() {}

// String formats the warning for display.
func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}

	return w.Message + " in " + w.Path
}
