package shared

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/ltfs2efu/internal/convert"
)

// eventBuffer is how many events may wait for the UI before new ones are dropped.
const eventBuffer = 100

// EngineEventMsg wraps a convert.Event for use as a tea.Msg.
type EngineEventMsg struct {
	Event convert.Event
}

// EventBridge adapts conversion events to bubble tea messages.
// It implements convert.EventEmitter and provides a channel for TUI consumption.
// Events are progress only: when the UI falls behind they are dropped, so
// the final outcome must travel separately (see ConversionDoneMsg).
type EventBridge struct {
	mu        sync.Mutex
	eventChan chan tea.Msg
	closed    bool
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, eventBuffer),
	}
}

// Emit implements convert.EventEmitter. It never blocks the conversion.
func (b *EventBridge) Emit(event convert.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	select {
	case b.eventChan <- EngineEventMsg{Event: event}:
	default:
	}
}

// Subscribe returns the event channel for receiving events.
func (b *EventBridge) Subscribe() <-chan tea.Msg {
	return b.eventChan
}

// ListenCmd returns a tea.Cmd that blocks until an event is received.
// Use this in Init() or after processing an event to continue listening.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil
		}

		return msg
	}
}

// Close closes the event channel. Later Emit calls are ignored.
func (b *EventBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}
