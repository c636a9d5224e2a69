package shared_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/ltfs2efu/internal/convert"
	"github.com/joe/ltfs2efu/internal/tui/shared"
)

// TestEventBridge_ImplementsEventEmitter verifies the bridge implements EventEmitter.
func TestEventBridge_ImplementsEventEmitter(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	var emitter convert.EventEmitter = bridge
	g.Expect(emitter).ToNot(BeNil())
}

// TestEventBridge_EmitSendsToChan verifies events are sent to the channel.
func TestEventBridge_EmitSendsToChan(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	eventChan := bridge.Subscribe()

	bridge.Emit(convert.LoadStarted{Path: "TAPE01.xml"})

	select {
	case msg := <-eventChan:
		eventMsg, ok := msg.(shared.EngineEventMsg)
		g.Expect(ok).To(BeTrue(), "Expected EngineEventMsg")

		started, ok := eventMsg.Event.(convert.LoadStarted)
		g.Expect(ok).To(BeTrue(), "Expected LoadStarted event")
		g.Expect(started.Path).To(Equal("TAPE01.xml"))
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timed out waiting for event")
	}
}

// TestEventBridge_DropsWhenFull verifies Emit never blocks.
func TestEventBridge_DropsWhenFull(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	defer bridge.Close()

	for i := range 500 {
		bridge.Emit(convert.RecordsProgress{Files: i})
	}

	g.Expect(len(bridge.Subscribe())).To(Equal(100))

	first := bridge.ListenCmd()()
	g.Expect(first).To(Equal(shared.EngineEventMsg{Event: convert.RecordsProgress{Files: 0}}))
}

// TestEventBridge_Close verifies listeners see the close and late events are ignored.
func TestEventBridge_Close(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	bridge := shared.NewEventBridge()
	bridge.Close()
	bridge.Close()

	bridge.Emit(convert.ConvertStarted{Output: "TAPE01.efu"})

	g.Expect(bridge.ListenCmd()()).To(BeNil())
}
