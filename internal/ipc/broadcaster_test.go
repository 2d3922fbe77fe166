package ipc

import (
	"testing"

	"github.com/1broseidon/termtile/internal/events"
)

func TestSubscriberReceivesMatchingEvent(t *testing.T) {
	b := NewBroadcaster()
	outbox, unsubscribe := b.Subscribe(nil)
	defer unsubscribe()

	b.Emit(events.Event{Kind: events.WorkspaceChanged, Data: events.WorkspaceChangedData{From: 1, To: 2}})

	select {
	case resp := <-outbox:
		if resp.Event != string(events.WorkspaceChanged) {
			t.Fatalf("Event = %q, want %q", resp.Event, events.WorkspaceChanged)
		}
	default:
		t.Fatalf("expected an event to be queued")
	}
}

func TestSubscriberFilterExcludesOtherKinds(t *testing.T) {
	b := NewBroadcaster()
	outbox, unsubscribe := b.Subscribe([]string{string(events.WorkspaceChanged)})
	defer unsubscribe()

	b.Emit(events.Event{Kind: events.WindowFocused})

	select {
	case resp := <-outbox:
		t.Fatalf("did not expect an event, got %+v", resp)
	default:
	}
}

func TestSlowSubscriberIsEvicted(t *testing.T) {
	b := NewBroadcaster()
	outbox, _ := b.Subscribe(nil)

	for i := 0; i < subscriberQueueLimit+10; i++ {
		b.Emit(events.Event{Kind: events.WindowFocused})
	}

	// The eviction closes outbox; draining it should exhaust at or below
	// the high-water mark and then report closed.
	count := 0
	for range outbox {
		count++
	}
	if count > subscriberQueueLimit {
		t.Fatalf("drained %d messages, want at most %d", count, subscriberQueueLimit)
	}
}
