package events

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// fakePublisher fails the first failures SendEvent calls
type fakePublisher struct {
	mu       sync.Mutex
	failures int
	calls    int
	sent     []Event
}

func (f *fakePublisher) Connect(ctx context.Context) error { return nil }
func (f *fakePublisher) Listen(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event)
	close(ch)
	return ch, nil
}
func (f *fakePublisher) Subscribe(pipelineID int) error { return nil }
func (f *fakePublisher) Origin() string                 { return "fake-origin" }
func (f *fakePublisher) Close() error                   { return nil }

func (f *fakePublisher) SendEvent(event Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return ErrQueueFull
	}
	f.sent = append(f.sent, event)
	return nil
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	if err := PublishWithRetry(nil, Event{}, 3); err != nil {
		t.Errorf("Expected nil for nil client, got %v", err)
	}
}

func TestPublishWithRetry_SucceedsAfterRetry(t *testing.T) {
	pub := &fakePublisher{failures: 2}
	if err := PublishWithRetry(pub, Event{Type: EventDatabaseChanged, PipelineID: 1}, 3); err != nil {
		t.Fatalf("Expected success on third attempt, got %v", err)
	}
	if pub.calls != 3 {
		t.Errorf("Expected 3 attempts, got %d", pub.calls)
	}
}

func TestPublishWithRetry_GivesUp(t *testing.T) {
	pub := &fakePublisher{failures: 10}
	err := PublishWithRetry(pub, Event{Type: EventDatabaseChanged}, 2)
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("Expected last error ErrQueueFull, got %v", err)
	}
	if pub.calls != 2 {
		t.Errorf("Expected 2 attempts, got %d", pub.calls)
	}
}

func TestNotifyPipelineChanged(t *testing.T) {
	pub := &fakePublisher{}
	NotifyPipelineChanged(pub, 12)

	if len(pub.sent) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(pub.sent))
	}
	evt := pub.sent[0]
	if evt.Type != EventDatabaseChanged || evt.PipelineID != 12 || evt.Origin != "fake-origin" {
		t.Errorf("Unexpected event: %+v", evt)
	}

	// A nil publisher is a no-op
	NotifyPipelineChanged(nil, 12)
}
