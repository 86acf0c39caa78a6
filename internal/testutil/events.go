package testutil

import (
	"context"
	"sync"

	"github.com/thenoetrevino/pipeboard/internal/events"
)

// RecordingPublisher is an events.EventPublisher that keeps every event
// sent through it instead of talking to a daemon.
type RecordingPublisher struct {
	mu   sync.Mutex
	sent []events.Event
}

func (p *RecordingPublisher) Connect(ctx context.Context) error { return nil }

func (p *RecordingPublisher) Listen(ctx context.Context) (<-chan events.Event, error) {
	ch := make(chan events.Event)
	close(ch)
	return ch, nil
}

func (p *RecordingPublisher) Subscribe(pipelineID int) error { return nil }
func (p *RecordingPublisher) Origin() string                 { return "test" }
func (p *RecordingPublisher) Close() error                   { return nil }

func (p *RecordingPublisher) SendEvent(event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, event)
	return nil
}

// Events returns a copy of the events published so far
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.sent...)
}

// PipelineIDs returns the pipeline id of every published event
func (p *RecordingPublisher) PipelineIDs() []int {
	evs := p.Events()
	ids := make([]int, len(evs))
	for i, e := range evs {
		ids[i] = e.PipelineID
	}
	return ids
}
