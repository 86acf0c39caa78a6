package events

import (
	"log/slog"
	"time"
)

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff and returns
// the error from the final attempt if all of them fail.
//
// Live updates are best effort: callers log the returned error and carry on.
func PublishWithRetry(client EventPublisher, event Event, maxRetries int) error {
	if client == nil {
		return nil // No daemon configured
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := client.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"pipeline_id", event.PipelineID)
			}
			return nil
		}

		lastErr = err

		// Don't sleep after the last attempt
		if attempt < maxRetries-1 {
			// Exponential backoff: 50ms, 100ms, 200ms
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			time.Sleep(delay)
		}
	}

	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"event_type", event.Type,
		"pipeline_id", event.PipelineID,
		"error", lastErr)

	return lastErr
}

// NotifyPipelineChanged publishes a db_changed event for pipelineID.
// It is the hook every mutating service calls after a successful commit.
func NotifyPipelineChanged(client EventPublisher, pipelineID int) {
	if client == nil {
		return
	}
	_ = PublishWithRetry(client, Event{
		Type:       EventDatabaseChanged,
		PipelineID: pipelineID,
		Origin:     client.Origin(),
		Timestamp:  time.Now(),
	}, 3)
}
