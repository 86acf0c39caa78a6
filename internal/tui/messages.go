package tui

import (
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/services/reorder"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// BoardLoadedMsg carries a freshly loaded pipeline
type BoardLoadedMsg struct {
	PipelineID types.PipelineID
	Pipelines  []*models.Pipeline // Sibling pipelines shown as tabs
	Lanes      []*models.LaneDetail
	Err        error
}

// RefreshMsg is sent when another client changed the database
type RefreshMsg struct {
	Event events.Event
}

// DropResultMsg reports how the reorder service handled a drop
type DropResultMsg struct {
	Drop reorder.DropEvent
	Err  error
}

// MutationResultMsg reports a create or delete started from the board
type MutationResultMsg struct {
	Success string // Shown as an info notification when Err is nil
	Failure string // Shown as an error notification otherwise
	Err     error
}

// NotificationMsg surfaces a connection notice from the events client.
// Level is "info", "warning" or "error".
type NotificationMsg struct {
	Level   string
	Message string
}

// ClearNotificationMsg expires the notification with ID
type ClearNotificationMsg struct {
	ID int
}
