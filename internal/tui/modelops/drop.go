package modelops

import (
	"errors"
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/services/reorder"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// ApplyDrop returns a command that hands a drop to the reorder service.
// The board already shows the optimistic arrangement.
func ApplyDrop(m *tui.Model, drop reorder.DropEvent) tea.Cmd {
	reorderService := m.App.ReorderService
	ctx, cancel := m.DbContext()

	return func() tea.Msg {
		defer cancel()
		return tui.DropResultMsg{Drop: drop, Err: reorderService.HandleDrop(ctx, drop)}
	}
}

// HandleDropResult reports the outcome of a drop and reloads the board from
// storage. On failure the reload replaces the optimistic arrangement.
func HandleDropResult(m *tui.Model, msg tui.DropResultMsg) tea.Cmd {
	reload := LoadBoard(m)

	if msg.Err != nil {
		slog.Error("drop failed",
			"kind", msg.Drop.Kind,
			"dragged_id", msg.Drop.DraggedID,
			"error", msg.Err)
		return tea.Batch(reload, Notify(m, state.LevelError, DropErrorMessage(msg.Drop, msg.Err)))
	}

	message := "Ticket moved"
	if msg.Drop.Kind == reorder.DropLane {
		message = "Lane moved"
	}
	return tea.Batch(reload, Notify(m, state.LevelInfo, message))
}

// DropErrorMessage turns a reorder failure into a short user message
func DropErrorMessage(drop reorder.DropEvent, err error) string {
	item := "ticket"
	if drop.Kind == reorder.DropLane {
		item = "lane"
	}

	switch {
	case errors.Is(err, reorder.ErrNotFound):
		return "That " + item + " no longer exists; board reloaded"
	case errors.Is(err, reorder.ErrValidation):
		return "Board was out of date; move not saved"
	default:
		return "Failed to save " + item + " move"
	}
}
