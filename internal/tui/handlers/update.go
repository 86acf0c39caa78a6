package handlers

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/modelops"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// Update is the main update dispatcher that handles all messages and updates the model.
// This implements the "Update" part of the Model-View-Update pattern.
func Update(m *tui.Model, msg tea.Msg) tea.Cmd {
	// Check if context is cancelled (graceful shutdown)
	select {
	case <-m.Ctx.Done():
		return tea.Quit
	default:
	}

	// Start listening for events on first update if not already started
	var startCmd tea.Cmd
	if !m.SubscriptionStarted && (m.EventChan != nil || m.NotifyChan != nil) {
		m.SubscriptionStarted = true
		startCmd = tea.Batch(modelops.SubscribeToEvents(m), modelops.ListenForNotifications(m))
	}

	return tea.Batch(startCmd, dispatch(m, msg))
}

func dispatch(m *tui.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tui.BoardLoadedMsg:
		return modelops.ApplyBoard(m, msg)

	case tui.DropResultMsg:
		return modelops.HandleDropResult(m, msg)

	case tui.MutationResultMsg:
		return handleMutationResult(m, msg)

	case tui.RefreshMsg:
		return modelops.HandleRefresh(m, msg)

	case tui.NotificationMsg:
		return modelops.HandleConnectionNotice(m, msg)

	case tui.ClearNotificationMsg:
		m.NotificationState.Remove(msg.ID)
		return nil

	case tea.WindowSizeMsg:
		return HandleWindowResize(m, msg)
	}

	// Forms need every remaining message (cursor blinks, key presses)
	switch m.UiState.Mode() {
	case state.TicketFormMode:
		return HandleTicketForm(m, msg)
	case state.LaneFormMode:
		return HandleLaneForm(m, msg)
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		return HandleKeyMsg(m, msg)
	}
	return nil
}

// HandleKeyMsg dispatches key messages to the appropriate mode handler.
func HandleKeyMsg(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.UiState.Mode() {
	case state.NormalMode:
		if m.Drag.Active() {
			return HandleDragMode(m, msg)
		}
		return HandleNormalMode(m, msg)
	case state.DeleteTicketConfirmMode:
		return HandleDeleteTicketConfirm(m, msg)
	case state.DeleteLaneConfirmMode:
		return HandleDeleteLaneConfirm(m, msg)
	case state.HelpMode:
		return HandleHelpMode(m, msg)
	}
	return nil
}

// HandleWindowResize tracks the terminal size and keeps the cursor on screen
func HandleWindowResize(m *tui.Model, msg tea.WindowSizeMsg) tea.Cmd {
	m.UiState.SetWidth(msg.Width)
	m.UiState.SetHeight(msg.Height)
	m.NotificationState.SetWindowSize(msg.Width, msg.Height)
	m.UiState.ClampSelection(len(m.Board.Lanes()), m.Board.TicketCount)
	return nil
}

func handleMutationResult(m *tui.Model, msg tui.MutationResultMsg) tea.Cmd {
	if msg.Err != nil {
		slog.Error(msg.Failure, "error", msg.Err)
		return tea.Batch(
			modelops.LoadBoard(m),
			modelops.Notify(m, state.LevelError, msg.Failure+": "+msg.Err.Error()),
		)
	}
	return tea.Batch(modelops.LoadBoard(m), modelops.Notify(m, state.LevelInfo, msg.Success))
}
