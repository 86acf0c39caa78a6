package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/modelops"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// ============================================================================
// NORMAL MODE HANDLERS
// ============================================================================

// HandleNormalMode dispatches key events in NormalMode to specific handlers.
func HandleNormalMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	km := m.Config.KeyMappings

	switch msg.String() {
	case km.Quit:
		return tea.Quit
	case km.ShowHelp:
		m.UiState.SetMode(state.HelpMode)
		return nil
	case km.AddTicket:
		return handleAddTicket(m)
	case km.AddLane:
		return handleAddLane(m)
	case km.DeleteTicket:
		return handleDeleteTicket(m)
	case km.DeleteLane:
		return handleDeleteLane(m)
	case km.GrabTicket:
		return handleGrabTicket(m)
	case km.GrabLane:
		return handleGrabLane(m)
	case km.PrevLane, "left":
		moveCursor(m, -1, 0)
	case km.NextLane, "right":
		moveCursor(m, 1, 0)
	case km.PrevTicket, "up":
		moveCursor(m, 0, -1)
	case km.NextTicket, "down":
		moveCursor(m, 0, 1)
	case km.NextPipeline:
		return modelops.SwitchPipeline(m, 1)
	case km.PrevPipeline:
		return modelops.SwitchPipeline(m, -1)
	case km.Refresh:
		return modelops.LoadBoard(m)
	}
	return nil
}

// moveCursor moves the selection by whole lanes and tickets, staying on the board
func moveCursor(m *tui.Model, laneDelta, ticketDelta int) {
	lane := m.UiState.SelectedLane() + laneDelta
	ticket := m.UiState.SelectedTicket() + ticketDelta
	if lane < 0 || lane >= len(m.Board.Lanes()) {
		return
	}
	if ticketDelta != 0 && (ticket < 0 || ticket >= m.Board.TicketCount(lane)) {
		return
	}

	m.UiState.SetSelectedLane(lane)
	m.UiState.SetSelectedTicket(ticket)
	m.UiState.ClampSelection(len(m.Board.Lanes()), m.Board.TicketCount)
}

func handleDeleteTicket(m *tui.Model) tea.Cmd {
	ticket := m.Board.Ticket(m.UiState.SelectedLane(), m.UiState.SelectedTicket())
	if ticket == nil {
		return nil
	}
	m.FormState.ResetDelete()
	m.FormState.DeleteTicketID = ticket.ID
	m.FormState.DeleteName = ticket.Name
	m.UiState.SetMode(state.DeleteTicketConfirmMode)
	return nil
}

func handleDeleteLane(m *tui.Model) tea.Cmd {
	lane := m.Board.Lane(m.UiState.SelectedLane())
	if lane == nil {
		return nil
	}
	m.FormState.ResetDelete()
	m.FormState.DeleteLaneID = lane.ID
	m.FormState.DeleteName = lane.Name
	m.UiState.SetMode(state.DeleteLaneConfirmMode)
	return nil
}
