package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/modelops"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// confirmKey reports whether msg accepts (y) or rejects (n or the cancel key)
// a confirmation. Other keys are ignored.
func confirmKey(m *tui.Model, msg tea.KeyPressMsg) (accepted, answered bool) {
	switch msg.String() {
	case "y", "Y":
		return true, true
	case "n", "N", m.Config.KeyMappings.Cancel:
		return false, true
	}
	return false, false
}

// HandleDeleteTicketConfirm handles the ticket delete confirmation dialog
func HandleDeleteTicketConfirm(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	accepted, answered := confirmKey(m, msg)
	if !answered {
		return nil
	}

	id, name := m.FormState.DeleteTicketID, m.FormState.DeleteName
	m.FormState.ResetDelete()
	m.UiState.SetMode(state.NormalMode)

	if !accepted || id == 0 {
		return nil
	}
	return modelops.DeleteTicket(m, id, name)
}

// HandleDeleteLaneConfirm handles the lane delete confirmation dialog
func HandleDeleteLaneConfirm(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	accepted, answered := confirmKey(m, msg)
	if !answered {
		return nil
	}

	id, name := m.FormState.DeleteLaneID, m.FormState.DeleteName
	m.FormState.ResetDelete()
	m.UiState.SetMode(state.NormalMode)

	if !accepted || id == 0 {
		return nil
	}
	return modelops.DeleteLane(m, id, name)
}
