package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// HandleHelpMode closes the help screen on the help, cancel or quit key
func HandleHelpMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	km := m.Config.KeyMappings
	switch msg.String() {
	case km.ShowHelp, km.Cancel, km.Quit:
		m.UiState.SetMode(state.NormalMode)
	}
	return nil
}
