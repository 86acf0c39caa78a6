// Package render draws the board and its overlays.
// This implements the "View" part of the Model-View-Update pattern.
package render

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/notifications"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// View renders the board with the overlay for the current mode and any
// notification banners stacked on top.
func View(m *tui.Model) tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(RenderBoard(m)),
	}

	var modal *lipgloss.Layer
	switch m.UiState.Mode() {
	case state.TicketFormMode:
		modal = RenderTicketFormLayer(m)
	case state.LaneFormMode:
		modal = RenderLaneFormLayer(m)
	case state.DeleteTicketConfirmMode, state.DeleteLaneConfirmMode:
		modal = RenderDeleteConfirmLayer(m)
	case state.HelpMode:
		modal = RenderHelpLayer(m)
	}
	if modal != nil {
		layers = append(layers, modal)
	}

	layers = append(layers, m.NotificationState.GetLayers(notifications.RenderFromState)...)

	view.Content = lipgloss.NewCanvas(layers...).Render()
	return view
}
