package render

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/components"
	"github.com/thenoetrevino/pipeboard/internal/tui/layers"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// RenderTicketFormLayer renders the add ticket form as a centered modal
func RenderTicketFormLayer(m *tui.Model) *lipgloss.Layer {
	if m.FormState.TicketForm == nil {
		return nil
	}
	return formLayer(m, "New Ticket", m.FormState.TicketForm.View())
}

// RenderLaneFormLayer renders the add lane form as a centered modal
func RenderLaneFormLayer(m *tui.Model) *lipgloss.Layer {
	if m.FormState.LaneForm == nil {
		return nil
	}
	return formLayer(m, "New Lane", m.FormState.LaneForm.View())
}

func formLayer(m *tui.Model, title, body string) *lipgloss.Layer {
	content := components.TitleStyle.Render(title) + "\n\n" + body + "\n\n" +
		components.SubtleStyle.Render(m.Config.KeyMappings.Cancel+" to cancel")

	box := components.FormBoxStyle.
		Width(layers.ModalWidth(m.UiState.Width())).
		Render(content)
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}

// RenderDeleteConfirmLayer renders the delete confirmation for a ticket or lane
func RenderDeleteConfirmLayer(m *tui.Model) *lipgloss.Layer {
	fs := m.FormState

	var prompt string
	if m.UiState.Mode() == state.DeleteLaneConfirmMode {
		prompt = fmt.Sprintf("Delete lane %q?", fs.DeleteName)
		for _, lane := range m.Board.Lanes() {
			if lane.ID == fs.DeleteLaneID && len(lane.Tickets) > 0 {
				prompt += fmt.Sprintf("\nIts %d ticket(s) are deleted with it.", len(lane.Tickets))
			}
		}
	} else {
		prompt = fmt.Sprintf("Delete ticket %q?", fs.DeleteName)
	}

	content := components.TitleStyle.Render(prompt) + "\n\n" +
		components.SubtleStyle.Render("[y]es  [n]o")

	box := components.DeleteConfirmBoxStyle.
		Width(layers.ModalWidth(m.UiState.Width())).
		Render(content)
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}

// RenderHelpLayer renders every key binding grouped by purpose
func RenderHelpLayer(m *tui.Model) *lipgloss.Layer {
	content := components.TitleStyle.Render("Keys") + "\n\n" +
		m.Help.FullHelpView(m.Keys.FullHelp())

	box := components.HelpBoxStyle.Render(content)
	return layers.CreateCenteredLayer(box, m.UiState.Width(), m.UiState.Height())
}
