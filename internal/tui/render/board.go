package render

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/components"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// RenderBoard renders the pipeline tabs, the visible lanes and the status bar
func RenderBoard(m *tui.Model) string {
	open, closed := m.Board.Values()
	status := components.RenderStatusBar(components.StatusBarProps{
		Width:            m.UiState.Width(),
		Currency:         m.Config.Currency,
		OpenValue:        open,
		ClosedValue:      closed,
		Grabbed:          m.Drag.Kind(),
		ConnectionStatus: m.ConnectionState.Status(),
		Live:             m.Live(),
	})

	return lipgloss.JoinVertical(lipgloss.Left,
		renderTabs(m),
		renderLanes(m),
		status,
	)
}

func renderTabs(m *tui.Model) string {
	pipelines := m.Board.Pipelines()
	if len(pipelines) == 0 {
		return components.SubtleStyle.Render("Loading pipeline...") + "\n\n"
	}

	names := make([]string, len(pipelines))
	for i, p := range pipelines {
		names[i] = p.Name
	}
	return components.RenderTabs(names, m.Board.PipelineIndex(), m.UiState.Width())
}

// renderLanes renders the lanes inside the horizontal viewport, with arrows
// when lanes are hidden on either side
func renderLanes(m *tui.Model) string {
	height := m.UiState.ContentHeight()
	lanes := m.Board.Lanes()

	if len(lanes) == 0 {
		hint := components.SubtleStyle.Render("No lanes yet. Press " + m.Config.KeyMappings.AddLane + " to add one.")
		return lipgloss.Place(m.UiState.Width(), height, lipgloss.Center, lipgloss.Center, hint)
	}

	offset := m.UiState.ViewportOffset()
	end := min(offset+m.UiState.ViewportSize(), len(lanes))
	selectedLane := m.UiState.SelectedLane()
	dragKind := m.Drag.Kind()

	rendered := make([]string, 0, end-offset+2)
	rendered = append(rendered, scrollArrow(offset > 0, "‹", height))

	for i := offset; i < end; i++ {
		props := components.LaneProps{
			Lane:           lanes[i],
			Currency:       m.Config.Currency,
			Height:         height,
			SelectedTicket: -1,
		}
		if i == selectedLane {
			props.Selected = true
			props.Grabbed = dragKind == state.DragLane
			props.SelectedTicket = m.UiState.SelectedTicket()
			props.TicketGrabbed = dragKind == state.DragTicket
		}
		rendered = append(rendered, components.RenderLane(props))
	}

	rendered = append(rendered, scrollArrow(end < len(lanes), "›", height))
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// scrollArrow renders a one column gutter, showing arrow vertically centered when visible
func scrollArrow(visible bool, arrow string, height int) string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = " "
	}
	if visible {
		lines[height/2] = components.IndicatorStyle.Render(arrow)
	}
	return strings.Join(lines, "\n")
}
