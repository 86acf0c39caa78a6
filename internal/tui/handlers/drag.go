package handlers

import (
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/pipeboard/internal/services/reorder"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/modelops"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// ============================================================================
// DRAG AND DROP
// ============================================================================
//
// A grab snapshots the board. Moves while grabbed rearrange the board on
// screen only; the drop hands a single DropEvent to the reorder service and
// the board is reloaded from storage once it answers.

func handleGrabTicket(m *tui.Model) tea.Cmd {
	laneIdx, ticketIdx := m.UiState.SelectedLane(), m.UiState.SelectedTicket()
	ticket := m.Board.Ticket(laneIdx, ticketIdx)
	if ticket == nil {
		return nil
	}

	m.Drag.Start(state.Grab{
		Kind:              state.DragTicket,
		ItemID:            int(ticket.ID),
		SourceContainerID: int(m.Board.Lane(laneIdx).ID),
		SourceIndex:       ticketIdx,
		Snapshot:          m.Board.Snapshot(),
		CursorLane:        laneIdx,
		CursorTicket:      ticketIdx,
	})
	return nil
}

func handleGrabLane(m *tui.Model) tea.Cmd {
	laneIdx := m.UiState.SelectedLane()
	lane := m.Board.Lane(laneIdx)
	if lane == nil {
		return nil
	}

	m.Drag.Start(state.Grab{
		Kind:              state.DragLane,
		ItemID:            int(lane.ID),
		SourceContainerID: int(m.Board.CurrentPipelineID()),
		SourceIndex:       laneIdx,
		Snapshot:          m.Board.Snapshot(),
		CursorLane:        laneIdx,
		CursorTicket:      m.UiState.SelectedTicket(),
	})
	return nil
}

// HandleDragMode handles keys while a ticket or lane is grabbed
func HandleDragMode(m *tui.Model, msg tea.KeyPressMsg) tea.Cmd {
	km := m.Config.KeyMappings

	switch msg.String() {
	case km.Drop:
		return handleDrop(m)
	case km.Cancel:
		cancelDrag(m)
	case km.PrevLane, "left":
		dragSideways(m, -1)
	case km.NextLane, "right":
		dragSideways(m, 1)
	case km.PrevTicket, "up":
		dragVertically(m, -1)
	case km.NextTicket, "down":
		dragVertically(m, 1)
	}
	return nil
}

// dragSideways moves the grabbed item one lane left or right
func dragSideways(m *tui.Model, delta int) {
	from := m.UiState.SelectedLane()
	to := from + delta

	switch m.Drag.Kind() {
	case state.DragLane:
		if !m.Board.SwapLanes(from, to) {
			return
		}
	case state.DragTicket:
		ticketIdx := m.UiState.SelectedTicket()
		target := min(ticketIdx, m.Board.TicketCount(to))
		if !m.Board.MoveTicket(from, ticketIdx, to, target) {
			return
		}
		m.UiState.SetSelectedTicket(target)
	}

	m.UiState.SetSelectedLane(to)
	m.UiState.EnsureLaneVisible(to)
}

// dragVertically moves the grabbed ticket one slot up or down its lane
func dragVertically(m *tui.Model, delta int) {
	if m.Drag.Kind() != state.DragTicket {
		return
	}
	lane := m.UiState.SelectedLane()
	from := m.UiState.SelectedTicket()
	to := from + delta
	if to < 0 || to >= m.Board.TicketCount(lane) {
		return
	}
	if m.Board.MoveTicket(lane, from, lane, to) {
		m.UiState.SetSelectedTicket(to)
	}
}

// handleDrop ends the drag and persists it. A drop back onto the starting
// slot writes nothing.
func handleDrop(m *tui.Model) tea.Cmd {
	grab := m.Drag.Current()
	m.Drag.Clear()

	drop := reorder.DropEvent{
		DraggedID:         grab.ItemID,
		SourceIndex:       grab.SourceIndex,
		SourceContainerID: grab.SourceContainerID,
	}

	switch grab.Kind {
	case state.DragLane:
		drop.Kind = reorder.DropLane
		drop.DestinationContainerID = int(m.Board.CurrentPipelineID())
		drop.DestinationIndex = m.UiState.SelectedLane()
	case state.DragTicket:
		drop.Kind = reorder.DropTicket
		drop.DestinationIndex = m.UiState.SelectedTicket()
		drop.DestinationContainerID = reorder.NoContainer
		if lane := m.Board.Lane(m.UiState.SelectedLane()); lane != nil {
			drop.DestinationContainerID = int(lane.ID)
		}
	default:
		return nil
	}

	if !drop.HasDestination() || drop.Unmoved() {
		return nil
	}
	return modelops.ApplyDrop(m, drop)
}

// cancelDrag puts the board and cursor back where the grab started
func cancelDrag(m *tui.Model) {
	grab := m.Drag.Current()
	m.Drag.Clear()

	m.Board.Restore(grab.Snapshot)
	m.UiState.SetSelectedLane(grab.CursorLane)
	m.UiState.SetSelectedTicket(grab.CursorTicket)
	m.UiState.ClampSelection(len(m.Board.Lanes()), m.Board.TicketCount)
}
