package modelops

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	laneservice "github.com/thenoetrevino/pipeboard/internal/services/lane"
	ticketservice "github.com/thenoetrevino/pipeboard/internal/services/ticket"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// mutate runs op in a command and reports it as a MutationResultMsg
func mutate(m *tui.Model, success, failure string, op func(ctx context.Context) error) tea.Cmd {
	ctx, cancel := m.DbContext()
	return func() tea.Msg {
		defer cancel()
		return tui.MutationResultMsg{Success: success, Failure: failure, Err: op(ctx)}
	}
}

// CreateTicket adds a ticket at the bottom of a lane
func CreateTicket(m *tui.Model, req ticketservice.CreateTicketRequest) tea.Cmd {
	tickets := m.App.TicketService
	return mutate(m,
		fmt.Sprintf("Created %q", req.Name),
		"Failed to create ticket",
		func(ctx context.Context) error {
			_, err := tickets.CreateTicket(ctx, req)
			return err
		})
}

// DeleteTicket removes a ticket; its lane closes the gap
func DeleteTicket(m *tui.Model, id types.TicketID, name string) tea.Cmd {
	tickets := m.App.TicketService
	return mutate(m,
		fmt.Sprintf("Deleted %q", name),
		"Failed to delete ticket",
		func(ctx context.Context) error {
			return tickets.DeleteTicket(ctx, id)
		})
}

// CreateLane appends a lane to the pipeline
func CreateLane(m *tui.Model, req laneservice.CreateLaneRequest) tea.Cmd {
	lanes := m.App.LaneService
	return mutate(m,
		fmt.Sprintf("Added lane %q", req.Name),
		"Failed to add lane",
		func(ctx context.Context) error {
			_, err := lanes.CreateLane(ctx, req)
			return err
		})
}

// DeleteLane removes a lane and its tickets
func DeleteLane(m *tui.Model, id types.LaneID, name string) tea.Cmd {
	lanes := m.App.LaneService
	return mutate(m,
		fmt.Sprintf("Deleted lane %q", name),
		"Failed to delete lane",
		func(ctx context.Context) error {
			return lanes.DeleteLane(ctx, id)
		})
}
