package reorder

import (
	"fmt"

	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// LaneUpdate is one lane position write
type LaneUpdate struct {
	LaneID types.LaneID
	Order  int
}

// TicketUpdate is one ticket lane/position write
type TicketUpdate struct {
	TicketID types.TicketID
	LaneID   types.LaneID
	Order    int
}

// PlanLaneOrder checks that ordered is a permutation of current and returns
// the writes that give each lane its index in ordered. Lanes already at the
// right position are left out, so re-applying an order plans nothing.
func PlanLaneOrder(current []*models.Lane, ordered []types.LaneID) ([]LaneUpdate, error) {
	existing := make(map[types.LaneID]int, len(current))
	for _, l := range current {
		existing[l.ID] = l.Order
	}

	seen := make(map[types.LaneID]bool, len(ordered))
	for _, id := range ordered {
		if seen[id] {
			return nil, fmt.Errorf("%w: %w: %d", ErrValidation, ErrDuplicateLane, id)
		}
		seen[id] = true
		if _, ok := existing[id]; !ok {
			return nil, fmt.Errorf("%w: %w: %d", ErrValidation, ErrUnknownLane, id)
		}
	}
	// No duplicates and no strangers: only a shortfall is left to check
	for _, l := range current {
		if !seen[l.ID] {
			return nil, fmt.Errorf("%w: %w: %d", ErrValidation, ErrMissingLane, l.ID)
		}
	}

	var updates []LaneUpdate
	for i, id := range ordered {
		if existing[id] != i {
			updates = append(updates, LaneUpdate{LaneID: id, Order: i})
		}
	}
	return updates, nil
}

// MoveLane returns lanes' ids with the lane at from moved to to
func MoveLane(lanes []*models.Lane, from, to int) ([]types.LaneID, error) {
	if from < 0 || from >= len(lanes) || to < 0 || to >= len(lanes) {
		return nil, fmt.Errorf("%w: %w: move %d -> %d with %d lanes",
			ErrValidation, ErrIndexOutOfRange, from, to, len(lanes))
	}

	ids := make([]types.LaneID, 0, len(lanes))
	for i, l := range lanes {
		if i != from {
			ids = append(ids, l.ID)
		}
	}
	return insertAt(ids, to, lanes[from].ID), nil
}

// PlanTicketMove removes ticketID from source and inserts it into target at
// index, renumbering both lanes to 0..N-1. source and target may be the same
// lane. Only tickets whose lane or order changes are returned.
func PlanTicketMove(source, target *models.LaneDetail, ticketID types.TicketID, index int) ([]TicketUpdate, error) {
	pos := indexOfTicket(source.Tickets, ticketID)
	if pos < 0 {
		return nil, fmt.Errorf("%w: ticket %d in lane %d", ErrNotFound, ticketID, source.ID)
	}
	moving := source.Tickets[pos]

	remaining := make([]*models.Ticket, 0, len(source.Tickets)-1)
	remaining = append(remaining, source.Tickets[:pos]...)
	remaining = append(remaining, source.Tickets[pos+1:]...)

	sameLane := source.ID == target.ID
	destination := remaining
	if !sameLane {
		destination = target.Tickets
	}

	// The upper bound is inclusive: index == len appends
	if index < 0 || index > len(destination) {
		return nil, fmt.Errorf("%w: %w: index %d, lane %d holds %d tickets",
			ErrValidation, ErrIndexOutOfRange, index, target.ID, len(destination))
	}

	destination = insertAt(append([]*models.Ticket(nil), destination...), index, moving)

	var updates []TicketUpdate
	if !sameLane {
		updates = renumber(updates, remaining, source.ID)
	}
	updates = renumber(updates, destination, target.ID)
	return updates, nil
}

// renumber appends a write for every ticket not already at (laneID, i)
func renumber(updates []TicketUpdate, tickets []*models.Ticket, laneID types.LaneID) []TicketUpdate {
	for i, t := range tickets {
		if t.LaneID != laneID || t.Order != i {
			updates = append(updates, TicketUpdate{TicketID: t.ID, LaneID: laneID, Order: i})
		}
	}
	return updates
}

func indexOfTicket(tickets []*models.Ticket, id types.TicketID) int {
	for i, t := range tickets {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func insertAt[T any](s []T, i int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
