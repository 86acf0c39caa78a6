package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// TicketRepo handles all ticket-related database operations.
type TicketRepo struct {
	conn
}

const (
	ticketColumns = `id, name, description, value, lane_id, position, contact_id, created_at, updated_at`

	ticketColumnsQualified = `t.id, t.name, t.description, t.value, t.lane_id, t.position,
		t.contact_id, t.created_at, t.updated_at`
)

// CreateTicketParams holds the columns of a new ticket
type CreateTicketParams struct {
	Name        string
	Description string
	Value       int64
	LaneID      types.LaneID
	ContactID   *types.ContactID
}

// UpdateTicketParams holds the editable columns of a ticket
type UpdateTicketParams struct {
	ID          types.TicketID
	Name        string
	Description string
	Value       int64
	ContactID   *types.ContactID
}

// CreateTicket appends a new ticket to the bottom of its lane
func (r *TicketRepo) CreateTicket(ctx context.Context, p CreateTicketParams) (*models.Ticket, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO tickets (name, description, value, lane_id, contact_id, position)
		 SELECT ?, ?, ?, ?, ?, COALESCE(MAX(position) + 1, 0) FROM tickets WHERE lane_id = ?`,
		p.Name, p.Description, p.Value, p.LaneID, p.ContactID, p.LaneID)
	if err != nil {
		return nil, fmt.Errorf("inserting ticket: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetTicketByID(ctx, types.TicketID(id))
}

// GetTicketByID retrieves a ticket and its tags
func (r *TicketRepo) GetTicketByID(ctx context.Context, id types.TicketID) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	err := sqlx.GetContext(ctx, r.q, ticket,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "ticket", id.ToInt())
	}
	if err := attachTags(ctx, r.q, []*models.Ticket{ticket}); err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetTicketsByLane returns a lane's tickets ordered top to bottom
func (r *TicketRepo) GetTicketsByLane(ctx context.Context, laneID types.LaneID) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	err := sqlx.SelectContext(ctx, r.q, &tickets,
		`SELECT `+ticketColumns+` FROM tickets WHERE lane_id = ? ORDER BY position, id`,
		laneID)
	if err != nil {
		return nil, fmt.Errorf("querying tickets for lane: %w", err)
	}
	if err := attachTags(ctx, r.q, tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// UpdateTicket rewrites a ticket's editable fields
func (r *TicketRepo) UpdateTicket(ctx context.Context, p UpdateTicketParams) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tickets
		 SET name = ?, description = ?, value = ?, contact_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Name, p.Description, p.Value, p.ContactID, p.ID)
	if err != nil {
		return fmt.Errorf("updating ticket: %w", err)
	}
	return requireAffected(res, "ticket", p.ID.ToInt())
}

// UpdateTicketOrderAndLane places a ticket at order within laneID
func (r *TicketRepo) UpdateTicketOrderAndLane(ctx context.Context, id types.TicketID, laneID types.LaneID, order int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE tickets SET lane_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		laneID, order, id)
	if err != nil {
		return fmt.Errorf("updating ticket order: %w", err)
	}
	return requireAffected(res, "ticket", id.ToInt())
}

// DeleteTicket removes a ticket and shifts the tickets below it up by one
func (r *TicketRepo) DeleteTicket(ctx context.Context, id types.TicketID) (*models.Ticket, error) {
	var deleted *models.Ticket
	err := r.inTx(ctx, func(q sqlx.ExtContext) error {
		ticket := &models.Ticket{}
		if err := sqlx.GetContext(ctx, q, ticket,
			`SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id); err != nil {
			return notFound(err, "ticket", id.ToInt())
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting ticket: %w", err)
		}

		if _, err := q.ExecContext(ctx,
			`UPDATE tickets SET position = position - 1, updated_at = CURRENT_TIMESTAMP
			 WHERE lane_id = ? AND position > ?`,
			ticket.LaneID, ticket.Order); err != nil {
			return fmt.Errorf("renumbering tickets: %w", err)
		}

		deleted = ticket
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
