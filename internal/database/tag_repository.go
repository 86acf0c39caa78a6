package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// TagRepo handles tag persistence and ticket/tag associations
type TagRepo struct {
	conn
}

// CreateTag creates a tag for a sub-account
func (r *TagRepo) CreateTag(ctx context.Context, subAccountID types.SubAccountID, name, color string) (*models.Tag, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO tags (name, color, subaccount_id) VALUES (?, ?, ?)`,
		name, color, subAccountID)
	if err != nil {
		return nil, fmt.Errorf("inserting tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetTagByID(ctx, types.TagID(id))
}

// GetTagByID retrieves a tag by its ID
func (r *TagRepo) GetTagByID(ctx context.Context, id types.TagID) (*models.Tag, error) {
	tag := &models.Tag{}
	err := sqlx.GetContext(ctx, r.q, tag,
		`SELECT id, name, color, subaccount_id FROM tags WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "tag", id.ToInt())
	}
	return tag, nil
}

// GetTagsBySubAccount lists a sub-account's tags alphabetically
func (r *TagRepo) GetTagsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := sqlx.SelectContext(ctx, r.q, &tags,
		`SELECT id, name, color, subaccount_id FROM tags WHERE subaccount_id = ? ORDER BY name`,
		subAccountID)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag and detaches it from every ticket
func (r *TagRepo) DeleteTag(ctx context.Context, id types.TagID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return requireAffected(res, "tag", id.ToInt())
}

// SetTicketTags replaces the full tag set of a ticket
func (r *TagRepo) SetTicketTags(ctx context.Context, ticketID types.TicketID, tagIDs []types.TagID) error {
	return r.inTx(ctx, func(q sqlx.ExtContext) error {
		if _, err := q.ExecContext(ctx, `DELETE FROM ticket_tags WHERE ticket_id = ?`, ticketID); err != nil {
			return fmt.Errorf("clearing ticket tags: %w", err)
		}
		for _, tagID := range tagIDs {
			if _, err := q.ExecContext(ctx,
				`INSERT OR IGNORE INTO ticket_tags (ticket_id, tag_id) VALUES (?, ?)`,
				ticketID, tagID); err != nil {
				return fmt.Errorf("attaching tag %d: %w", tagID, err)
			}
		}
		return nil
	})
}

// ticketTagRow is the join projection used by attachTags
type ticketTagRow struct {
	TicketID types.TicketID `db:"ticket_id"`
	models.Tag
}

// attachTags loads the tags of all given tickets in one query and sets Ticket.Tags
func attachTags(ctx context.Context, q sqlx.QueryerContext, tickets []*models.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	args := make([]any, len(tickets))
	byID := make(map[types.TicketID]*models.Ticket, len(tickets))
	for i, t := range tickets {
		args[i] = t.ID
		byID[t.ID] = t
		t.Tags = []*models.Tag{}
	}

	var rows []ticketTagRow
	err := sqlx.SelectContext(ctx, q, &rows,
		`SELECT tt.ticket_id, tg.id, tg.name, tg.color, tg.subaccount_id
		 FROM ticket_tags tt
		 JOIN tags tg ON tg.id = tt.tag_id
		 WHERE tt.ticket_id IN (`+placeholders(len(args))+`)
		 ORDER BY tg.name`,
		args...)
	if err != nil {
		return fmt.Errorf("querying ticket tags: %w", err)
	}

	for i := range rows {
		tag := rows[i].Tag
		if t, ok := byID[rows[i].TicketID]; ok {
			t.Tags = append(t.Tags, &tag)
		}
	}
	return nil
}
