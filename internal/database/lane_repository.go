package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// LaneRepo handles all lane-related database operations.
type LaneRepo struct {
	conn
}

const laneColumns = `id, name, pipeline_id, position, created_at, updated_at`

// CreateLane appends a new lane to the end of a pipeline
func (r *LaneRepo) CreateLane(ctx context.Context, pipelineID types.PipelineID, name string) (*models.Lane, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO lanes (name, pipeline_id, position)
		 SELECT ?, ?, COALESCE(MAX(position) + 1, 0) FROM lanes WHERE pipeline_id = ?`,
		name, pipelineID, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("inserting lane: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetLaneByID(ctx, types.LaneID(id))
}

// GetLaneByID retrieves a lane by its ID
func (r *LaneRepo) GetLaneByID(ctx context.Context, id types.LaneID) (*models.Lane, error) {
	lane := &models.Lane{}
	err := sqlx.GetContext(ctx, r.q, lane,
		`SELECT `+laneColumns+` FROM lanes WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "lane", id.ToInt())
	}
	return lane, nil
}

// GetLanesByPipeline returns a pipeline's lanes ordered left to right
func (r *LaneRepo) GetLanesByPipeline(ctx context.Context, pipelineID types.PipelineID) ([]*models.Lane, error) {
	var lanes []*models.Lane
	err := sqlx.SelectContext(ctx, r.q, &lanes,
		`SELECT `+laneColumns+` FROM lanes WHERE pipeline_id = ? ORDER BY position, id`,
		pipelineID)
	if err != nil {
		return nil, fmt.Errorf("querying lanes for pipeline: %w", err)
	}
	return lanes, nil
}

// GetLanesWithTickets returns every lane of a pipeline with its tickets and their tags.
// Lanes and tickets are both ordered by position ascending.
func (r *LaneRepo) GetLanesWithTickets(ctx context.Context, pipelineID types.PipelineID) ([]*models.LaneDetail, error) {
	lanes, err := r.GetLanesByPipeline(ctx, pipelineID)
	if err != nil {
		return nil, err
	}

	// Fetch all tickets for the pipeline in a single query rather than one per lane
	var tickets []*models.Ticket
	err = sqlx.SelectContext(ctx, r.q, &tickets,
		`SELECT `+ticketColumnsQualified+`
		 FROM tickets t
		 JOIN lanes l ON l.id = t.lane_id
		 WHERE l.pipeline_id = ?
		 ORDER BY l.position, l.id, t.position, t.id`,
		pipelineID)
	if err != nil {
		return nil, fmt.Errorf("querying tickets for pipeline: %w", err)
	}

	if err := attachTags(ctx, r.q, tickets); err != nil {
		return nil, err
	}

	details := make([]*models.LaneDetail, len(lanes))
	byLane := make(map[types.LaneID]*models.LaneDetail, len(lanes))
	for i, lane := range lanes {
		details[i] = &models.LaneDetail{Lane: lane, Tickets: []*models.Ticket{}}
		byLane[lane.ID] = details[i]
	}
	for _, t := range tickets {
		if d, ok := byLane[t.LaneID]; ok {
			d.Tickets = append(d.Tickets, t)
		}
	}

	return details, nil
}

// UpdateLaneName renames a lane
func (r *LaneRepo) UpdateLaneName(ctx context.Context, id types.LaneID, name string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE lanes SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, id)
	if err != nil {
		return fmt.Errorf("updating lane name: %w", err)
	}
	return requireAffected(res, "lane", id.ToInt())
}

// UpdateLaneOrder sets a lane's display position
func (r *LaneRepo) UpdateLaneOrder(ctx context.Context, id types.LaneID, order int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE lanes SET position = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		order, id)
	if err != nil {
		return fmt.Errorf("updating lane order: %w", err)
	}
	return requireAffected(res, "lane", id.ToInt())
}

// DeleteLane removes a lane and its tickets, then closes the gap it leaves
// so the remaining lanes stay numbered 0..N-1.
func (r *LaneRepo) DeleteLane(ctx context.Context, id types.LaneID) (*models.Lane, error) {
	var deleted *models.Lane
	err := r.inTx(ctx, func(q sqlx.ExtContext) error {
		lane := &models.Lane{}
		if err := sqlx.GetContext(ctx, q, lane,
			`SELECT `+laneColumns+` FROM lanes WHERE id = ?`, id); err != nil {
			return notFound(err, "lane", id.ToInt())
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM lanes WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting lane: %w", err)
		}

		if _, err := q.ExecContext(ctx,
			`UPDATE lanes SET position = position - 1, updated_at = CURRENT_TIMESTAMP
			 WHERE pipeline_id = ? AND position > ?`,
			lane.PipelineID, lane.Order); err != nil {
			return fmt.Errorf("renumbering lanes: %w", err)
		}

		deleted = lane
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
