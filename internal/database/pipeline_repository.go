package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// PipelineRepo handles all pipeline-related database operations.
type PipelineRepo struct {
	conn
}

const pipelineColumns = `id, name, subaccount_id, created_at, updated_at`

// CreatePipeline creates a new pipeline for a sub-account
func (r *PipelineRepo) CreatePipeline(ctx context.Context, subAccountID types.SubAccountID, name string) (*models.Pipeline, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO pipelines (name, subaccount_id) VALUES (?, ?)`,
		name, subAccountID)
	if err != nil {
		return nil, fmt.Errorf("inserting pipeline: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetPipelineByID(ctx, types.PipelineID(id))
}

// GetPipelineByID retrieves a pipeline by its ID
func (r *PipelineRepo) GetPipelineByID(ctx context.Context, id types.PipelineID) (*models.Pipeline, error) {
	pipeline := &models.Pipeline{}
	err := sqlx.GetContext(ctx, r.q, pipeline,
		`SELECT `+pipelineColumns+` FROM pipelines WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "pipeline", id.ToInt())
	}
	return pipeline, nil
}

// GetPipelinesBySubAccount lists a sub-account's pipelines, oldest first
func (r *PipelineRepo) GetPipelinesBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Pipeline, error) {
	var pipelines []*models.Pipeline
	err := sqlx.SelectContext(ctx, r.q, &pipelines,
		`SELECT `+pipelineColumns+` FROM pipelines WHERE subaccount_id = ? ORDER BY id`,
		subAccountID)
	if err != nil {
		return nil, fmt.Errorf("querying pipelines: %w", err)
	}
	return pipelines, nil
}

// UpdatePipelineName renames a pipeline
func (r *PipelineRepo) UpdatePipelineName(ctx context.Context, id types.PipelineID, name string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE pipelines SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		name, id)
	if err != nil {
		return fmt.Errorf("updating pipeline: %w", err)
	}
	return requireAffected(res, "pipeline", id.ToInt())
}

// DeletePipeline removes a pipeline; lanes and tickets go with it via CASCADE
func (r *PipelineRepo) DeletePipeline(ctx context.Context, id types.PipelineID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM pipelines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pipeline: %w", err)
	}
	return requireAffected(res, "pipeline", id.ToInt())
}
