package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

const maxNameLength = 100

// Service defines all pipeline-related business operations
type Service interface {
	// Read operations
	GetPipelineByID(ctx context.Context, id types.PipelineID) (*models.Pipeline, error)
	GetPipelinesBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Pipeline, error)
	GetPipelineValue(ctx context.Context, id types.PipelineID) (*models.PipelineValue, error)

	// Write operations
	CreatePipeline(ctx context.Context, req CreatePipelineRequest) (*models.Pipeline, error)
	UpdatePipelineName(ctx context.Context, id types.PipelineID, name string) error
	DeletePipeline(ctx context.Context, id types.PipelineID) error
}

// CreatePipelineRequest encapsulates data for creating a pipeline.
// Lanes, when given, are created in order in the same transaction.
type CreatePipelineRequest struct {
	SubAccountID types.SubAccountID
	Name         string
	Lanes        []string
}

// repository defines the data access methods needed by the pipeline service
// This interface is private to the service layer
type repository interface {
	GetSubAccountByID(ctx context.Context, id types.SubAccountID) (*models.SubAccount, error)
	GetPipelineByID(ctx context.Context, id types.PipelineID) (*models.Pipeline, error)
	GetPipelinesBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Pipeline, error)
	GetLanesWithTickets(ctx context.Context, pipelineID types.PipelineID) ([]*models.LaneDetail, error)
	UpdatePipelineName(ctx context.Context, id types.PipelineID, name string) error
	DeletePipeline(ctx context.Context, id types.PipelineID) error

	// Transaction support
	WithTx(ctx context.Context, fn func(database.DataStore) error) error
}

// service implements Service interface with private repository
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new pipeline service with private repository
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetPipelineByID retrieves a specific pipeline
func (s *service) GetPipelineByID(ctx context.Context, id types.PipelineID) (*models.Pipeline, error) {
	if id <= 0 {
		return nil, ErrInvalidPipelineID
	}
	return s.repo.GetPipelineByID(ctx, id)
}

// GetPipelinesBySubAccount lists the pipelines of a sub-account
func (s *service) GetPipelinesBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Pipeline, error) {
	if subAccountID <= 0 {
		return nil, ErrInvalidSubAccountID
	}
	return s.repo.GetPipelinesBySubAccount(ctx, subAccountID)
}

// GetPipelineValue sums ticket values per stage. The last lane counts as
// closed business and every earlier lane as open.
func (s *service) GetPipelineValue(ctx context.Context, id types.PipelineID) (*models.PipelineValue, error) {
	if id <= 0 {
		return nil, ErrInvalidPipelineID
	}
	if _, err := s.repo.GetPipelineByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get pipeline: %w", err)
	}

	lanes, err := s.repo.GetLanesWithTickets(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load lanes: %w", err)
	}

	return Summarize(id, lanes), nil
}

// Summarize computes open value, closed value and closing rate for lanes
// given in board order.
func Summarize(id types.PipelineID, lanes []*models.LaneDetail) *models.PipelineValue {
	value := &models.PipelineValue{PipelineID: id}
	for i, lane := range lanes {
		if i == len(lanes)-1 {
			value.ClosedValue = lane.Value()
		} else {
			value.OpenValue += lane.Value()
		}
	}
	if total := value.TotalValue(); total > 0 {
		value.ClosingRate = float64(value.ClosedValue) / float64(total) * 100
	}
	return value
}

// CreatePipeline creates a new pipeline with its initial lanes
func (s *service) CreatePipeline(ctx context.Context, req CreatePipelineRequest) (*models.Pipeline, error) {
	if err := validateCreatePipeline(req); err != nil {
		return nil, err
	}

	var pipeline *models.Pipeline
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if _, err := tx.GetSubAccountByID(ctx, req.SubAccountID); err != nil {
			return fmt.Errorf("failed to get sub-account: %w", err)
		}

		var err error
		pipeline, err = tx.CreatePipeline(ctx, req.SubAccountID, req.Name)
		if err != nil {
			return fmt.Errorf("failed to create pipeline: %w", err)
		}

		for _, name := range req.Lanes {
			if _, err := tx.CreateLane(ctx, pipeline.ID, name); err != nil {
				return fmt.Errorf("failed to create lane %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishPipelineEvent(pipeline.ID)

	return pipeline, nil
}

// UpdatePipelineName renames a pipeline
func (s *service) UpdatePipelineName(ctx context.Context, id types.PipelineID, name string) error {
	if id <= 0 {
		return ErrInvalidPipelineID
	}
	if err := validateName(name); err != nil {
		return err
	}

	if err := s.repo.UpdatePipelineName(ctx, id, name); err != nil {
		return fmt.Errorf("failed to update pipeline: %w", err)
	}

	s.publishPipelineEvent(id)

	return nil
}

// DeletePipeline deletes a pipeline together with its lanes and tickets
func (s *service) DeletePipeline(ctx context.Context, id types.PipelineID) error {
	if id <= 0 {
		return ErrInvalidPipelineID
	}

	if err := s.repo.DeletePipeline(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pipeline: %w", err)
	}

	s.publishPipelineEvent(id)

	return nil
}

func validateCreatePipeline(req CreatePipelineRequest) error {
	if req.SubAccountID <= 0 {
		return ErrInvalidSubAccountID
	}
	if err := validateName(req.Name); err != nil {
		return err
	}
	for _, lane := range req.Lanes {
		if lane == "" {
			return ErrEmptyLaneName
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// publishPipelineEvent publishes a pipeline event
func (s *service) publishPipelineEvent(pipelineID types.PipelineID) {
	if s.eventClient == nil {
		return
	}
	slog.Debug("pipeline changed", "pipeline_id", pipelineID)
	events.NotifyPipelineChanged(s.eventClient, pipelineID.ToInt())
}
