package lane

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

const maxNameLength = 100

// Service defines all lane-related business operations.
// Reordering lanes lives in the reorder service.
type Service interface {
	// Read operations
	GetLaneByID(ctx context.Context, id types.LaneID) (*models.Lane, error)
	GetLanesByPipeline(ctx context.Context, pipelineID types.PipelineID) ([]*models.Lane, error)
	GetLaneDetails(ctx context.Context, pipelineID types.PipelineID) ([]*models.LaneDetail, error)

	// Write operations
	CreateLane(ctx context.Context, req CreateLaneRequest) (*models.Lane, error)
	UpdateLaneName(ctx context.Context, id types.LaneID, name string) error
	DeleteLane(ctx context.Context, id types.LaneID) error
}

// CreateLaneRequest encapsulates data for creating a lane
type CreateLaneRequest struct {
	PipelineID types.PipelineID
	Name       string
}

// repository defines the data access methods needed by the lane service
// This interface is private to the service layer
type repository interface {
	GetPipelineByID(ctx context.Context, id types.PipelineID) (*models.Pipeline, error)
	GetLaneByID(ctx context.Context, id types.LaneID) (*models.Lane, error)
	GetLanesByPipeline(ctx context.Context, pipelineID types.PipelineID) ([]*models.Lane, error)
	GetLanesWithTickets(ctx context.Context, pipelineID types.PipelineID) ([]*models.LaneDetail, error)
	CreateLane(ctx context.Context, pipelineID types.PipelineID, name string) (*models.Lane, error)
	UpdateLaneName(ctx context.Context, id types.LaneID, name string) error
	DeleteLane(ctx context.Context, id types.LaneID) (*models.Lane, error)
}

// service implements Service interface with private repository
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new lane service with private repository
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetLaneByID retrieves a specific lane
func (s *service) GetLaneByID(ctx context.Context, id types.LaneID) (*models.Lane, error) {
	if id <= 0 {
		return nil, ErrInvalidLaneID
	}
	return s.repo.GetLaneByID(ctx, id)
}

// GetLanesByPipeline retrieves a pipeline's lanes in board order
func (s *service) GetLanesByPipeline(ctx context.Context, pipelineID types.PipelineID) ([]*models.Lane, error) {
	if pipelineID <= 0 {
		return nil, ErrInvalidPipelineID
	}
	return s.repo.GetLanesByPipeline(ctx, pipelineID)
}

// GetLaneDetails retrieves a pipeline's lanes with their tickets, the
// shape the board renders.
func (s *service) GetLaneDetails(ctx context.Context, pipelineID types.PipelineID) ([]*models.LaneDetail, error) {
	if pipelineID <= 0 {
		return nil, ErrInvalidPipelineID
	}
	if _, err := s.repo.GetPipelineByID(ctx, pipelineID); err != nil {
		return nil, fmt.Errorf("failed to get pipeline: %w", err)
	}
	return s.repo.GetLanesWithTickets(ctx, pipelineID)
}

// CreateLane appends a new lane to the end of a pipeline
func (s *service) CreateLane(ctx context.Context, req CreateLaneRequest) (*models.Lane, error) {
	if req.PipelineID <= 0 {
		return nil, ErrInvalidPipelineID
	}
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetPipelineByID(ctx, req.PipelineID); err != nil {
		return nil, fmt.Errorf("failed to get pipeline: %w", err)
	}

	lane, err := s.repo.CreateLane(ctx, req.PipelineID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create lane: %w", err)
	}

	s.publishLaneEvent(lane.PipelineID)

	return lane, nil
}

// UpdateLaneName renames a lane
func (s *service) UpdateLaneName(ctx context.Context, id types.LaneID, name string) error {
	if id <= 0 {
		return ErrInvalidLaneID
	}
	if err := validateName(name); err != nil {
		return err
	}

	lane, err := s.repo.GetLaneByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get lane: %w", err)
	}

	if err := s.repo.UpdateLaneName(ctx, id, name); err != nil {
		return fmt.Errorf("failed to update lane: %w", err)
	}

	s.publishLaneEvent(lane.PipelineID)

	return nil
}

// DeleteLane removes a lane and its tickets. The remaining lanes close the
// gap so positions stay dense.
func (s *service) DeleteLane(ctx context.Context, id types.LaneID) error {
	if id <= 0 {
		return ErrInvalidLaneID
	}

	lane, err := s.repo.DeleteLane(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete lane: %w", err)
	}

	s.publishLaneEvent(lane.PipelineID)

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

func (s *service) publishLaneEvent(pipelineID types.PipelineID) {
	events.NotifyPipelineChanged(s.eventClient, pipelineID.ToInt())
}
