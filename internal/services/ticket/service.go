package ticket

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

const maxNameLength = 100

// Service defines all ticket-related business operations.
// Moving tickets between positions lives in the reorder service.
type Service interface {
	// Read operations
	GetTicketByID(ctx context.Context, id types.TicketID) (*models.Ticket, error)
	GetTicketsByLane(ctx context.Context, laneID types.LaneID) ([]*models.Ticket, error)

	// Write operations
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, req UpdateTicketRequest) error
	DeleteTicket(ctx context.Context, id types.TicketID) error
	SetTicketTags(ctx context.Context, id types.TicketID, tagIDs []types.TagID) error
}

// CreateTicketRequest encapsulates data for creating a ticket
type CreateTicketRequest struct {
	LaneID      types.LaneID
	Name        string
	Description string
	Value       int64
	ContactID   *types.ContactID
}

// UpdateTicketRequest encapsulates data for updating a ticket.
// Nil fields keep their current value.
type UpdateTicketRequest struct {
	ID           types.TicketID
	Name         *string
	Description  *string
	Value        *int64
	ContactID    *types.ContactID
	ClearContact bool
}

// repository defines the data access methods needed by the ticket service
// This interface is private to the service layer
type repository interface {
	GetTicketByID(ctx context.Context, id types.TicketID) (*models.Ticket, error)
	GetTicketsByLane(ctx context.Context, laneID types.LaneID) ([]*models.Ticket, error)
	CreateTicket(ctx context.Context, p database.CreateTicketParams) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, p database.UpdateTicketParams) error
	DeleteTicket(ctx context.Context, id types.TicketID) (*models.Ticket, error)
	SetTicketTags(ctx context.Context, ticketID types.TicketID, tagIDs []types.TagID) error

	// Ownership lookups
	GetLaneByID(ctx context.Context, id types.LaneID) (*models.Lane, error)
	GetPipelineByID(ctx context.Context, id types.PipelineID) (*models.Pipeline, error)
	GetContactByID(ctx context.Context, id types.ContactID) (*models.Contact, error)
	GetTagByID(ctx context.Context, id types.TagID) (*models.Tag, error)
}

// service implements Service interface with private repository
type service struct {
	repo        repository
	eventClient events.EventPublisher
}

// NewService creates a new ticket service with private repository
func NewService(repo repository, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// GetTicketByID retrieves a ticket with its tags
func (s *service) GetTicketByID(ctx context.Context, id types.TicketID) (*models.Ticket, error) {
	if id <= 0 {
		return nil, ErrInvalidTicketID
	}
	return s.repo.GetTicketByID(ctx, id)
}

// GetTicketsByLane retrieves a lane's tickets top to bottom
func (s *service) GetTicketsByLane(ctx context.Context, laneID types.LaneID) ([]*models.Ticket, error) {
	if laneID <= 0 {
		return nil, ErrInvalidLaneID
	}
	return s.repo.GetTicketsByLane(ctx, laneID)
}

// CreateTicket appends a ticket to the bottom of a lane
func (s *service) CreateTicket(ctx context.Context, req CreateTicketRequest) (*models.Ticket, error) {
	if err := validateCreateTicket(req); err != nil {
		return nil, err
	}

	owner, err := s.ownerOf(ctx, req.LaneID)
	if err != nil {
		return nil, err
	}
	if req.ContactID != nil {
		if err := s.checkContact(ctx, owner, *req.ContactID); err != nil {
			return nil, err
		}
	}

	ticket, err := s.repo.CreateTicket(ctx, database.CreateTicketParams{
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		LaneID:      req.LaneID,
		ContactID:   req.ContactID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	s.publishTicketEvent(owner.ID)

	return ticket, nil
}

// UpdateTicket applies the non-nil fields of req to a ticket
func (s *service) UpdateTicket(ctx context.Context, req UpdateTicketRequest) error {
	if err := validateUpdateTicket(req); err != nil {
		return err
	}

	existing, err := s.repo.GetTicketByID(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	owner, err := s.ownerOf(ctx, existing.LaneID)
	if err != nil {
		return err
	}

	params := database.UpdateTicketParams{
		ID:          req.ID,
		Name:        existing.Name,
		Description: existing.Description,
		Value:       existing.Value,
		ContactID:   existing.ContactID,
	}
	if req.Name != nil {
		params.Name = *req.Name
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Value != nil {
		params.Value = *req.Value
	}
	switch {
	case req.ClearContact:
		params.ContactID = nil
	case req.ContactID != nil:
		if err := s.checkContact(ctx, owner, *req.ContactID); err != nil {
			return err
		}
		params.ContactID = req.ContactID
	}

	if err := s.repo.UpdateTicket(ctx, params); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	s.publishTicketEvent(owner.ID)

	return nil
}

// DeleteTicket removes a ticket and closes the gap in its lane
func (s *service) DeleteTicket(ctx context.Context, id types.TicketID) error {
	if id <= 0 {
		return ErrInvalidTicketID
	}

	deleted, err := s.repo.DeleteTicket(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}

	if lane, err := s.repo.GetLaneByID(ctx, deleted.LaneID); err == nil {
		s.publishTicketEvent(lane.PipelineID)
	}

	return nil
}

// SetTicketTags replaces the ticket's tags. Every tag must belong to the
// sub-account that owns the ticket's pipeline.
func (s *service) SetTicketTags(ctx context.Context, id types.TicketID, tagIDs []types.TagID) error {
	if id <= 0 {
		return ErrInvalidTicketID
	}
	for _, tagID := range tagIDs {
		if tagID <= 0 {
			return ErrInvalidTagID
		}
	}

	ticket, err := s.repo.GetTicketByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	owner, err := s.ownerOf(ctx, ticket.LaneID)
	if err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		tag, err := s.repo.GetTagByID(ctx, tagID)
		if err != nil {
			return fmt.Errorf("failed to get tag: %w", err)
		}
		if tag.SubAccountID != owner.SubAccountID {
			return fmt.Errorf("%w: tag %d", ErrTagOtherAccount, tagID)
		}
	}

	if err := s.repo.SetTicketTags(ctx, id, tagIDs); err != nil {
		return fmt.Errorf("failed to set ticket tags: %w", err)
	}

	s.publishTicketEvent(owner.ID)

	return nil
}

// ownerOf resolves the pipeline a lane belongs to
func (s *service) ownerOf(ctx context.Context, laneID types.LaneID) (*models.Pipeline, error) {
	lane, err := s.repo.GetLaneByID(ctx, laneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lane: %w", err)
	}
	pipeline, err := s.repo.GetPipelineByID(ctx, lane.PipelineID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pipeline: %w", err)
	}
	return pipeline, nil
}

func (s *service) checkContact(ctx context.Context, owner *models.Pipeline, id types.ContactID) error {
	if id <= 0 {
		return ErrInvalidContact
	}
	contact, err := s.repo.GetContactByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.SubAccountID != owner.SubAccountID {
		return fmt.Errorf("%w: contact %d", ErrContactOtherAccount, id)
	}
	return nil
}

func validateCreateTicket(req CreateTicketRequest) error {
	if req.LaneID <= 0 {
		return ErrInvalidLaneID
	}
	if err := validateName(req.Name); err != nil {
		return err
	}
	if req.Value < 0 {
		return ErrNegativeValue
	}
	return nil
}

func validateUpdateTicket(req UpdateTicketRequest) error {
	if req.ID <= 0 {
		return ErrInvalidTicketID
	}
	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return err
		}
	}
	if req.Value != nil && *req.Value < 0 {
		return ErrNegativeValue
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

func (s *service) publishTicketEvent(pipelineID types.PipelineID) {
	events.NotifyPipelineChanged(s.eventClient, pipelineID.ToInt())
}
