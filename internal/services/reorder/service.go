// Package reorder persists the outcome of drag-and-drop gestures on a
// pipeline board: lanes moved within a pipeline and tickets moved within
// or between lanes. Positions stay dense (0..N-1) per container.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/events"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// Service defines the reordering operations
type Service interface {
	// ReorderLanes gives each lane of the pipeline its index in orderedLaneIDs
	ReorderLanes(ctx context.Context, pipelineID types.PipelineID, orderedLaneIDs []types.LaneID) error

	// MoveTicket moves a ticket to targetIndex within targetLaneID
	MoveTicket(ctx context.Context, ticketID types.TicketID, targetLaneID types.LaneID, targetIndex int) error

	// MoveTicketWithin is MoveTicket with ownership and staleness guards
	MoveTicketWithin(ctx context.Context, req MoveTicketRequest) error

	// HandleDrop applies a drag-and-drop event from the board
	HandleDrop(ctx context.Context, drop DropEvent) error
}

// MoveTicketRequest describes a ticket move. The optional fields reject the
// move when the stored state differs from what the caller expects.
type MoveTicketRequest struct {
	TicketID     types.TicketID
	TargetLaneID types.LaneID
	TargetIndex  int

	PipelineID     *types.PipelineID   // Target lane must belong to this pipeline
	SubAccountID   *types.SubAccountID // Target lane's pipeline must belong to this sub-account
	ExpectedSource *Position           // Ticket must currently sit here
}

// Position is a ticket's place on the board
type Position struct {
	LaneID types.LaneID
	Index  int
}

// service implements Service on top of a DataStore
type service struct {
	store       database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new reorder service. eventClient may be nil.
func NewService(store database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		store:       store,
		eventClient: eventClient,
	}
}

// ReorderLanes validates that orderedLaneIDs is a permutation of the
// pipeline's lanes and writes the lanes whose position changes.
func (s *service) ReorderLanes(ctx context.Context, pipelineID types.PipelineID, orderedLaneIDs []types.LaneID) error {
	if pipelineID <= 0 {
		return fmt.Errorf("%w: %w: pipeline %d", ErrValidation, ErrInvalidID, pipelineID)
	}

	var written int
	err := s.store.WithTx(ctx, func(tx database.DataStore) error {
		lanes, err := loadLanes(ctx, tx, pipelineID)
		if err != nil {
			return err
		}
		written, err = applyLaneOrder(ctx, tx, lanes, orderedLaneIDs)
		return err
	})
	if err != nil {
		return classify(err)
	}

	s.afterWrite("lanes reordered", pipelineID, written)
	return nil
}

// MoveTicket moves a ticket without extra guards
func (s *service) MoveTicket(ctx context.Context, ticketID types.TicketID, targetLaneID types.LaneID, targetIndex int) error {
	return s.MoveTicketWithin(ctx, MoveTicketRequest{
		TicketID:     ticketID,
		TargetLaneID: targetLaneID,
		TargetIndex:  targetIndex,
	})
}

// MoveTicketWithin removes the ticket from its lane, inserts it into the
// target lane at TargetIndex and renumbers both lanes in one transaction.
func (s *service) MoveTicketWithin(ctx context.Context, req MoveTicketRequest) error {
	if err := validateMoveRequest(req); err != nil {
		return err
	}

	var (
		pipelineID types.PipelineID
		written    int
	)
	err := s.store.WithTx(ctx, func(tx database.DataStore) error {
		ticket, err := tx.GetTicketByID(ctx, req.TicketID)
		if err != nil {
			return lookupErr(err)
		}
		target, err := tx.GetLaneByID(ctx, req.TargetLaneID)
		if err != nil {
			return lookupErr(err)
		}
		source, err := tx.GetLaneByID(ctx, ticket.LaneID)
		if err != nil {
			return lookupErr(err)
		}

		if err := s.checkOwnership(ctx, tx, req, source, target); err != nil {
			return err
		}
		pipelineID = target.PipelineID

		details, err := tx.GetLanesWithTickets(ctx, pipelineID)
		if err != nil {
			return fmt.Errorf("loading lanes: %w", err)
		}
		sourceDetail := findDetail(details, source.ID)
		targetDetail := findDetail(details, target.ID)
		if sourceDetail == nil || targetDetail == nil {
			return fmt.Errorf("%w: lane vanished during move", ErrNotFound)
		}

		if exp := req.ExpectedSource; exp != nil {
			idx := indexOfTicket(sourceDetail.Tickets, req.TicketID)
			if exp.LaneID != source.ID || exp.Index != idx {
				return fmt.Errorf("%w: %w: ticket %d is at lane %d index %d, not lane %d index %d",
					ErrValidation, ErrStaleSource, req.TicketID, source.ID, idx, exp.LaneID, exp.Index)
			}
		}

		updates, err := PlanTicketMove(sourceDetail, targetDetail, req.TicketID, req.TargetIndex)
		if err != nil {
			return err
		}
		for _, u := range updates {
			if err := tx.UpdateTicketOrderAndLane(ctx, u.TicketID, u.LaneID, u.Order); err != nil {
				return fmt.Errorf("%w: ticket %d: %w", ErrUpdateFailed, u.TicketID, err)
			}
		}
		written = len(updates)
		return nil
	})
	if err != nil {
		return classify(err)
	}

	s.afterWrite("ticket moved", pipelineID, written,
		"ticket_id", req.TicketID, "lane_id", req.TargetLaneID, "index", req.TargetIndex)
	return nil
}

// checkOwnership enforces that both lanes share a pipeline and that the
// caller's expected pipeline and sub-account match the target lane.
func (s *service) checkOwnership(ctx context.Context, tx database.DataStore, req MoveTicketRequest, source, target *models.Lane) error {
	if source.PipelineID != target.PipelineID {
		return fmt.Errorf("%w: %w: lane %d is in pipeline %d, ticket is in pipeline %d",
			ErrValidation, ErrCrossPipeline, target.ID, target.PipelineID, source.PipelineID)
	}
	if req.PipelineID != nil && *req.PipelineID != target.PipelineID {
		return fmt.Errorf("%w: %w: lane %d is in pipeline %d",
			ErrValidation, ErrPipelineMismatch, target.ID, target.PipelineID)
	}
	if req.SubAccountID != nil {
		pipeline, err := tx.GetPipelineByID(ctx, target.PipelineID)
		if err != nil {
			return lookupErr(err)
		}
		if pipeline.SubAccountID != *req.SubAccountID {
			return fmt.Errorf("%w: %w: pipeline %d belongs to sub-account %d",
				ErrValidation, ErrSubAccountMismatch, pipeline.ID, pipeline.SubAccountID)
		}
	}
	return nil
}

// moveLane moves the lane at from to to, after checking the lane is still at from
func (s *service) moveLane(ctx context.Context, pipelineID types.PipelineID, laneID types.LaneID, from, to int) error {
	var written int
	err := s.store.WithTx(ctx, func(tx database.DataStore) error {
		lanes, err := loadLanes(ctx, tx, pipelineID)
		if err != nil {
			return err
		}
		if from < 0 || from >= len(lanes) || lanes[from].ID != laneID {
			return fmt.Errorf("%w: %w: lane %d is not at index %d",
				ErrValidation, ErrStaleSource, laneID, from)
		}
		ordered, err := MoveLane(lanes, from, to)
		if err != nil {
			return err
		}
		written, err = applyLaneOrder(ctx, tx, lanes, ordered)
		return err
	})
	if err != nil {
		return classify(err)
	}

	s.afterWrite("lane moved", pipelineID, written, "lane_id", laneID, "index", to)
	return nil
}

// loadLanes returns the pipeline's lanes in position order, or ErrNotFound
func loadLanes(ctx context.Context, tx database.DataStore, pipelineID types.PipelineID) ([]*models.Lane, error) {
	if _, err := tx.GetPipelineByID(ctx, pipelineID); err != nil {
		return nil, lookupErr(err)
	}
	lanes, err := tx.GetLanesByPipeline(ctx, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("loading lanes: %w", err)
	}
	return lanes, nil
}

// applyLaneOrder plans and writes a lane permutation, returning the number of writes
func applyLaneOrder(ctx context.Context, tx database.DataStore, lanes []*models.Lane, ordered []types.LaneID) (int, error) {
	updates, err := PlanLaneOrder(lanes, ordered)
	if err != nil {
		return 0, err
	}
	for _, u := range updates {
		if err := tx.UpdateLaneOrder(ctx, u.LaneID, u.Order); err != nil {
			return 0, fmt.Errorf("%w: lane %d: %w", ErrUpdateFailed, u.LaneID, err)
		}
	}
	return len(updates), nil
}

// afterWrite logs a completed operation and notifies other clients when it changed anything
func (s *service) afterWrite(msg string, pipelineID types.PipelineID, written int, attrs ...any) {
	attrs = append([]any{"pipeline_id", pipelineID, "updated", written}, attrs...)
	slog.Info(msg, attrs...)
	if written == 0 {
		return
	}
	events.NotifyPipelineChanged(s.eventClient, pipelineID.ToInt())
}

func validateMoveRequest(req MoveTicketRequest) error {
	if req.TicketID <= 0 {
		return fmt.Errorf("%w: %w: ticket %d", ErrValidation, ErrInvalidID, req.TicketID)
	}
	if req.TargetLaneID <= 0 {
		return fmt.Errorf("%w: %w: lane %d", ErrValidation, ErrInvalidID, req.TargetLaneID)
	}
	if req.TargetIndex < 0 {
		return fmt.Errorf("%w: %w: index %d", ErrValidation, ErrIndexOutOfRange, req.TargetIndex)
	}
	return nil
}

func findDetail(details []*models.LaneDetail, id types.LaneID) *models.LaneDetail {
	for _, d := range details {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// lookupErr maps a storage miss to ErrNotFound
func lookupErr(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

// classify makes sure every error leaving the service carries one of the
// three kinds. Anything unrecognised came from storage.
func classify(err error) error {
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrUpdateFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
}
