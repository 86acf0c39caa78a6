package reorder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/pipeboard/internal/types"
)

// DropKind says what was dragged
type DropKind string

const (
	DropLane   DropKind = "lane"
	DropTicket DropKind = "ticket"
)

// NoContainer marks a drop released outside any lane or pipeline
const NoContainer = 0

// DropEvent is emitted by the board when a drag gesture completes.
// For lane drops the containers are pipelines; for ticket drops they are lanes.
type DropEvent struct {
	Kind                   DropKind
	DraggedID              int
	SourceIndex            int
	DestinationIndex       int
	SourceContainerID      int
	DestinationContainerID int
}

// HasDestination reports whether the item was released over a container
func (d DropEvent) HasDestination() bool {
	return d.DestinationContainerID != NoContainer
}

// Unmoved reports whether the item was dropped where it started
func (d DropEvent) Unmoved() bool {
	return d.SourceContainerID == d.DestinationContainerID && d.SourceIndex == d.DestinationIndex
}

// HandleDrop translates a drop into ReorderLanes or MoveTicket semantics.
// Drops without a destination and drops back onto the starting slot write nothing.
func (s *service) HandleDrop(ctx context.Context, drop DropEvent) error {
	if !drop.HasDestination() || drop.Unmoved() {
		slog.Debug("drop ignored", "kind", drop.Kind, "dragged_id", drop.DraggedID)
		return nil
	}
	if drop.DraggedID <= 0 {
		return fmt.Errorf("%w: %w: dragged %s %d", ErrValidation, ErrInvalidID, drop.Kind, drop.DraggedID)
	}

	switch drop.Kind {
	case DropLane:
		if drop.SourceContainerID != drop.DestinationContainerID {
			return fmt.Errorf("%w: %w: lane %d from pipeline %d to %d", ErrValidation, ErrCrossPipeline,
				drop.DraggedID, drop.SourceContainerID, drop.DestinationContainerID)
		}
		pipelineID := types.PipelineID(drop.SourceContainerID)
		if pipelineID <= 0 {
			return fmt.Errorf("%w: %w: pipeline %d", ErrValidation, ErrInvalidID, pipelineID)
		}
		return s.moveLane(ctx, pipelineID, types.LaneID(drop.DraggedID), drop.SourceIndex, drop.DestinationIndex)

	case DropTicket:
		return s.MoveTicketWithin(ctx, MoveTicketRequest{
			TicketID:     types.TicketID(drop.DraggedID),
			TargetLaneID: types.LaneID(drop.DestinationContainerID),
			TargetIndex:  drop.DestinationIndex,
			ExpectedSource: &Position{
				LaneID: types.LaneID(drop.SourceContainerID),
				Index:  drop.SourceIndex,
			},
		})

	default:
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrUnknownDropKind, drop.Kind)
	}
}
