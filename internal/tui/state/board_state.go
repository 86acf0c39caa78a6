package state

import (
	"slices"

	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// BoardState holds the pipeline on screen, its sibling pipelines for the tab
// bar, and its lanes with tickets in display order.
type BoardState struct {
	pipelines []*models.Pipeline
	current   types.PipelineID
	lanes     []*models.LaneDetail
}

// NewBoardState creates an empty board showing pipelineID once loaded
func NewBoardState(pipelineID types.PipelineID) *BoardState {
	return &BoardState{current: pipelineID}
}

// Pipelines returns the pipelines shown as tabs
func (b *BoardState) Pipelines() []*models.Pipeline {
	return b.pipelines
}

// SetPipelines replaces the tab list
func (b *BoardState) SetPipelines(pipelines []*models.Pipeline) {
	b.pipelines = pipelines
}

// CurrentPipelineID returns the id of the pipeline on screen
func (b *BoardState) CurrentPipelineID() types.PipelineID {
	return b.current
}

// SetCurrentPipeline switches the board to another pipeline. Lanes are
// cleared until the next load.
func (b *BoardState) SetCurrentPipeline(id types.PipelineID) {
	if id != b.current {
		b.lanes = nil
	}
	b.current = id
}

// CurrentPipeline returns the pipeline on screen, or nil before the first load
func (b *BoardState) CurrentPipeline() *models.Pipeline {
	if i := b.PipelineIndex(); i >= 0 {
		return b.pipelines[i]
	}
	return nil
}

// PipelineIndex returns the tab index of the current pipeline, or -1
func (b *BoardState) PipelineIndex() int {
	return slices.IndexFunc(b.pipelines, func(p *models.Pipeline) bool {
		return p.ID == b.current
	})
}

// Lanes returns the lanes in display order
func (b *BoardState) Lanes() []*models.LaneDetail {
	return b.lanes
}

// SetLanes replaces the lanes with freshly loaded ones
func (b *BoardState) SetLanes(lanes []*models.LaneDetail) {
	b.lanes = lanes
}

// Lane returns the lane at index, or nil when out of range
func (b *BoardState) Lane(index int) *models.LaneDetail {
	if index < 0 || index >= len(b.lanes) {
		return nil
	}
	return b.lanes[index]
}

// Ticket returns the ticket at (lane, index), or nil when out of range
func (b *BoardState) Ticket(lane, index int) *models.Ticket {
	l := b.Lane(lane)
	if l == nil || index < 0 || index >= len(l.Tickets) {
		return nil
	}
	return l.Tickets[index]
}

// TicketCount returns the number of tickets in the lane at index
func (b *BoardState) TicketCount(lane int) int {
	if l := b.Lane(lane); l != nil {
		return len(l.Tickets)
	}
	return 0
}

// Values returns the open value (every lane but the last) and the closed
// value (the last lane).
func (b *BoardState) Values() (open, closed int64) {
	for i, l := range b.lanes {
		if i == len(b.lanes)-1 {
			closed = l.Value()
		} else {
			open += l.Value()
		}
	}
	return open, closed
}

// Snapshot copies the lane arrangement so a drag can be undone. Lanes and
// tickets themselves are shared; only the orderings are copied.
func (b *BoardState) Snapshot() []*models.LaneDetail {
	snapshot := make([]*models.LaneDetail, len(b.lanes))
	for i, l := range b.lanes {
		snapshot[i] = &models.LaneDetail{
			Lane:    l.Lane,
			Tickets: slices.Clone(l.Tickets),
		}
	}
	return snapshot
}

// Restore puts back an arrangement taken with Snapshot
func (b *BoardState) Restore(snapshot []*models.LaneDetail) {
	b.lanes = snapshot
}

// SwapLanes exchanges two lanes on screen. It reports false when either
// index is out of range.
func (b *BoardState) SwapLanes(i, j int) bool {
	if b.Lane(i) == nil || b.Lane(j) == nil {
		return false
	}
	b.lanes[i], b.lanes[j] = b.lanes[j], b.lanes[i]
	return true
}

// MoveTicket moves a ticket on screen from (fromLane, fromIndex) to
// (toLane, toIndex). toIndex may equal the target lane's length to append.
func (b *BoardState) MoveTicket(fromLane, fromIndex, toLane, toIndex int) bool {
	ticket := b.Ticket(fromLane, fromIndex)
	target := b.Lane(toLane)
	if ticket == nil || target == nil {
		return false
	}

	source := b.lanes[fromLane]
	source.Tickets = slices.Delete(source.Tickets, fromIndex, fromIndex+1)
	if toIndex < 0 || toIndex > len(target.Tickets) {
		// put it back where it was
		source.Tickets = slices.Insert(source.Tickets, fromIndex, ticket)
		return false
	}
	target.Tickets = slices.Insert(target.Tickets, toIndex, ticket)
	return true
}
