package models

import (
	"time"

	"github.com/thenoetrevino/pipeboard/internal/types"
)

// Lane is a stage within a pipeline.
// Order is the lane's dense 0-based display position among its sibling lanes.
type Lane struct {
	ID         types.LaneID     `db:"id" json:"id"`
	Name       string           `db:"name" json:"name"`
	PipelineID types.PipelineID `db:"pipeline_id" json:"pipeline_id"`
	Order      int              `db:"position" json:"order"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updated_at"`
}

// LaneDetail is a lane together with its tickets, ordered top to bottom
type LaneDetail struct {
	*Lane
	Tickets []*Ticket `json:"tickets"`
}

// Value returns the summed value of all tickets in the lane
func (d *LaneDetail) Value() int64 {
	var total int64
	for _, t := range d.Tickets {
		total += t.Value
	}
	return total
}

// TicketIDs returns the lane's ticket ids in display order
func (d *LaneDetail) TicketIDs() []types.TicketID {
	ids := make([]types.TicketID, len(d.Tickets))
	for i, t := range d.Tickets {
		ids[i] = t.ID
	}
	return ids
}
