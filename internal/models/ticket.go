package models

import (
	"time"

	"github.com/thenoetrevino/pipeboard/internal/types"
)

// Ticket is a deal with a monetary value that sits in exactly one lane.
// Value is held in minor currency units (cents).
type Ticket struct {
	ID          types.TicketID   `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	Description string           `db:"description" json:"description"`
	Value       int64            `db:"value" json:"value"`
	LaneID      types.LaneID     `db:"lane_id" json:"lane_id"`
	Order       int              `db:"position" json:"order"`
	ContactID   *types.ContactID `db:"contact_id" json:"contact_id,omitempty"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updated_at"`
	Tags        []*Tag           `db:"-" json:"tags,omitempty"`
}

// Tag is a sub-account scoped label that can be attached to tickets
type Tag struct {
	ID           types.TagID        `db:"id" json:"id"`
	Name         string             `db:"name" json:"name"`
	Color        string             `db:"color" json:"color"` // Hex color code (e.g., "#7D56F4")
	SubAccountID types.SubAccountID `db:"subaccount_id" json:"subaccount_id"`
}
