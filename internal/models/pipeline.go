package models

import (
	"time"

	"github.com/thenoetrevino/pipeboard/internal/types"
)

// Pipeline is a named sales process composed of ordered lanes
type Pipeline struct {
	ID           types.PipelineID   `db:"id" json:"id"`
	Name         string             `db:"name" json:"name"`
	SubAccountID types.SubAccountID `db:"subaccount_id" json:"subaccount_id"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at" json:"updated_at"`
}

// PipelineValue summarizes the money flowing through a pipeline.
// The last lane is treated as the closed stage; every other lane is open.
type PipelineValue struct {
	PipelineID  types.PipelineID `json:"pipeline_id"`
	OpenValue   int64            `json:"open_value"`   // Sum of ticket values in all lanes except the last
	ClosedValue int64            `json:"closed_value"` // Sum of ticket values in the last lane
	ClosingRate float64          `json:"closing_rate"` // ClosedValue / (OpenValue + ClosedValue) * 100
}

// TotalValue returns open plus closed value
func (v PipelineValue) TotalValue() int64 {
	return v.OpenValue + v.ClosedValue
}
