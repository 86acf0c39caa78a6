// Package database defines repository interfaces for data access
package database

import (
	"context"

	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// SubAccountReader defines read operations for sub-accounts and contacts.
type SubAccountReader interface {
	GetSubAccounts(ctx context.Context) ([]*models.SubAccount, error)
	GetSubAccountByID(ctx context.Context, id types.SubAccountID) (*models.SubAccount, error)
	GetContactByID(ctx context.Context, id types.ContactID) (*models.Contact, error)
	GetContactsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Contact, error)
}

// SubAccountWriter defines write operations for sub-accounts and contacts.
type SubAccountWriter interface {
	CreateSubAccount(ctx context.Context, name string) (*models.SubAccount, error)
	CreateContact(ctx context.Context, subAccountID types.SubAccountID, name, email string) (*models.Contact, error)
}

// SubAccountRepository combines all sub-account operations.
type SubAccountRepository interface {
	SubAccountReader
	SubAccountWriter
}

// PipelineReader defines read operations for pipelines.
type PipelineReader interface {
	GetPipelineByID(ctx context.Context, id types.PipelineID) (*models.Pipeline, error)
	GetPipelinesBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Pipeline, error)
}

// PipelineWriter defines write operations for pipelines.
type PipelineWriter interface {
	CreatePipeline(ctx context.Context, subAccountID types.SubAccountID, name string) (*models.Pipeline, error)
	UpdatePipelineName(ctx context.Context, id types.PipelineID, name string) error
	DeletePipeline(ctx context.Context, id types.PipelineID) error
}

// PipelineRepository combines all pipeline operations.
type PipelineRepository interface {
	PipelineReader
	PipelineWriter
}

// LaneReader defines read operations for lanes.
type LaneReader interface {
	GetLaneByID(ctx context.Context, id types.LaneID) (*models.Lane, error)
	GetLanesByPipeline(ctx context.Context, pipelineID types.PipelineID) ([]*models.Lane, error)
	GetLanesWithTickets(ctx context.Context, pipelineID types.PipelineID) ([]*models.LaneDetail, error)
}

// LaneWriter defines write operations for lanes.
type LaneWriter interface {
	CreateLane(ctx context.Context, pipelineID types.PipelineID, name string) (*models.Lane, error)
	UpdateLaneName(ctx context.Context, id types.LaneID, name string) error
	UpdateLaneOrder(ctx context.Context, id types.LaneID, order int) error
	DeleteLane(ctx context.Context, id types.LaneID) (*models.Lane, error)
}

// LaneRepository combines all lane operations.
type LaneRepository interface {
	LaneReader
	LaneWriter
}

// TicketReader defines read operations for tickets.
type TicketReader interface {
	GetTicketByID(ctx context.Context, id types.TicketID) (*models.Ticket, error)
	GetTicketsByLane(ctx context.Context, laneID types.LaneID) ([]*models.Ticket, error)
}

// TicketWriter defines write operations for tickets.
type TicketWriter interface {
	CreateTicket(ctx context.Context, p CreateTicketParams) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, p UpdateTicketParams) error
	UpdateTicketOrderAndLane(ctx context.Context, id types.TicketID, laneID types.LaneID, order int) error
	DeleteTicket(ctx context.Context, id types.TicketID) (*models.Ticket, error)
}

// TicketRepository combines all ticket operations.
type TicketRepository interface {
	TicketReader
	TicketWriter
}

// TagReader defines read operations for tags.
type TagReader interface {
	GetTagByID(ctx context.Context, id types.TagID) (*models.Tag, error)
	GetTagsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Tag, error)
}

// TagWriter defines write operations for tags.
type TagWriter interface {
	CreateTag(ctx context.Context, subAccountID types.SubAccountID, name, color string) (*models.Tag, error)
	DeleteTag(ctx context.Context, id types.TagID) error
	SetTicketTags(ctx context.Context, ticketID types.TicketID, tagIDs []types.TagID) error
}

// TagRepository combines all tag operations.
type TagRepository interface {
	TagReader
	TagWriter
}
