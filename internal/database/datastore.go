package database

import "context"

// DataStore defines the unified interface for all data operations.
// It is composed of smaller, domain-specific interfaces; consumers that only
// need one area (e.g. LaneRepository) should depend on that instead.
type DataStore interface {
	SubAccountRepository
	PipelineRepository
	LaneRepository
	TicketRepository
	TagRepository

	// WithTx runs fn against a store bound to one transaction
	WithTx(ctx context.Context, fn func(DataStore) error) error
}

var _ DataStore = (*Repository)(nil)
