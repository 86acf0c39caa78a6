package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	conn
	*SubAccountRepo
	*PipelineRepo
	*LaneRepo
	*TicketRepo
	*TagRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return newRepository(newConn(sqlx.NewDb(db, DriverName)))
}

func newRepository(c conn) *Repository {
	return &Repository{
		conn:           c,
		SubAccountRepo: &SubAccountRepo{conn: c},
		PipelineRepo:   &PipelineRepo{conn: c},
		LaneRepo:       &LaneRepo{conn: c},
		TicketRepo:     &TicketRepo{conn: c},
		TagRepo:        &TagRepo{conn: c},
	}
}

// WithTx runs fn against a repository bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
// Calling WithTx on a repository that is already transaction-scoped joins
// the outer transaction.
//
// The pool holds a single connection, so fn must use only the store it is
// given; touching the outer repository from inside fn blocks forever.
func (r *Repository) WithTx(ctx context.Context, fn func(DataStore) error) error {
	return r.inTx(ctx, func(q sqlx.ExtContext) error {
		return fn(newRepository(conn{q: q}))
	})
}
