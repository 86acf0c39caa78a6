package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// conn is the query handle shared by all repositories.
// A transaction-scoped conn has a nil db and routes everything through q.
type conn struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func newConn(db *sqlx.DB) conn {
	return conn{db: db, q: db}
}

// inTx runs fn inside a transaction. When the conn is already transaction-scoped
// fn runs inline so that the outer transaction stays the unit of commit.
func (c conn) inTx(ctx context.Context, fn func(q sqlx.ExtContext) error) error {
	if c.db == nil {
		return fn(c.q)
	}
	return withTx(ctx, c.db, func(tx *sqlx.Tx) error {
		return fn(tx)
	})
}

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// placeholders returns "?, ?, ?" for n parameters
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}
