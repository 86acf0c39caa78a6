package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a row looked up by id does not exist
var ErrNotFound = errors.New("not found")

// notFound converts sql.ErrNoRows into ErrNotFound with the entity named,
// and passes any other error through unchanged.
func notFound(err error, entity string, id int) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return err
}

// requireAffected returns ErrNotFound when an update or delete touched no rows
func requireAffected(res sql.Result, entity string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return nil
}
