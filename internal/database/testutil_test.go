package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/pipeboard/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open(DriverName, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// Every connection to :memory: is a new database, so pin the pool to one
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// setupTestRepo returns a repository over a fresh database
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

// ============================================================================
// FIXTURES
// ============================================================================

// seedPipeline creates a sub-account with one empty pipeline
func seedPipeline(t *testing.T, repo *Repository) *models.Pipeline {
	t.Helper()
	ctx := context.Background()

	account, err := repo.CreateSubAccount(ctx, "Acme")
	if err != nil {
		t.Fatalf("Failed to create subaccount: %v", err)
	}
	pipeline, err := repo.CreatePipeline(ctx, account.ID, "Sales")
	if err != nil {
		t.Fatalf("Failed to create pipeline: %v", err)
	}
	return pipeline
}

// seedLanes creates lanes with the given names in order
func seedLanes(t *testing.T, repo *Repository, pipeline *models.Pipeline, names ...string) []*models.Lane {
	t.Helper()
	lanes := make([]*models.Lane, len(names))
	for i, name := range names {
		lane, err := repo.CreateLane(context.Background(), pipeline.ID, name)
		if err != nil {
			t.Fatalf("Failed to create lane %q: %v", name, err)
		}
		lanes[i] = lane
	}
	return lanes
}

// seedTickets creates tickets with the given names at the bottom of lane
func seedTickets(t *testing.T, repo *Repository, lane *models.Lane, names ...string) []*models.Ticket {
	t.Helper()
	tickets := make([]*models.Ticket, len(names))
	for i, name := range names {
		ticket, err := repo.CreateTicket(context.Background(), CreateTicketParams{
			Name:   name,
			Value:  int64(100 * (i + 1)),
			LaneID: lane.ID,
		})
		if err != nil {
			t.Fatalf("Failed to create ticket %q: %v", name, err)
		}
		tickets[i] = ticket
	}
	return tickets
}
