package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"

	"github.com/thenoetrevino/pipeboard/internal/database"
	_ "modernc.org/sqlite"
)

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	return <-outC
}

// SetupTestDB creates an in-memory database with the real migrations applied.
// The pool is pinned to one connection because each :memory: connection is
// a separate database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open(database.DriverName, ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// CreateTestSubAccount creates a sub-account and returns its ID
func CreateTestSubAccount(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	return insert(t, db, "INSERT INTO subaccounts (name) VALUES (?)", name)
}

// CreateTestPipeline creates a pipeline with default lanes (Lead, Qualified, Won)
// under a fresh sub-account and returns the pipeline ID
func CreateTestPipeline(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	subAccountID := CreateTestSubAccount(t, db, name+" Account")
	pipelineID := insert(t, db, "INSERT INTO pipelines (name, subaccount_id) VALUES (?, ?)", name, subAccountID)

	CreateTestLane(t, db, pipelineID, "Lead")
	CreateTestLane(t, db, pipelineID, "Qualified")
	CreateTestLane(t, db, pipelineID, "Won")

	return pipelineID
}

// CreateTestLane appends a lane to a pipeline and returns its ID
func CreateTestLane(t *testing.T, db *sql.DB, pipelineID int, name string) int {
	t.Helper()
	return insert(t, db,
		`INSERT INTO lanes (pipeline_id, name, position)
		 SELECT ?, ?, COALESCE(MAX(position) + 1, 0) FROM lanes WHERE pipeline_id = ?`,
		pipelineID, name, pipelineID)
}

// CreateTestTicket appends a ticket to a lane and returns its ID
func CreateTestTicket(t *testing.T, db *sql.DB, laneID int, name string, value int64) int {
	t.Helper()
	return insert(t, db,
		`INSERT INTO tickets (lane_id, name, value, position)
		 SELECT ?, ?, ?, COALESCE(MAX(position) + 1, 0) FROM tickets WHERE lane_id = ?`,
		laneID, name, value, laneID)
}

// CreateTestTag creates a tag and returns its ID
func CreateTestTag(t *testing.T, db *sql.DB, subAccountID int, name, color string) int {
	t.Helper()
	return insert(t, db, "INSERT INTO tags (subaccount_id, name, color) VALUES (?, ?, ?)", subAccountID, name, color)
}

// LaneIDs returns a pipeline's lane IDs in position order
func LaneIDs(t *testing.T, db *sql.DB, pipelineID int) []int {
	t.Helper()
	return queryIDs(t, db, "SELECT id FROM lanes WHERE pipeline_id = ? ORDER BY position, id", pipelineID)
}

// TicketIDs returns a lane's ticket IDs in position order
func TicketIDs(t *testing.T, db *sql.DB, laneID int) []int {
	t.Helper()
	return queryIDs(t, db, "SELECT id FROM tickets WHERE lane_id = ? ORDER BY position, id", laneID)
}

func insert(t *testing.T, db *sql.DB, query string, args ...any) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(), query, args...)
	if err != nil {
		t.Fatalf("Failed to insert fixture: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get fixture ID: %v", err)
	}
	return int(id)
}

func queryIDs(t *testing.T, db *sql.DB, query string, arg int) []int {
	t.Helper()
	rows, err := db.QueryContext(context.Background(), query, arg)
	if err != nil {
		t.Fatalf("Failed to query ids: %v", err)
	}
	defer func() { _ = rows.Close() }()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Failed to scan id: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to iterate ids: %v", err)
	}
	return ids
}
