// Package cli provides helpers for command integration tests.
// It lives apart from testutil so service tests importing testutil do not
// pull in the app and command packages.
package cli

import (
	"database/sql"
	"testing"

	"github.com/thenoetrevino/pipeboard/internal/app"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance.
// No event publisher is attached; event publishing is tested elsewhere.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, app.New(db)
}

// Fixture is a sub-account with one pipeline and its three default lanes
type Fixture struct {
	SubAccountID int
	PipelineID   int
	LaneIDs      []int
}

// SetupFixture seeds a pipeline with Lead, Qualified and Won lanes
func SetupFixture(t *testing.T, db *sql.DB) Fixture {
	t.Helper()
	pipelineID := testutil.CreateTestPipeline(t, db, "Sales")

	var subAccountID int
	if err := db.QueryRow("SELECT subaccount_id FROM pipelines WHERE id = ?", pipelineID).Scan(&subAccountID); err != nil {
		t.Fatalf("Failed to read fixture sub-account: %v", err)
	}

	return Fixture{
		SubAccountID: subAccountID,
		PipelineID:   pipelineID,
		LaneIDs:      testutil.LaneIDs(t, db, pipelineID),
	}
}
