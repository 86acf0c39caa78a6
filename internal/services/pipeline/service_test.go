package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

func newTestService(t *testing.T) (Service, *database.Repository, *testutil.RecordingPublisher) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	pub := &testutil.RecordingPublisher{}
	return NewService(repo, pub), repo, pub
}

// ============================================================================
// CREATE
// ============================================================================

func TestCreatePipeline_WithLanes(t *testing.T) {
	t.Parallel()
	svc, repo, pub := newTestService(t)
	ctx := context.Background()

	account, err := repo.CreateSubAccount(ctx, "Acme")
	if err != nil {
		t.Fatalf("Failed to create sub-account: %v", err)
	}

	pipeline, err := svc.CreatePipeline(ctx, CreatePipelineRequest{
		SubAccountID: account.ID,
		Name:         "Sales",
		Lanes:        []string{"Lead", "Proposal", "Won"},
	})
	if err != nil {
		t.Fatalf("CreatePipeline failed: %v", err)
	}
	if pipeline.Name != "Sales" || pipeline.SubAccountID != account.ID {
		t.Errorf("Unexpected pipeline: %+v", pipeline)
	}

	lanes, err := repo.GetLanesByPipeline(ctx, pipeline.ID)
	if err != nil {
		t.Fatalf("GetLanesByPipeline failed: %v", err)
	}
	var names []string
	for i, lane := range lanes {
		if lane.Order != i {
			t.Errorf("Lane %q has order %d, want %d", lane.Name, lane.Order, i)
		}
		names = append(names, lane.Name)
	}
	if diff := cmp.Diff([]string{"Lead", "Proposal", "Won"}, names); diff != "" {
		t.Errorf("Lane names mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{pipeline.ID.ToInt()}, pub.PipelineIDs()); diff != "" {
		t.Errorf("Published events mismatch (-want +got):\n%s", diff)
	}
}

func TestCreatePipeline_Validation(t *testing.T) {
	t.Parallel()
	svc, _, pub := newTestService(t)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name    string
		req     CreatePipelineRequest
		wantErr error
	}{
		{"empty name", CreatePipelineRequest{SubAccountID: 1}, ErrEmptyName},
		{"name too long", CreatePipelineRequest{SubAccountID: 1, Name: string(long)}, ErrNameTooLong},
		{"invalid sub-account", CreatePipelineRequest{Name: "Sales"}, ErrInvalidSubAccountID},
		{"empty lane", CreatePipelineRequest{SubAccountID: 1, Name: "Sales", Lanes: []string{"Lead", ""}}, ErrEmptyLaneName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePipeline(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if n := len(pub.Events()); n != 0 {
		t.Errorf("Expected no events for rejected requests, got %d", n)
	}
}

func TestCreatePipeline_UnknownSubAccountRollsBack(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreatePipeline(ctx, CreatePipelineRequest{SubAccountID: 42, Name: "Sales", Lanes: []string{"Lead"}})
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	pipelines, err := repo.GetPipelinesBySubAccount(ctx, 42)
	if err != nil {
		t.Fatalf("GetPipelinesBySubAccount failed: %v", err)
	}
	if len(pipelines) != 0 {
		t.Errorf("Expected no pipelines, got %d", len(pipelines))
	}
}

// ============================================================================
// UPDATE / DELETE
// ============================================================================

func TestUpdatePipelineName(t *testing.T) {
	t.Parallel()
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	account := createAccount(t, svc)
	pipeline, err := svc.CreatePipeline(ctx, CreatePipelineRequest{SubAccountID: account, Name: "Sales"})
	if err != nil {
		t.Fatalf("CreatePipeline failed: %v", err)
	}

	if err := svc.UpdatePipelineName(ctx, pipeline.ID, "Renewals"); err != nil {
		t.Fatalf("UpdatePipelineName failed: %v", err)
	}

	got, err := svc.GetPipelineByID(ctx, pipeline.ID)
	if err != nil {
		t.Fatalf("GetPipelineByID failed: %v", err)
	}
	if got.Name != "Renewals" {
		t.Errorf("Expected name Renewals, got %q", got.Name)
	}
	if n := len(pub.Events()); n != 2 {
		t.Errorf("Expected 2 events, got %d", n)
	}

	if err := svc.UpdatePipelineName(ctx, pipeline.ID, ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if err := svc.UpdatePipelineName(ctx, 999, "Ghost"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeletePipeline(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	account := createAccount(t, svc)
	pipeline, err := svc.CreatePipeline(ctx, CreatePipelineRequest{SubAccountID: account, Name: "Sales", Lanes: []string{"Lead"}})
	if err != nil {
		t.Fatalf("CreatePipeline failed: %v", err)
	}

	if err := svc.DeletePipeline(ctx, pipeline.ID); err != nil {
		t.Fatalf("DeletePipeline failed: %v", err)
	}

	if _, err := svc.GetPipelineByID(ctx, pipeline.ID); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	lanes, err := repo.GetLanesByPipeline(ctx, pipeline.ID)
	if err != nil {
		t.Fatalf("GetLanesByPipeline failed: %v", err)
	}
	if len(lanes) != 0 {
		t.Errorf("Expected lanes to cascade, got %d", len(lanes))
	}

	if err := svc.DeletePipeline(ctx, 0); !errors.Is(err, ErrInvalidPipelineID) {
		t.Errorf("Expected ErrInvalidPipelineID, got %v", err)
	}
}

// ============================================================================
// VALUE
// ============================================================================

func TestGetPipelineValue(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	svc := NewService(database.NewRepository(db), nil)
	ctx := context.Background()

	pipelineID := testutil.CreateTestPipeline(t, db, "Sales")
	lanes := testutil.LaneIDs(t, db, pipelineID)
	testutil.CreateTestTicket(t, db, lanes[0], "Acme", 1000)
	testutil.CreateTestTicket(t, db, lanes[1], "Globex", 2000)
	testutil.CreateTestTicket(t, db, lanes[2], "Initech", 1000)
	testutil.CreateTestTicket(t, db, lanes[2], "Hooli", 2000)

	value, err := svc.GetPipelineValue(ctx, types.PipelineID(pipelineID))
	if err != nil {
		t.Fatalf("GetPipelineValue failed: %v", err)
	}

	want := &models.PipelineValue{
		PipelineID:  types.PipelineID(pipelineID),
		OpenValue:   3000,
		ClosedValue: 3000,
		ClosingRate: 50,
	}
	if diff := cmp.Diff(want, value); diff != "" {
		t.Errorf("Pipeline value mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.GetPipelineValue(ctx, 999); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	got := Summarize(7, []*models.LaneDetail{
		{Lane: &models.Lane{ID: 1}},
		{Lane: &models.Lane{ID: 2}},
	})
	want := &models.PipelineValue{PipelineID: 7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}

	if got := Summarize(7, nil); got.ClosingRate != 0 {
		t.Errorf("Expected zero closing rate for no lanes, got %v", got.ClosingRate)
	}
}

func createAccount(t *testing.T, svc Service) types.SubAccountID {
	t.Helper()
	s := svc.(*service)
	repo, ok := s.repo.(*database.Repository)
	if !ok {
		t.Fatalf("Unexpected repository type %T", s.repo)
	}
	account, err := repo.CreateSubAccount(context.Background(), "Acme")
	if err != nil {
		t.Fatalf("Failed to create sub-account: %v", err)
	}
	return account.ID
}
