package database

import (
	"context"
	"testing"

	"github.com/thenoetrevino/pipeboard/internal/types"
)

// TestSetTicketTags_Replaces verifies the tag set is replaced, not merged
func TestSetTicketTags_Replaces(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead")
	tickets := seedTickets(t, repo, lanes[0], "a")

	hot, err := repo.CreateTag(ctx, pipeline.SubAccountID, "hot", "#FF0000")
	if err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	cold, err := repo.CreateTag(ctx, pipeline.SubAccountID, "cold", "#0000FF")
	if err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}

	if err := repo.SetTicketTags(ctx, tickets[0].ID, []types.TagID{hot.ID, cold.ID}); err != nil {
		t.Fatalf("SetTicketTags failed: %v", err)
	}
	if err := repo.SetTicketTags(ctx, tickets[0].ID, []types.TagID{cold.ID}); err != nil {
		t.Fatalf("SetTicketTags failed: %v", err)
	}

	got, err := repo.GetTicketByID(ctx, tickets[0].ID)
	if err != nil {
		t.Fatalf("GetTicketByID failed: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].ID != cold.ID {
		t.Errorf("Expected only cold tag, got %+v", got.Tags)
	}
}

// TestCreateTag_DuplicateNameRejected verifies tag names are unique per sub-account
func TestCreateTag_DuplicateNameRejected(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()
	pipeline := seedPipeline(t, repo)

	if _, err := repo.CreateTag(ctx, pipeline.SubAccountID, "hot", "#FF0000"); err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	if _, err := repo.CreateTag(ctx, pipeline.SubAccountID, "hot", "#00FF00"); err == nil {
		t.Error("Expected duplicate tag name to fail")
	}
}

// TestDeleteTag_DetachesFromTickets verifies ticket_tags rows cascade
func TestDeleteTag_DetachesFromTickets(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead")
	tickets := seedTickets(t, repo, lanes[0], "a")

	tag, err := repo.CreateTag(ctx, pipeline.SubAccountID, "hot", "#FF0000")
	if err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	if err := repo.SetTicketTags(ctx, tickets[0].ID, []types.TagID{tag.ID}); err != nil {
		t.Fatalf("SetTicketTags failed: %v", err)
	}
	if err := repo.DeleteTag(ctx, tag.ID); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}

	got, err := repo.GetTicketByID(ctx, tickets[0].ID)
	if err != nil {
		t.Fatalf("GetTicketByID failed: %v", err)
	}
	if len(got.Tags) != 0 {
		t.Errorf("Expected no tags after delete, got %d", len(got.Tags))
	}
}
