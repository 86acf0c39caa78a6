package tag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thenoetrevino/pipeboard/internal/database"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

func TestCreateTag(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	svc := NewService(database.NewRepository(db))
	ctx := context.Background()
	account := types.SubAccountID(testutil.CreateTestSubAccount(t, db, "Acme"))

	tag, err := svc.CreateTag(ctx, CreateTagRequest{SubAccountID: account, Name: "vip", Color: "#FFAA00"})
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	if tag.Color != "#FFAA00" || tag.SubAccountID != account {
		t.Errorf("Unexpected tag: %+v", tag)
	}

	plain, err := svc.CreateTag(ctx, CreateTagRequest{SubAccountID: account, Name: "cold"})
	if err != nil {
		t.Fatalf("CreateTag without color failed: %v", err)
	}
	if plain.Color != DefaultColor {
		t.Errorf("Expected default color %s, got %s", DefaultColor, plain.Color)
	}

	tags, err := svc.GetTagsBySubAccount(ctx, account)
	if err != nil {
		t.Fatalf("GetTagsBySubAccount failed: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "cold" || tags[1].Name != "vip" {
		t.Errorf("Expected tags sorted by name, got %+v", tags)
	}

	if _, err := svc.CreateTag(ctx, CreateTagRequest{SubAccountID: account, Name: "vip", Color: "#000000"}); err == nil {
		t.Error("Expected duplicate tag name to fail")
	}
}

func TestCreateTag_Validation(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	svc := NewService(database.NewRepository(db))

	tests := []struct {
		name    string
		req     CreateTagRequest
		wantErr error
	}{
		{"invalid sub-account", CreateTagRequest{Name: "vip"}, ErrInvalidSubAccountID},
		{"empty name", CreateTagRequest{SubAccountID: 1}, ErrEmptyName},
		{"name too long", CreateTagRequest{SubAccountID: 1, Name: strings.Repeat("a", 51)}, ErrNameTooLong},
		{"short color", CreateTagRequest{SubAccountID: 1, Name: "vip", Color: "#FFF"}, ErrInvalidColor},
		{"missing hash", CreateTagRequest{SubAccountID: 1, Name: "vip", Color: "FFAA00"}, ErrInvalidColor},
		{"unknown sub-account", CreateTagRequest{SubAccountID: 8, Name: "vip"}, database.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTag(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDeleteTag(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	svc := NewService(database.NewRepository(db))
	ctx := context.Background()
	account := testutil.CreateTestSubAccount(t, db, "Acme")
	id := types.TagID(testutil.CreateTestTag(t, db, account, "vip", "#FFAA00"))

	if err := svc.DeleteTag(ctx, id); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if err := svc.DeleteTag(ctx, id); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
	if err := svc.DeleteTag(ctx, 0); !errors.Is(err, ErrInvalidTagID) {
		t.Errorf("Expected ErrInvalidTagID, got %v", err)
	}
}
