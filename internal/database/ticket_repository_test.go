package database

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

func ticketOrders(tickets []*models.Ticket) []int {
	orders := make([]int, len(tickets))
	for i, t := range tickets {
		orders[i] = t.Order
	}
	return orders
}

// TestCreateTicket_Appends verifies tickets are appended to the bottom of a lane
func TestCreateTicket_Appends(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead")

	created := seedTickets(t, repo, lanes[0], "a", "b", "c")
	if diff := cmp.Diff([]int{0, 1, 2}, ticketOrders(created)); diff != "" {
		t.Errorf("Ticket orders mismatch (-want +got):\n%s", diff)
	}
	if created[0].ContactID != nil {
		t.Errorf("Expected nil contact, got %v", *created[0].ContactID)
	}
}

// TestCreateTicket_WithContact verifies the nullable contact round-trips
func TestCreateTicket_WithContact(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead")

	contact, err := repo.CreateContact(ctx, pipeline.SubAccountID, "Ada", "ada@example.com")
	if err != nil {
		t.Fatalf("Failed to create contact: %v", err)
	}

	ticket, err := repo.CreateTicket(ctx, CreateTicketParams{
		Name:      "Deal",
		Value:     12345,
		LaneID:    lanes[0].ID,
		ContactID: &contact.ID,
	})
	if err != nil {
		t.Fatalf("CreateTicket failed: %v", err)
	}
	if ticket.ContactID == nil || *ticket.ContactID != contact.ID {
		t.Errorf("Expected contact %d, got %v", contact.ID, ticket.ContactID)
	}
	if ticket.Value != 12345 {
		t.Errorf("Expected value 12345, got %d", ticket.Value)
	}
}

// TestCreateTicket_NegativeValueRejected verifies the schema check constraint
func TestCreateTicket_NegativeValueRejected(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead")

	_, err := repo.CreateTicket(context.Background(), CreateTicketParams{
		Name: "Bad", Value: -1, LaneID: lanes[0].ID,
	})
	if err == nil {
		t.Error("Expected negative value to be rejected")
	}
}

// TestUpdateTicket verifies editable fields are rewritten
func TestUpdateTicket(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead")
	tickets := seedTickets(t, repo, lanes[0], "a")

	err := repo.UpdateTicket(ctx, UpdateTicketParams{
		ID: tickets[0].ID, Name: "renamed", Description: "notes", Value: 999,
	})
	if err != nil {
		t.Fatalf("UpdateTicket failed: %v", err)
	}

	got, err := repo.GetTicketByID(ctx, tickets[0].ID)
	if err != nil {
		t.Fatalf("GetTicketByID failed: %v", err)
	}
	if got.Name != "renamed" || got.Description != "notes" || got.Value != 999 {
		t.Errorf("Unexpected ticket after update: %+v", got)
	}
}

// TestUpdateTicketOrderAndLane_MovesAcrossLanes verifies the lane reference is rewritten
func TestUpdateTicketOrderAndLane_MovesAcrossLanes(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead", "Won")
	tickets := seedTickets(t, repo, lanes[0], "a")

	if err := repo.UpdateTicketOrderAndLane(ctx, tickets[0].ID, lanes[1].ID, 0); err != nil {
		t.Fatalf("UpdateTicketOrderAndLane failed: %v", err)
	}

	got, err := repo.GetTicketByID(ctx, tickets[0].ID)
	if err != nil {
		t.Fatalf("GetTicketByID failed: %v", err)
	}
	if got.LaneID != lanes[1].ID || got.Order != 0 {
		t.Errorf("Expected ticket in lane %d at 0, got lane %d at %d", lanes[1].ID, got.LaneID, got.Order)
	}
}

// TestUpdateTicketOrderAndLane_NotFound verifies unknown tickets report ErrNotFound
func TestUpdateTicketOrderAndLane_NotFound(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead")

	err := repo.UpdateTicketOrderAndLane(context.Background(), types.TicketID(77), lanes[0].ID, 0)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestDeleteTicket_Renumbers verifies the tickets below a deleted one shift up
func TestDeleteTicket_Renumbers(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()
	pipeline := seedPipeline(t, repo)
	lanes := seedLanes(t, repo, pipeline, "Lead")
	tickets := seedTickets(t, repo, lanes[0], "a", "b", "c")

	if _, err := repo.DeleteTicket(ctx, tickets[0].ID); err != nil {
		t.Fatalf("DeleteTicket failed: %v", err)
	}

	got, err := repo.GetTicketsByLane(ctx, lanes[0].ID)
	if err != nil {
		t.Fatalf("GetTicketsByLane failed: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1}, ticketOrders(got)); diff != "" {
		t.Errorf("Ticket orders mismatch (-want +got):\n%s", diff)
	}
	if got[0].Name != "b" {
		t.Errorf("Expected b first, got %s", got[0].Name)
	}
}

// TestDeleteTicket_NotFound verifies a missing ticket is reported
func TestDeleteTicket_NotFound(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)

	_, err := repo.DeleteTicket(context.Background(), types.TicketID(5))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
