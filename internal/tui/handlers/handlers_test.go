package handlers

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/thenoetrevino/pipeboard/internal/app"
	"github.com/thenoetrevino/pipeboard/internal/config"
	"github.com/thenoetrevino/pipeboard/internal/services/reorder"
	"github.com/thenoetrevino/pipeboard/internal/testutil"
	"github.com/thenoetrevino/pipeboard/internal/tui"
	"github.com/thenoetrevino/pipeboard/internal/tui/modelops"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// board is a loaded model over Lead [Acme, Beta], Qualified [Cobalt], Won []
type board struct {
	m       *tui.Model
	db      *sql.DB
	laneIDs []int
	acme    int
	beta    int
	cobalt  int
}

func setupBoard(t *testing.T) board {
	t.Helper()
	db := testutil.SetupTestDB(t)
	pipelineID := testutil.CreateTestPipeline(t, db, "Sales")
	laneIDs := testutil.LaneIDs(t, db, pipelineID)

	b := board{
		db:      db,
		laneIDs: laneIDs,
		acme:    testutil.CreateTestTicket(t, db, laneIDs[0], "Acme", 100000),
		beta:    testutil.CreateTestTicket(t, db, laneIDs[0], "Beta", 25000),
		cobalt:  testutil.CreateTestTicket(t, db, laneIDs[1], "Cobalt", 5000),
	}

	m := tui.InitialModel(context.Background(), app.New(db), config.Default(), types.PipelineID(pipelineID))
	b.m = &m
	HandleWindowResize(b.m, tea.WindowSizeMsg{Width: 160, Height: 40})
	reload(t, b.m)
	return b
}

// reload runs the board load synchronously
func reload(t *testing.T, m *tui.Model) {
	t.Helper()
	msg, ok := modelops.LoadBoard(m)().(tui.BoardLoadedMsg)
	if !ok {
		t.Fatal("LoadBoard did not return a BoardLoadedMsg")
	}
	if msg.Err != nil {
		t.Fatalf("LoadBoard failed: %v", msg.Err)
	}
	modelops.ApplyBoard(m, msg)
}

func keyPress(k string) tea.KeyPressMsg {
	switch k {
	case "space":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace})
	case "enter":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	case "esc":
		return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg(tea.Key{Text: k, Code: r})
}

// press sends keys in order and returns the command from the last one
func press(m *tui.Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = HandleKeyMsg(m, keyPress(k))
	}
	return cmd
}

// boardTickets returns the ticket names of every lane as shown on screen
func boardTickets(m *tui.Model) [][]string {
	var lanes [][]string
	for _, lane := range m.Board.Lanes() {
		names := []string{}
		for _, ticket := range lane.Tickets {
			names = append(names, ticket.Name)
		}
		lanes = append(lanes, names)
	}
	return lanes
}

func dropResult(t *testing.T, cmd tea.Cmd) tui.DropResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a drop command")
	}
	raw := cmd()
	msg, ok := raw.(tui.DropResultMsg)
	if !ok {
		t.Fatalf("expected DropResultMsg, got %T", raw)
	}
	return msg
}

func TestDragTicket_AcrossLanes(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "space")
	if b.m.Drag.Kind() != state.DragTicket {
		t.Fatalf("Drag kind = %v, want DragTicket", b.m.Drag.Kind())
	}

	press(b.m, "l")
	want := [][]string{{"Beta"}, {"Acme", "Cobalt"}, {}}
	if diff := cmp.Diff(want, boardTickets(b.m)); diff != "" {
		t.Errorf("optimistic board mismatch (-want +got):\n%s", diff)
	}
	if b.m.UiState.SelectedLane() != 1 || b.m.UiState.SelectedTicket() != 0 {
		t.Errorf("cursor = (%d, %d), want (1, 0)", b.m.UiState.SelectedLane(), b.m.UiState.SelectedTicket())
	}

	msg := dropResult(t, press(b.m, "enter"))
	if msg.Err != nil {
		t.Fatalf("drop failed: %v", msg.Err)
	}
	if b.m.Drag.Active() {
		t.Error("drag should end on drop")
	}

	want2 := reorder.DropEvent{
		Kind:                   reorder.DropTicket,
		DraggedID:              b.acme,
		SourceIndex:            0,
		DestinationIndex:       0,
		SourceContainerID:      b.laneIDs[0],
		DestinationContainerID: b.laneIDs[1],
	}
	if diff := cmp.Diff(want2, msg.Drop); diff != "" {
		t.Errorf("drop event mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]int{b.acme, b.cobalt}, testutil.TicketIDs(t, b.db, b.laneIDs[1])); diff != "" {
		t.Errorf("stored Qualified lane mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{b.beta}, testutil.TicketIDs(t, b.db, b.laneIDs[0])); diff != "" {
		t.Errorf("stored Lead lane mismatch (-want +got):\n%s", diff)
	}

	Update(b.m, msg)
	notes := b.m.NotificationState.All()
	if len(notes) != 1 || notes[0].Level != state.LevelInfo {
		t.Errorf("expected one info notification, got %+v", notes)
	}
}

func TestDragTicket_WithinLane(t *testing.T) {
	b := setupBoard(t)

	msg := dropResult(t, press(b.m, "space", "j", "enter"))
	if msg.Err != nil {
		t.Fatalf("drop failed: %v", msg.Err)
	}
	if diff := cmp.Diff([]int{b.beta, b.acme}, testutil.TicketIDs(t, b.db, b.laneIDs[0])); diff != "" {
		t.Errorf("stored Lead lane mismatch (-want +got):\n%s", diff)
	}
}

func TestDragTicket_CancelRestoresBoard(t *testing.T) {
	b := setupBoard(t)
	before := boardTickets(b.m)

	if cmd := press(b.m, "space", "j", "l", "esc"); cmd != nil {
		t.Error("cancel should not persist anything")
	}

	if diff := cmp.Diff(before, boardTickets(b.m)); diff != "" {
		t.Errorf("board not restored (-want +got):\n%s", diff)
	}
	if b.m.Drag.Active() {
		t.Error("drag should end on cancel")
	}
	if b.m.UiState.SelectedLane() != 0 || b.m.UiState.SelectedTicket() != 0 {
		t.Errorf("cursor = (%d, %d), want (0, 0)", b.m.UiState.SelectedLane(), b.m.UiState.SelectedTicket())
	}
	if diff := cmp.Diff([]int{b.acme, b.beta}, testutil.TicketIDs(t, b.db, b.laneIDs[0])); diff != "" {
		t.Errorf("storage changed on cancel (-want +got):\n%s", diff)
	}
}

func TestDrop_UnmovedIsNoOp(t *testing.T) {
	b := setupBoard(t)

	if cmd := press(b.m, "space", "enter"); cmd != nil {
		t.Error("dropping onto the starting slot should not persist anything")
	}
	// moving away and back is also unmoved
	if cmd := press(b.m, "space", "l", "h", "enter"); cmd != nil {
		t.Error("drag that returns to its start should not persist anything")
	}
}

func TestDrag_EdgesAreIgnored(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "space", "h", "k")
	if diff := cmp.Diff([][]string{{"Acme", "Beta"}, {"Cobalt"}, {}}, boardTickets(b.m)); diff != "" {
		t.Errorf("board changed at the edges (-want +got):\n%s", diff)
	}
	if !b.m.Drag.Active() {
		t.Error("drag should still be active")
	}
}

func TestDragLane(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "g", "l")
	if got := b.m.Board.Lane(1).Name; got != "Lead" {
		t.Errorf("lane 1 on screen = %q, want Lead", got)
	}

	msg := dropResult(t, press(b.m, "enter"))
	if msg.Err != nil {
		t.Fatalf("drop failed: %v", msg.Err)
	}
	if msg.Drop.Kind != reorder.DropLane || msg.Drop.SourceIndex != 0 || msg.Drop.DestinationIndex != 1 {
		t.Errorf("unexpected drop event: %+v", msg.Drop)
	}

	want := []int{b.laneIDs[1], b.laneIDs[0], b.laneIDs[2]}
	if diff := cmp.Diff(want, testutil.LaneIDs(t, b.db, int(b.m.Board.CurrentPipelineID()))); diff != "" {
		t.Errorf("stored lane order mismatch (-want +got):\n%s", diff)
	}
}

func TestDrop_FailureRevertsBoard(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "space", "l")

	// another client deletes the ticket mid-drag
	if _, err := b.db.Exec("DELETE FROM tickets WHERE id = ?", b.acme); err != nil {
		t.Fatalf("failed to delete ticket: %v", err)
	}

	msg := dropResult(t, press(b.m, "enter"))
	if !errors.Is(msg.Err, reorder.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", msg.Err)
	}

	Update(b.m, msg)
	notes := b.m.NotificationState.All()
	if len(notes) != 1 || notes[0].Level != state.LevelError {
		t.Errorf("expected one error notification, got %+v", notes)
	}

	reload(t, b.m)
	if diff := cmp.Diff([][]string{{"Beta"}, {"Cobalt"}, {}}, boardTickets(b.m)); diff != "" {
		t.Errorf("board after reload mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyBoard_IgnoredDuringDrag(t *testing.T) {
	b := setupBoard(t)
	press(b.m, "space", "l")

	loaded := modelops.LoadBoard(b.m)().(tui.BoardLoadedMsg)
	modelops.ApplyBoard(b.m, loaded)

	if diff := cmp.Diff([][]string{{"Beta"}, {"Acme", "Cobalt"}, {}}, boardTickets(b.m)); diff != "" {
		t.Errorf("load replaced the board mid-drag (-want +got):\n%s", diff)
	}
}

func TestApplyBoard_IgnoresOtherPipeline(t *testing.T) {
	b := setupBoard(t)

	modelops.ApplyBoard(b.m, tui.BoardLoadedMsg{PipelineID: b.m.Board.CurrentPipelineID() + 1})

	if len(b.m.Board.Lanes()) != 3 {
		t.Errorf("stale load replaced lanes, got %d lanes", len(b.m.Board.Lanes()))
	}
}

func TestNormalMode_Navigation(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "j")
	if b.m.UiState.SelectedTicket() != 1 {
		t.Errorf("selected ticket = %d, want 1", b.m.UiState.SelectedTicket())
	}

	// Qualified only has one ticket, so the cursor is clamped
	press(b.m, "l")
	if b.m.UiState.SelectedLane() != 1 || b.m.UiState.SelectedTicket() != 0 {
		t.Errorf("cursor = (%d, %d), want (1, 0)", b.m.UiState.SelectedLane(), b.m.UiState.SelectedTicket())
	}

	press(b.m, "l", "l", "l")
	if b.m.UiState.SelectedLane() != 2 {
		t.Errorf("selected lane = %d, want 2", b.m.UiState.SelectedLane())
	}

	// grabbing in an empty lane does nothing
	press(b.m, "space")
	if b.m.Drag.Active() {
		t.Error("grabbed a ticket in an empty lane")
	}
}

func TestNormalMode_HelpToggle(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "?")
	if b.m.UiState.Mode() != state.HelpMode {
		t.Fatalf("mode = %v, want HelpMode", b.m.UiState.Mode())
	}
	press(b.m, "?")
	if b.m.UiState.Mode() != state.NormalMode {
		t.Errorf("mode = %v, want NormalMode", b.m.UiState.Mode())
	}
}

func TestDeleteTicketConfirm(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "d")
	if b.m.UiState.Mode() != state.DeleteTicketConfirmMode {
		t.Fatalf("mode = %v, want DeleteTicketConfirmMode", b.m.UiState.Mode())
	}
	if cmd := press(b.m, "n"); cmd != nil {
		t.Error("declining should not delete")
	}

	cmd := press(b.m, "d", "y")
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
	msg, ok := cmd().(tui.MutationResultMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("delete failed: %+v", msg)
	}
	if diff := cmp.Diff([]int{b.beta}, testutil.TicketIDs(t, b.db, b.laneIDs[0])); diff != "" {
		t.Errorf("stored Lead lane mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteLaneConfirm(t *testing.T) {
	b := setupBoard(t)

	cmd := press(b.m, "l", "D", "y")
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
	if msg := cmd().(tui.MutationResultMsg); msg.Err != nil {
		t.Fatalf("delete failed: %v", msg.Err)
	}

	reload(t, b.m)
	if got := len(b.m.Board.Lanes()); got != 2 {
		t.Errorf("lane count = %d, want 2", got)
	}
}

func TestLaneForm_CancelClosesForm(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "A")
	if b.m.UiState.Mode() != state.LaneFormMode || b.m.FormState.LaneForm == nil {
		t.Fatalf("expected lane form to open, mode = %v", b.m.UiState.Mode())
	}

	Update(b.m, keyPress("esc"))
	if b.m.UiState.Mode() != state.NormalMode {
		t.Errorf("mode = %v, want NormalMode", b.m.UiState.Mode())
	}
	if b.m.FormState.LaneForm != nil {
		t.Error("lane form should be cleared")
	}
}

func TestTicketForm_OpensForSelectedLane(t *testing.T) {
	b := setupBoard(t)

	press(b.m, "l", "a")
	if b.m.UiState.Mode() != state.TicketFormMode {
		t.Fatalf("mode = %v, want TicketFormMode", b.m.UiState.Mode())
	}
	if got := int(b.m.FormState.TicketLaneID); got != b.laneIDs[1] {
		t.Errorf("ticket lane = %d, want %d", got, b.laneIDs[1])
	}
}

func TestMutationResult_Failure(t *testing.T) {
	b := setupBoard(t)

	handleMutationResult(b.m, tui.MutationResultMsg{Failure: "Failed to add lane", Err: errors.New("boom")})

	notes := b.m.NotificationState.All()
	if len(notes) != 1 || notes[0].Level != state.LevelError {
		t.Fatalf("expected one error notification, got %+v", notes)
	}
	if notes[0].Message != "Failed to add lane: boom" {
		t.Errorf("message = %q", notes[0].Message)
	}
}
