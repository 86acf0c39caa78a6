package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

func lane(id int, ticketIDs ...int) *models.LaneDetail {
	l := &models.LaneDetail{Lane: &models.Lane{ID: types.LaneID(id), Name: "lane"}}
	for _, tid := range ticketIDs {
		l.Tickets = append(l.Tickets, &models.Ticket{ID: types.TicketID(tid), LaneID: types.LaneID(id), Value: int64(tid) * 100})
	}
	return l
}

func arrangement(b *BoardState) map[types.LaneID][]types.TicketID {
	out := make(map[types.LaneID][]types.TicketID)
	for _, l := range b.Lanes() {
		out[l.ID] = l.TicketIDs()
	}
	return out
}

func laneOrder(b *BoardState) []types.LaneID {
	var ids []types.LaneID
	for _, l := range b.Lanes() {
		ids = append(ids, l.ID)
	}
	return ids
}

func TestMoveTicket(t *testing.T) {
	tests := []struct {
		name                         string
		fromLane, fromIdx, toLane, to int
		want                         map[types.LaneID][]types.TicketID
		wantOK                       bool
	}{
		{
			name: "down within lane", fromLane: 0, fromIdx: 0, toLane: 0, to: 2, wantOK: true,
			want: map[types.LaneID][]types.TicketID{1: {11, 12, 10}, 2: {20}},
		},
		{
			name: "into next lane", fromLane: 0, fromIdx: 1, toLane: 1, to: 1, wantOK: true,
			want: map[types.LaneID][]types.TicketID{1: {10, 12}, 2: {20, 11}},
		},
		{
			name: "target index past end", fromLane: 0, fromIdx: 1, toLane: 1, to: 5, wantOK: false,
			want: map[types.LaneID][]types.TicketID{1: {10, 11, 12}, 2: {20}},
		},
		{
			name: "missing ticket", fromLane: 1, fromIdx: 3, toLane: 0, to: 0, wantOK: false,
			want: map[types.LaneID][]types.TicketID{1: {10, 11, 12}, 2: {20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoardState(1)
			b.SetLanes([]*models.LaneDetail{lane(1, 10, 11, 12), lane(2, 20)})

			if ok := b.MoveTicket(tt.fromLane, tt.fromIdx, tt.toLane, tt.to); ok != tt.wantOK {
				t.Errorf("MoveTicket() = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, arrangement(b)); diff != "" {
				t.Errorf("arrangement mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSnapshotRestore(t *testing.T) {
	b := NewBoardState(1)
	b.SetLanes([]*models.LaneDetail{lane(1, 10, 11), lane(2), lane(3, 30)})
	before := arrangement(b)

	snapshot := b.Snapshot()
	b.MoveTicket(0, 0, 1, 0)
	b.SwapLanes(0, 2)

	if diff := cmp.Diff(before, arrangement(b)); diff == "" {
		t.Fatal("board unchanged after moves")
	}

	b.Restore(snapshot)

	if diff := cmp.Diff(before, arrangement(b)); diff != "" {
		t.Errorf("restored arrangement mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]types.LaneID{1, 2, 3}, laneOrder(b)); diff != "" {
		t.Errorf("restored lane order mismatch (-want +got):\n%s", diff)
	}
}

func TestSwapLanes_OutOfRange(t *testing.T) {
	b := NewBoardState(1)
	b.SetLanes([]*models.LaneDetail{lane(1), lane(2)})

	if b.SwapLanes(1, 2) {
		t.Error("SwapLanes(1, 2) = true, want false")
	}
	if diff := cmp.Diff([]types.LaneID{1, 2}, laneOrder(b)); diff != "" {
		t.Errorf("lane order changed (-want +got):\n%s", diff)
	}
}

func TestValues(t *testing.T) {
	b := NewBoardState(1)
	b.SetLanes([]*models.LaneDetail{lane(1, 1, 2), lane(2, 3), lane(3, 4)})

	open, closed := b.Values()
	if open != 600 || closed != 400 {
		t.Errorf("Values() = (%d, %d), want (600, 400)", open, closed)
	}
}

func TestCurrentPipeline(t *testing.T) {
	b := NewBoardState(7)
	if b.CurrentPipeline() != nil {
		t.Fatal("CurrentPipeline() before load should be nil")
	}

	b.SetPipelines([]*models.Pipeline{{ID: 3, Name: "Partners"}, {ID: 7, Name: "Sales"}})
	if got := b.CurrentPipeline(); got == nil || got.Name != "Sales" {
		t.Errorf("CurrentPipeline() = %v, want Sales", got)
	}
	if got := b.PipelineIndex(); got != 1 {
		t.Errorf("PipelineIndex() = %d, want 1", got)
	}

	b.SetLanes([]*models.LaneDetail{lane(1)})
	b.SetCurrentPipeline(3)
	if len(b.Lanes()) != 0 {
		t.Error("switching pipelines should clear lanes")
	}
}
