package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

func testLane(ticketCount int) *models.LaneDetail {
	lane := &models.LaneDetail{Lane: &models.Lane{ID: 1, Name: "Qualified"}}
	for i := range ticketCount {
		lane.Tickets = append(lane.Tickets, &models.Ticket{
			ID:    types.TicketID(i + 1),
			Name:  "Deal",
			Value: 125050,
		})
	}
	return lane
}

func TestRenderTicket(t *testing.T) {
	ticket := &models.Ticket{
		Name:  "Acme renewal",
		Value: 125050,
		Tags:  []*models.Tag{{Name: "hot", Color: "#FF0000"}},
	}

	out := RenderTicket(ticket, "$", TicketIdle)

	for _, want := range []string{"Acme renewal", "$1,250.50", "#hot"} {
		if !strings.Contains(out, want) {
			t.Errorf("ticket card missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTicket_TruncatesLongNames(t *testing.T) {
	ticket := &models.Ticket{Name: strings.Repeat("Enterprise ", 10)}

	out := RenderTicket(ticket, "$", TicketSelected)

	if !strings.Contains(out, "…") {
		t.Errorf("expected long name to be truncated:\n%s", out)
	}
}

func TestRenderLane_HeaderAndValue(t *testing.T) {
	out := RenderLane(LaneProps{Lane: testLane(2), Currency: "$", Height: 30, SelectedTicket: -1})

	if !strings.Contains(out, "Qualified (2)") {
		t.Errorf("lane header missing:\n%s", out)
	}
	if !strings.Contains(out, "$2,501") {
		t.Errorf("lane value missing:\n%s", out)
	}
}

func TestRenderLane_Empty(t *testing.T) {
	out := RenderLane(LaneProps{Lane: testLane(0), Currency: "$", SelectedTicket: -1})
	if !strings.Contains(out, "No tickets") {
		t.Errorf("expected empty lane hint:\n%s", out)
	}
}

func TestRenderLane_ScrollIndicators(t *testing.T) {
	out := RenderLane(LaneProps{Lane: testLane(10), Currency: "$", Height: 20, SelectedTicket: 9})

	if !strings.Contains(out, "more above") {
		t.Errorf("expected the up indicator when the last ticket is selected:\n%s", out)
	}
	if strings.Contains(out, "more below") {
		t.Errorf("did not expect the down indicator:\n%s", out)
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                     string
		selected, visible, total int
		want                     int
	}{
		{"everything fits", 3, 5, 4, 0},
		{"selection in first page", 2, 3, 10, 0},
		{"selection past first page", 5, 3, 10, 3},
		{"last ticket", 9, 3, 10, 7},
		{"no selection", -1, 3, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrollOffset(tt.selected, tt.visible, tt.total); got != tt.want {
				t.Errorf("scrollOffset(%d, %d, %d) = %d, want %d", tt.selected, tt.visible, tt.total, got, tt.want)
			}
		})
	}
}

func TestRenderTabs(t *testing.T) {
	out := RenderTabs([]string{"Sales", "Partners"}, 1, 80)

	if !strings.Contains(out, "Sales") || !strings.Contains(out, "Partners") {
		t.Errorf("tabs missing pipeline names:\n%s", out)
	}
	if got := lipgloss.Width(out); got != 80 {
		t.Errorf("tab bar width = %d, want 80", got)
	}
}

func TestRenderStatusBar(t *testing.T) {
	out := RenderStatusBar(StatusBarProps{
		Width:       100,
		Currency:    "$",
		OpenValue:   60000,
		ClosedValue: 40000,
	})
	for _, want := range []string{"$600.00", "$400.00", "? help"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "live") {
		t.Errorf("connection status shown without a daemon: %s", out)
	}

	out = RenderStatusBar(StatusBarProps{
		Width:            100,
		Currency:         "$",
		Grabbed:          state.DragLane,
		ConnectionStatus: state.Connected,
		Live:             true,
	})
	if !strings.Contains(out, "LANE") || !strings.Contains(out, "live") {
		t.Errorf("status bar missing drag badge or connection: %s", out)
	}
}
