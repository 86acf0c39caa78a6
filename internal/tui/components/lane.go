package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/tui/theme"
)

// LaneProps describes how a lane is drawn
type LaneProps struct {
	Lane     *models.LaneDetail
	Currency string
	Height   int // Total height including border; 0 for auto

	Selected       bool // Cursor is on this lane
	Grabbed        bool // The whole lane is being dragged
	SelectedTicket int  // Index of the highlighted ticket, -1 for none
	TicketGrabbed  bool // The highlighted ticket is being dragged
}

// RenderLane renders a lane with its header, summed value and tickets
//
// Layout:
//
//	{Lane name} ({count})
//	{value}
//	▲ (if scrolled down)
//	{Ticket 1}
//	{Ticket 2}
//	▼ (if more tickets below)
func RenderLane(props LaneProps) string {
	lane := props.Lane

	header := TitleStyle.Render(truncate(fmt.Sprintf("%s (%d)", lane.Name, len(lane.Tickets)), laneContentWidth))
	content := header + "\n" + ValueStyle.Render(converters.FormatMoneyShort(props.Currency, lane.Value())) + "\n"

	if len(lane.Tickets) == 0 {
		content += "\n" + SubtleStyle.Render("No tickets")
	} else {
		visible := max((props.Height-laneOverhead)/TicketCardHeight, 1)
		offset := scrollOffset(props.SelectedTicket, visible, len(lane.Tickets))
		end := min(offset+visible, len(lane.Tickets))

		if offset > 0 {
			content += IndicatorStyle.Render("▲ more above") + "\n"
		} else {
			content += "\n"
		}

		var cards []string
		for i := offset; i < end; i++ {
			cardState := TicketIdle
			if i == props.SelectedTicket {
				cardState = TicketSelected
				if props.TicketGrabbed {
					cardState = TicketGrabbed
				}
			}
			cards = append(cards, RenderTicket(lane.Tickets[i], props.Currency, cardState))
		}
		content += strings.Join(cards, "\n")

		if end < len(lane.Tickets) {
			content += "\n" + IndicatorStyle.Render("▼ more below")
		}
	}

	style := LaneStyle
	switch {
	case props.Grabbed:
		style = style.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(theme.GrabbedBorder))
	case props.Selected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	}
	if props.Height > 0 {
		style = style.Height(props.Height - 2)
	}

	return style.Render(content)
}

// scrollOffset returns the first visible ticket so that selected stays on screen
func scrollOffset(selected, visible, total int) int {
	if selected < visible || total <= visible {
		return 0
	}
	return min(selected-visible+1, total-visible)
}
