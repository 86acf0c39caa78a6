package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/tui/theme"
)

// TicketCardState says how a card is highlighted
type TicketCardState int

const (
	TicketIdle TicketCardState = iota
	TicketSelected
	TicketGrabbed
)

// RenderTicket renders a ticket as a fixed size card
//
//	┌────────────────────────────┐
//	│ {Ticket name}              │
//	│ $1,250.00  #hot #renewal   │
//	└────────────────────────────┘
func RenderTicket(ticket *models.Ticket, currency string, cardState TicketCardState) string {
	name := truncate(ticket.Name, ticketCardWidth-1)
	title := lipgloss.NewStyle().Bold(true).Render(" " + name)

	value := ValueStyle.Render(converters.FormatMoney(currency, ticket.Value))
	tags := renderTagChips(ticket.Tags, ticketCardWidth-lipgloss.Width(value)-3)
	meta := " " + value
	if tags != "" {
		meta += "  " + tags
	}

	style := TicketStyle
	switch cardState {
	case TicketSelected:
		style = style.BorderForeground(lipgloss.Color(theme.SelectedBorder))
	case TicketGrabbed:
		style = style.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(theme.GrabbedBorder))
	}

	return style.Render(title + "\n" + meta)
}

// truncate shortens s to at most width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
