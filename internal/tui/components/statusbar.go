package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/converters"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
)

// StatusBarProps is everything the status bar shows
type StatusBarProps struct {
	Width            int
	Currency         string
	OpenValue        int64
	ClosedValue      int64
	Grabbed          state.DragKind
	ConnectionStatus state.ConnectionStatus
	Live             bool // A daemon client exists; otherwise connection status is hidden
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: pipeline values, or the drag hint while something is grabbed
// Right side: connection status and "? help"
func RenderStatusBar(props StatusBarProps) string {
	var left string
	switch props.Grabbed {
	case state.DragTicket:
		left = GrabbedBadgeStyle.Render("TICKET") + StatusBarStyle.Render(" move with arrows, enter to drop, esc to cancel")
	case state.DragLane:
		left = GrabbedBadgeStyle.Render("LANE") + StatusBarStyle.Render(" move with arrows, enter to drop, esc to cancel")
	default:
		left = StatusBarStyle.Render("open ") +
			ValueStyle.Render(converters.FormatMoney(props.Currency, props.OpenValue)) +
			StatusBarStyle.Render("  closed ") +
			ValueStyle.Render(converters.FormatMoney(props.Currency, props.ClosedValue))
	}

	right := "? help"
	if props.Live {
		right = props.ConnectionStatus.String() + "  " + right
	}
	rightRendered := StatusBarStyle.Render(right)

	gapWidth := max(props.Width-lipgloss.Width(left)-lipgloss.Width(rightRendered), 1)

	return left + strings.Repeat(" ", gapWidth) + rightRendered
}
