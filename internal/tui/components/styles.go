// Package components provides the board's rendering building blocks.
// Call InitStyles() before use to initialize all style variables.
package components

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/pipeboard/internal/config/colors"
	"github.com/thenoetrevino/pipeboard/internal/tui/state"
	"github.com/thenoetrevino/pipeboard/internal/tui/theme"
)

// Card geometry. A lane is LaneSlotWidth wide including its border.
const (
	laneContentWidth = state.LaneSlotWidth - 4 // border + padding on both sides
	ticketCardWidth  = laneContentWidth - 2    // card border
	TicketCardHeight = 4                       // border + name + value/tags line
	laneOverhead     = 5                       // border(2) + header(1) + value(1) + top indicator(1)
)

// These are cached to avoid recomputing on every redraw.
var (
	// compared to the defaults, these feel like
	// they take up less space
	activeTabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      " ",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┘",
		BottomRight: "└",
	}

	tabBorder = lipgloss.Border{
		Top:         "─",
		Bottom:      "─",
		Left:        "│",
		Right:       "│",
		TopLeft:     "╭",
		TopRight:    "╮",
		BottomLeft:  "┴",
		BottomRight: "┴",
	}

	// TabStyle defines inactive pipeline tabs
	TabStyle lipgloss.Style

	// ActiveTabStyle defines the pipeline on screen
	ActiveTabStyle lipgloss.Style

	// TabGapStyle fills the remaining space after tabs
	TabGapStyle lipgloss.Style

	// LaneStyle defines the appearance of a lane
	LaneStyle lipgloss.Style

	// TicketStyle defines the appearance of ticket cards
	TicketStyle lipgloss.Style

	// TitleStyle defines lane names and the pipeline header
	TitleStyle lipgloss.Style

	// ValueStyle renders money amounts
	ValueStyle lipgloss.Style

	// SubtleStyle renders muted text such as empty-lane hints
	SubtleStyle lipgloss.Style

	// FormBoxStyle frames huh forms that add lanes or tickets
	FormBoxStyle lipgloss.Style

	// DeleteConfirmBoxStyle frames delete confirmations
	DeleteConfirmBoxStyle lipgloss.Style

	// HelpBoxStyle frames the full key help
	HelpBoxStyle lipgloss.Style

	// IndicatorStyle defines scroll indicators
	IndicatorStyle lipgloss.Style

	// StatusBarStyle defines the base style for the status bar
	StatusBarStyle lipgloss.Style

	// GrabbedBadgeStyle marks the status bar while something is grabbed
	GrabbedBadgeStyle lipgloss.Style
)

func init() {
	InitStyles(*colors.Default())
}

// InitStyles initializes all styles with the given color scheme
func InitStyles(scheme colors.ColorScheme) {
	theme.Init(scheme)

	TabStyle = lipgloss.NewStyle().
		Border(tabBorder, true).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(0, 1)

	ActiveTabStyle = TabStyle.Border(activeTabBorder, true)

	TabGapStyle = TabStyle.
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false)

	LaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.LaneBorder)).
		Padding(0, 1).
		Width(state.LaneSlotWidth - 2)

	TicketStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.TicketBorder)).
		Width(ticketCardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Value))

	SubtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Italic(true)

	FormBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Create)).
		Padding(1, 2)

	DeleteConfirmBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Delete)).
		Padding(1)

	HelpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Highlight)).
		Padding(1, 2)

	IndicatorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Align(lipgloss.Center)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	GrabbedBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.GrabbedBorder)).
		Padding(0, 1)
}
