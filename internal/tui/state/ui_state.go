package state

// Mode represents the current interaction mode of the board.
// Each mode determines which keys are active and what is drawn over the board.
type Mode int

const (
	NormalMode              Mode = iota // Navigation, and dragging while a grab is active
	TicketFormMode                      // huh form adding a ticket to the selected lane
	LaneFormMode                        // huh form appending a lane
	DeleteTicketConfirmMode             // Confirming ticket deletion
	DeleteLaneConfirmMode               // Confirming lane deletion
	HelpMode                            // Full key help
)

// String returns the mode name shown in the status bar
func (m Mode) String() string {
	switch m {
	case TicketFormMode:
		return "new ticket"
	case LaneFormMode:
		return "new lane"
	case DeleteTicketConfirmMode, DeleteLaneConfirmMode:
		return "confirm"
	case HelpMode:
		return "help"
	default:
		return "normal"
	}
}

// LaneSlotWidth is the horizontal space one lane takes, borders included
const LaneSlotWidth = 34

// UIState manages the user interface state: the cursor, viewport scrolling,
// terminal dimensions and the current interaction mode.
type UIState struct {
	// selectedLane is the index of the lane under the cursor
	selectedLane int

	// selectedTicket is the index of the ticket under the cursor within the selected lane
	selectedTicket int

	width  int
	height int

	mode Mode

	// viewportOffset is the index of the leftmost visible lane
	viewportOffset int
}

// NewUIState creates a new UIState in NormalMode with the cursor on the first lane.
func NewUIState() *UIState {
	return &UIState{mode: NormalMode}
}

// SelectedLane returns the index of the currently selected lane.
func (s *UIState) SelectedLane() int {
	return s.selectedLane
}

// SetSelectedLane updates the selected lane index.
func (s *UIState) SetSelectedLane(index int) {
	s.selectedLane = index
}

// SelectedTicket returns the index of the currently selected ticket.
func (s *UIState) SelectedTicket() int {
	return s.selectedTicket
}

// SetSelectedTicket updates the selected ticket index.
func (s *UIState) SetSelectedTicket(index int) {
	s.selectedTicket = index
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width.
func (s *UIState) SetWidth(width int) {
	s.width = width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the height left for lanes after the tab bar and
// status bar, never less than 5.
func (s *UIState) ContentHeight() int {
	const tabBarHeight = 3
	const statusBarHeight = 2
	return max(s.height-tabBarHeight-statusBarHeight, 5)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// ViewportOffset returns the index of the leftmost visible lane.
func (s *UIState) ViewportOffset() int {
	return s.viewportOffset
}

// SetViewportOffset updates the viewport offset.
func (s *UIState) SetViewportOffset(offset int) {
	s.viewportOffset = max(offset, 0)
}

// ViewportSize returns the number of lanes that fit on screen, at least one.
// Two characters are kept for the scroll indicators on either side.
func (s *UIState) ViewportSize() int {
	return max((s.width-4)/LaneSlotWidth, 1)
}

// EnsureLaneVisible scrolls the viewport so the lane at index is on screen.
func (s *UIState) EnsureLaneVisible(index int) {
	size := s.ViewportSize()
	switch {
	case index < s.viewportOffset:
		s.viewportOffset = index
	case index >= s.viewportOffset+size:
		s.viewportOffset = index - size + 1
	}
}

// ClampSelection keeps the cursor inside a board of laneCount lanes whose
// selected lane holds ticketCount tickets.
func (s *UIState) ClampSelection(laneCount int, ticketCount func(lane int) int) {
	if laneCount == 0 {
		s.selectedLane, s.selectedTicket, s.viewportOffset = 0, 0, 0
		return
	}
	s.selectedLane = min(max(s.selectedLane, 0), laneCount-1)
	s.selectedTicket = min(max(s.selectedTicket, 0), max(ticketCount(s.selectedLane)-1, 0))
	s.viewportOffset = min(s.viewportOffset, max(laneCount-s.ViewportSize(), 0))
	s.EnsureLaneVisible(s.selectedLane)
}
