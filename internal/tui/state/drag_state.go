package state

import "github.com/thenoetrevino/pipeboard/internal/models"

// DragKind says what the user has grabbed
type DragKind int

const (
	DragNone DragKind = iota
	DragTicket
	DragLane
)

// Grab records where a drag started. Containers are lanes for ticket drags
// and the pipeline for lane drags.
type Grab struct {
	Kind              DragKind
	ItemID            int
	SourceContainerID int
	SourceIndex       int

	// Snapshot and cursor restore the board when the drag is cancelled
	Snapshot     []*models.LaneDetail
	CursorLane   int
	CursorTicket int
}

// DragState tracks the drag in progress, if any
type DragState struct {
	grab Grab
}

// NewDragState creates a DragState with nothing grabbed
func NewDragState() *DragState {
	return &DragState{}
}

// Start begins a drag
func (d *DragState) Start(g Grab) {
	d.grab = g
}

// Active reports whether something is grabbed
func (d *DragState) Active() bool {
	return d.grab.Kind != DragNone
}

// Kind returns what is grabbed
func (d *DragState) Kind() DragKind {
	return d.grab.Kind
}

// Current returns the drag in progress
func (d *DragState) Current() Grab {
	return d.grab
}

// Clear ends the drag
func (d *DragState) Clear() {
	d.grab = Grab{}
}
