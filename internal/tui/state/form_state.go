package state

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// FormState holds the huh form being shown and the values its fields write to.
type FormState struct {
	// Ticket form
	TicketForm        *huh.Form
	TicketLaneID      types.LaneID // Lane the ticket is added to
	FormTicketName    string
	FormTicketDesc    string
	FormTicketValue   string
	FormTicketConfirm bool

	// Lane form
	LaneForm     *huh.Form
	FormLaneName string

	// Delete confirmation target, captured when the dialog opens
	DeleteTicketID types.TicketID
	DeleteLaneID   types.LaneID
	DeleteName     string
}

// NewFormState creates a FormState with no form open
func NewFormState() *FormState {
	return &FormState{}
}

// ResetTicketForm clears the ticket form and its values
func (s *FormState) ResetTicketForm() {
	s.TicketForm = nil
	s.TicketLaneID = 0
	s.FormTicketName = ""
	s.FormTicketDesc = ""
	s.FormTicketValue = ""
	s.FormTicketConfirm = false
}

// ResetLaneForm clears the lane form and its value
func (s *FormState) ResetLaneForm() {
	s.LaneForm = nil
	s.FormLaneName = ""
}

// ResetDelete clears the delete confirmation target
func (s *FormState) ResetDelete() {
	s.DeleteTicketID = 0
	s.DeleteLaneID = 0
	s.DeleteName = ""
}
