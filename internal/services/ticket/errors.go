package ticket

import "errors"

// Ticket-related errors
var (
	// Validation errors
	ErrEmptyName       = errors.New("ticket name cannot be empty")
	ErrNameTooLong     = errors.New("ticket name cannot exceed 100 characters")
	ErrNegativeValue   = errors.New("ticket value cannot be negative")
	ErrInvalidTicketID = errors.New("invalid ticket ID")
	ErrInvalidLaneID   = errors.New("invalid lane ID")
	ErrInvalidTagID    = errors.New("invalid tag ID")
	ErrInvalidContact  = errors.New("invalid contact ID")

	// Business logic errors
	ErrContactOtherAccount = errors.New("contact belongs to a different sub-account")
	ErrTagOtherAccount     = errors.New("tag belongs to a different sub-account")
)
