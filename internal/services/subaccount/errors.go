package subaccount

import "errors"

// Sub-account and contact errors
var (
	// Validation errors
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrNameTooLong         = errors.New("name cannot exceed 100 characters")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrInvalidSubAccountID = errors.New("invalid sub-account ID")
	ErrInvalidContactID    = errors.New("invalid contact ID")
)
