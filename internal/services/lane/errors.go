package lane

import "errors"

// Lane-related errors
var (
	// Validation errors
	ErrEmptyName         = errors.New("lane name cannot be empty")
	ErrNameTooLong       = errors.New("lane name cannot exceed 100 characters")
	ErrInvalidLaneID     = errors.New("invalid lane ID")
	ErrInvalidPipelineID = errors.New("invalid pipeline ID")
)
