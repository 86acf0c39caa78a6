package pipeline

import "errors"

// Domain errors for pipeline service
var (
	// Validation errors
	ErrEmptyName           = errors.New("pipeline name cannot be empty")
	ErrNameTooLong         = errors.New("pipeline name cannot exceed 100 characters")
	ErrEmptyLaneName       = errors.New("lane name cannot be empty")
	ErrInvalidPipelineID   = errors.New("invalid pipeline ID")
	ErrInvalidSubAccountID = errors.New("invalid sub-account ID")
)
