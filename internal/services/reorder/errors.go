package reorder

import "errors"

// Error kinds. Every error returned by the service matches exactly one of
// these with errors.Is; the cause below it in the chain says what went wrong.
var (
	// ErrValidation reports a malformed or inconsistent reorder request
	ErrValidation = errors.New("invalid reorder request")
	// ErrNotFound reports a referenced pipeline, lane or ticket that does not exist
	ErrNotFound = errors.New("not found")
	// ErrUpdateFailed reports a storage failure; nothing was committed
	ErrUpdateFailed = errors.New("reorder update failed")
)

// Validation causes
var (
	ErrInvalidID          = errors.New("id must be positive")
	ErrDuplicateLane      = errors.New("lane listed more than once")
	ErrUnknownLane        = errors.New("lane does not belong to pipeline")
	ErrMissingLane        = errors.New("lane missing from order")
	ErrIndexOutOfRange    = errors.New("target index out of range")
	ErrCrossPipeline      = errors.New("cannot move across pipelines")
	ErrPipelineMismatch   = errors.New("lane belongs to a different pipeline than expected")
	ErrSubAccountMismatch = errors.New("lane belongs to a different sub-account than expected")
	ErrStaleSource        = errors.New("drag source does not match stored order")
	ErrUnknownDropKind    = errors.New("unknown drop kind")
)
