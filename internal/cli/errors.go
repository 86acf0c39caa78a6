package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/pipeboard/internal/converters"
	"github.com/thenoetrevino/pipeboard/internal/database"
	laneservice "github.com/thenoetrevino/pipeboard/internal/services/lane"
	pipelineservice "github.com/thenoetrevino/pipeboard/internal/services/pipeline"
	"github.com/thenoetrevino/pipeboard/internal/services/reorder"
	subaccountservice "github.com/thenoetrevino/pipeboard/internal/services/subaccount"
	tagservice "github.com/thenoetrevino/pipeboard/internal/services/tag"
	ticketservice "github.com/thenoetrevino/pipeboard/internal/services/ticket"
)

// StatusError carries the process exit code a failed command should end with.
// main unwraps it; everything below main just returns errors.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// validationErrors are the service errors that mean the input was rejected
var validationErrors = []error{
	reorder.ErrValidation,

	pipelineservice.ErrEmptyName,
	pipelineservice.ErrNameTooLong,
	pipelineservice.ErrEmptyLaneName,
	pipelineservice.ErrInvalidPipelineID,
	pipelineservice.ErrInvalidSubAccountID,

	laneservice.ErrEmptyName,
	laneservice.ErrNameTooLong,
	laneservice.ErrInvalidLaneID,
	laneservice.ErrInvalidPipelineID,

	ticketservice.ErrEmptyName,
	ticketservice.ErrNameTooLong,
	ticketservice.ErrNegativeValue,
	ticketservice.ErrInvalidTicketID,
	ticketservice.ErrInvalidLaneID,
	ticketservice.ErrInvalidTagID,
	ticketservice.ErrInvalidContact,
	ticketservice.ErrContactOtherAccount,
	ticketservice.ErrTagOtherAccount,

	tagservice.ErrEmptyName,
	tagservice.ErrNameTooLong,
	tagservice.ErrInvalidColor,
	tagservice.ErrInvalidTagID,
	tagservice.ErrInvalidSubAccountID,

	subaccountservice.ErrEmptyName,
	subaccountservice.ErrNameTooLong,
	subaccountservice.ErrInvalidEmail,
	subaccountservice.ErrInvalidSubAccountID,
	subaccountservice.ErrInvalidContactID,
}

// ExitCodeFor maps an error returned by a service to a process exit code
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}

	if errors.Is(err, database.ErrNotFound) || errors.Is(err, reorder.ErrNotFound) {
		return ExitNotFound
	}
	if errors.Is(err, converters.ErrInvalidAmount) {
		return ExitDataErr
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return ExitValidation
		}
	}
	return ExitError
}

// ErrorCodeFor returns the machine readable error code printed in JSON output
func ErrorCodeFor(err error, fallback string) string {
	switch ExitCodeFor(err) {
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitDataErr:
		return "DATA_ERROR"
	default:
		return fallback
	}
}
