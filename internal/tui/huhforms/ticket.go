package huhforms

import (
	"errors"
	"strings"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/pipeboard/internal/converters"
)

// CreateTicketForm creates a huh form for adding a ticket to a lane.
// The form writes through the pointers so the caller reads values once it completes.
func CreateTicketForm(
	laneName string,
	name *string,
	description *string,
	value *string,
	confirm *bool,
) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Description("New ticket in "+laneName).
				Placeholder("Acme renewal...").
				Validate(validateRequired("name")).
				Value(name),

			huh.NewInput().
				Key("value").
				Title("Value").
				Placeholder("0.00").
				Validate(validateMoney).
				Value(value),

			huh.NewText().
				Key("description").
				Title("Description").
				Placeholder("Notes about the deal...").
				CharLimit(500).
				Lines(3).
				Value(description),

			huh.NewConfirm().
				Key("confirm").
				Title("Create this ticket?").
				Affirmative("Yes").
				Negative("No").
				Value(confirm),
		),
	)
}

// CreateLaneForm creates a huh form for appending a lane to the pipeline
func CreateLaneForm(pipelineName string, name *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Lane name").
				Description("Added at the end of "+pipelineName).
				Placeholder("Negotiation...").
				Validate(validateRequired("lane name")).
				Value(name),
		),
	)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// validateMoney accepts an empty value (zero) or any amount ParseMoney understands
func validateMoney(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	cents, err := converters.ParseMoney(s)
	if err != nil {
		return errors.New("enter an amount like 1,250.50")
	}
	if cents < 0 {
		return errors.New("value cannot be negative")
	}
	return nil
}
