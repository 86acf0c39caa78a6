package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			fmt.Printf("%d\n", idGetter.GetID())
			return nil
		}
	}

	if f.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	fmt.Printf("%+v\n", data)
	return nil
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
	}
	return nil
}

// Fail reports err and returns it tagged with the exit code its kind maps to.
// fallbackCode names the failure when err is neither a validation nor a not-found error.
func (f *OutputFormatter) Fail(fallbackCode string, err error) error {
	if fmtErr := f.Error(ErrorCodeFor(err, fallbackCode), err.Error()); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &StatusError{Code: ExitCodeFor(err), Err: err}
}

// Usage reports a malformed invocation
func (f *OutputFormatter) Usage(message, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion("USAGE_ERROR", message, suggestion); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &StatusError{Code: ExitUsage, Err: errors.New(message)}
}

// DataError reports input that was well formed as flags but could not be decoded
func (f *OutputFormatter) DataError(message, suggestion string) error {
	if fmtErr := f.ErrorWithSuggestion("DATA_ERROR", message, suggestion); fmtErr != nil {
		slog.Error("failed to format error message", "error", fmtErr)
	}
	return &StatusError{Code: ExitDataErr, Err: errors.New(message)}
}

// WriteJSON encodes a successful response with its payload under key
func WriteJSON(key string, payload any) error {
	return json.NewEncoder(os.Stdout).Encode(map[string]any{
		"success": true,
		key:       payload,
	})
}
