package errors

import (
	"errors"
	"fmt"
)

// Error kinds. Compare with errors.Is; every error produced by this module
// carries exactly one of these as its kind.
var (
	// Configuration errors
	ErrConfiguration = New("configuration error")

	// Caller input rejected before any network call
	ErrUnsupportedFormat = New("unsupported audio format")
	ErrInvalidModel      = New("invalid transcription model")

	// Provider errors
	ErrProvider    = New("provider error")
	ErrEmptyResult = New("empty transcription result")

	// Storage errors
	ErrStorageIO = New("record storage error")

	// Dispatch errors
	ErrUnknownTool        = New("unknown tool")
	ErrArgumentValidation = New("invalid tool arguments")
	ErrNotFound           = New("not found")
)

// Error represents a standardized error
type Error struct {
	message string
	detail  string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Withf returns an error of the same kind as e carrying a formatted detail.
func (e *Error) Withf(format string, args ...interface{}) *Error {
	return &Error{message: e.message, detail: fmt.Sprintf(format, args...)}
}

// Wrap returns an error of the same kind as e caused by err.
func (e *Error) Wrap(err error, detail string) *Error {
	return &Error{message: e.message, detail: detail, cause: err}
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.message
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.cause)
	}
	return msg
}

// Detail returns the error text without the kind prefix.
func (e *Error) Detail() string {
	if e.detail == "" && e.cause == nil {
		return e.message
	}
	if e.cause == nil {
		return e.detail
	}
	if e.detail == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.detail, e.cause)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// ProviderError is returned when a hosted provider answers with a non-success
// status. It matches ErrProvider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// Kind returns the kind error matched by err, or nil when err carries none.
func Kind(err error) *Error {
	for _, kind := range []*Error{
		ErrConfiguration,
		ErrUnsupportedFormat,
		ErrInvalidModel,
		ErrProvider,
		ErrEmptyResult,
		ErrStorageIO,
		ErrUnknownTool,
		ErrArgumentValidation,
		ErrNotFound,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Helper functions for common patterns

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return ErrArgumentValidation.Withf("%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return ErrArgumentValidation.Withf("%s is invalid: %s", field, reason)
}

// NotFound returns an error for items that were not found
func NotFound(itemType string, identifier string) error {
	return ErrNotFound.Withf("%s not found: %s", itemType, identifier)
}
