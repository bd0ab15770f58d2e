package errors

import (
	stderrors "errors"
	"net/http"

	apperrors "scribe/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindBadRequest ErrorKind = "bad_request"
	KindNotFound   ErrorKind = "not_found"
	KindInternal   ErrorKind = "internal"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind `json:"kind"`
	Detail    string    `json:"detail"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Detail
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error
func NewValidationError(detail string) *APIError {
	return &APIError{Kind: KindValidation, Detail: detail}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(detail string) *APIError {
	return &APIError{Kind: KindBadRequest, Detail: detail}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(detail string) *APIError {
	return &APIError{Kind: KindNotFound, Detail: detail}
}

// FromError maps an application error to its API form. Caller input
// problems become 4xx; configuration, provider and storage failures are 500.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	kind := KindInternal
	switch apperrors.Kind(err) {
	case apperrors.ErrArgumentValidation, apperrors.ErrUnknownTool:
		kind = KindValidation
	case apperrors.ErrUnsupportedFormat, apperrors.ErrInvalidModel:
		kind = KindBadRequest
	case apperrors.ErrNotFound:
		kind = KindNotFound
	}

	return &APIError{Kind: kind, Detail: detail(err)}
}

func detail(err error) string {
	var providerErr *apperrors.ProviderError
	if stderrors.As(err, &providerErr) {
		return providerErr.Error()
	}
	var appErr *apperrors.Error
	if stderrors.As(err, &appErr) {
		return appErr.Detail()
	}
	return err.Error()
}
