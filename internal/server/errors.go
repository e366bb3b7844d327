package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-aligner/internal/db"
	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/schemas"
	"github.com/jonathan/resume-aligner/internal/storage"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidCredentials indicates an unknown client or wrong secret
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid client id or secret"
}

// ErrUnavailable indicates a route whose backing service is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		credsErr      *ErrInvalidCredentials
		unavailable   *ErrUnavailable
		parseErr      *ingestion.ParseError
		maxBytesErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &parseErr), errors.Is(err, ingestion.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &credsErr):
		return http.StatusUnauthorized
	case errors.Is(err, db.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, db.ErrInvalidKind), errors.Is(err, storage.ErrInvalidName):
		return http.StatusBadRequest
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
