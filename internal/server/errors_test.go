package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-aligner/internal/db"
	"github.com/jonathan/resume-aligner/internal/ingestion"
	"github.com/jonathan/resume-aligner/internal/schemas"
	"github.com/jonathan/resume-aligner/internal/storage"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation error: resume - is required", (&ErrValidation{Field: "resume", Message: "is required"}).Error())
	assert.Equal(t, "invalid client id or secret", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "profile database is not configured", (&ErrUnavailable{Feature: "profile database"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: &ErrValidation{Field: "f", Message: "m"}, want: http.StatusBadRequest},
		{name: "wrapped schema", err: fmt.Errorf("invalid resume: %w", &schemas.ValidationError{}), want: http.StatusBadRequest},
		{name: "document parse", err: &ingestion.ParseError{Filename: "cv.pdf", Format: ingestion.FormatPDF, Cause: errors.New("bad xref")}, want: http.StatusUnprocessableEntity},
		{name: "too large", err: &http.MaxBytesError{Limit: 10}, want: http.StatusRequestEntityTooLarge},
		{name: "credentials", err: &ErrInvalidCredentials{}, want: http.StatusUnauthorized},
		{name: "profile missing", err: db.ErrNotFound, want: http.StatusNotFound},
		{name: "file missing", err: fmt.Errorf("get: %w", storage.ErrNotFound), want: http.StatusNotFound},
		{name: "bad kind", err: fmt.Errorf("%w: %q", db.ErrInvalidKind, "x"), want: http.StatusBadRequest},
		{name: "bad name", err: storage.ErrInvalidName, want: http.StatusBadRequest},
		{name: "unavailable", err: &ErrUnavailable{Feature: "x"}, want: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
