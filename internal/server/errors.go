// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/wizard"
)

// ErrSessionNotFound indicates the session does not exist, expired, or
// belongs to someone else
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrRevisionConflict indicates an edit was based on a stale revision
type ErrRevisionConflict struct {
	Expected uint64
	Actual   uint64
}

func (e *ErrRevisionConflict) Error() string {
	return fmt.Sprintf("revision conflict: expected %d, session is at %d", e.Expected, e.Actual)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrEntryNotFound indicates a collection entry does not exist in the session
type ErrEntryNotFound struct {
	Section string
	ID      string
}

func (e *ErrEntryNotFound) Error() string {
	return fmt.Sprintf("%s entry not found: %s", e.Section, e.ID)
}

// ErrExportNotFound indicates a stored export does not exist
type ErrExportNotFound struct {
	ID string
}

func (e *ErrExportNotFound) Error() string {
	return fmt.Sprintf("export not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound       *ErrSessionNotFound
		exportNotFound *ErrExportNotFound
		entryNotFound  *ErrEntryNotFound
		conflict       *ErrRevisionConflict
		validation     *ErrValidation
		schemaInvalid  *schemas.ValidationError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &exportNotFound), errors.As(err, &entryNotFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation), errors.As(err, &schemaInvalid):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrNoExporter):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
