// Package server provides the HTTP REST API for the assessment platform.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/provider"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrForbidden indicates the authenticated user may not perform the operation
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	if e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

// ErrAssessmentInactive indicates a submission against an assessment that is
// not accepting answers
type ErrAssessmentInactive struct {
	AssessmentID uuid.UUID
}

func (e *ErrAssessmentInactive) Error() string {
	return fmt.Sprintf("assessment is not active: %s", e.AssessmentID)
}

// ErrAlreadySubmitted indicates the applicant has already submitted answers
// for this assessment
type ErrAlreadySubmitted struct {
	AssessmentID uuid.UUID
}

func (e *ErrAlreadySubmitted) Error() string {
	return fmt.Sprintf("answers already submitted for assessment: %s", e.AssessmentID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Provider failures map onto statuses that make the failure origin visible:
// an unknown provider id is the caller's mistake (400), a stub backend is
// 501, and a backend that answered garbage is an upstream failure (502).
func HTTPStatus(err error) int {
	var cfgErr *provider.ConfigurationError
	if errors.As(err, &cfgErr) {
		return http.StatusBadRequest
	}
	var notImpl *provider.NotImplementedError
	if errors.As(err, &notImpl) {
		return http.StatusNotImplemented
	}
	var malformed *provider.MalformedResponseError
	if errors.As(err, &malformed) {
		return http.StatusBadGateway
	}
	var apiErr *provider.APICallError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists, *ErrAlreadySubmitted:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation, *ErrAssessmentInactive:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
