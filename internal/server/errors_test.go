package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/provider"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus_AuthErrors(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(&ErrEmailAlreadyExists{Email: "a@b.com"}))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&ErrInvalidCredentials{}))
}

func TestHTTPStatus_ResourceErrors(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrNotFound{Resource: "job", ID: id}))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(&ErrForbidden{}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrAssessmentInactive{AssessmentID: id}))
	assert.Equal(t, http.StatusConflict, HTTPStatus(&ErrAlreadySubmitted{AssessmentID: id}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "title", Message: "required"}))
}

func TestHTTPStatus_ProviderErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&provider.ConfigurationError{ProviderID: "nope"}))
	assert.Equal(t, http.StatusNotImplemented, HTTPStatus(&provider.NotImplementedError{Provider: "openai", Operation: "GenerateQuestions"}))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&provider.MalformedResponseError{Provider: "gemini", Message: "bad JSON"}))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(&provider.APICallError{Provider: "gemini", Message: "timeout"}))
}

func TestHTTPStatus_WrappedProviderError(t *testing.T) {
	wrapped := fmt.Errorf("failed to score text answer for question q1: %w",
		&provider.MalformedResponseError{Provider: "gemini", Message: "bad JSON"})

	assert.Equal(t, http.StatusBadGateway, HTTPStatus(wrapped))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("something broke")))
}
