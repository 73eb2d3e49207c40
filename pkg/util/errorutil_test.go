package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesMapToStatuses(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewInvalidInput("bad", nil), "INVALID_INPUT", http.StatusBadRequest},
		{NewInvalidTransition("bad", nil), "INVALID_TRANSITION", http.StatusBadRequest},
		{NewInvalidState("bad", nil), "INVALID_STATE", http.StatusBadRequest},
		{NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{NewVersionConflict("ticket", nil), "VERSION_CONFLICT", http.StatusConflict},
		{NewUnauthorized("no"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("no"), "FORBIDDEN", http.StatusForbidden},
		{NewPersistenceFailure(errors.New("down")), "PERSISTENCE_FAILURE", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		domainErr := ToDomainError(tc.err)
		require.NotNil(t, domainErr)
		assert.Equal(t, tc.code, domainErr.Code)
		assert.Equal(t, tc.status, domainErr.HTTPStatus)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)

	wrapped := fmt.Errorf("fetch ticket: %w", pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", ToDomainError(wrapped).Code)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	cause := errors.New("boom")
	domainErr := ToDomainError(cause)
	require.NotNil(t, domainErr)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.ErrorIs(t, domainErr, cause)
}

func TestPersistenceFailureUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistenceFailure(cause)
	assert.ErrorIs(t, err, cause)
}

func TestNilError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
