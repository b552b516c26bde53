package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/user"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "username", Message: "required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"revoked", auth.ErrTokenRevoked, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"username exists", fmt.Errorf("create: %w", user.ErrUsernameExists), http.StatusConflict, "CONFLICT"},
		{"admin required", user.ErrAdminPrivilegeRequired, http.StatusForbidden, "FORBIDDEN"},
		{"not loaded", ledger.ErrLedgerNotLoaded, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"employee missing", ledger.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"department missing", dashboard.ErrDepartmentNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicate key", fmt.Errorf("build: %w", &ledger.DuplicateKeyError{Source: ledger.SourceRoster, Key: "E1", FirstRow: 2, SecondRow: 5}), http.StatusUnprocessableEntity, "DUPLICATE_KEY"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleError_MalformedInputDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, &ledger.MalformedInputError{
		Source: ledger.SourceAttendance,
		Row:    4,
		Column: "type",
		Value:  "Lunch",
		Err:    ledger.ErrInvalidEventType,
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "MALFORMED_INPUT", body.Error.Code)
	assert.Equal(t, "4", body.Error.Details["row"])
	assert.Equal(t, "Lunch", body.Error.Details["value"])
}
