package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/user"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Source errors carry the offending location
	var malformed *ledger.MalformedInputError
	if errors.As(err, &malformed) {
		UnprocessableEntity(w, "MALFORMED_INPUT", malformed.Error(), map[string]string{
			"source": malformed.Source,
			"row":    strconv.Itoa(malformed.Row),
			"column": malformed.Column,
			"value":  malformed.Value,
		})
		return
	}
	var duplicate *ledger.DuplicateKeyError
	if errors.As(err, &duplicate) {
		UnprocessableEntity(w, "DUPLICATE_KEY", duplicate.Error(), map[string]string{
			"source":     duplicate.Source,
			"key":        duplicate.Key,
			"first_row":  strconv.Itoa(duplicate.FirstRow),
			"second_row": strconv.Itoa(duplicate.SecondRow),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrEmployeeScopeRequired):
		Forbidden(w, "Account is not linked to an employee")

	// Ledger domain errors
	case errors.Is(err, ledger.ErrLedgerNotLoaded):
		ServiceUnavailable(w, "Attendance ledger is not loaded")
	case errors.Is(err, ledger.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Dashboard domain errors
	case errors.Is(err, dashboard.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, dashboard.ErrLocationNotFound):
		NotFound(w, "Location not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
