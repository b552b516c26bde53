package user

import (
	"testing"

	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    CreateUserRequest
		fields []string
	}{
		{
			name: "valid employee account",
			req:  CreateUserRequest{Username: "alice", Password: "password123", EmployeeID: strPtr("E1")},
		},
		{
			name: "valid admin without employee",
			req:  CreateUserRequest{Username: "root.admin", Password: "password123", IsAdmin: true},
		},
		{
			name:   "missing everything",
			req:    CreateUserRequest{},
			fields: []string{"username", "password", "employee_id"},
		},
		{
			name:   "bad username and short password",
			req:    CreateUserRequest{Username: "a b", Password: "short", IsAdmin: true},
			fields: []string{"username", "password"},
		},
		{
			name:   "blank employee id",
			req:    CreateUserRequest{Username: "alice", Password: "password123", EmployeeID: strPtr("  ")},
			fields: []string{"employee_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			for _, f := range tt.fields {
				assert.Contains(t, verrs.ToMap(), f)
			}
		})
	}
}
