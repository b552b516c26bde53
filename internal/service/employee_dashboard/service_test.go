package employee_dashboard

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/user"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/jwt"
	ledgerService "github.com/cmlabs-hris/attendance-ledger/internal/service/ledger"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRoster = `Employee_ID,full_name,Department,Designation,Base_Location
E1,Alice Smith,Operations,Driver,Waterloo
E2,Dan Brown,Operations,Driver,Waterloo
`
	testSchedule = `Employee_ID,Shift_ID,Shift_Date,Shift_Start,Shift_End
E1,S1,2024-01-01,09:00,17:00
E1,S2,2024-01-02,09:00,17:00
`
	testAttendance = `Employee_ID,Shift_ID,Timestamp,Type
E1,S1,2024-01-01 09:10:00,Check-in
E1,S1,2024-01-01 17:10:00,Check-out
E1,S2,2024-01-02 08:55:00,Check-in
E1,S2,2024-01-02 16:25:00,Check-out
`
)

func newTestService(t *testing.T) *EmployeeDashboardServiceImpl {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}
	loader := ledgerService.NewFileLoader(
		write("employee.csv", testRoster),
		write("shifts.csv", testSchedule),
		write("attendance.csv", testAttendance),
		time.UTC,
	)
	ls := ledgerService.NewLedgerService(loader, ledger.PairFirst)
	_, err := ls.Reload(context.Background())
	require.NoError(t, err)
	return NewEmployeeDashboardService(ls).(*EmployeeDashboardServiceImpl)
}

// contextFor returns a context carrying a verified token for the given employee.
func contextFor(t *testing.T, employeeID *string) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	tokenString, _, err := jwtService.GenerateAccessToken("u-1", "alice", employeeID, false)
	require.NoError(t, err)
	token, err := jwtService.JWTAuth().Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func strPtr(s string) *string { return &s }

func TestEmployeeDashboard_GetMyAttendance(t *testing.T) {
	svc := newTestService(t)

	records, err := svc.GetMyAttendance(contextFor(t, strPtr("E1")))
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Late", records[0].LateStatus)
	require.NotNil(t, records[0].DurationHours)
	assert.Equal(t, 8.0, *records[0].DurationHours)
	assert.Equal(t, "Early", records[3].EarlyStatus)
}

func TestEmployeeDashboard_GetMySummary(t *testing.T) {
	svc := newTestService(t)

	summary, err := svc.GetMySummary(contextFor(t, strPtr("E1")))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalShifts)
	assert.Equal(t, 1, summary.LateArrivals)
	assert.Equal(t, 1, summary.EarlyDepartures)
	assert.Equal(t, 15.5, summary.TotalHours)
	require.NotNil(t, summary.AverageHours)
	assert.Equal(t, 7.75, *summary.AverageHours)

	empty, err := svc.GetMySummary(contextFor(t, strPtr("E2")))
	require.NoError(t, err)
	assert.Zero(t, empty.TotalShifts)
}

func TestEmployeeDashboard_GetMyProfile(t *testing.T) {
	svc := newTestService(t)

	profile, err := svc.GetMyProfile(contextFor(t, strPtr("E2")))
	require.NoError(t, err)
	assert.Equal(t, "Dan Brown", profile.FullName)

	_, err = svc.GetMyProfile(contextFor(t, strPtr("E404")))
	assert.ErrorIs(t, err, ledger.ErrEmployeeNotFound)
}

func TestEmployeeDashboard_RequiresEmployeeScope(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetMyAttendance(contextFor(t, nil))
	assert.ErrorIs(t, err, user.ErrEmployeeScopeRequired)

	_, err = svc.GetMyAttendance(context.Background())
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestEmployeeDashboard_ExportMyAttendance(t *testing.T) {
	svc := newTestService(t)

	var buf bytes.Buffer
	err := svc.ExportMyAttendance(contextFor(t, strPtr("E1")), &buf, ledger.FormatCSV)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Shift_ID,Shift_Date,Shift_Start,Shift_End,Timestamp,Type,Late_Status,Early_Status,Duration_Hours", lines[0])
	assert.Equal(t, "S1,2024-01-01,09:00,17:00,2024-01-01 09:10:00,CheckIn,Late,NotApplicable,8.00", lines[1])
}
