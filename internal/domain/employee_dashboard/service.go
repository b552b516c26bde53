package employee_dashboard

import (
	"context"
	"io"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
)

// EmployeeDashboardService serves the caller's own attendance. The employee
// is taken from the access token, never from the request.
type EmployeeDashboardService interface {
	GetMyAttendance(ctx context.Context) ([]dashboard.AttendanceRecord, error)
	GetMySummary(ctx context.Context) (*dashboard.AttendanceSummaryResponse, error)
	GetMyProfile(ctx context.Context) (*dashboard.ProfileResponse, error)
	ExportMyAttendance(ctx context.Context, w io.Writer, format ledger.ExportFormat) error
}
