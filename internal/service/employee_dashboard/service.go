package employee_dashboard

import (
	"context"
	"io"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/dashboard"
	empDashboard "github.com/cmlabs-hris/attendance-ledger/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/user"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/jwt"
)

type EmployeeDashboardServiceImpl struct {
	ledger.LedgerService
}

func NewEmployeeDashboardService(ledgerService ledger.LedgerService) empDashboard.EmployeeDashboardService {
	return &EmployeeDashboardServiceImpl{LedgerService: ledgerService}
}

// getEmployeeID extracts employee_id from JWT claims
func (s *EmployeeDashboardServiceImpl) getEmployeeID(ctx context.Context) (string, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return "", err
	}
	if identity.EmployeeID == nil {
		return "", user.ErrEmployeeScopeRequired
	}
	return *identity.EmployeeID, nil
}

func (s *EmployeeDashboardServiceImpl) myRows(ctx context.Context) ([]ledger.Row, error) {
	employeeID, err := s.getEmployeeID(ctx)
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, ledger.LedgerFilter{EmployeeID: &employeeID})
}

// GetMyAttendance implements empDashboard.EmployeeDashboardService.
func (s *EmployeeDashboardServiceImpl) GetMyAttendance(ctx context.Context) ([]dashboard.AttendanceRecord, error) {
	rows, err := s.myRows(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.NewAttendanceRecords(rows), nil
}

// GetMySummary implements empDashboard.EmployeeDashboardService.
func (s *EmployeeDashboardServiceImpl) GetMySummary(ctx context.Context) (*dashboard.AttendanceSummaryResponse, error) {
	rows, err := s.myRows(ctx)
	if err != nil {
		return nil, err
	}
	summary := dashboard.NewAttendanceSummary(rows)
	return &summary, nil
}

// GetMyProfile implements empDashboard.EmployeeDashboardService.
func (s *EmployeeDashboardServiceImpl) GetMyProfile(ctx context.Context) (*dashboard.ProfileResponse, error) {
	employeeID, err := s.getEmployeeID(ctx)
	if err != nil {
		return nil, err
	}

	l, err := s.Current()
	if err != nil {
		return nil, err
	}

	employee, ok := l.Employee(employeeID)
	if !ok {
		return nil, ledger.ErrEmployeeNotFound
	}
	profile := dashboard.NewProfileResponse(employee)
	return &profile, nil
}

// ExportMyAttendance implements empDashboard.EmployeeDashboardService.
func (s *EmployeeDashboardServiceImpl) ExportMyAttendance(ctx context.Context, w io.Writer, format ledger.ExportFormat) error {
	employeeID, err := s.getEmployeeID(ctx)
	if err != nil {
		return err
	}

	req := ledger.ExportRequest{
		Filter: ledger.LedgerFilter{EmployeeID: &employeeID},
		Format: format,
	}
	return s.Export(ctx, w, req, ledger.SelfServiceProjection)
}
