package dashboard

import (
	"context"
	"math"
	"sort"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
)

type DashboardServiceImpl struct {
	ledger.LedgerService
}

func NewDashboardService(ledgerService ledger.LedgerService) dashboard.DashboardService {
	return &DashboardServiceImpl{
		LedgerService: ledgerService,
	}
}

// GetOverview implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context) (*dashboard.OverviewResponse, error) {
	l, err := s.Current()
	if err != nil {
		return nil, err
	}

	rows := l.All()
	overview := &dashboard.OverviewResponse{
		TotalEmployees:         ledger.DistinctEmployees(rows),
		TotalShifts:            ledger.DistinctShifts(rows),
		LatePercent:            round1(ledger.LatePercent(rows)),
		DepartmentDistribution: ledger.CountBy(rows, ledger.Row.Department),
		LocationDistribution:   ledger.CountBy(rows, ledger.Row.Location),
		BuiltAt:                l.BuiltAt,
	}

	if durations := ledger.Durations(rows); len(durations) > 0 {
		var total float64
		for _, d := range durations {
			total += d
		}
		avg := round2(total / float64(len(durations)))
		overview.AverageDurationHours = &avg
	}

	return overview, nil
}

// ListDepartments implements dashboard.DashboardService.
func (s *DashboardServiceImpl) ListDepartments(ctx context.Context) ([]string, error) {
	l, err := s.Current()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, e := range l.Employees {
		if e.Department != "" {
			seen[e.Department] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

// GetDepartment implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDepartment(ctx context.Context, name string) (*dashboard.GroupResponse, error) {
	departments, err := s.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	i := sort.SearchStrings(departments, name)
	if i == len(departments) || departments[i] != name {
		return nil, dashboard.ErrDepartmentNotFound
	}

	rows, err := s.Query(ctx, ledger.LedgerFilter{Department: &name})
	if err != nil {
		return nil, err
	}
	return newGroupResponse(name, rows), nil
}

// ListLocations implements dashboard.DashboardService.
func (s *DashboardServiceImpl) ListLocations(ctx context.Context) ([]string, error) {
	l, err := s.Current()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, r := range l.Rows {
		if loc := r.Location(); loc != "" {
			seen[loc] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

// GetLocation implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetLocation(ctx context.Context, name string) (*dashboard.GroupResponse, error) {
	rows, err := s.Query(ctx, ledger.LedgerFilter{Location: &name})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, dashboard.ErrLocationNotFound
	}
	return newGroupResponse(name, rows), nil
}

// ListEmployees implements dashboard.DashboardService.
func (s *DashboardServiceImpl) ListEmployees(ctx context.Context) ([]dashboard.EmployeeItem, error) {
	l, err := s.Current()
	if err != nil {
		return nil, err
	}

	items := make([]dashboard.EmployeeItem, 0, len(l.Employees))
	for _, e := range l.Employees {
		items = append(items, newEmployeeItem(e))
	}
	return items, nil
}

// GetEmployee implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetEmployee(ctx context.Context, employeeID string) (*dashboard.EmployeeDetailResponse, error) {
	l, err := s.Current()
	if err != nil {
		return nil, err
	}

	employee, ok := l.Employee(employeeID)
	if !ok {
		return nil, ledger.ErrEmployeeNotFound
	}

	rows := l.ByEmployee(employee.ID)
	return &dashboard.EmployeeDetailResponse{
		Profile: dashboard.NewProfileResponse(employee),
		Summary: dashboard.NewAttendanceSummary(rows),
		Records: dashboard.NewAttendanceRecords(rows),
	}, nil
}

func newGroupResponse(name string, rows []ledger.Row) *dashboard.GroupResponse {
	group := &dashboard.GroupResponse{
		Name:        name,
		Employees:   ledger.DistinctEmployees(rows),
		Shifts:      ledger.DistinctShifts(rows),
		LatePercent: round1(ledger.LatePercent(rows)),
		Members:     make([]dashboard.EmployeeItem, 0),
	}

	seen := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seen[r.Event.EmployeeID]; ok {
			continue
		}
		seen[r.Event.EmployeeID] = struct{}{}

		item := dashboard.EmployeeItem{EmployeeID: r.Event.EmployeeID}
		if r.Employee != nil {
			item = newEmployeeItem(*r.Employee)
		}
		group.Members = append(group.Members, item)
	}
	return group
}

func newEmployeeItem(e ledger.Employee) dashboard.EmployeeItem {
	return dashboard.EmployeeItem{
		EmployeeID:  e.ID,
		FullName:    e.FullName,
		Department:  e.Department,
		Designation: e.Designation,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
