package dashboard

import "context"

// DashboardService defines the interface for admin dashboard operations
type DashboardService interface {
	// GetOverview returns ledger-wide KPIs and distributions
	GetOverview(ctx context.Context) (*OverviewResponse, error)

	// ListDepartments returns the roster departments, sorted
	ListDepartments(ctx context.Context) ([]string, error)

	// GetDepartment returns KPIs and members for one department
	GetDepartment(ctx context.Context, name string) (*GroupResponse, error)

	// ListLocations returns every location appearing on the ledger, sorted
	ListLocations(ctx context.Context) ([]string, error)

	// GetLocation returns KPIs and employees seen at one location
	GetLocation(ctx context.Context, name string) (*GroupResponse, error)

	// ListEmployees returns the roster for selectors
	ListEmployees(ctx context.Context) ([]EmployeeItem, error)

	// GetEmployee returns profile, summary and records of one employee
	GetEmployee(ctx context.Context, employeeID string) (*EmployeeDetailResponse, error)
}
