package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-ledger/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetOverview returns ledger-wide KPIs
	GetOverview(w http.ResponseWriter, r *http.Request)
	// ListDepartments returns department names for selectors
	ListDepartments(w http.ResponseWriter, r *http.Request)
	// GetDepartment returns one department's KPIs and members
	GetDepartment(w http.ResponseWriter, r *http.Request)
	// ListLocations returns location names for selectors
	ListLocations(w http.ResponseWriter, r *http.Request)
	// GetLocation returns one location's KPIs
	GetLocation(w http.ResponseWriter, r *http.Request)
	// ListEmployees returns the roster for selectors
	ListEmployees(w http.ResponseWriter, r *http.Request)
	// GetEmployee returns one employee's profile, summary and records
	GetEmployee(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetOverview handles GET /dashboard
func (h *dashboardHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetOverview(r.Context())
	if err != nil {
		slog.Error("GetOverview service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListDepartments handles GET /dashboard/departments
func (h *dashboardHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetDepartment handles GET /dashboard/departments/{name}
func (h *dashboardHandlerImpl) GetDepartment(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDepartment(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListLocations handles GET /dashboard/locations
func (h *dashboardHandlerImpl) ListLocations(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.ListLocations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetLocation handles GET /dashboard/locations/{name}
func (h *dashboardHandlerImpl) GetLocation(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetLocation(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEmployees handles GET /dashboard/employees
func (h *dashboardHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

// GetEmployee handles GET /dashboard/employees/{id}
func (h *dashboardHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("GetEmployee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
