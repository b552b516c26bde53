package http

import (
	"bytes"
	"log/slog"
	"net/http"

	empDashboard "github.com/cmlabs-hris/attendance-ledger/internal/domain/employee_dashboard"
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/cmlabs-hris/attendance-ledger/internal/handler/http/response"
)

type EmployeeDashboardHandler interface {
	// GetMyAttendance returns the caller's attendance records
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	// ExportMyAttendance downloads the caller's attendance records
	ExportMyAttendance(w http.ResponseWriter, r *http.Request)
	// GetMySummary returns the caller's attendance summary
	GetMySummary(w http.ResponseWriter, r *http.Request)
	// GetMyProfile returns the caller's roster profile
	GetMyProfile(w http.ResponseWriter, r *http.Request)
}

type employeeDashboardHandlerImpl struct {
	service empDashboard.EmployeeDashboardService
}

func NewEmployeeDashboardHandler(service empDashboard.EmployeeDashboardService) EmployeeDashboardHandler {
	return &employeeDashboardHandlerImpl{service: service}
}

// GetMyAttendance handles GET /my/attendance
func (h *employeeDashboardHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMyAttendance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: len(result)})
}

// ExportMyAttendance handles GET /my/attendance/export
// Query params:
//   - format: csv (default), tsv, xlsx
func (h *employeeDashboardHandlerImpl) ExportMyAttendance(w http.ResponseWriter, r *http.Request) {
	req := ledger.ExportRequest{Format: ledger.ExportFormat(r.URL.Query().Get("format"))}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.service.ExportMyAttendance(r.Context(), &buf, req.Format); err != nil {
		slog.Error("ExportMyAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeExport(w, "my_attendance", req.Format, buf.Bytes())
}

// GetMySummary handles GET /my/summary
func (h *employeeDashboardHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMySummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyProfile handles GET /my/profile
func (h *employeeDashboardHandlerImpl) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetMyProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
