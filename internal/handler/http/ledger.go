package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/cmlabs-hris/attendance-ledger/internal/handler/http/response"
)

type LedgerHandler interface {
	// List returns ledger rows, optionally filtered and paginated
	List(w http.ResponseWriter, r *http.Request)
	// Export downloads the filtered rows as csv, tsv or xlsx
	Export(w http.ResponseWriter, r *http.Request)
	// Reload rebuilds the ledger from its sources
	Reload(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.LedgerService
}

func NewLedgerHandler(ledgerService ledger.LedgerService) LedgerHandler {
	return &ledgerHandlerImpl{ledgerService: ledgerService}
}

// List handles GET /ledger
// Query params:
//   - employee_id | department | location: at most one
//   - page, limit: optional pagination (limit 0 returns everything)
func (h *ledgerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, limit, err := parsePagination(query)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	rows, err := h.ledgerService.Query(r.Context(), parseLedgerFilter(query))
	if err != nil {
		slog.Error("QueryLedger service error", "error", err)
		response.HandleError(w, err)
		return
	}

	meta := &response.Meta{TotalItems: len(rows)}
	if limit > 0 {
		meta.Page, meta.Limit = page, limit
		meta.TotalPages = (len(rows) + limit - 1) / limit
		start := min((page-1)*limit, len(rows))
		end := min(start+limit, len(rows))
		rows = rows[start:end]
	}

	response.SuccessWithMeta(w, ledger.NewRowResponses(rows), meta)
}

// Export handles GET /ledger/export
// Query params:
//   - employee_id | department | location: at most one
//   - format: csv (default), tsv, xlsx
func (h *ledgerHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := ledger.ExportRequest{
		Filter: parseLedgerFilter(query),
		Format: ledger.ExportFormat(query.Get("format")),
	}

	// Validate DTO
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.ledgerService.Export(r.Context(), &buf, req, ledger.FullProjection); err != nil {
		slog.Error("ExportLedger service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeExport(w, "attendance_"+exportView(req.Filter), req.Format, buf.Bytes())
}

// Reload handles POST /ledger/reload
func (h *ledgerHandlerImpl) Reload(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledgerService.Reload(r.Context())
	if err != nil {
		slog.Error("ReloadLedger service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance ledger reloaded", summary)
}

func parseLedgerFilter(query url.Values) ledger.LedgerFilter {
	var filter ledger.LedgerFilter
	if query.Has("employee_id") {
		v := query.Get("employee_id")
		filter.EmployeeID = &v
	}
	if query.Has("department") {
		v := query.Get("department")
		filter.Department = &v
	}
	if query.Has("location") {
		v := query.Get("location")
		filter.Location = &v
	}
	return filter
}

func parsePagination(query url.Values) (page, limit int, err error) {
	page, limit = 1, 0
	if v := query.Get("page"); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("page must be a positive integer")
		}
	}
	if v := query.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			return 0, 0, fmt.Errorf("limit must be a non-negative integer")
		}
	}
	return page, limit, nil
}

func exportView(filter ledger.LedgerFilter) string {
	switch {
	case filter.EmployeeID != nil:
		return "employee"
	case filter.Department != nil:
		return "department"
	case filter.Location != nil:
		return "location"
	default:
		return "overview"
	}
}

var exportContentTypes = map[ledger.ExportFormat]string{
	ledger.FormatCSV:  "text/csv; charset=utf-8",
	ledger.FormatTSV:  "text/tab-separated-values; charset=utf-8",
	ledger.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// writeExport sends an already rendered export as a file download.
func writeExport(w http.ResponseWriter, name string, format ledger.ExportFormat, body []byte) {
	w.Header().Set("Content-Type", exportContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		slog.Error("Export write error", "error", err)
	}
}
