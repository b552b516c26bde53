package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/validator"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// RowResponse is the JSON shape of a ledger row.
type RowResponse struct {
	EmployeeID      string   `json:"employee_id"`
	ShiftID         string   `json:"shift_id"`
	Timestamp       string   `json:"timestamp"`
	Date            string   `json:"date"`
	Type            string   `json:"type"`
	ShiftDate       *string  `json:"shift_date"`
	ShiftStart      *string  `json:"shift_start"`
	ShiftEnd        *string  `json:"shift_end"`
	ShiftLocation   *string  `json:"shift_location"`
	FullName        *string  `json:"full_name"`
	Department      *string  `json:"department"`
	Designation     *string  `json:"designation"`
	BaseLocation    *string  `json:"base_location"`
	LateStatus      string   `json:"late_status"`
	EarlyStatus     string   `json:"early_status"`
	DurationHours   *float64 `json:"duration_hours"`
	DurationAnomaly bool     `json:"duration_anomaly"`
	OvernightShift  bool     `json:"overnight_shift"`
}

func NewRowResponse(r Row) RowResponse {
	resp := RowResponse{
		EmployeeID:      r.Event.EmployeeID,
		ShiftID:         r.Event.ShiftID,
		Timestamp:       r.Event.Timestamp.Format(time.RFC3339),
		Date:            r.Event.Date.Format(dateLayout),
		Type:            string(r.Event.Type),
		LateStatus:      string(r.LateStatus),
		EarlyStatus:     string(r.EarlyStatus),
		DurationHours:   r.DurationHours,
		DurationAnomaly: r.DurationAnomaly,
		OvernightShift:  r.OvernightShift,
	}
	if r.Shift != nil {
		date := r.Shift.Date.Format(dateLayout)
		start := r.Shift.Start.String()
		end := r.Shift.End.String()
		location := r.Shift.Location
		resp.ShiftDate = &date
		resp.ShiftStart = &start
		resp.ShiftEnd = &end
		resp.ShiftLocation = &location
	}
	if r.Employee != nil {
		e := *r.Employee
		resp.FullName = &e.FullName
		resp.Department = &e.Department
		resp.Designation = &e.Designation
		resp.BaseLocation = &e.BaseLocation
	}
	return resp
}

func NewRowResponses(rows []Row) []RowResponse {
	result := make([]RowResponse, 0, len(rows))
	for _, r := range rows {
		result = append(result, NewRowResponse(r))
	}
	return result
}

// Column is one exported field of a projection.
type Column struct {
	Name  string
	Value func(Row) string
}

// Projection is an ordered column set used for exports.
type Projection []Column

func (p Projection) Header() []string {
	header := make([]string, len(p))
	for i, c := range p {
		header[i] = c.Name
	}
	return header
}

func (p Projection) Records(rows []Row) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		record := make([]string, len(p))
		for i, c := range p {
			record[i] = c.Value(r)
		}
		records = append(records, record)
	}
	return records
}

var (
	colEmployeeID = Column{"Employee_ID", func(r Row) string { return r.Event.EmployeeID }}
	colShiftID    = Column{"Shift_ID", func(r Row) string { return r.Event.ShiftID }}
	colShiftDate  = Column{"Shift_Date", func(r Row) string {
		if r.Shift == nil {
			return ""
		}
		return r.Shift.Date.Format(dateLayout)
	}}
	colShiftStart = Column{"Shift_Start", func(r Row) string {
		if r.Shift == nil {
			return ""
		}
		return r.Shift.Start.String()
	}}
	colShiftEnd = Column{"Shift_End", func(r Row) string {
		if r.Shift == nil {
			return ""
		}
		return r.Shift.End.String()
	}}
	colLocation    = Column{"Location", func(r Row) string { return r.Location() }}
	colTimestamp   = Column{"Timestamp", func(r Row) string { return r.Event.Timestamp.Format(timestampLayout) }}
	colType        = Column{"Type", func(r Row) string { return string(r.Event.Type) }}
	colLateStatus  = Column{"Late_Status", func(r Row) string { return string(r.LateStatus) }}
	colEarlyStatus = Column{"Early_Status", func(r Row) string { return string(r.EarlyStatus) }}
	colDuration    = Column{"Duration_Hours", func(r Row) string {
		if r.DurationHours == nil {
			return ""
		}
		return strconv.FormatFloat(*r.DurationHours, 'f', 2, 64)
	}}
	colAnomaly  = Column{"Duration_Anomaly", func(r Row) string { return strconv.FormatBool(r.DurationAnomaly) }}
	colFullName = Column{"Full_Name", func(r Row) string {
		if r.Employee == nil {
			return ""
		}
		return r.Employee.FullName
	}}
	colDepartment  = Column{"Department", func(r Row) string { return r.Department() }}
	colDesignation = Column{"Designation", func(r Row) string {
		if r.Employee == nil {
			return ""
		}
		return r.Employee.Designation
	}}
)

// SelfServiceProjection is the column set shown to employees.
var SelfServiceProjection = Projection{
	colShiftID, colShiftDate, colShiftStart, colShiftEnd,
	colTimestamp, colType, colLateStatus, colEarlyStatus, colDuration,
}

// FullProjection is the administrator export column set.
var FullProjection = Projection{
	colEmployeeID, colFullName, colDepartment, colDesignation, colLocation,
	colShiftID, colShiftDate, colShiftStart, colShiftEnd,
	colTimestamp, colType, colLateStatus, colEarlyStatus, colDuration, colAnomaly,
}

// LedgerFilter selects one accessor; at most one field may be set.
type LedgerFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Department *string `json:"department,omitempty"`
	Location   *string `json:"location,omitempty"`
}

func (f *LedgerFilter) Validate() error {
	var errs validator.ValidationErrors

	set := 0
	for _, v := range []*string{f.EmployeeID, f.Department, f.Location} {
		if v != nil {
			set++
			if validator.IsEmpty(*v) {
				errs = append(errs, validator.ValidationError{
					Field:   "filter",
					Message: "filter value must not be empty",
				})
			}
		}
	}
	if set > 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "filter",
			Message: "only one of employee_id, department, location may be set",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatTSV  ExportFormat = "tsv"
	FormatXLSX ExportFormat = "xlsx"
)

type ExportRequest struct {
	Filter LedgerFilter
	Format ExportFormat
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Format == "" {
		r.Format = FormatCSV
	}
	r.Format = ExportFormat(strings.ToLower(string(r.Format)))
	if !validator.IsInSlice(string(r.Format), []string{string(FormatCSV), string(FormatTSV), string(FormatXLSX)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be one of: csv, tsv, xlsx",
		})
	}

	if err := r.Filter.Validate(); err != nil {
		if fe, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, fe...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BuildSummary reports the outcome of a ledger build.
type BuildSummary struct {
	Employees       int     `json:"employees"`
	Shifts          int     `json:"shifts"`
	Events          int     `json:"events"`
	Rows            int     `json:"rows"`
	UnmatchedShift  int     `json:"unmatched_shift"`
	UnmatchedRoster int     `json:"unmatched_roster"`
	Anomalies       int     `json:"duration_anomalies"`
	BuiltAt         string  `json:"built_at"`
	ElapsedMillis   float64 `json:"elapsed_ms"`
}
