package dashboard

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
)

// OverviewResponse is the admin landing view over the whole ledger.
type OverviewResponse struct {
	TotalEmployees         int            `json:"total_employees"`
	TotalShifts            int            `json:"total_shifts"`
	AverageDurationHours   *float64       `json:"average_duration_hours"`
	LatePercent            float64        `json:"late_percent"`
	DepartmentDistribution []ledger.Count `json:"department_distribution"`
	LocationDistribution   []ledger.Count `json:"location_distribution"`
	BuiltAt                time.Time      `json:"built_at"`
}

// GroupResponse describes one department or location.
type GroupResponse struct {
	Name        string         `json:"name"`
	Employees   int            `json:"employees"`
	Shifts      int            `json:"shifts"`
	LatePercent float64        `json:"late_percent"`
	Members     []EmployeeItem `json:"members"`
}

type EmployeeItem struct {
	EmployeeID  string `json:"employee_id"`
	FullName    string `json:"full_name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
}

type ProfileResponse struct {
	EmployeeID   string `json:"employee_id"`
	FullName     string `json:"full_name"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
	BaseLocation string `json:"base_location"`
}

type AttendanceSummaryResponse struct {
	TotalShifts     int      `json:"total_shifts"`
	LateArrivals    int      `json:"late_arrivals"`
	EarlyDepartures int      `json:"early_departures"`
	TotalHours      float64  `json:"total_hours"`
	AverageHours    *float64 `json:"average_hours"`
}

// AttendanceRecord is a ledger row reduced to the columns an employee sees.
type AttendanceRecord struct {
	ShiftID       string   `json:"shift_id"`
	ShiftDate     string   `json:"shift_date"`
	ShiftStart    string   `json:"shift_start"`
	ShiftEnd      string   `json:"shift_end"`
	Timestamp     string   `json:"timestamp"`
	Type          string   `json:"type"`
	LateStatus    string   `json:"late_status"`
	EarlyStatus   string   `json:"early_status"`
	DurationHours *float64 `json:"duration_hours"`
}

type EmployeeDetailResponse struct {
	Profile ProfileResponse           `json:"profile"`
	Summary AttendanceSummaryResponse `json:"summary"`
	Records []AttendanceRecord        `json:"records"`
}

func NewProfileResponse(e ledger.Employee) ProfileResponse {
	return ProfileResponse{
		EmployeeID:   e.ID,
		FullName:     e.FullName,
		Department:   e.Department,
		Designation:  e.Designation,
		BaseLocation: e.BaseLocation,
	}
}

func NewAttendanceSummary(rows []ledger.Row) AttendanceSummaryResponse {
	summary := AttendanceSummaryResponse{
		TotalShifts:     ledger.DistinctShifts(rows),
		LateArrivals:    ledger.LateArrivals(rows),
		EarlyDepartures: ledger.EarlyDepartures(rows),
	}
	durations := ledger.Durations(rows)
	for _, d := range durations {
		summary.TotalHours += d
	}
	summary.TotalHours = round2(summary.TotalHours)
	if len(durations) > 0 {
		avg := round2(summary.TotalHours / float64(len(durations)))
		summary.AverageHours = &avg
	}
	return summary
}

func NewAttendanceRecords(rows []ledger.Row) []AttendanceRecord {
	records := make([]AttendanceRecord, 0, len(rows))
	for _, r := range rows {
		record := AttendanceRecord{
			ShiftID:       r.Event.ShiftID,
			Timestamp:     r.Event.Timestamp.Format("2006-01-02 15:04:05"),
			Type:          string(r.Event.Type),
			LateStatus:    string(r.LateStatus),
			EarlyStatus:   string(r.EarlyStatus),
			DurationHours: r.DurationHours,
		}
		if r.Shift != nil {
			record.ShiftDate = r.Shift.Date.Format("2006-01-02")
			record.ShiftStart = r.Shift.Start.String()
			record.ShiftEnd = r.Shift.End.String()
		}
		records = append(records, record)
	}
	return records
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
