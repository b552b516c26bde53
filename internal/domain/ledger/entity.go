package ledger

import (
	"time"
)

type EventType string

const (
	CheckIn  EventType = "CheckIn"
	CheckOut EventType = "CheckOut"
)

type LateStatus string

const (
	Late              LateStatus = "Late"
	LateOnTime        LateStatus = "OnTime"
	LateNotApplicable LateStatus = "NotApplicable"
)

type EarlyStatus string

const (
	Early              EarlyStatus = "Early"
	EarlyOnTime        EarlyStatus = "OnTime"
	EarlyNotApplicable EarlyStatus = "NotApplicable"
)

// PairingPolicy selects which check-out a check-in is paired with when a
// shift has more than one.
type PairingPolicy string

const (
	// PairFirst takes the first check-out in source order.
	PairFirst PairingPolicy = "first"
	// PairEarliestAfter takes the earliest check-out at or after the check-in.
	PairEarliestAfter PairingPolicy = "earliest_after"
)

func (p PairingPolicy) Valid() bool {
	return p == PairFirst || p == PairEarliestAfter
}

type Employee struct {
	ID           string
	FullName     string
	Department   string
	Designation  string
	BaseLocation string

	SourceRow int
}

// ShiftKey is the composite key shared by shifts and attendance events.
type ShiftKey struct {
	EmployeeID string
	ShiftID    string
}

type Shift struct {
	EmployeeID string
	ShiftID    string
	Date       time.Time // midnight of the shift date in the ledger location
	Start      TimeOfDay
	End        TimeOfDay
	Location   string

	SourceRow int
}

func (s Shift) Key() ShiftKey {
	return ShiftKey{EmployeeID: s.EmployeeID, ShiftID: s.ShiftID}
}

// Overnight reports whether the shift ends on the day after it starts.
func (s Shift) Overnight() bool {
	return s.End < s.Start
}

// ExpectedStart combines the shift date and start time.
func (s Shift) ExpectedStart() time.Time {
	return s.at(s.Start, 0)
}

// ExpectedEnd combines the shift date and end time, rolling over to the next
// day for overnight shifts.
func (s Shift) ExpectedEnd() time.Time {
	if s.Overnight() {
		return s.at(s.End, 1)
	}
	return s.at(s.End, 0)
}

func (s Shift) at(t TimeOfDay, dayOffset int) time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day()+dayOffset,
		t.Hour(), t.Minute(), t.Second(), 0, s.Date.Location())
}

type Event struct {
	EmployeeID string
	ShiftID    string
	Timestamp  time.Time
	Date       time.Time
	Type       EventType

	SourceRow int
}

func (e Event) Key() ShiftKey {
	return ShiftKey{EmployeeID: e.EmployeeID, ShiftID: e.ShiftID}
}

// Row is one ledger entry: an attendance event enriched with its shift,
// employee and derived metrics. Shift and Employee are nil when unmatched.
type Row struct {
	Event    Event
	Shift    *Shift
	Employee *Employee

	LateStatus      LateStatus
	EarlyStatus     EarlyStatus
	DurationHours   *float64
	DurationAnomaly bool
	OvernightShift  bool
}

// Location is the shift location, falling back to the employee base location.
func (r Row) Location() string {
	if r.Shift != nil && r.Shift.Location != "" {
		return r.Shift.Location
	}
	if r.Employee != nil {
		return r.Employee.BaseLocation
	}
	return ""
}

func (r Row) Department() string {
	if r.Employee == nil {
		return ""
	}
	return r.Employee.Department
}

// Tables holds the three normalized sources of one load.
type Tables struct {
	Employees []Employee
	Shifts    []Shift
	Events    []Event
}

// Ledger is the immutable result of one build.
type Ledger struct {
	Rows      []Row
	Employees []Employee
	BuiltAt   time.Time
}
