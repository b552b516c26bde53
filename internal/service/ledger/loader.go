package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
	"github.com/cmlabs-hris/attendance-ledger/internal/pkg/tabular"
	"golang.org/x/sync/errgroup"
)

var (
	rosterColumns     = []string{"employee_id", "full_name", "department", "designation", "base_location"}
	scheduleColumns   = []string{"employee_id", "shift_id", "shift_date", "shift_start", "shift_end"}
	attendanceColumns = []string{"employee_id", "shift_id", "timestamp", "type"}

	timestampLayouts = []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04",
	}
	dateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	timeLayouts = []string{
		"15:04",
		"15:04:05",
		"2006-01-02T15:04:05",
	}
)

// FileLoader reads the roster, schedule and attendance files.
type FileLoader struct {
	rosterPath     string
	schedulePath   string
	attendancePath string
	location       *time.Location
}

func NewFileLoader(rosterPath, schedulePath, attendancePath string, location *time.Location) *FileLoader {
	if location == nil {
		location = time.UTC
	}
	return &FileLoader{
		rosterPath:     rosterPath,
		schedulePath:   schedulePath,
		attendancePath: attendancePath,
		location:       location,
	}
}

// Load reads the three sources concurrently. Any failure aborts the load.
func (l *FileLoader) Load(ctx context.Context) (ledger.Tables, error) {
	var tables ledger.Tables
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		table, err := readSource(ctx, ledger.SourceRoster, l.rosterPath)
		if err != nil {
			return err
		}
		tables.Employees, err = ParseRoster(table)
		return err
	})

	g.Go(func() error {
		table, err := readSource(ctx, ledger.SourceSchedule, l.schedulePath)
		if err != nil {
			return err
		}
		tables.Shifts, err = ParseSchedule(table, l.location)
		return err
	})

	g.Go(func() error {
		table, err := readSource(ctx, ledger.SourceAttendance, l.attendancePath)
		if err != nil {
			return err
		}
		tables.Events, err = ParseAttendance(table, l.location)
		return err
	})

	if err := g.Wait(); err != nil {
		return ledger.Tables{}, err
	}
	return tables, nil
}

func readSource(ctx context.Context, source, path string) (*tabular.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := tabular.ReadFile(path)
	if err != nil {
		if errors.Is(err, tabular.ErrUnsupportedFormat) {
			err = fmt.Errorf("%w: %s", ledger.ErrUnknownSource, err.Error())
		}
		return nil, &ledger.MalformedInputError{Source: source, Err: err}
	}
	return table, nil
}

func requireColumns(source string, table *tabular.Table, required []string) error {
	if dups := table.Duplicates(); len(dups) > 0 {
		return &ledger.MalformedInputError{
			Source: source,
			Column: strings.Join(dups, ","),
			Err:    ledger.ErrDuplicateColumn,
		}
	}
	if missing := table.Missing(required...); len(missing) > 0 {
		return &ledger.MalformedInputError{
			Source: source,
			Column: strings.Join(missing, ","),
			Err:    ledger.ErrMissingColumn,
		}
	}
	return nil
}

// columns resolves names that requireColumns has already checked.
func columns(table *tabular.Table, names []string) map[string]int {
	cols := make(map[string]int, len(names))
	for _, name := range names {
		i, _ := table.Column(name)
		cols[name] = i
	}
	return cols
}

// ParseRoster converts a roster table into employees.
func ParseRoster(table *tabular.Table) ([]ledger.Employee, error) {
	if err := requireColumns(ledger.SourceRoster, table, rosterColumns); err != nil {
		return nil, err
	}
	cols := columns(table, rosterColumns)

	employees := make([]ledger.Employee, 0, len(table.Records))
	for i, record := range table.Records {
		row := i + 2
		id, err := parseID(ledger.SourceRoster, row, "employee_id", table.Value(record, cols["employee_id"]))
		if err != nil {
			return nil, err
		}
		employees = append(employees, ledger.Employee{
			ID:           id,
			FullName:     table.Value(record, cols["full_name"]),
			Department:   table.Value(record, cols["department"]),
			Designation:  table.Value(record, cols["designation"]),
			BaseLocation: table.Value(record, cols["base_location"]),
			SourceRow:    row,
		})
	}
	return employees, nil
}

// ParseSchedule converts a schedule table into shifts. Dates are anchored at
// midnight in loc.
func ParseSchedule(table *tabular.Table, loc *time.Location) ([]ledger.Shift, error) {
	if err := requireColumns(ledger.SourceSchedule, table, scheduleColumns); err != nil {
		return nil, err
	}
	cols := columns(table, scheduleColumns)
	locationCol, hasLocation := table.Column("location")

	shifts := make([]ledger.Shift, 0, len(table.Records))
	for i, record := range table.Records {
		row := i + 2
		employeeID, err := parseID(ledger.SourceSchedule, row, "employee_id", table.Value(record, cols["employee_id"]))
		if err != nil {
			return nil, err
		}
		shiftID, err := parseID(ledger.SourceSchedule, row, "shift_id", table.Value(record, cols["shift_id"]))
		if err != nil {
			return nil, err
		}

		rawDate := table.Value(record, cols["shift_date"])
		date, ok := parseDate(rawDate, loc)
		if !ok {
			return nil, &ledger.MalformedInputError{Source: ledger.SourceSchedule, Row: row, Column: "shift_date", Value: rawDate, Err: ledger.ErrInvalidDate}
		}

		rawStart := table.Value(record, cols["shift_start"])
		start, ok := parseTimeOfDay(rawStart)
		if !ok {
			return nil, &ledger.MalformedInputError{Source: ledger.SourceSchedule, Row: row, Column: "shift_start", Value: rawStart, Err: ledger.ErrInvalidTime}
		}

		rawEnd := table.Value(record, cols["shift_end"])
		end, ok := parseTimeOfDay(rawEnd)
		if !ok {
			return nil, &ledger.MalformedInputError{Source: ledger.SourceSchedule, Row: row, Column: "shift_end", Value: rawEnd, Err: ledger.ErrInvalidTime}
		}

		shift := ledger.Shift{
			EmployeeID: employeeID,
			ShiftID:    shiftID,
			Date:       date,
			Start:      start,
			End:        end,
			SourceRow:  row,
		}
		if hasLocation {
			shift.Location = table.Value(record, locationCol)
		}
		shifts = append(shifts, shift)
	}
	return shifts, nil
}

// ParseAttendance converts an attendance table into events. Timestamps
// without an offset are read in loc.
func ParseAttendance(table *tabular.Table, loc *time.Location) ([]ledger.Event, error) {
	if err := requireColumns(ledger.SourceAttendance, table, attendanceColumns); err != nil {
		return nil, err
	}
	cols := columns(table, attendanceColumns)

	events := make([]ledger.Event, 0, len(table.Records))
	for i, record := range table.Records {
		row := i + 2
		employeeID, err := parseID(ledger.SourceAttendance, row, "employee_id", table.Value(record, cols["employee_id"]))
		if err != nil {
			return nil, err
		}
		shiftID, err := parseID(ledger.SourceAttendance, row, "shift_id", table.Value(record, cols["shift_id"]))
		if err != nil {
			return nil, err
		}

		rawTimestamp := table.Value(record, cols["timestamp"])
		ts, ok := parseTimestamp(rawTimestamp, loc)
		if !ok {
			return nil, &ledger.MalformedInputError{Source: ledger.SourceAttendance, Row: row, Column: "timestamp", Value: rawTimestamp, Err: ledger.ErrInvalidTimestamp}
		}

		rawType := table.Value(record, cols["type"])
		eventType, ok := ledger.ParseEventType(rawType)
		if !ok {
			return nil, &ledger.MalformedInputError{Source: ledger.SourceAttendance, Row: row, Column: "type", Value: rawType, Err: ledger.ErrInvalidEventType}
		}

		events = append(events, ledger.Event{
			EmployeeID: employeeID,
			ShiftID:    shiftID,
			Timestamp:  ts,
			Date:       time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
			Type:       eventType,
			SourceRow:  row,
		})
	}
	return events, nil
}

func parseID(source string, row int, column, raw string) (string, error) {
	id := ledger.NormalizeID(raw)
	if id == "" {
		return "", &ledger.MalformedInputError{Source: source, Row: row, Column: column, Err: ledger.ErrEmptyIdentifier}
	}
	return id, nil
}

func parseTimestamp(raw string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDate(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

func parseTimeOfDay(raw string) (ledger.TimeOfDay, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return ledger.NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), true
		}
	}
	return 0, false
}
