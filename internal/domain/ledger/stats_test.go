package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hours(v float64) *float64 { return &v }

func statsRows() []Row {
	ops := &Employee{ID: "1", Department: "Operations"}
	eng := &Employee{ID: "2", Department: "Engineering"}
	return []Row{
		{Event: Event{EmployeeID: "1", ShiftID: "A", Type: CheckIn}, Employee: ops, LateStatus: Late, EarlyStatus: EarlyNotApplicable, DurationHours: hours(8)},
		{Event: Event{EmployeeID: "1", ShiftID: "A", Type: CheckOut}, Employee: ops, LateStatus: LateNotApplicable, EarlyStatus: Early},
		{Event: Event{EmployeeID: "1", ShiftID: "B", Type: CheckIn}, Employee: ops, LateStatus: LateOnTime, EarlyStatus: EarlyNotApplicable, DurationHours: hours(-2), DurationAnomaly: true},
		{Event: Event{EmployeeID: "2", ShiftID: "A", Type: CheckIn}, Employee: eng, LateStatus: LateOnTime, EarlyStatus: EarlyNotApplicable, DurationHours: hours(6)},
		{Event: Event{EmployeeID: "3", ShiftID: "C", Type: CheckIn}, LateStatus: LateNotApplicable, EarlyStatus: EarlyNotApplicable},
	}
}

func TestStats(t *testing.T) {
	rows := statsRows()

	assert.Equal(t, 3, DistinctEmployees(rows))
	assert.Equal(t, 4, DistinctShifts(rows))
	assert.Equal(t, 1, LateArrivals(rows))
	assert.Equal(t, 1, EarlyDepartures(rows))
	assert.InDelta(t, 100.0/3, LatePercent(rows), 1e-9)
	assert.Equal(t, []float64{8, 6}, Durations(rows))
}

func TestStats_Empty(t *testing.T) {
	assert.Equal(t, 0.0, LatePercent(nil))
	assert.Empty(t, Durations(nil))
	assert.Empty(t, CountBy(nil, Row.Department))
}

func TestCountBy(t *testing.T) {
	got := CountBy(statsRows(), Row.Department)
	assert.Equal(t, []Count{{"Operations", 3}, {"Engineering", 1}}, got)
}
