package ledger

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
)

// Reconcile joins every attendance event with its shift on (employee_id,
// shift_id) and then with its employee on employee_id. Both joins are left
// outer: unmatched events keep nil Shift/Employee. Duplicate keys on either
// right side fail with DuplicateKeyError instead of multiplying rows.
func Reconcile(tables ledger.Tables) ([]ledger.Row, error) {
	shifts, err := indexShifts(tables.Shifts)
	if err != nil {
		return nil, err
	}
	employees, err := indexEmployees(tables.Employees)
	if err != nil {
		return nil, err
	}

	rows := make([]ledger.Row, len(tables.Events))
	for i, event := range tables.Events {
		rows[i] = ledger.Row{
			Event:    event,
			Shift:    shifts[event.Key()],
			Employee: employees[event.EmployeeID],
		}
	}
	return rows, nil
}

func indexShifts(shifts []ledger.Shift) (map[ledger.ShiftKey]*ledger.Shift, error) {
	owned := make([]ledger.Shift, len(shifts))
	copy(owned, shifts)

	index := make(map[ledger.ShiftKey]*ledger.Shift, len(owned))
	for i := range owned {
		s := &owned[i]
		if prev, dup := index[s.Key()]; dup {
			return nil, &ledger.DuplicateKeyError{
				Source:    ledger.SourceSchedule,
				Key:       fmt.Sprintf("(%s, %s)", s.EmployeeID, s.ShiftID),
				FirstRow:  prev.SourceRow,
				SecondRow: s.SourceRow,
			}
		}
		index[s.Key()] = s
	}
	return index, nil
}

func indexEmployees(employees []ledger.Employee) (map[string]*ledger.Employee, error) {
	owned := make([]ledger.Employee, len(employees))
	copy(owned, employees)

	index := make(map[string]*ledger.Employee, len(owned))
	for i := range owned {
		e := &owned[i]
		if prev, dup := index[e.ID]; dup {
			return nil, &ledger.DuplicateKeyError{
				Source:    ledger.SourceRoster,
				Key:       e.ID,
				FirstRow:  prev.SourceRow,
				SecondRow: e.SourceRow,
			}
		}
		index[e.ID] = e
	}
	return index, nil
}
