package ledger

// ByEmployee returns the rows of one employee in source order. The id is
// normalized before matching.
func (l *Ledger) ByEmployee(employeeID string) []Row {
	id := NormalizeID(employeeID)
	return l.filter(func(r Row) bool { return r.Event.EmployeeID == id })
}

// ByDepartment matches on the roster department of the row's employee.
func (l *Ledger) ByDepartment(department string) []Row {
	return l.filter(func(r Row) bool { return r.Employee != nil && r.Employee.Department == department })
}

// ByLocation matches on the shift location, or the employee base location
// when the shift carries none.
func (l *Ledger) ByLocation(location string) []Row {
	return l.filter(func(r Row) bool { return r.Location() == location })
}

func (l *Ledger) All() []Row {
	return l.filter(func(Row) bool { return true })
}

// Employee looks up a roster entry by normalized id.
func (l *Ledger) Employee(employeeID string) (Employee, bool) {
	id := NormalizeID(employeeID)
	for _, e := range l.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

func (l *Ledger) filter(keep func(Row) bool) []Row {
	result := make([]Row, 0)
	if l == nil {
		return result
	}
	for _, r := range l.Rows {
		if keep(r) {
			result = append(result, r)
		}
	}
	return result
}
