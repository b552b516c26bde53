package ledger

import (
	"time"

	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
)

// Build reconciles the tables and computes metrics, producing a ledger that
// is not yet visible to anyone.
func Build(tables ledger.Tables, policy ledger.PairingPolicy) (*ledger.Ledger, ledger.BuildSummary, error) {
	started := time.Now()

	rows, err := Reconcile(tables)
	if err != nil {
		return nil, ledger.BuildSummary{}, err
	}
	ComputeMetrics(rows, policy)

	employees := make([]ledger.Employee, len(tables.Employees))
	copy(employees, tables.Employees)

	built := &ledger.Ledger{
		Rows:      rows,
		Employees: employees,
		BuiltAt:   time.Now(),
	}

	summary := ledger.BuildSummary{
		Employees:     len(tables.Employees),
		Shifts:        len(tables.Shifts),
		Events:        len(tables.Events),
		Rows:          len(rows),
		BuiltAt:       built.BuiltAt.Format(time.RFC3339),
		ElapsedMillis: float64(time.Since(started).Microseconds()) / 1000,
	}
	for _, r := range rows {
		if r.Shift == nil {
			summary.UnmatchedShift++
		}
		if r.Employee == nil {
			summary.UnmatchedRoster++
		}
		if r.DurationAnomaly {
			summary.Anomalies++
		}
	}

	return built, summary, nil
}
