package ledger

import (
	"sort"
)

// DistinctEmployees counts employee ids appearing on the rows.
func DistinctEmployees(rows []Row) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		seen[r.Event.EmployeeID] = struct{}{}
	}
	return len(seen)
}

// DistinctShifts counts composite shift keys appearing on the rows.
func DistinctShifts(rows []Row) int {
	seen := make(map[ShiftKey]struct{})
	for _, r := range rows {
		seen[r.Event.Key()] = struct{}{}
	}
	return len(seen)
}

// LateArrivals counts check-ins classified Late.
func LateArrivals(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.LateStatus == Late {
			n++
		}
	}
	return n
}

// EarlyDepartures counts check-outs classified Early.
func EarlyDepartures(rows []Row) int {
	n := 0
	for _, r := range rows {
		if r.EarlyStatus == Early {
			n++
		}
	}
	return n
}

// LatePercent is the share of classifiable check-ins that were late, 0..100.
func LatePercent(rows []Row) float64 {
	applicable := 0
	for _, r := range rows {
		if r.LateStatus != LateNotApplicable && r.LateStatus != "" {
			applicable++
		}
	}
	if applicable == 0 {
		return 0
	}
	return float64(LateArrivals(rows)) / float64(applicable) * 100
}

// Durations returns the paired durations that are not flagged anomalous.
func Durations(rows []Row) []float64 {
	var result []float64
	for _, r := range rows {
		if r.DurationHours != nil && !r.DurationAnomaly {
			result = append(result, *r.DurationHours)
		}
	}
	return result
}

// CountBy counts rows per non-empty key, ordered by count then name.
func CountBy(rows []Row, key func(Row) string) []Count {
	counts := make(map[string]int)
	for _, r := range rows {
		if k := key(r); k != "" {
			counts[k]++
		}
	}

	result := make([]Count, 0, len(counts))
	for name, n := range counts {
		result = append(result, Count{Name: name, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
