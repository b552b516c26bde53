package ledger

import (
	"github.com/cmlabs-hris/attendance-ledger/internal/domain/ledger"
)

// ComputeMetrics fills the derived fields of every row in place. Rows must
// not be shared with readers yet.
func ComputeMetrics(rows []ledger.Row, policy ledger.PairingPolicy) {
	for i := range rows {
		classify(&rows[i])
	}
	pairDurations(rows, policy)
}

// classify derives lateness and earliness from the row alone.
func classify(r *ledger.Row) {
	r.LateStatus = ledger.LateNotApplicable
	r.EarlyStatus = ledger.EarlyNotApplicable
	if r.Shift == nil {
		return
	}
	r.OvernightShift = r.Shift.Overnight()

	switch r.Event.Type {
	case ledger.CheckIn:
		if r.Event.Timestamp.After(r.Shift.ExpectedStart()) {
			r.LateStatus = ledger.Late
		} else {
			r.LateStatus = ledger.LateOnTime
		}
	case ledger.CheckOut:
		if r.Event.Timestamp.Before(r.Shift.ExpectedEnd()) {
			r.EarlyStatus = ledger.Early
		} else {
			r.EarlyStatus = ledger.EarlyOnTime
		}
	}
}

// pairDurations attaches a duration to each check-in row. Check-outs are
// grouped once by composite key in source order, then probed per check-in.
func pairDurations(rows []ledger.Row, policy ledger.PairingPolicy) {
	checkouts := make(map[ledger.ShiftKey][]int)
	for i, r := range rows {
		if r.Event.Type == ledger.CheckOut {
			key := r.Event.Key()
			checkouts[key] = append(checkouts[key], i)
		}
	}

	for i := range rows {
		in := &rows[i]
		if in.Event.Type != ledger.CheckIn {
			continue
		}
		candidates := checkouts[in.Event.Key()]
		j, ok := pickCheckout(rows, in, candidates, policy)
		if !ok {
			continue
		}
		hours := rows[j].Event.Timestamp.Sub(in.Event.Timestamp).Hours()
		in.DurationHours = &hours
		in.DurationAnomaly = hours < 0
	}
}

func pickCheckout(rows []ledger.Row, in *ledger.Row, candidates []int, policy ledger.PairingPolicy) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	if policy != ledger.PairEarliestAfter {
		return candidates[0], true
	}

	best, found := 0, false
	for _, j := range candidates {
		ts := rows[j].Event.Timestamp
		if ts.Before(in.Event.Timestamp) {
			continue
		}
		if !found || ts.Before(rows[best].Event.Timestamp) {
			best, found = j, true
		}
	}
	return best, found
}
