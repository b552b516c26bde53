package ledger

import (
	"strings"
)

// NormalizeID returns the canonical form of an employee or shift identifier.
// Digit-only values drop leading zeros so that "007" and 7 compare equal, and
// spreadsheet numerics such as "7.0" lose their zero fraction.
func NormalizeID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return ""
	}

	if whole, frac, ok := strings.Cut(id, "."); ok && isDigits(whole) && isDigits(frac) && strings.Trim(frac, "0") == "" {
		id = whole
	}

	if !isDigits(id) {
		return id
	}

	trimmed := strings.TrimLeft(id, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseEventType accepts the spellings found in attendance exports.
func ParseEventType(raw string) (EventType, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.NewReplacer("-", "", "_", "", " ", "").Replace(v)
	switch v {
	case "checkin", "in", "clockin":
		return CheckIn, true
	case "checkout", "out", "clockout":
		return CheckOut, true
	}
	return "", false
}
