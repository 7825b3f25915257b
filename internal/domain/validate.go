package domain

import (
	"math"
	"regexp"
	"time"
)

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateWeight reports whether w is an acceptable weight in kilograms:
// finite and strictly between 0 and 500.
func ValidateWeight(w float64) bool {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return false
	}
	return w > 0 && w < 500
}

// ValidateDate reports whether s is a real YYYY-MM-DD calendar date no later
// than the current local day. Today is allowed, future dates are not.
func ValidateDate(s string) bool {
	if !dayPattern.MatchString(s) {
		return false
	}

	d, err := time.ParseInLocation(DayFormat, s, time.Local)
	if err != nil {
		return false
	}
	// ParseInLocation normalises impossible dates such as 2024-02-30, so a
	// round-trip mismatch means the components were not a real date.
	if d.Format(DayFormat) != s {
		return false
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return !d.After(today)
}
