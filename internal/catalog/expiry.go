package catalog

import (
	"math"
	"time"
)

type ExpiryStatus string

const (
	ExpiryAll     ExpiryStatus = "ALL"
	ExpiryExpired ExpiryStatus = "EXPIRED"
	ExpirySoon    ExpiryStatus = "SOON"
	ExpiryValid   ExpiryStatus = "VALID"
)

const expiryLayout = "2006-01-02"

// soonWindowDays is the inclusive number of days ahead still counted as
// expiring soon.
const soonWindowDays = 30

// DaysUntilExpiry parses a YYYY-MM-DD date as a local calendar date at
// midnight and returns the whole-day distance from today, rounding up.
// Parsing in the local location avoids the off-by-one that generic timestamp
// parsing produces for dates interpreted as UTC midnight. The second return
// is false when the date is empty or malformed.
func DaysUntilExpiry(date string, now time.Time) (int, bool) {
	if date == "" {
		return 0, false
	}
	expiry, err := time.ParseInLocation(expiryLayout, date, now.Location())
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	diff := expiry.Sub(today)
	return int(math.Ceil(diff.Hours() / 24)), true
}

// ClassifyExpiry maps an expiry date to its status bucket. Products without a
// date are always VALID.
func ClassifyExpiry(date string, now time.Time) ExpiryStatus {
	days, ok := DaysUntilExpiry(date, now)
	if !ok {
		return ExpiryValid
	}
	switch {
	case days < 0:
		return ExpiryExpired
	case days <= soonWindowDays:
		return ExpirySoon
	default:
		return ExpiryValid
	}
}
