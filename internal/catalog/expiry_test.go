package catalog

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

func TestDaysUntilExpiry(t *testing.T) {
	cases := []struct {
		date string
		want int
		ok   bool
	}{
		{"2026-08-31", 0, true},
		{"2026-09-01", 1, true},
		{"2026-08-30", -1, true},
		{"2026-09-30", 30, true},
		{"2026-10-01", 31, true},
		{"", 0, false},
		{"31/08/2026", 0, false},
	}
	for _, tc := range cases {
		got, ok := DaysUntilExpiry(tc.date, testNow)
		if ok != tc.ok || got != tc.want {
			t.Errorf("DaysUntilExpiry(%q) = (%d, %v), want (%d, %v)", tc.date, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClassifyExpiry(t *testing.T) {
	cases := []struct {
		date string
		want ExpiryStatus
	}{
		{"2026-08-30", ExpiryExpired},
		{"2026-08-31", ExpirySoon},
		{"2026-09-30", ExpirySoon},
		{"2026-10-01", ExpiryValid},
		{"", ExpiryValid},
	}
	for _, tc := range cases {
		if got := ClassifyExpiry(tc.date, testNow); got != tc.want {
			t.Errorf("ClassifyExpiry(%q) = %s, want %s", tc.date, got, tc.want)
		}
	}
}
