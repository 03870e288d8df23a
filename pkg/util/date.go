package util

import "time"

// DateLayout is the canonical calendar-date form used throughout the
// pipeline. Lexicographic order of dates in this layout equals
// chronological order, which the calendar builder relies on.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date. Returns (t, true) if it parsed.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a time as a YYYY-MM-DD date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DateToUnix converts a YYYY-MM-DD date to a unix timestamp at midnight UTC.
func DateToUnix(s string) (int64, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return 0, false
	}
	return t.Unix(), true
}

// UnixToDate converts a unix timestamp to its YYYY-MM-DD date in UTC.
func UnixToDate(ts int64) string {
	return FormatDate(time.Unix(ts, 0))
}

// LookbackRange returns the [start, end] date pair covering the given number
// of years back from now.
func LookbackRange(now time.Time, years int) (string, string) {
	end := now.UTC()
	start := end.AddDate(0, 0, -years*365)
	return FormatDate(start), FormatDate(end)
}
