package dateutil

import "time"

const Layout = "2006-01-02"

// Parse reads a YYYY-MM-DD calendar date as UTC midnight.
func Parse(v string) (time.Time, error) {
	return time.Parse(Layout, v)
}

// DayOf truncates t to its calendar date in loc. The result is UTC midnight of
// that date so it compares equal to values read back from DATE columns.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Format(t time.Time) string {
	return t.Format(Layout)
}
