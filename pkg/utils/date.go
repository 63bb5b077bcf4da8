package utils

import "time"

// Today returns the current calendar date in the given location,
// formatted as 2006-01-02.
func Today(loc *time.Location) string {
	return time.Now().In(loc).Format(time.DateOnly)
}

// HourBucket truncates a timestamp to its (date, hour) bucket in the
// given location, e.g. "2026-08-29 14". Used by the spreadsheet sync to
// detect duplicate hourly posts.
func HourBucket(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15")
}
