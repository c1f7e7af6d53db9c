// Package clock holds the calendar arithmetic used for due dates.
//
// A calendar date is a time.Time at midnight UTC, the way DATE columns scan.
// Instants are converted to a date in Location; dates read from user input
// are taken as written.
package clock

import "time"

// Clock returns the current instant. Services take one so tests can pin today.
type Clock func() time.Time

// Location is the zone in which a calendar day starts. It is set once at startup.
var Location = time.UTC

// Today returns the calendar date of now in Location.
func (c Clock) Today() time.Time {
	return Date(c())
}

// Date returns the calendar date the instant t falls on in Location.
func Date(t time.Time) time.Time {
	return Day(t.In(Location))
}

// Day truncates t to the date it reads in its own zone, without converting.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate reads a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// StartOf returns the instant the calendar date day begins in Location.
func StartOf(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, Location)
}

// DaysBetween returns the number of whole calendar days from date a to date b.
// It is negative when b is before a.
func DaysBetween(a, b time.Time) int {
	a, b = Day(a), Day(b)
	return int(b.Sub(a).Hours() / 24)
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}
