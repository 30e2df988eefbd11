// Package dates implements the calendar date arithmetic used across econcal:
// day/week/month ranges, period token resolution, week navigation links, and
// timezone-aware display formatting.
//
// All range math is anchored to UTC. A *time.Location parameter only decides
// which calendar date an instant projects to ("today" in Tokyo is not "today"
// in New York); the returned bounds are always absolute UTC instants. This is
// deliberate: comparing ranges computed on different machines must never
// depend on the server's local timezone.
//
// Every function here is pure. The current time is always an explicit
// argument, never read from a global clock.
package dates

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates, as consumed by the
// upstream events API and embedded in /calendar/week/ URLs.
const DateLayout = "2006-01-02"

// Range is a closed span of absolute instants, Start <= End.
// Day ranges run 00:00:00.000 to 23:59:59.999 UTC of one calendar date;
// week ranges run Monday 00:00:00.000 to Sunday 23:59:59.999 UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, inclusive on both ends.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// InvalidDateError is returned when a reference date or instant cannot be
// parsed. It is distinct from "valid date with no events" — callers reject
// the request or substitute a default, they must not conflate the two.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Value)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, &InvalidDateError{Value: s}
	}
	return t, nil
}

// instantLayouts are tried in order by ParseInstant. Layouts without an
// explicit offset are interpreted as UTC, never as the server's local zone.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseInstant parses a timestamp string into an absolute UTC instant.
// Accepts RFC 3339, the same without an offset marker (treated as UTC),
// and bare calendar dates (midnight UTC). Returns *InvalidDateError on
// anything else.
func ParseInstant(s string) (time.Time, error) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &InvalidDateError{Value: s}
}

// calendarDate projects t into loc and returns the UTC midnight of the
// calendar date it lands on. A nil loc means UTC.
func calendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayRange returns the [00:00:00.000, 23:59:59.999] UTC span of the calendar
// date t falls on. If loc is non-nil the calendar date is determined in that
// zone first, so "today" means today-in-that-zone.
func DayRange(t time.Time, loc *time.Location) Range {
	start := calendarDate(t, loc)
	return Range{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Millisecond)}
}

// WeekRange returns the Monday-to-Sunday span containing t's calendar date.
// Weeks are ISO style: Monday first, and a date falling on Sunday belongs to
// the week that started on the preceding Monday.
func WeekRange(t time.Time, loc *time.Location) Range {
	date := calendarDate(t, loc)

	// Go counts Sunday as 0; ISO counts it as day 7 of the prior week.
	dow := int(date.Weekday())
	if dow == 0 {
		dow = 7
	}
	monday := date.AddDate(0, 0, 1-dow)
	return Range{Start: monday, End: monday.AddDate(0, 0, 7).Add(-time.Millisecond)}
}

// MonthRange returns the first-to-last-day span of the calendar month t's
// UTC date falls in, leap-year aware.
func MonthRange(t time.Time) Range {
	y, m, _ := t.UTC().Date()
	return monthOf(y, m)
}

// monthOf builds the range for a (year, month) pair. time.Date normalizes
// out-of-range months, so month 13 of 2024 rolls to January 2025.
func monthOf(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Millisecond)}
}
