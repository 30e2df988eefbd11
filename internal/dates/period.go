package dates

import "time"

// Period is a named date-range token accepted by calendar routes.
type Period string

// The full set of recognized period tokens.
const (
	PeriodToday     Period = "today"
	PeriodTomorrow  Period = "tomorrow"
	PeriodRecent    Period = "recent"
	PeriodThisWeek  Period = "thisWeek"
	PeriodNextWeek  Period = "nextWeek"
	PeriodThisMonth Period = "thisMonth"
	PeriodNextMonth Period = "nextMonth"
)

// ResolvePeriod maps a period token to a concrete range relative to ref.
// loc decides which calendar date ref projects to (nil means UTC).
//
// An unrecognized token returns ok=false with a zero Range. That is the
// documented "unset" signal, not an error — callers fall back to their own
// default period.
func ResolvePeriod(p Period, ref time.Time, loc *time.Location) (Range, bool) {
	switch p {
	case PeriodToday:
		return DayRange(ref, loc), true
	case PeriodTomorrow:
		return DayRange(ref.AddDate(0, 0, 1), loc), true
	case PeriodRecent:
		// The trailing seven days up to and including ref's date.
		return Range{
			Start: DayRange(ref.AddDate(0, 0, -7), loc).Start,
			End:   DayRange(ref, loc).End,
		}, true
	case PeriodThisWeek:
		return WeekRange(ref, loc), true
	case PeriodNextWeek:
		return WeekRange(ref.AddDate(0, 0, 7), loc), true
	case PeriodThisMonth:
		return MonthRange(ref), true
	case PeriodNextMonth:
		// One calendar month later, not a fixed 30-day offset: December
		// rolls into January of the next year, and a Jan 31 reference must
		// not skip past February.
		y, m, _ := ref.UTC().Date()
		return monthOf(y, m+1), true
	default:
		return Range{}, false
	}
}

// APIRange is the wire form of a Range: calendar dates only, as the upstream
// events API consumes them in fromDate/toDate query parameters.
type APIRange struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

// FormatForAPI reduces a Range to the calendar dates of its endpoints.
// Only YYYY-MM-DD ever appears here; leaking a full ISO timestamp into a
// date-only field has bitten this wire format before and is guarded by a
// test.
func FormatForAPI(r Range) APIRange {
	return APIRange{
		FromDate: r.Start.UTC().Format(DateLayout),
		ToDate:   r.End.UTC().Format(DateLayout),
	}
}
