package dates

import "time"

// PublisherTimezone is the zone economic events are scheduled in. US data
// releases are effectively Eastern Time regardless of where the viewer sits,
// so "is this event still upcoming" is always framed against this zone.
const PublisherTimezone = "America/New_York"

// supportedTimezones is the allow-list of zones the viewer can select for
// display. Matches the timezone picker; anything else is rejected before it
// reaches formatting code.
var supportedTimezones = []string{
	"UTC",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"Europe/London",
	"Europe/Berlin",
	"Europe/Paris",
	"Asia/Tokyo",
	"Asia/Hong_Kong",
	"Asia/Singapore",
	"Australia/Sydney",
}

// SupportedTimezones returns the display timezone allow-list in picker order.
func SupportedTimezones() []string {
	out := make([]string, len(supportedTimezones))
	copy(out, supportedTimezones)
	return out
}

// IsValidTimezone reports whether name is on the supported allow-list.
func IsValidTimezone(name string) bool {
	for _, tz := range supportedTimezones {
		if tz == name {
			return true
		}
	}
	return false
}

// Location resolves a supported timezone name to its *time.Location.
// Off-list or unloadable names fall back to the publisher zone, and to UTC
// if even that is unavailable. Formatting code downstream never sees an
// error from here.
func Location(name string) *time.Location {
	if IsValidTimezone(name) {
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(PublisherTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Sentinel strings returned by FormatInZone for unparseable input.
// Formatting runs inside render paths, so it degrades instead of failing.
const (
	InvalidDateText     = "Invalid Date"
	InvalidTimeText     = "Invalid Time"
	InvalidDateTimeText = "Invalid DateTime"
)

// FormatOptions controls FormatInZone output.
type FormatOptions struct {
	// Hour24 selects 24-hour clock output; the default is 12-hour with AM/PM.
	Hour24 bool
}

// Parts holds the three display renderings of one instant.
type Parts struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	DateTime string `json:"datetime"`
}

// FormatInZone renders an instant for display in the given zone: a short
// weekday+month+day date, an hour:minute time with zone abbreviation, and
// the combination of both. Input without an explicit offset is read as UTC
// so the same event renders identically on every machine. Unparseable input
// yields the sentinel strings rather than an error.
func FormatInZone(value string, tz string, opts FormatOptions) Parts {
	t, err := ParseInstant(value)
	if err != nil {
		return Parts{
			Date:     InvalidDateText,
			Time:     InvalidTimeText,
			DateTime: InvalidDateTimeText,
		}
	}

	local := t.In(Location(tz))
	date := local.Format("Mon, Jan 2")

	clock := local.Format("3:04 PM")
	if opts.Hour24 {
		clock = local.Format("15:04")
	}
	timeStr := clock + " " + local.Format("MST")

	return Parts{
		Date:     date,
		Time:     timeStr,
		DateTime: date + ", " + timeStr,
	}
}

// Clock renders just the 24-hour wall-clock of an instant in the given zone,
// e.g. "13:30". Returns the invalid-time sentinel for unparseable input.
func Clock(value string, tz string) string {
	t, err := ParseInstant(value)
	if err != nil {
		return InvalidTimeText
	}
	return t.In(Location(tz)).Format("15:04")
}

// NowInZone projects an instant into a supported display zone. Used to frame
// "now" in the publisher timezone when deciding which event is next.
func NowInZone(now time.Time, tz string) time.Time {
	return now.In(Location(tz))
}
