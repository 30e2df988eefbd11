package events

import "time"

// NextEvent picks the event to highlight as "up next" from a single day's
// list. now is the current absolute instant; callers frame it against the
// publisher timezone (events are scheduled in Eastern Time), but the
// comparison itself is between absolute instants — the zone never enters
// the arithmetic.
//
// Rules, in order:
//   - A non-nil override (user-selected event) wins unconditionally.
//   - Only events strictly after now are candidates; an event at exactly
//     now is already underway, not upcoming.
//   - The earliest candidate wins. Ties on the exact instant go to the
//     first occurrence in input order.
//   - Events with malformed dates are ineligible (neither past nor future)
//     and never abort selection of the rest.
//   - No candidates: returns nil. The service layer retries against
//     tomorrow's list before giving up; the display layer renders its
//     "nothing scheduled" state on nil.
func NextEvent(list []Event, now time.Time, override *Event) *Event {
	if override != nil {
		return override
	}

	var (
		best   *Event
		bestAt time.Time
	)
	for i := range list {
		at, ok := list[i].When()
		if !ok || !at.After(now) {
			continue
		}
		// Strict Before keeps the earlier index on equal instants.
		if best == nil || at.Before(bestAt) {
			best = &list[i]
			bestAt = at
		}
	}
	return best
}
