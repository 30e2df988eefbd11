// Package events provides the economic events calendar: the upstream event
// model, the next-event selector, the API client with its Redis cache, and
// the calendar page and API handlers.
package events

import (
	"sort"
	"time"

	"github.com/finbrief/econcal/internal/dates"
)

// Importance is the upstream's event significance level.
type Importance string

// Importance levels, lowest to highest.
const (
	ImportanceLow    Importance = "low"
	ImportanceMedium Importance = "medium"
	ImportanceHigh   Importance = "high"
)

// Valid reports whether the value is one of the three known levels.
func (i Importance) Valid() bool {
	return i == ImportanceLow || i == ImportanceMedium || i == ImportanceHigh
}

// rank orders importance levels for min-level filtering. Unknown values rank
// below low so malformed upstream data never passes a filter.
func (i Importance) rank() int {
	switch i {
	case ImportanceLow:
		return 1
	case ImportanceMedium:
		return 2
	case ImportanceHigh:
		return 3
	default:
		return 0
	}
}

// Source identifies where an event's figures are published.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Event is one economic calendar entry as returned by the upstream API.
// Events are read-only here: the service filters and sorts, never mutates
// or persists them. Date stays a string because individual malformed dates
// must degrade per-event, not fail the whole response decode.
type Event struct {
	Date       string     `json:"date"`
	Title      string     `json:"event"`
	Country    string     `json:"country"`
	Importance Importance `json:"importance"`
	Source     Source     `json:"source"`
	Category   string     `json:"category"`
	Tags       []string   `json:"tags"`
}

// When returns the event's instant normalized to UTC. ok is false for
// malformed dates; such events are ineligible for selection but still render
// in lists with sentinel times.
func (e *Event) When() (time.Time, bool) {
	t, err := dates.ParseInstant(e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Chronological returns the events sorted ascending by instant. The sort is
// stable, so events sharing an instant keep their upstream order. Events
// with malformed dates sink to the end, also in upstream order.
func Chronological(list []Event) []Event {
	out := make([]Event, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		ti, iok := out[i].When()
		tj, jok := out[j].When()
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return ti.Before(tj)
	})
	return out
}

// FilterImportance keeps events at or above the given level. An invalid
// minimum level keeps everything.
func FilterImportance(list []Event, min Importance) []Event {
	if !min.Valid() {
		return list
	}
	out := make([]Event, 0, len(list))
	for _, e := range list {
		if e.Importance.rank() >= min.rank() {
			out = append(out, e)
		}
	}
	return out
}
