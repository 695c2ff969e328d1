// Package timemachine resolves the instant a request looks at the archive from
// and knows the moderation timestamps that must never count as real actions.
package timemachine

import (
	"strings"
	"time"

	"github.com/itchan-dev/vault/shared/errors"
)

// EndOfTime is the cutoff of a request that did not ask for one.
// Every stored timestamp is strictly before it, so "time < cutoff" admits all rows.
// Year 9999 keeps it orderable both as a PostgreSQL timestamptz and as SQLite text.
var EndOfTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)

// Window is a half-open interval [Start, End).
type Window struct {
	Name  string
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func hourFrom(t time.Time) Window {
	return Window{Start: t, End: t.Add(time.Hour)}
}

// Two bulk operations wrote moderation rows with bogus timestamps.
// Rows stamped inside these hours are not moderation events.
var (
	FirstIncident  = named("first-bulk-deletion", hourFrom(time.Date(2022, time.February, 14, 4, 0, 0, 0, time.UTC)))
	SecondIncident = named("second-bulk-deletion", hourFrom(time.Date(2022, time.April, 9, 19, 0, 0, 0, time.UTC)))
)

func named(name string, w Window) Window {
	w.Name = name
	return w
}

// IncidentWindows lists every excluded window, in chronological order.
func IncidentWindows() []Window {
	return []Window{FirstIncident, SecondIncident}
}

// InIncident reports whether t falls inside any incident window.
func InIncident(t time.Time) bool {
	for _, w := range IncidentWindows() {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// Admits reports whether a moderation action stamped at opTime is in effect at cutoff.
// Incident windows are stripped first, independent of the cutoff.
func Admits(opTime, cutoff time.Time) bool {
	return !InIncident(opTime) && opTime.Before(cutoff)
}

// ResolveCutoff turns an optional requested instant into the boundary every query compares against.
func ResolveCutoff(requested *time.Time) time.Time {
	if requested == nil {
		return EndOfTime
	}
	return requested.UTC()
}

// QueryParam is the request parameter selecting a point in time.
const QueryParam = "time_machine_datetime"

var naiveLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseCutoff parses the time_machine_datetime query value.
// Values without an offset are read in loc. Empty input means no cutoff.
func ParseCutoff(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return &t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return &t, nil
		}
	}
	return nil, errors.BadRequest("invalid %s %q", QueryParam, raw)
}
