// Package clock stamps times in the fixed civil zone the registration
// deadline is expressed in, independent of the host's local zone.
package clock

import (
	"time"
)

// DisplayLayout is the fixed pattern used for timestamps in API responses,
// exports and user-facing messages.
const DisplayLayout = "2006-01-02 15:04:05"

// Clock returns the current instant in a configured civil zone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// ZoneClock is the production Clock.
type ZoneClock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a clock reporting time.Now in loc.
func New(loc *time.Location) *ZoneClock {
	return &ZoneClock{loc: loc, now: time.Now}
}

// NewFixed returns a clock frozen at t, for tests.
func NewFixed(t time.Time, loc *time.Location) *ZoneClock {
	return &ZoneClock{loc: loc, now: func() time.Time { return t }}
}

func (c *ZoneClock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *ZoneClock) Location() *time.Location {
	return c.loc
}

// LoadLocation resolves an IANA zone name. When zone data is missing from
// the host it falls back to a fixed UTC+8 offset, the zone the competition
// publishes its deadline in.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return FallbackLocation()
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return FallbackLocation()
	}
	return loc
}

// FallbackLocation is UTC+8 without DST.
func FallbackLocation() *time.Location {
	return time.FixedZone("UTC+8", 8*60*60)
}

// Format renders t in loc using DisplayLayout; the zero time renders empty.
func Format(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(DisplayLayout)
}

var parseLayouts = []string{
	time.RFC3339,
	DisplayLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse accepts the datetime shapes admins type into config rows. Values
// without an explicit offset are read in loc.
func Parse(value string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range parseLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
