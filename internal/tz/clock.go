package tz

import "time"

// Clock supplies "now" so agenda computations stay deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ZonedClock does calendar-day arithmetic in one fixed IANA zone. All day
// boundaries in the agenda are computed here; callers never add 24h
// multiples themselves, since DST-transition days are 23 or 25 hours long.
type ZonedClock struct {
	loc *time.Location
}

func NewZonedClock(zone string) (*ZonedClock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, err
	}
	return &ZonedClock{loc: loc}, nil
}

func (z *ZonedClock) Location() *time.Location { return z.loc }

// StartOfDay returns the instant of local midnight on t's local calendar
// day. Idempotent. time.Date resolves the zone offset at the target wall
// time, so the result is correct on both sides of a DST transition.
func (z *ZonedClock) StartOfDay(t time.Time) time.Time {
	lt := t.In(z.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, z.loc)
}

// StartOfDayPlus returns local midnight `days` calendar days after t's
// local day. Day arithmetic happens on the calendar, not in milliseconds.
func (z *ZonedClock) StartOfDayPlus(t time.Time, days int) time.Time {
	lt := t.In(z.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day()+days, 0, 0, 0, 0, z.loc)
}

// DayKey identifies t's local calendar day as YYYY-MM-DD. Used for display
// bucketing and promise-day comparisons, never for interval math.
func (z *ZonedClock) DayKey(t time.Time) string {
	return t.In(z.loc).Format("2006-01-02")
}
