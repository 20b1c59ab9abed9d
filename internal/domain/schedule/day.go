package schedule

import "time"

// Day is a calendar date at day granularity. The time-of-day component is
// discarded on construction, so comparisons and arithmetic never depend on
// hours or DST shifts. The zero Day is "no date".
type Day struct {
	t time.Time
}

// DayOf truncates t to its calendar date in loc. All days of one evaluation
// run must be built with the same location so the run sees a single "today".
func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// NewDay builds a Day directly from calendar components.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether the day is unset.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// AddDays returns a new day n days later (n may be negative).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// Before reports whether d is an earlier calendar date than other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// After reports whether d is a later calendar date than other.
func (d Day) After(other Day) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other are the same calendar date.
func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// DaysSince returns the number of whole days from start to d; negative when
// start is in the future.
func (d Day) DaysSince(start Day) int {
	return int(d.t.Sub(start.t) / (24 * time.Hour))
}

// IsMultipleOfFrequencySince reports whether d falls on the cadence that
// starts at start and repeats every frequencyDays days.
func (d Day) IsMultipleOfFrequencySince(start Day, frequencyDays int) bool {
	if frequencyDays < 1 {
		return false
	}
	diff := d.DaysSince(start)
	return diff >= 0 && diff%frequencyDays == 0
}

// Time returns the day as a time.Time at midnight UTC.
func (d Day) Time() time.Time {
	return d.t
}

// String formats the day as YYYY-MM-DD.
func (d Day) String() string {
	return d.t.Format("2006-01-02")
}
