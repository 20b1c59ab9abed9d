package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOf(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}

	// 23:30 in Rome on Jan 5 is already Jan 5 22:30 UTC; the day must follow
	// the reference zone, not UTC.
	instant := time.Date(2024, time.January, 5, 23, 30, 0, 0, loc)
	assert.Equal(t, NewDay(2024, time.January, 5), DayOf(instant, loc))
	assert.Equal(t, NewDay(2024, time.January, 5), DayOf(instant, time.UTC))

	// 00:30 in Rome is still the previous day in UTC.
	instant = time.Date(2024, time.January, 5, 0, 30, 0, 0, loc)
	assert.Equal(t, NewDay(2024, time.January, 5), DayOf(instant, loc))
	assert.Equal(t, NewDay(2024, time.January, 4), DayOf(instant, time.UTC))

	// nil location defaults to UTC
	assert.Equal(t, NewDay(2024, time.January, 4), DayOf(instant, nil))
}

func TestDayArithmetic(t *testing.T) {
	d := NewDay(2024, time.January, 1)

	assert.Equal(t, NewDay(2024, time.January, 8), d.AddDays(7))
	assert.Equal(t, NewDay(2023, time.December, 31), d.AddDays(-1))
	assert.Equal(t, NewDay(2024, time.March, 1), NewDay(2024, time.February, 29).AddDays(1))

	assert.Equal(t, 7, d.AddDays(7).DaysSince(d))
	assert.Equal(t, -7, d.DaysSince(d.AddDays(7)))
	assert.Equal(t, 0, d.DaysSince(d))
}

func TestDayComparison(t *testing.T) {
	a := NewDay(2024, time.January, 1)
	b := NewDay(2024, time.January, 2)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(NewDay(2024, time.January, 1)))
	assert.False(t, a.Equal(b))
	assert.True(t, Day{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestIsMultipleOfFrequencySince(t *testing.T) {
	start := NewDay(2024, time.January, 1)

	tests := []struct {
		name string
		day  Day
		freq int
		want bool
	}{
		{"start day itself", start, 5, true},
		{"10 days later, every 5", start.AddDays(10), 5, true},
		{"10 days later, every 4", start.AddDays(10), 4, false},
		{"before start", start.AddDays(-5), 5, false},
		{"every day", start.AddDays(3), 1, true},
		{"zero frequency", start.AddDays(10), 0, false},
		{"negative frequency", start.AddDays(10), -2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.day.IsMultipleOfFrequencySince(start, tt.freq))
		})
	}
}
