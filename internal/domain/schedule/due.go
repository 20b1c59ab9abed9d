package schedule

// SentState records whether a schedule has ever triggered a reminder, and if
// so on which day. The explicit variant keeps the never-sent and sent-before
// evaluation paths separate instead of overloading a nullable date.
type SentState struct {
	day  Day
	sent bool
}

// Unsent is the state of a schedule that has never triggered a reminder.
func Unsent() SentState {
	return SentState{}
}

// SentOn is the state of a schedule whose last reminder went out on day.
func SentOn(day Day) SentState {
	return SentState{day: day, sent: true}
}

// Day returns the last-sent day and whether one exists.
func (s SentState) Day() (Day, bool) {
	return s.day, s.sent
}

// Schedule is one medicine's reminder policy: the day the policy starts, the
// interval between reminders in days, and the last-sent watermark.
type Schedule struct {
	Since         Day
	FrequencyDays int
	Last          SentState
}

// Evaluate decides whether a reminder is due on today for the given schedule.
// It is a pure decision: no state is mutated and nothing is sent here.
//
// Rules:
//   - incomplete configuration (unset since, frequency < 1) is never due;
//   - a policy that starts in the future is not due yet;
//   - a schedule that never sent (or whose start was moved past its last send,
//     which invalidates history) is due when today lands on the cadence
//     counted from the start day;
//   - a schedule that sent before is due exactly when today is the last send
//     plus one frequency interval. Missed cycles are NOT caught up: catch-up
//     applies only to the first-ever send, re-synchronizing to the original
//     cadence instead of flooding after downtime;
//   - a reminder already sent today is never due again the same day.
func Evaluate(sc Schedule, today Day) bool {
	if sc.Since.IsZero() || sc.FrequencyDays < 1 {
		return false
	}
	if sc.Since.After(today) {
		return false
	}

	last, sent := sc.Last.Day()
	neverSent := !sent || sc.Since.After(last)

	var next Day
	if neverSent {
		next = sc.Since
	} else {
		next = last.AddDays(sc.FrequencyDays)
	}

	switch {
	case next.Before(today):
		return neverSent && today.IsMultipleOfFrequencySince(sc.Since, sc.FrequencyDays)
	case next.Equal(today):
		return !(sent && last.Equal(today))
	default:
		return false
	}
}
