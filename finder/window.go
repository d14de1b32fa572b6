package finder

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat reports an unparsable date or time-of-day string
var ErrInvalidTimeFormat = errors.New("invalid time format")

// The listing API filters by an ISO-8601 UTC instant with a fixed
// 6-digit microsecond field and a literal Z suffix
const playoTimeLayout = "2006-01-02T15:04:05.000000Z"

// Window is a concrete local search interval: the desired date and
// start/end times of day resolved in a single civil timezone.
type Window struct {
	Date     string // "2006-01-02", kept for display
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// ResolveWindow combines a calendar date with two times of day in the
// given timezone. The bounds are taken literally: no "overnight"
// handling, callers resolve "tomorrow" etc. before calling.
func ResolveWindow(date, startTime, endTime string, loc *time.Location) (*Window, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidTimeFormat, date)
	}

	start, err := combine(day, startTime, loc)
	if err != nil {
		return nil, err
	}
	end, err := combine(day, endTime, loc)
	if err != nil {
		return nil, err
	}

	return &Window{Date: date, Start: start, End: end, Location: loc}, nil
}

func combine(day time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad time %q", ErrInvalidTimeFormat, hhmm)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// DateToken formats an instant the way the Playo date filter field
// requires it, verbatim
func DateToken(t time.Time) string {
	return t.UTC().Format(playoTimeLayout)
}

// Contains reports whether the local time of day of t falls inside the
// window, inclusive on both ends
func (w *Window) Contains(t time.Time) bool {
	local := t.In(w.Location)
	mins := local.Hour()*60 + local.Minute()
	startMins := w.Start.Hour()*60 + w.Start.Minute()
	endMins := w.End.Hour()*60 + w.End.Minute()
	return mins >= startMins && mins <= endMins
}

// Describe renders the window for user-facing messages,
// e.g. "2024-07-03 between 22:00 and 23:00"
func (w *Window) Describe() string {
	return fmt.Sprintf("%s between %s and %s",
		w.Date, w.Start.Format("15:04"), w.End.Format("15:04"))
}
