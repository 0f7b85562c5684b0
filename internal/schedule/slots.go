package schedule

import "fmt"

// Slot is one bookable appointment interval within an availability
// window. End is exclusive.
type Slot struct {
	Start  Clock
	End    Clock
	Booked bool
}

// Interval is a half-open [Start, End) time range used for conflict
// checks against existing appointments.
type Interval struct {
	Start Clock
	End   Clock
}

// Overlaps reports whether two half-open intervals share any time.
// Back-to-back appointments (one ending exactly when the other starts)
// do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && a.End > b.Start
}

// HasConflict reports whether the candidate interval overlaps any of
// the existing ones.
func HasConflict(candidate Interval, existing []Interval) bool {
	for _, e := range existing {
		if Overlaps(candidate, e) {
			return true
		}
	}
	return false
}

// GenerateSlots cuts an availability window into consecutive slots of
// the given duration, starting at the window start. A trailing remainder
// shorter than the duration yields no slot.
func GenerateSlots(window Interval, durationMinutes int) []Slot {
	if durationMinutes <= 0 || window.End <= window.Start {
		return nil
	}
	var slots []Slot
	for start := window.Start; start.Add(durationMinutes) <= window.End; start = start.Add(durationMinutes) {
		slots = append(slots, Slot{Start: start, End: start.Add(durationMinutes)})
	}
	return slots
}

// ValidateWindow checks a manually entered availability window: both
// bounds must parse and the start must precede the end.
func ValidateWindow(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if s >= e {
		return Interval{}, fmt.Errorf("schedule: window start %s must be before end %s", s, e)
	}
	return Interval{Start: s, End: e}, nil
}
