package schedule

import (
	"strings"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

// DaySchedule is the bookable grid for one doctor on one date: one slot
// per configured availability entry for that weekday, with entries whose
// start matches an existing appointment marked booked.
type DaySchedule struct {
	Date  time.Time
	Slots []Slot
}

// BuildDay derives the slot grid for a date from the doctor's weekly
// availability. The grid is exactly the configured entries for the
// date's weekday; the doctor controls slot sizing by how the entries
// were generated (see GenerateSlots). bookedStarts holds the "HH:MM"
// start times of existing appointments on that date; an appointment at
// an entry's start takes the whole entry. Booked slots are marked, not
// removed, so callers can render them as taken.
func BuildDay(availability map[string][]api.AvailabilityWindow, date time.Time, bookedStarts []string) (DaySchedule, error) {
	day := DaySchedule{Date: date}

	booked := make(map[string]struct{}, len(bookedStarts))
	for _, s := range bookedStarts {
		booked[s] = struct{}{}
	}

	weekday := strings.ToLower(date.Weekday().String())
	for _, window := range availability[weekday] {
		iv, err := ValidateWindow(window.StartTime, window.EndTime)
		if err != nil {
			return DaySchedule{}, err
		}
		slot := Slot{Start: iv.Start, End: iv.End}
		if _, taken := booked[slot.Start.String()]; taken {
			slot.Booked = true
		}
		day.Slots = append(day.Slots, slot)
	}
	return day, nil
}

// Morning returns the slots starting before noon.
func (d DaySchedule) Morning() []Slot {
	var out []Slot
	for _, s := range d.Slots {
		if s.Start.IsMorning() {
			out = append(out, s)
		}
	}
	return out
}

// Afternoon returns the slots starting at or after noon.
func (d DaySchedule) Afternoon() []Slot {
	var out []Slot
	for _, s := range d.Slots {
		if !s.Start.IsMorning() {
			out = append(out, s)
		}
	}
	return out
}

// Open returns the slots still free to book.
func (d DaySchedule) Open() []Slot {
	var out []Slot
	for _, s := range d.Slots {
		if !s.Booked {
			out = append(out, s)
		}
	}
	return out
}
