// Package schedule generates bookable time slots from doctor
// availability windows and detects conflicts between appointments. All
// time-of-day arithmetic uses minutes since midnight; wall-clock strings
// only appear at the edges, as zero-padded 24-hour "HH:MM".
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock converts a zero-padded 24-hour "HH:MM" string to a Clock.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("schedule: invalid time %q", s)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("schedule: invalid time %q", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("schedule: invalid time %q", s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("schedule: time %q out of range", s)
	}
	return Clock(hours*60 + minutes), nil
}

// MustParseClock is ParseClock for trusted literals; it panics on error.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the clock as zero-padded 24-hour "HH:MM", the inverse
// of ParseClock for any valid time of day.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Hour returns the hour component, 0-23.
func (c Clock) Hour() int {
	return int(c) / 60
}

// Add returns the clock shifted forward by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// IsMorning reports whether the time falls before noon.
func (c Clock) IsMorning() bool {
	return c.Hour() < 12
}
