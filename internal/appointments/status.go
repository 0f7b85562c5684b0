// Package appointments classifies backend appointment rows for display:
// normalizing the loose status vocabulary into a closed enum and
// partitioning lists into upcoming, past and cancelled groups.
package appointments

import "strings"

// Status is the normalized appointment state. Backend rows carry free
// strings; ParseStatus is the only place they are interpreted.
type Status int

const (
	StatusUnknown Status = iota
	StatusScheduled
	StatusConfirmed
	StatusCheckedIn
	StatusCompleted
	StatusCancelled
	StatusNoShow
)

var statusNames = map[Status]string{
	StatusUnknown:   "unknown",
	StatusScheduled: "scheduled",
	StatusConfirmed: "confirmed",
	StatusCheckedIn: "checked-in",
	StatusCompleted: "completed",
	StatusCancelled: "cancelled",
	StatusNoShow:    "no-show",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Label returns the status formatted for display.
func (s Status) Label() string {
	switch s {
	case StatusCheckedIn:
		return "Checked In"
	case StatusNoShow:
		return "No Show"
	case StatusUnknown:
		return "Unknown"
	default:
		name := s.String()
		return strings.ToUpper(name[:1]) + name[1:]
	}
}

// ParseStatus normalizes a backend status string. The backend vocabulary
// is inconsistent ("booked" vs "scheduled", "cancelled" vs "canceled"),
// so anything containing "cancel" maps to StatusCancelled and "booked"
// is treated as scheduled. Matching is case-insensitive.
func ParseStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(s, "cancel") {
		return StatusCancelled
	}
	switch s {
	case "scheduled", "booked":
		return StatusScheduled
	case "confirmed":
		return StatusConfirmed
	case "checked-in", "checked_in", "checkedin":
		return StatusCheckedIn
	case "completed":
		return StatusCompleted
	case "no-show", "no_show", "noshow":
		return StatusNoShow
	default:
		return StatusUnknown
	}
}

// IsActive reports whether the appointment still counts toward the
// schedule: not cancelled and not a no-show.
func (s Status) IsActive() bool {
	return s != StatusCancelled && s != StatusNoShow && s != StatusUnknown
}
