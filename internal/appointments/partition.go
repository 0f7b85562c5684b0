package appointments

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

// dateTimeLayouts are the combined timestamp shapes the backend has been
// seen to emit, tried in order.
var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Appointment is a backend row with the combined date_time string parsed
// and the status normalized, ready for classification and display.
type Appointment struct {
	ID              string
	PatientID       string
	DoctorID        string
	PatientName     string
	DoctorName      string
	Time            time.Time
	Status          Status
	Reason          string
	Notes           string
	DurationMinutes int
}

// Date returns the appointment date as "YYYY-MM-DD".
func (a Appointment) Date() string {
	return a.Time.Format("2006-01-02")
}

// Clock returns the appointment start time as "HH:MM".
func (a Appointment) Clock() string {
	return a.Time.Format("15:04")
}

// FromAPI normalizes one backend appointment row. This is the only
// place raw date_time strings and status spellings are interpreted.
func FromAPI(row api.Appointment) (Appointment, error) {
	t, err := parseDateTime(row.DateTime)
	if err != nil {
		return Appointment{}, err
	}
	a := Appointment{
		ID:              row.ID,
		PatientID:       row.PatientID,
		DoctorID:        row.DoctorID,
		Time:            t,
		Status:          ParseStatus(row.Status),
		Reason:          row.Reason,
		Notes:           row.Notes,
		DurationMinutes: row.DurationMinutes,
	}
	if row.Patient != nil {
		a.PatientName = strings.TrimSpace(row.Patient.FirstName + " " + row.Patient.LastName)
	}
	if row.Doctor != nil {
		a.DoctorName = strings.TrimSpace(row.Doctor.FirstName + " " + row.Doctor.LastName)
	}
	return a, nil
}

// FromAPIList normalizes a list, dropping rows whose timestamp cannot be
// parsed rather than failing the whole fetch.
func FromAPIList(rows []api.Appointment) []Appointment {
	out := make([]Appointment, 0, len(rows))
	for _, row := range rows {
		a, err := FromAPI(row)
		if err != nil {
			continue
		}
		out = append(out, a)
	}
	return out
}

func parseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("appointments: unparseable date_time %q", s)
}

// Partitioned groups appointments for the three-tab list view.
type Partitioned struct {
	Upcoming  []Appointment
	Past      []Appointment
	Cancelled []Appointment
}

// Partition splits appointments by status and time against the given
// reference instant. Upcoming requires a strictly future time, so an
// appointment at exactly now lands in past. Upcoming sorts ascending,
// past and cancelled descending.
func Partition(appts []Appointment, now time.Time) Partitioned {
	var p Partitioned
	for _, a := range appts {
		switch a.Status {
		case StatusCancelled:
			p.Cancelled = append(p.Cancelled, a)
		case StatusScheduled, StatusConfirmed:
			if a.Time.After(now) {
				p.Upcoming = append(p.Upcoming, a)
			} else {
				p.Past = append(p.Past, a)
			}
		case StatusCompleted, StatusCheckedIn, StatusNoShow:
			p.Past = append(p.Past, a)
		}
	}
	sort.Slice(p.Upcoming, func(i, j int) bool { return p.Upcoming[i].Time.Before(p.Upcoming[j].Time) })
	sort.Slice(p.Past, func(i, j int) bool { return p.Past[i].Time.After(p.Past[j].Time) })
	sort.Slice(p.Cancelled, func(i, j int) bool { return p.Cancelled[i].Time.After(p.Cancelled[j].Time) })
	return p
}
