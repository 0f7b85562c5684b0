package views

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/appointments"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// StaffLog backs the front-desk appointment log: the whole clinic's
// appointments for a day, with check-in and status corrections.
type StaffLog struct {
	client *api.Client
	logger *logging.Logger

	date time.Time
	rows []appointments.Appointment
}

// NewStaffLog creates the front-desk log screen.
func NewStaffLog(client *api.Client, logger *logging.Logger) *StaffLog {
	if logger == nil {
		logger = logging.Default()
	}
	return &StaffLog{client: client, logger: logger}
}

// Load fetches every appointment on a date, earliest first.
func (s *StaffLog) Load(ctx context.Context, date time.Time) error {
	rows, err := s.client.Appointments.List(ctx)
	if err != nil {
		return err
	}
	day := date.Format("2006-01-02")
	var out []appointments.Appointment
	for _, a := range appointments.FromAPIList(rows) {
		if a.Date() == day {
			out = append(out, a)
		}
	}
	s.date = date
	s.rows = out
	return nil
}

// Appointments returns the day's log.
func (s *StaffLog) Appointments() []appointments.Appointment {
	return s.rows
}

// CheckIn marks an appointment checked-in.
func (s *StaffLog) CheckIn(ctx context.Context, appointmentID string) error {
	return s.setStatus(ctx, appointmentID, appointments.StatusCheckedIn)
}

// MarkNoShow marks an appointment as a no-show.
func (s *StaffLog) MarkNoShow(ctx context.Context, appointmentID string) error {
	return s.setStatus(ctx, appointmentID, appointments.StatusNoShow)
}

// Complete marks an appointment completed.
func (s *StaffLog) Complete(ctx context.Context, appointmentID string) error {
	return s.setStatus(ctx, appointmentID, appointments.StatusCompleted)
}

func (s *StaffLog) setStatus(ctx context.Context, appointmentID string, status appointments.Status) error {
	if _, err := s.client.Appointments.UpdateStatus(ctx, appointmentID, status.String()); err != nil {
		return err
	}
	return s.Load(ctx, s.date)
}

// SetNotes replaces an appointment's notes.
func (s *StaffLog) SetNotes(ctx context.Context, appointmentID, notes string) error {
	if _, err := s.client.Appointments.UpdateNotes(ctx, appointmentID, notes); err != nil {
		return err
	}
	for i := range s.rows {
		if s.rows[i].ID == appointmentID {
			s.rows[i].Notes = notes
			return nil
		}
	}
	return fmt.Errorf("views: appointment %s not in the loaded day", appointmentID)
}
