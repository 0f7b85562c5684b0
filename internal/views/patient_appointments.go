// Package views holds the screen-level logic behind the app's views:
// fetching, reshaping backend rows into display models, client-side
// validation, and the mutation calls each screen performs. Rendering is
// the caller's concern.
package views

import (
	"context"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/appointments"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// PatientAppointments backs the patient's three-tab appointment list.
type PatientAppointments struct {
	client *api.Client
	logger *logging.Logger
	now    func() time.Time

	patientID string
	tabs      appointments.Partitioned
}

// NewPatientAppointments creates the screen for one patient.
func NewPatientAppointments(client *api.Client, patientID string, logger *logging.Logger) *PatientAppointments {
	if logger == nil {
		logger = logging.Default()
	}
	return &PatientAppointments{
		client:    client,
		logger:    logger,
		now:       time.Now,
		patientID: patientID,
	}
}

// Load fetches the patient's appointments and partitions them into the
// upcoming, past and cancelled tabs.
func (s *PatientAppointments) Load(ctx context.Context) error {
	rows, err := s.client.Appointments.ListByPatient(ctx, s.patientID)
	if err != nil {
		return err
	}
	s.tabs = appointments.Partition(appointments.FromAPIList(rows), s.now())
	return nil
}

// Upcoming returns the upcoming tab, soonest first.
func (s *PatientAppointments) Upcoming() []appointments.Appointment { return s.tabs.Upcoming }

// Past returns the past tab, most recent first.
func (s *PatientAppointments) Past() []appointments.Appointment { return s.tabs.Past }

// Cancelled returns the cancelled tab, most recent first.
func (s *PatientAppointments) Cancelled() []appointments.Appointment { return s.tabs.Cancelled }

// Cancel cancels an appointment and reloads the tabs so it moves to the
// cancelled tab immediately.
func (s *PatientAppointments) Cancel(ctx context.Context, appointmentID string) error {
	if _, err := s.client.Appointments.Cancel(ctx, appointmentID); err != nil {
		return err
	}
	return s.Load(ctx)
}
