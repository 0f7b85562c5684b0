package api

import (
	"context"
	"fmt"
	"net/url"
)

// AppointmentsService is the appointments resource group.
type AppointmentsService struct {
	c *Client
}

// CreateAppointmentRequest books a slot. DateTime is the combined
// "YYYY-MM-DD HH:MM" string the backend expects.
type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id" validate:"required"`
	DoctorID        string `json:"doctor_id" validate:"required"`
	DateTime        string `json:"date_time" validate:"required"`
	Reason          string `json:"reason,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
}

// List returns all appointments visible to the caller.
// GET /api/appointments
func (s *AppointmentsService) List(ctx context.Context) ([]Appointment, error) {
	var out []Appointment
	if err := s.c.get(ctx, "/api/appointments", nil, &out, "appointments"); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one appointment.
// GET /api/appointments/{id}
func (s *AppointmentsService) Get(ctx context.Context, id string) (*Appointment, error) {
	out := new(Appointment)
	if err := s.c.get(ctx, "/api/appointments/"+url.PathEscape(id), nil, out, "appointments"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByPatient returns a patient's appointments.
// GET /api/appointments?patient_id={id}
func (s *AppointmentsService) ListByPatient(ctx context.Context, patientID string) ([]Appointment, error) {
	q := url.Values{}
	q.Set("patient_id", patientID)
	var out []Appointment
	if err := s.c.get(ctx, "/api/appointments", q, &out, "appointments"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDoctorDate returns a doctor's appointments on one calendar day.
// GET /api/appointments?doctor_id={id}&date=YYYY-MM-DD
func (s *AppointmentsService) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]Appointment, error) {
	q := url.Values{}
	q.Set("doctor_id", doctorID)
	q.Set("date", date)
	var out []Appointment
	if err := s.c.get(ctx, "/api/appointments", q, &out, "appointments"); err != nil {
		return nil, err
	}
	return out, nil
}

// Create books an appointment. Validation failures are caught locally
// before any network call.
// POST /api/appointments
func (s *AppointmentsService) Create(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("api: invalid appointment request: %w", err)
	}
	out := new(Appointment)
	if err := s.c.post(ctx, "/api/appointments", req, out, "appointments"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus transitions an appointment's status.
// PATCH /api/appointments/{id}/status
func (s *AppointmentsService) UpdateStatus(ctx context.Context, id, status string) (*Appointment, error) {
	body := map[string]string{"status": status}
	out := new(Appointment)
	if err := s.c.patch(ctx, "/api/appointments/"+url.PathEscape(id)+"/status", body, out, "appointments"); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateNotes replaces the visit notes.
// PATCH /api/appointments/{id}/notes
func (s *AppointmentsService) UpdateNotes(ctx context.Context, id, notes string) (*Appointment, error) {
	body := map[string]string{"notes": notes}
	out := new(Appointment)
	if err := s.c.patch(ctx, "/api/appointments/"+url.PathEscape(id)+"/notes", body, out, "appointments"); err != nil {
		return nil, err
	}
	return out, nil
}

// Cancel cancels an appointment.
// POST /api/appointments/{id}/cancel
func (s *AppointmentsService) Cancel(ctx context.Context, id string) (*Appointment, error) {
	out := new(Appointment)
	if err := s.c.post(ctx, "/api/appointments/"+url.PathEscape(id)+"/cancel", nil, out, "appointments"); err != nil {
		return nil, err
	}
	return out, nil
}
