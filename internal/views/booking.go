package views

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/appointments"
	"github.com/clinicdesk/clinicdesk/internal/schedule"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

// Booking backs the slot-picker flow: pick a doctor and date, see the
// day's grid, select a free slot, confirm.
type Booking struct {
	client *api.Client
	logger *logging.Logger

	doctorID string
	date     time.Time
	day      schedule.DaySchedule
	selected *schedule.Slot
}

// NewBooking creates the booking screen for one doctor.
func NewBooking(client *api.Client, doctorID string, logger *logging.Logger) *Booking {
	if logger == nil {
		logger = logging.Default()
	}
	return &Booking{client: client, logger: logger, doctorID: doctorID}
}

// Load fetches the doctor's weekly availability and the existing
// appointments on the chosen date, then builds the slot grid. Active
// appointments mark their slot booked; cancelled ones free it up.
func (s *Booking) Load(ctx context.Context, date time.Time) error {
	doctor, err := s.client.Doctors.Get(ctx, s.doctorID)
	if err != nil {
		return err
	}
	rows, err := s.client.Appointments.ListByDoctorDate(ctx, s.doctorID, date.Format("2006-01-02"))
	if err != nil {
		return err
	}

	var bookedStarts []string
	for _, a := range appointments.FromAPIList(rows) {
		if a.Status.IsActive() {
			bookedStarts = append(bookedStarts, a.Clock())
		}
	}

	day, err := schedule.BuildDay(doctor.Availability, date, bookedStarts)
	if err != nil {
		return err
	}
	s.date = date
	s.day = day
	s.selected = nil
	return nil
}

// Day returns the loaded slot grid.
func (s *Booking) Day() schedule.DaySchedule {
	return s.day
}

// SelectSlot picks the slot starting at the given "HH:MM". Booked and
// unknown starts are rejected.
func (s *Booking) SelectSlot(start string) error {
	for i, slot := range s.day.Slots {
		if slot.Start.String() != start {
			continue
		}
		if slot.Booked {
			return fmt.Errorf("views: slot %s is already booked", start)
		}
		s.selected = &s.day.Slots[i]
		return nil
	}
	return fmt.Errorf("views: no slot starts at %s", start)
}

// Selected returns the chosen slot, or nil.
func (s *Booking) Selected() *schedule.Slot {
	return s.selected
}

// Confirm books the selected slot for the patient. The slot grid is
// rebuilt first so a slot taken since Load is caught before the create
// call.
func (s *Booking) Confirm(ctx context.Context, patientID, reason string) (*api.Appointment, error) {
	if s.selected == nil {
		return nil, fmt.Errorf("views: no slot selected")
	}
	start := s.selected.Start

	if err := s.Load(ctx, s.date); err != nil {
		return nil, err
	}
	if err := s.SelectSlot(start.String()); err != nil {
		return nil, err
	}

	created, err := s.client.Appointments.Create(ctx, api.CreateAppointmentRequest{
		PatientID:       patientID,
		DoctorID:        s.doctorID,
		DateTime:        s.date.Format("2006-01-02") + " " + start.String(),
		Reason:          reason,
		DurationMinutes: int(s.selected.End - s.selected.Start),
	})
	if err != nil {
		return nil, err
	}
	s.selected = nil
	return created, nil
}
