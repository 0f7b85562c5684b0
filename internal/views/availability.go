package views

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/schedule"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

var weekdays = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

// AvailabilityEditor backs the doctor's weekly-availability screen.
// Edits are local until Save pushes the whole map to the backend.
type AvailabilityEditor struct {
	client *api.Client
	logger *logging.Logger

	doctorID     string
	availability map[string][]api.AvailabilityWindow
	dirty        bool
}

// NewAvailabilityEditor creates the editor for one doctor.
func NewAvailabilityEditor(client *api.Client, doctorID string, logger *logging.Logger) *AvailabilityEditor {
	if logger == nil {
		logger = logging.Default()
	}
	return &AvailabilityEditor{client: client, logger: logger, doctorID: doctorID}
}

// Load fetches the doctor's current availability.
func (e *AvailabilityEditor) Load(ctx context.Context) error {
	doctor, err := e.client.Doctors.Get(ctx, e.doctorID)
	if err != nil {
		return err
	}
	e.availability = doctor.Availability
	if e.availability == nil {
		e.availability = make(map[string][]api.AvailabilityWindow)
	}
	e.dirty = false
	return nil
}

// Windows returns the windows for one weekday.
func (e *AvailabilityEditor) Windows(weekday string) []api.AvailabilityWindow {
	return e.availability[weekday]
}

// AddWindow validates and appends a window to a weekday. The start must
// precede the end and the window must not overlap an existing one on
// the same day.
func (e *AvailabilityEditor) AddWindow(weekday, start, end string) error {
	if _, ok := weekdays[weekday]; !ok {
		return fmt.Errorf("views: unknown weekday %q", weekday)
	}
	candidate, err := schedule.ValidateWindow(start, end)
	if err != nil {
		return err
	}

	var existing []schedule.Interval
	for _, w := range e.availability[weekday] {
		iv, err := schedule.ValidateWindow(w.StartTime, w.EndTime)
		if err != nil {
			return err
		}
		existing = append(existing, iv)
	}
	if schedule.HasConflict(candidate, existing) {
		return fmt.Errorf("views: window %s-%s overlaps an existing window on %s", start, end, weekday)
	}

	e.availability[weekday] = append(e.availability[weekday], api.AvailabilityWindow{
		StartTime: candidate.Start.String(),
		EndTime:   candidate.End.String(),
	})
	e.dirty = true
	return nil
}

// AddSlots cuts a span into consecutive slot-sized windows and appends
// them to a weekday, so each one books independently. The whole span
// must be conflict-free; a trailing remainder shorter than the duration
// is dropped.
func (e *AvailabilityEditor) AddSlots(weekday, start, end string, durationMinutes int) error {
	if _, ok := weekdays[weekday]; !ok {
		return fmt.Errorf("views: unknown weekday %q", weekday)
	}
	span, err := schedule.ValidateWindow(start, end)
	if err != nil {
		return err
	}
	slots := schedule.GenerateSlots(span, durationMinutes)
	if len(slots) == 0 {
		return fmt.Errorf("views: span %s-%s fits no %d-minute slot", start, end, durationMinutes)
	}

	var existing []schedule.Interval
	for _, w := range e.availability[weekday] {
		iv, err := schedule.ValidateWindow(w.StartTime, w.EndTime)
		if err != nil {
			return err
		}
		existing = append(existing, iv)
	}
	if schedule.HasConflict(span, existing) {
		return fmt.Errorf("views: span %s-%s overlaps an existing window on %s", start, end, weekday)
	}

	for _, s := range slots {
		e.availability[weekday] = append(e.availability[weekday], api.AvailabilityWindow{
			StartTime: s.Start.String(),
			EndTime:   s.End.String(),
		})
	}
	e.dirty = true
	return nil
}

// RemoveWindow deletes the window at the given index for a weekday.
func (e *AvailabilityEditor) RemoveWindow(weekday string, index int) error {
	windows := e.availability[weekday]
	if index < 0 || index >= len(windows) {
		return fmt.Errorf("views: no window %d on %s", index, weekday)
	}
	e.availability[weekday] = append(windows[:index], windows[index+1:]...)
	e.dirty = true
	return nil
}

// Dirty reports whether there are unsaved edits.
func (e *AvailabilityEditor) Dirty() bool {
	return e.dirty
}

// Save pushes the edited availability map to the backend.
func (e *AvailabilityEditor) Save(ctx context.Context) error {
	if _, err := e.client.Doctors.UpdateAvailability(ctx, e.doctorID, e.availability); err != nil {
		return err
	}
	e.dirty = false
	return nil
}
