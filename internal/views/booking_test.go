package views

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

// 2024-06-03 is a Monday.
var bookingDate = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func newBookingBackend(t *testing.T) *testBackend {
	b := newTestBackend(t)
	b.doctor = api.Doctor{
		ID: "d1",
		Availability: map[string][]api.AvailabilityWindow{
			"monday": {
				{StartTime: "09:00", EndTime: "09:30"},
				{StartTime: "09:30", EndTime: "10:00"},
				{StartTime: "10:00", EndTime: "10:30"},
			},
		},
	}
	b.appointments = []api.Appointment{
		{ID: "a1", DoctorID: "d1", DateTime: "2024-06-03 09:00", Status: "scheduled"},
		{ID: "a2", DoctorID: "d1", DateTime: "2024-06-03 09:30", Status: "cancelled"},
	}
	return b
}

func TestBooking_LoadMarksActiveAppointmentsOnly(t *testing.T) {
	ctx := context.Background()
	b := newBookingBackend(t)
	s := NewBooking(newTestClient(t, b.URL), "d1", nil)

	require.NoError(t, s.Load(ctx, bookingDate))

	slots := s.Day().Slots
	require.Len(t, slots, 3)
	assert.True(t, slots[0].Booked, "09:00 has a scheduled appointment")
	assert.False(t, slots[1].Booked, "09:30 appointment is cancelled, slot is free")
	assert.False(t, slots[2].Booked)
}

func TestBooking_SelectSlot(t *testing.T) {
	ctx := context.Background()
	b := newBookingBackend(t)
	s := NewBooking(newTestClient(t, b.URL), "d1", nil)
	require.NoError(t, s.Load(ctx, bookingDate))

	assert.Error(t, s.SelectSlot("09:00"), "booked slot")
	assert.Error(t, s.SelectSlot("13:00"), "no such slot")
	assert.Nil(t, s.Selected())

	require.NoError(t, s.SelectSlot("09:30"))
	require.NotNil(t, s.Selected())
	assert.Equal(t, "09:30", s.Selected().Start.String())
}

func TestBooking_Confirm(t *testing.T) {
	ctx := context.Background()
	b := newBookingBackend(t)
	s := NewBooking(newTestClient(t, b.URL), "d1", nil)
	require.NoError(t, s.Load(ctx, bookingDate))
	require.NoError(t, s.SelectSlot("09:30"))

	created, err := s.Confirm(ctx, "p1", "checkup")
	require.NoError(t, err)
	assert.Equal(t, "created-1", created.ID)
	assert.Nil(t, s.Selected())

	require.Len(t, b.createdReqs, 1)
	req := b.createdReqs[0]
	assert.Equal(t, "p1", req.PatientID)
	assert.Equal(t, "d1", req.DoctorID)
	assert.Equal(t, "2024-06-03 09:30", req.DateTime)
	assert.Equal(t, 30, req.DurationMinutes, "duration comes from the entry's span")
}

func TestBooking_GridMatchesConfiguredEntries(t *testing.T) {
	ctx := context.Background()
	b := newTestBackend(t)
	b.doctor = api.Doctor{
		ID: "d1",
		Availability: map[string][]api.AvailabilityWindow{
			"monday": {{StartTime: "09:00", EndTime: "12:00"}},
		},
	}
	b.appointments = []api.Appointment{
		{ID: "a1", DoctorID: "d1", DateTime: "2024-06-03 09:00", Status: "scheduled"},
	}
	s := NewBooking(newTestClient(t, b.URL), "d1", nil)

	require.NoError(t, s.Load(ctx, bookingDate))

	// a single configured entry is a single slot, and the 09:00
	// appointment takes all of it
	slots := s.Day().Slots
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Start.String())
	assert.Equal(t, "12:00", slots[0].End.String())
	assert.True(t, slots[0].Booked)
	assert.Error(t, s.SelectSlot("09:30"), "no half-hour sub-slot to grab")
}

func TestBooking_ConfirmCatchesSlotTakenSinceLoad(t *testing.T) {
	ctx := context.Background()
	b := newBookingBackend(t)
	s := NewBooking(newTestClient(t, b.URL), "d1", nil)
	require.NoError(t, s.Load(ctx, bookingDate))
	require.NoError(t, s.SelectSlot("09:30"))

	// Someone else books the slot between selection and confirmation.
	b.appointments = append(b.appointments, api.Appointment{
		ID: "a3", DoctorID: "d1", DateTime: "2024-06-03 09:30", Status: "scheduled",
	})

	_, err := s.Confirm(ctx, "p1", "checkup")
	require.Error(t, err)
	assert.Empty(t, b.createdReqs, "no create request when the slot is gone")
}

func TestBooking_ConfirmWithoutSelection(t *testing.T) {
	b := newBookingBackend(t)
	s := NewBooking(newTestClient(t, b.URL), "d1", nil)

	_, err := s.Confirm(context.Background(), "p1", "checkup")
	assert.Error(t, err)
}
