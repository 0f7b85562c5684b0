package appointments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"scheduled", StatusScheduled},
		{"booked", StatusScheduled},
		{"Scheduled", StatusScheduled},
		{"confirmed", StatusConfirmed},
		{"checked-in", StatusCheckedIn},
		{"checked_in", StatusCheckedIn},
		{"completed", StatusCompleted},
		{"no-show", StatusNoShow},
		{"cancelled", StatusCancelled},
		{"canceled", StatusCancelled},
		{"CANCELED", StatusCancelled},
		{"Cancelled", StatusCancelled},
		{"cancellation_pending", StatusCancelled},
		{" completed ", StatusCompleted},
		{"", StatusUnknown},
		{"rescheduling", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.raw))
		})
	}
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Scheduled", StatusScheduled.Label())
	assert.Equal(t, "Checked In", StatusCheckedIn.Label())
	assert.Equal(t, "No Show", StatusNoShow.Label())
	assert.Equal(t, "Cancelled", StatusCancelled.Label())
}

func TestFromAPI(t *testing.T) {
	row := api.Appointment{
		ID:       "a1",
		DateTime: "2024-06-01 09:00",
		Status:   "booked",
		Patient:  &api.PatientRef{FirstName: "Ada", LastName: "Osei"},
		Doctor:   &api.DoctorRef{FirstName: "Lin", LastName: "Tran"},
	}

	a, err := FromAPI(row)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, a.Status)
	assert.Equal(t, "2024-06-01", a.Date())
	assert.Equal(t, "09:00", a.Clock())
	assert.Equal(t, "Ada Osei", a.PatientName)
	assert.Equal(t, "Lin Tran", a.DoctorName)
}

func TestFromAPI_AcceptsISOTimestamps(t *testing.T) {
	a, err := FromAPI(api.Appointment{ID: "a1", DateTime: "2024-06-01T09:00:00", Status: "scheduled"})
	require.NoError(t, err)
	assert.Equal(t, "09:00", a.Clock())
}

func TestFromAPI_RejectsGarbageTimestamp(t *testing.T) {
	_, err := FromAPI(api.Appointment{ID: "a1", DateTime: "junk", Status: "scheduled"})
	assert.Error(t, err)
}

func TestFromAPIList_DropsUnparseableRows(t *testing.T) {
	rows := []api.Appointment{
		{ID: "good", DateTime: "2024-06-01 09:00", Status: "scheduled"},
		{ID: "bad", DateTime: "soon", Status: "scheduled"},
	}

	out := FromAPIList(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "good", out[0].ID)
}

func mustAppt(t *testing.T, id, dateTime, status string) Appointment {
	t.Helper()
	a, err := FromAPI(api.Appointment{ID: id, DateTime: dateTime, Status: status})
	require.NoError(t, err)
	return a
}

func TestPartition_CancelVariants(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	appts := []Appointment{
		mustAppt(t, "a1", "2024-06-02 09:00", "scheduled"),
		mustAppt(t, "a2", "2024-05-01 09:00", "completed"),
		mustAppt(t, "a3", "2024-05-02 09:00", "cancelled"),
		mustAppt(t, "a4", "2024-05-03 09:00", "Cancelled"),
		mustAppt(t, "a5", "2024-05-04 09:00", "CANCELED"),
	}

	p := Partition(appts, now)
	require.Len(t, p.Cancelled, 3, "every spelling variant lands in cancelled")
	assert.Len(t, p.Upcoming, 1)
	assert.Len(t, p.Past, 1)
}

func TestPartition_ElapsedScheduledIsPast(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	appts := []Appointment{
		mustAppt(t, "elapsed", "2024-06-01 09:00", "scheduled"),
		mustAppt(t, "exact", "2024-06-01 10:00", "scheduled"),
		mustAppt(t, "future", "2024-06-01 11:00", "scheduled"),
	}

	p := Partition(appts, now)
	require.Len(t, p.Upcoming, 1)
	assert.Equal(t, "future", p.Upcoming[0].ID)
	require.Len(t, p.Past, 2, "an appointment at exactly now is not upcoming")
}

func TestPartition_Sorting(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	appts := []Appointment{
		mustAppt(t, "u2", "2024-06-03 09:00", "scheduled"),
		mustAppt(t, "u1", "2024-06-02 09:00", "confirmed"),
		mustAppt(t, "p1", "2024-05-01 09:00", "completed"),
		mustAppt(t, "p2", "2024-05-20 09:00", "no-show"),
		mustAppt(t, "c1", "2024-04-01 09:00", "cancelled"),
		mustAppt(t, "c2", "2024-04-15 09:00", "canceled"),
	}

	p := Partition(appts, now)

	require.Len(t, p.Upcoming, 2)
	assert.Equal(t, "u1", p.Upcoming[0].ID, "upcoming sorts ascending")

	require.Len(t, p.Past, 2)
	assert.Equal(t, "p2", p.Past[0].ID, "past sorts descending")

	require.Len(t, p.Cancelled, 2)
	assert.Equal(t, "c2", p.Cancelled[0].ID, "cancelled sorts descending")
}

func TestPartition_UnknownStatusIsExcluded(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	appts := []Appointment{mustAppt(t, "odd", "2024-06-02 09:00", "rescheduling")}

	p := Partition(appts, now)
	assert.Empty(t, p.Upcoming)
	assert.Empty(t, p.Past)
	assert.Empty(t, p.Cancelled)
}
