package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/auth"
)

func TestRegistry_Check(t *testing.T) {
	r := PatientRegistry()

	assert.NoError(t, r.Check(RouteHome, nil))
	assert.NoError(t, r.Check(RouteAppointmentDetail, AppointmentDetailParams{ID: "a1", PatientName: "Ada Osei"}))
	assert.NoError(t, r.Check(RouteConversation, ConversationParams{
		ConversationID:  "c1",
		ParticipantID:   "p1",
		ParticipantType: "patient",
	}))

	assert.Error(t, r.Check(RouteAppointmentDetail, nil), "missing params")
	assert.Error(t, r.Check(RouteAppointmentDetail, ConversationParams{}), "wrong param type")
	assert.Error(t, r.Check(RouteHome, AppointmentDetailParams{}), "params on a bare route")
	assert.Error(t, r.Check(RoutePatientList, nil), "route outside the patient tree")
}

func TestStack_PushPop(t *testing.T) {
	s, err := NewStack(PatientRegistry(), RouteHome)
	require.NoError(t, err)

	require.NoError(t, s.Push(RouteAppointments, nil))
	require.NoError(t, s.Push(RouteAppointmentDetail, AppointmentDetailParams{ID: "a1"}))
	assert.Equal(t, 3, s.Depth())
	assert.Equal(t, RouteAppointmentDetail, s.Current().Route)

	popped, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, RouteAppointmentDetail, popped.Route)
	assert.Equal(t, RouteAppointments, s.Current().Route)
}

func TestStack_PopNeverRemovesRoot(t *testing.T) {
	s, err := NewStack(PatientRegistry(), RouteHome)
	require.NoError(t, err)

	_, ok := s.Pop()
	assert.False(t, ok)
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, RouteHome, s.Current().Route)
}

func TestStack_PushInvalidRouteLeavesStackIntact(t *testing.T) {
	s, err := NewStack(PatientRegistry(), RouteHome)
	require.NoError(t, err)

	require.Error(t, s.Push(RoutePatientList, nil))
	assert.Equal(t, 1, s.Depth())
}

func TestStack_Reset(t *testing.T) {
	s, err := NewStack(DoctorRegistry(), RouteHome)
	require.NoError(t, err)
	require.NoError(t, s.Push(RoutePatientList, nil))

	require.NoError(t, s.Reset(RouteDoctorSchedule, ScheduleParams{DoctorID: "d1", Date: "2024-06-03"}))
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, RouteDoctorSchedule, s.Current().Route)
}

func TestForRole(t *testing.T) {
	for _, role := range []auth.Role{auth.RolePatient, auth.RoleDoctor, auth.RoleStaff} {
		r, err := ForRole(role)
		require.NoError(t, err)
		assert.NoError(t, r.Check(RouteConversationList, nil), "every role can open chat")
	}

	_, err := ForRole(auth.Role("admin"))
	assert.Error(t, err)
}

func TestRoleTreesDiffer(t *testing.T) {
	patient := PatientRegistry()
	doctor := DoctorRegistry()
	staff := StaffRegistry()

	assert.Error(t, patient.Check(RouteAvailabilityEditor, nil))
	assert.NoError(t, doctor.Check(RouteAvailabilityEditor, nil))

	assert.Error(t, doctor.Check(RouteStaffAppointmentLog, nil))
	assert.NoError(t, staff.Check(RouteStaffAppointmentLog, nil))

	assert.NoError(t, patient.Check(RouteBookAppointment, BookAppointmentParams{DoctorID: "d1"}))
	assert.Error(t, doctor.Check(RouteBookAppointment, BookAppointmentParams{DoctorID: "d1"}))
}
