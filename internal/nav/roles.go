package nav

import (
	"fmt"

	"github.com/clinicdesk/clinicdesk/internal/auth"
)

// PatientRegistry is the route tree a patient account can navigate.
func PatientRegistry() *Registry {
	return NewRegistry(map[string]any{
		RouteHome:              nil,
		RouteAppointments:      nil,
		RouteAppointmentDetail: AppointmentDetailParams{},
		RouteBookAppointment:   BookAppointmentParams{},
		RouteMedicalHistory:    MedicalHistoryParams{},
		RouteDocuments:         DocumentsParams{},
		RouteConversationList:  nil,
		RouteConversation:      ConversationParams{},
		RouteProfile:           nil,
		RouteSettings:          nil,
	})
}

// DoctorRegistry is the route tree a doctor account can navigate.
func DoctorRegistry() *Registry {
	return NewRegistry(map[string]any{
		RouteHome:               nil,
		RouteDoctorSchedule:     ScheduleParams{},
		RouteAvailabilityEditor: nil,
		RouteAppointmentDetail:  AppointmentDetailParams{},
		RoutePatientList:        nil,
		RoutePatientDetail:      PatientDetailParams{},
		RouteMedicalHistory:     MedicalHistoryParams{},
		RouteConversationList:   nil,
		RouteConversation:       ConversationParams{},
		RouteProfile:            nil,
		RouteSettings:           nil,
	})
}

// StaffRegistry is the route tree a staff account can navigate.
func StaffRegistry() *Registry {
	return NewRegistry(map[string]any{
		RouteHome:                nil,
		RouteStaffAppointmentLog: nil,
		RouteAppointmentDetail:   AppointmentDetailParams{},
		RouteBookAppointment:     BookAppointmentParams{},
		RoutePatientList:         nil,
		RoutePatientDetail:       PatientDetailParams{},
		RouteDocuments:           DocumentsParams{},
		RouteConversationList:    nil,
		RouteConversation:        ConversationParams{},
		RouteSettings:            nil,
	})
}

// ForRole returns the registry matching a logged-in role.
func ForRole(role auth.Role) (*Registry, error) {
	switch role {
	case auth.RolePatient:
		return PatientRegistry(), nil
	case auth.RoleDoctor:
		return DoctorRegistry(), nil
	case auth.RoleStaff:
		return StaffRegistry(), nil
	}
	return nil, fmt.Errorf("nav: no route tree for role %q", role)
}
