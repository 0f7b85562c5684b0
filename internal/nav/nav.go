// Package nav defines the route names the app navigates between and the
// typed parameter contracts screens pass each other. Each role gets its
// own registry of reachable routes; pushing a route not in the registry
// or with the wrong parameter type is an error, not a silent no-op.
package nav

import (
	"fmt"
	"reflect"
	"sync"
)

// Route names. The same screen can appear in multiple role trees.
const (
	RouteLogin               = "login"
	RouteHome                = "home"
	RouteAppointments        = "appointments"
	RouteAppointmentDetail   = "appointment_detail"
	RouteBookAppointment     = "book_appointment"
	RouteDoctorSchedule      = "doctor_schedule"
	RouteAvailabilityEditor  = "availability_editor"
	RoutePatientList         = "patient_list"
	RoutePatientDetail       = "patient_detail"
	RouteMedicalHistory      = "medical_history"
	RouteDocuments           = "documents"
	RouteConversationList    = "conversations"
	RouteConversation        = "conversation"
	RouteProfile             = "profile"
	RouteSettings            = "settings"
	RouteStaffAppointmentLog = "staff_appointment_log"
)

// AppointmentDetailParams opens one appointment.
type AppointmentDetailParams struct {
	ID          string
	PatientName string
}

// BookAppointmentParams starts the booking flow for a doctor.
type BookAppointmentParams struct {
	DoctorID   string
	DoctorName string
}

// PatientDetailParams opens a patient record.
type PatientDetailParams struct {
	ID          string
	PatientName string
}

// MedicalHistoryParams opens a patient's history list.
type MedicalHistoryParams struct {
	PatientID string
}

// DocumentsParams opens a patient's document list.
type DocumentsParams struct {
	PatientID string
}

// ConversationParams opens one chat thread.
type ConversationParams struct {
	ConversationID  string
	ParticipantID   string
	ParticipantType string
}

// ScheduleParams opens a doctor's day schedule.
type ScheduleParams struct {
	DoctorID string
	Date     string // "YYYY-MM-DD"
}

// Entry is one position in the navigation stack.
type Entry struct {
	Route  string
	Params any
}

// Registry maps the routes one role may visit to the parameter type
// each requires. A nil type means the route takes no parameters.
type Registry struct {
	routes map[string]reflect.Type
}

// NewRegistry builds a registry from route->params-zero-value pairs.
func NewRegistry(routes map[string]any) *Registry {
	r := &Registry{routes: make(map[string]reflect.Type, len(routes))}
	for name, params := range routes {
		if params == nil {
			r.routes[name] = nil
			continue
		}
		r.routes[name] = reflect.TypeOf(params)
	}
	return r
}

// Check validates a route and its parameters against the registry.
func (r *Registry) Check(route string, params any) error {
	want, ok := r.routes[route]
	if !ok {
		return fmt.Errorf("nav: route %q not in this role's tree", route)
	}
	if want == nil {
		if params != nil {
			return fmt.Errorf("nav: route %q takes no params, got %T", route, params)
		}
		return nil
	}
	if params == nil || reflect.TypeOf(params) != want {
		return fmt.Errorf("nav: route %q wants %s params, got %T", route, want, params)
	}
	return nil
}

// Stack is a navigation stack for one role. Safe for concurrent use.
type Stack struct {
	registry *Registry

	mu      sync.Mutex
	entries []Entry
}

// NewStack creates a stack rooted at the given route.
func NewStack(registry *Registry, root string) (*Stack, error) {
	s := &Stack{registry: registry}
	if err := s.Push(root, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// Push validates and pushes a route.
func (s *Stack) Push(route string, params any) error {
	if err := s.registry.Check(route, params); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Route: route, Params: params})
	return nil
}

// Pop removes the top entry. The root entry stays.
func (s *Stack) Pop() (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) <= 1 {
		return Entry{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top, true
}

// Current returns the entry on top of the stack.
func (s *Stack) Current() Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[len(s.entries)-1]
}

// Reset drops everything and starts over at the given route, used after
// login and logout.
func (s *Stack) Reset(route string, params any) error {
	if err := s.registry.Check(route, params); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = []Entry{{Route: route, Params: params}}
	return nil
}

// Depth returns the number of stacked entries.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
