// Package mockapi is a self-contained clinic backend used for local
// development and end-to-end tests: the same routes, shapes and auth
// flow as the production backend, backed by in-memory data.
package mockapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/api"
)

// Account pairs a login with its user record. Passwords are plain text;
// this store never leaves a developer machine.
type Account struct {
	User     api.User
	Password string
}

// Store holds all mock backend state behind one lock.
type Store struct {
	mu sync.RWMutex

	accounts      map[string]Account // by email
	patients      map[string]api.Patient
	doctors       map[string]api.Doctor
	staff         map[string]api.StaffMember
	appointments  map[string]api.Appointment
	conversations map[string]api.Conversation
	messages      map[string][]api.Message // by conversation id
	documents     map[string][]api.Document
	history       map[string][]api.MedicalHistoryEntry
	clinic        api.ClinicInfo
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:      make(map[string]Account),
		patients:      make(map[string]api.Patient),
		doctors:       make(map[string]api.Doctor),
		staff:         make(map[string]api.StaffMember),
		appointments:  make(map[string]api.Appointment),
		conversations: make(map[string]api.Conversation),
		messages:      make(map[string][]api.Message),
		documents:     make(map[string][]api.Document),
		history:       make(map[string][]api.MedicalHistoryEntry),
	}
}

// Seed fills the store with a small demo clinic: one patient, one
// doctor, one staff member, a conversation and a few appointments.
func Seed(s *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clinic = api.ClinicInfo{
		ID:      "clinic-1",
		Name:    "Riverside Family Clinic",
		Address: "12 Harbor Road",
		Phone:   "555-0100",
		Email:   "frontdesk@riverside.test",
		Hours:   "Mon-Fri 08:00-18:00",
	}

	s.patients["p1"] = api.Patient{
		ID: "p1", FirstName: "Ada", LastName: "Osei",
		Email: "ada@riverside.test", Phone: "555-0101",
		Allergies: []string{"penicillin"},
	}
	s.doctors["d1"] = api.Doctor{
		ID: "d1", FirstName: "Lin", LastName: "Tran",
		AcceptingNewPatients: true,
		Availability: map[string][]api.AvailabilityWindow{
			"monday":    {{StartTime: "09:00", EndTime: "12:00"}, {StartTime: "14:00", EndTime: "17:00"}},
			"tuesday":   {{StartTime: "09:00", EndTime: "12:00"}},
			"wednesday": {{StartTime: "09:00", EndTime: "17:00"}},
			"friday":    {{StartTime: "08:00", EndTime: "12:00"}},
		},
	}
	s.staff["s1"] = api.StaffMember{
		ID: "s1", FirstName: "Noor", LastName: "Haddad", Role: "receptionist",
	}

	s.accounts["ada@riverside.test"] = Account{
		User:     api.User{ID: "u1", Email: "ada@riverside.test", Role: "patient", ProfileID: "p1"},
		Password: "patient-pass",
	}
	s.accounts["lin@riverside.test"] = Account{
		User:     api.User{ID: "u2", Email: "lin@riverside.test", Role: "doctor", ProfileID: "d1"},
		Password: "doctor-pass",
	}
	s.accounts["noor@riverside.test"] = Account{
		User:     api.User{ID: "u3", Email: "noor@riverside.test", Role: "staff", ProfileID: "s1"},
		Password: "staff-pass",
	}

	s.appointments["a1"] = api.Appointment{
		ID: "a1", PatientID: "p1", DoctorID: "d1",
		DateTime: "2024-06-03 09:00", Status: "scheduled",
		Reason: "Annual checkup", DurationMinutes: 30,
	}
	s.appointments["a2"] = api.Appointment{
		ID: "a2", PatientID: "p1", DoctorID: "d1",
		DateTime: "2024-05-06 10:30", Status: "completed",
		Reason: "Flu symptoms", DurationMinutes: 30,
	}

	s.conversations["c1"] = api.Conversation{
		ID:                 "c1",
		ParticipantOneID:   "p1",
		ParticipantOneType: "patient",
		ParticipantTwoID:   "d1",
		ParticipantTwoType: "doctor",
		ParticipantOneName: "Ada Osei",
		ParticipantTwoName: "Lin Tran",
	}
	s.messages["c1"] = []api.Message{
		{
			ID: "m1", ConversationID: "c1", SenderID: "p1", SenderType: "patient",
			Content: "Could I move Monday's appointment?", CreatedAt: "2024-05-30T15:04:00Z",
		},
	}

	s.history["p1"] = []api.MedicalHistoryEntry{
		{ID: "h1", PatientID: "p1", Date: "2024-05-06", Description: "Seasonal flu, rest advised", DoctorID: "d1"},
	}
	s.documents["p1"] = []api.Document{
		{ID: "doc1", PatientID: "p1", Name: "lab-results.pdf", Kind: "lab"},
	}
}

// Authenticate checks credentials and returns the account's user.
func (s *Store) Authenticate(email, password string) (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.accounts[strings.ToLower(email)]
	if !ok || acct.Password != password {
		return api.User{}, false
	}
	return acct.User, true
}

// UserByID looks up an account by user id.
func (s *Store) UserByID(id string) (api.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acct := range s.accounts {
		if acct.User.ID == id {
			return acct.User, true
		}
	}
	return api.User{}, false
}

// Clinic returns the clinic profile.
func (s *Store) Clinic() api.ClinicInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clinic
}

// Patients returns all patients sorted by last name.
func (s *Store) Patients() []api.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out
}

// Patient looks up one patient.
func (s *Store) Patient(id string) (api.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[id]
	return p, ok
}

// UpdatePatient overwrites the patient's editable fields.
func (s *Store) UpdatePatient(id string, update api.Patient) (api.Patient, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[id]
	if !ok {
		return api.Patient{}, false
	}
	update.ID = p.ID
	s.patients[id] = update
	return update, true
}

// Doctors returns all doctors sorted by last name.
func (s *Store) Doctors() []api.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out
}

// Doctor looks up one doctor.
func (s *Store) Doctor(id string) (api.Doctor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[id]
	return d, ok
}

// SetAvailability replaces a doctor's weekly availability.
func (s *Store) SetAvailability(id string, availability map[string][]api.AvailabilityWindow) (api.Doctor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return api.Doctor{}, false
	}
	d.Availability = availability
	s.doctors[id] = d
	return d, true
}

// Staff returns all staff members.
func (s *Store) Staff() []api.StaffMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.StaffMember, 0, len(s.staff))
	for _, m := range s.staff {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out
}

// StaffMember looks up one staff member.
func (s *Store) StaffMember(id string) (api.StaffMember, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.staff[id]
	return m, ok
}

// Appointments returns appointments, optionally filtered by patient or
// by doctor and date.
func (s *Store) Appointments(patientID, doctorID, date string) []api.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		if patientID != "" && a.PatientID != patientID {
			continue
		}
		if doctorID != "" && a.DoctorID != doctorID {
			continue
		}
		if date != "" && !strings.HasPrefix(a.DateTime, date) {
			continue
		}
		out = append(out, s.withRefs(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime < out[j].DateTime })
	return out
}

// Appointment looks up one appointment with its joined references.
func (s *Store) Appointment(id string) (api.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments[id]
	if !ok {
		return api.Appointment{}, false
	}
	return s.withRefs(a), true
}

// withRefs attaches the nested patient and doctor objects. Callers must
// hold the lock.
func (s *Store) withRefs(a api.Appointment) api.Appointment {
	if p, ok := s.patients[a.PatientID]; ok {
		a.Patient = &api.PatientRef{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName, Phone: p.Phone}
	}
	if d, ok := s.doctors[a.DoctorID]; ok {
		a.Doctor = &api.DoctorRef{ID: d.ID, FirstName: d.FirstName, LastName: d.LastName, Specialty: d.Specialty}
	}
	return a
}

// CreateAppointment stores a new appointment after rejecting conflicts:
// an active appointment for the same doctor at the same time.
func (s *Store) CreateAppointment(req api.CreateAppointmentRequest) (api.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.DoctorID == req.DoctorID && a.DateTime == req.DateTime && !strings.Contains(strings.ToLower(a.Status), "cancel") {
			return api.Appointment{}, fmt.Errorf("slot %s is already booked", req.DateTime)
		}
	}
	created := api.Appointment{
		ID:              uuid.New().String(),
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		DateTime:        req.DateTime,
		Status:          "scheduled",
		Reason:          req.Reason,
		DurationMinutes: req.DurationMinutes,
	}
	s.appointments[created.ID] = created
	return s.withRefs(created), nil
}

// SetAppointmentStatus updates the status field.
func (s *Store) SetAppointmentStatus(id, status string) (api.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return api.Appointment{}, false
	}
	a.Status = status
	s.appointments[id] = a
	return s.withRefs(a), true
}

// SetAppointmentNotes updates the notes field.
func (s *Store) SetAppointmentNotes(id, notes string) (api.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return api.Appointment{}, false
	}
	a.Notes = notes
	s.appointments[id] = a
	return s.withRefs(a), true
}

// Conversations returns the threads a participant belongs to.
func (s *Store) Conversations(participantID, participantType string) []api.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []api.Conversation
	for _, c := range s.conversations {
		if (c.ParticipantOneID == participantID && c.ParticipantOneType == participantType) ||
			(c.ParticipantTwoID == participantID && c.ParticipantTwoType == participantType) {
			msgs := s.messages[c.ID]
			if len(msgs) > 0 {
				last := msgs[len(msgs)-1]
				c.LastMessage = &last
			}
			unread := 0
			for _, m := range msgs {
				if !m.Read && m.SenderID != participantID {
					unread++
				}
			}
			c.UnreadCount = unread
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ConversationExists reports whether a conversation id is known.
func (s *Store) ConversationExists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.conversations[id]
	return ok
}

// Messages returns a conversation's messages, oldest first.
func (s *Store) Messages(conversationID string) []api.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[conversationID]
	out := make([]api.Message, len(msgs))
	copy(out, msgs)
	return out
}

// AppendMessage stores a new message and returns it with its id.
func (s *Store) AppendMessage(conversationID string, req api.SendMessageRequest) (api.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.conversations[conversationID]; !ok {
		return api.Message{}, false
	}
	msg := api.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       req.SenderID,
		SenderType:     req.SenderType,
		Content:        req.Content,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	s.messages[conversationID] = append(s.messages[conversationID], msg)
	return msg, true
}

// MarkRead marks every message not sent by the participant as read.
func (s *Store) MarkRead(conversationID, participantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.messages[conversationID]
	for i := range msgs {
		if msgs[i].SenderID != participantID {
			msgs[i].Read = true
		}
	}
}

// Documents returns a patient's documents.
func (s *Store) Documents(patientID string) []api.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.documents[patientID]
	out := make([]api.Document, len(docs))
	copy(out, docs)
	return out
}

// History returns a patient's medical history entries.
func (s *Store) History(patientID string) []api.MedicalHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.history[patientID]
	out := make([]api.MedicalHistoryEntry, len(entries))
	copy(out, entries)
	return out
}

// AddHistory appends a history entry for a patient.
func (s *Store) AddHistory(patientID string, entry api.MedicalHistoryEntry) api.MedicalHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = uuid.New().String()
	entry.PatientID = patientID
	s.history[patientID] = append(s.history[patientID], entry)
	return entry
}
