package api

// Transport DTOs. Field names follow the backend's response shapes
// exactly; screens reshape them into their own view models.

// Appointment is the backend appointment row. DateTime is the combined
// "YYYY-MM-DD HH:MM" timestamp string; splitting it is the caller's job.
type Appointment struct {
	ID              string      `json:"id"`
	PatientID       string      `json:"patient_id"`
	DoctorID        string      `json:"doctor_id"`
	DateTime        string      `json:"date_time"`
	Status          string      `json:"status"`
	Reason          string      `json:"reason,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	DurationMinutes int         `json:"duration_minutes,omitempty"`
	Patient         *PatientRef `json:"patients,omitempty"`
	Doctor          *DoctorRef  `json:"doctors,omitempty"`
}

// PatientRef is the nested patient object embedded in joined responses.
type PatientRef struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// DoctorRef is the nested doctor object embedded in joined responses.
type DoctorRef struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Specialty string `json:"specialty,omitempty"`
}

// AvailabilityWindow is one bookable interval in a doctor's weekly
// availability, times as "HH:MM".
type AvailabilityWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Doctor is the backend doctor row. Availability maps lowercase weekday
// names ("monday") to ordered windows.
type Doctor struct {
	ID                   string                          `json:"id"`
	FirstName            string                          `json:"first_name"`
	LastName             string                          `json:"last_name"`
	Specialty            string                          `json:"specialty"`
	Email                string                          `json:"email,omitempty"`
	Phone                string                          `json:"phone,omitempty"`
	Availability         map[string][]AvailabilityWindow `json:"availability,omitempty"`
	AcceptingNewPatients bool                            `json:"accepting_new_patients"`
}

// Patient is the backend patient row.
type Patient struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	DateOfBirth string   `json:"date_of_birth,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	Allergies   []string `json:"allergies,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
	Medications []string `json:"medications,omitempty"`
}

// StaffMember is the backend staff row.
type StaffMember struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// Conversation is a chat thread between two participants.
type Conversation struct {
	ID                 string   `json:"id"`
	ParticipantOneID   string   `json:"participant_one_id"`
	ParticipantOneType string   `json:"participant_one_type"`
	ParticipantTwoID   string   `json:"participant_two_id"`
	ParticipantTwoType string   `json:"participant_two_type"`
	LastMessage        *Message `json:"last_message,omitempty"`
	UnreadCount        int      `json:"unread_count,omitempty"`
	ParticipantOneName string   `json:"participant_one_name,omitempty"`
	ParticipantTwoName string   `json:"participant_two_name,omitempty"`
}

// Message is one chat message. CreatedAt is RFC 3339.
type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	SenderType     string `json:"sender_type"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
	Read           bool   `json:"read"`
}

// Document is file metadata attached to a patient record.
type Document struct {
	ID         string `json:"id"`
	PatientID  string `json:"patient_id"`
	Name       string `json:"name"`
	Kind       string `json:"kind,omitempty"`
	URL        string `json:"url,omitempty"`
	UploadedAt string `json:"uploaded_at,omitempty"`
}

// MedicalHistoryEntry is one dated entry in a patient's history.
type MedicalHistoryEntry struct {
	ID          string `json:"id"`
	PatientID   string `json:"patient_id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	DoctorID    string `json:"doctor_id,omitempty"`
}

// ClinicInfo is the clinic profile record.
type ClinicInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Hours   string `json:"hours,omitempty"`
}

// User is the authenticated account returned by login.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	ProfileID string `json:"profile_id,omitempty"`
}
