package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/internal/prefs"
)

// testBackend is a minimal in-memory backend the screen tests run
// against.
type testBackend struct {
	*httptest.Server
	doctor        api.Doctor
	patient       api.Patient
	appointments  []api.Appointment
	messages      []api.Message
	conversations []api.Conversation
	createdReqs   []api.CreateAppointmentRequest
	savedAvail    map[string][]api.AvailabilityWindow
	readCalls     int
	failSend      bool
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	b := &testBackend{}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/doctors/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, b.doctor)
	})
	r.Put("/api/doctors/{id}/availability", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Availability map[string][]api.AvailabilityWindow `json:"availability"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		b.savedAvail = body.Availability
		b.doctor.Availability = body.Availability
		writeJSON(t, w, b.doctor)
	})
	r.Get("/api/patients/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, b.patient)
	})
	r.Put("/api/patients/{id}", func(w http.ResponseWriter, req *http.Request) {
		var body api.UpdatePatientRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		b.patient.Email = body.Email
		b.patient.Phone = body.Phone
		b.patient.Address = body.Address
		b.patient.Allergies = body.Allergies
		b.patient.Conditions = body.Conditions
		b.patient.Medications = body.Medications
		writeJSON(t, w, b.patient)
	})
	r.Get("/api/appointments", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, b.appointments)
	})
	r.Post("/api/appointments", func(w http.ResponseWriter, req *http.Request) {
		var body api.CreateAppointmentRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		b.createdReqs = append(b.createdReqs, body)
		created := api.Appointment{
			ID:        "created-1",
			PatientID: body.PatientID,
			DoctorID:  body.DoctorID,
			DateTime:  body.DateTime,
			Status:    "scheduled",
		}
		b.appointments = append(b.appointments, created)
		writeJSON(t, w, created)
	})
	r.Patch("/api/appointments/{id}/status", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		id := chi.URLParam(req, "id")
		for i := range b.appointments {
			if b.appointments[i].ID == id {
				b.appointments[i].Status = body["status"]
				writeJSON(t, w, b.appointments[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	r.Patch("/api/appointments/{id}/notes", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		id := chi.URLParam(req, "id")
		for i := range b.appointments {
			if b.appointments[i].ID == id {
				b.appointments[i].Notes = body["notes"]
				writeJSON(t, w, b.appointments[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	r.Post("/api/appointments/{id}/cancel", func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")
		for i := range b.appointments {
			if b.appointments[i].ID == id {
				b.appointments[i].Status = "cancelled"
				writeJSON(t, w, b.appointments[i])
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/api/chat/conversations", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, b.conversations)
	})
	r.Get("/api/chat/conversations/{id}/messages", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, b.messages)
	})
	r.Post("/api/chat/conversations/{id}/messages", func(w http.ResponseWriter, req *http.Request) {
		if b.failSend {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"message":"chat store unavailable"}`))
			return
		}
		var body api.SendMessageRequest
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		stored := api.Message{
			ID:             "srv-sent",
			ConversationID: chi.URLParam(req, "id"),
			SenderID:       body.SenderID,
			SenderType:     body.SenderType,
			Content:        body.Content,
			CreatedAt:      "2024-06-01T10:00:00Z",
		}
		b.messages = append(b.messages, stored)
		writeJSON(t, w, stored)
	})
	r.Post("/api/chat/conversations/{id}/read", func(w http.ResponseWriter, _ *http.Request) {
		b.readCalls++
		w.WriteHeader(http.StatusNoContent)
	})

	b.Server = httptest.NewServer(r)
	t.Cleanup(b.Close)
	return b
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestClient(t *testing.T, baseURL string) *api.Client {
	t.Helper()
	r := api.NewResolver(api.ResolverConfig{
		Prefs:      prefs.New(prefs.NewMemoryStore()),
		LANDefault: baseURL,
		Localhost:  baseURL,
	})
	return api.NewClient(r)
}
