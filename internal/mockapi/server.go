package mockapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicdesk/clinicdesk/internal/api"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

const tokenTTL = 24 * time.Hour

type contextKey string

const userKey contextKey = "user"

// Server is the mock clinic backend.
type Server struct {
	store  *Store
	logger *logging.Logger
	secret []byte
	hub    *hub
}

// NewServer creates the mock backend around a store.
func NewServer(store *Store, secret string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{
		store:  store,
		logger: logger,
		secret: []byte(secret),
		hub:    newHub(logger),
	}
}

// Router builds the full route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/auth/login", s.handleLogin)

	r.Group(func(authed chi.Router) {
		authed.Use(s.requireToken)

		authed.Get("/api/auth/me", s.handleMe)
		authed.Get("/api/clinic", s.handleClinic)

		authed.Route("/api/patients", func(r chi.Router) {
			r.Get("/", s.handleListPatients)
			r.Get("/{id}", s.handleGetPatient)
			r.Put("/{id}", s.handleUpdatePatient)
		})

		authed.Route("/api/doctors", func(r chi.Router) {
			r.Get("/", s.handleListDoctors)
			r.Get("/{id}", s.handleGetDoctor)
			r.Put("/{id}/availability", s.handleSetAvailability)
		})

		authed.Route("/api/staff", func(r chi.Router) {
			r.Get("/", s.handleListStaff)
			r.Get("/{id}", s.handleGetStaff)
		})

		authed.Route("/api/appointments", func(r chi.Router) {
			r.Get("/", s.handleListAppointments)
			r.Post("/", s.handleCreateAppointment)
			r.Get("/{id}", s.handleGetAppointment)
			r.Patch("/{id}/status", s.handleUpdateStatus)
			r.Patch("/{id}/notes", s.handleUpdateNotes)
			r.Post("/{id}/cancel", s.handleCancel)
		})

		authed.Route("/api/chat/conversations", func(r chi.Router) {
			r.Get("/", s.handleListConversations)
			r.Get("/{id}/messages", s.handleListMessages)
			r.Post("/{id}/messages", s.handleSendMessage)
			r.Post("/{id}/read", s.handleMarkRead)
			r.Get("/{id}/ws", s.handleConversationWS)
		})

		authed.Get("/api/documents", s.handleListDocuments)

		authed.Route("/api/medical-history", func(r chi.Router) {
			r.Get("/{patientID}", s.handleListHistory)
			r.Post("/{patientID}", s.handleAddHistory)
		})
	})

	return r
}

// issueToken signs a bearer token for a user.
func (s *Server) issueToken(user api.User, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// requireToken validates the bearer token and stashes the user in the
// request context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			// Websocket clients from browsers cannot set headers.
			auth = "Bearer " + r.URL.Query().Get("token")
		}
		if !strings.HasPrefix(auth, "Bearer ") || auth == "Bearer " {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		user, ok := s.store.UserByID(claims.Subject)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unknown account")
			return
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) (api.User, bool) {
	user, ok := ctx.Value(userKey).(api.User)
	return user, ok
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed login request")
		return
	}
	user, ok := s.store.Authenticate(req.Email, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	token, err := s.issueToken(user, time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, api.LoginResponse{Token: token, User: user})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "no session")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleClinic(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Clinic())
}

func (s *Server) handleListPatients(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Patients())
}

func (s *Server) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.Patient(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "patient not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	var update api.Patient
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "malformed patient update")
		return
	}
	p, ok := s.store.UpdatePatient(chi.URLParam(r, "id"), update)
	if !ok {
		writeError(w, http.StatusNotFound, "patient not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListDoctors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Doctors())
}

func (s *Server) handleGetDoctor(w http.ResponseWriter, r *http.Request) {
	d, ok := s.store.Doctor(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "doctor not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleSetAvailability(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Availability map[string][]api.AvailabilityWindow `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed availability")
		return
	}
	d, ok := s.store.SetAvailability(chi.URLParam(r, "id"), body.Availability)
	if !ok {
		writeError(w, http.StatusNotFound, "doctor not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleListStaff(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Staff())
}

func (s *Server) handleGetStaff(w http.ResponseWriter, r *http.Request) {
	m, ok := s.store.StaffMember(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "staff member not found")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.store.Appointments(q.Get("patient_id"), q.Get("doctor_id"), q.Get("date")))
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	a, ok := s.store.Appointment(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req api.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed appointment")
		return
	}
	if req.PatientID == "" || req.DoctorID == "" || req.DateTime == "" {
		writeError(w, http.StatusBadRequest, "patient_id, doctor_id and date_time are required")
		return
	}
	created, err := s.store.CreateAppointment(req)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	a, ok := s.store.SetAppointmentStatus(chi.URLParam(r, "id"), body.Status)
	if !ok {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleUpdateNotes(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed notes update")
		return
	}
	a, ok := s.store.SetAppointmentNotes(chi.URLParam(r, "id"), body.Notes)
	if !ok {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	a, ok := s.store.SetAppointmentStatus(chi.URLParam(r, "id"), "cancelled")
	if !ok {
		writeError(w, http.StatusNotFound, "appointment not found")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.store.Conversations(q.Get("participant_id"), q.Get("participant_type")))
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.ConversationExists(id) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Messages(id))
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req api.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed message")
		return
	}
	if req.SenderID == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "sender_id and content are required")
		return
	}
	id := chi.URLParam(r, "id")
	msg, ok := s.store.AppendMessage(id, req)
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	s.hub.broadcast(id, msg)
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ParticipantID string `json:"participant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed read receipt")
		return
	}
	id := chi.URLParam(r, "id")
	if !s.store.ConversationExists(id) {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	s.store.MarkRead(id, body.ParticipantID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")
	if patientID == "" {
		writeError(w, http.StatusBadRequest, "patient_id is required")
		return
	}
	writeJSON(w, http.StatusOK, s.store.Documents(patientID))
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.History(chi.URLParam(r, "patientID")))
}

func (s *Server) handleAddHistory(w http.ResponseWriter, r *http.Request) {
	var entry api.MedicalHistoryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "malformed history entry")
		return
	}
	if entry.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	created := s.store.AddHistory(chi.URLParam(r, "patientID"), entry)
	writeJSON(w, http.StatusCreated, created)
}

// ListenAndServe runs the mock backend until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
