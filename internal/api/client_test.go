package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/prefs"
)

// backendStub is an httptest server that serves /health plus a tiny
// slice of the real API, counting hits so tests can assert how the
// client reached it.
type backendStub struct {
	*httptest.Server
	healthHits  atomic.Int64
	requestHits atomic.Int64
}

func newBackendStub(t *testing.T) *backendStub {
	t.Helper()
	s := &backendStub{}
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		s.healthHits.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/clinic", func(w http.ResponseWriter, r *http.Request) {
		s.requestHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ClinicInfo{Name: "Riverside Clinic"})
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newTestClient(t *testing.T, p *prefs.Preferences, lan, local string, opts ...Option) *Client {
	t.Helper()
	r := NewResolver(ResolverConfig{Prefs: p, LANDefault: lan, Localhost: local})
	return NewClient(r, opts...)
}

func TestClient_FailsOverToHealthySecondary(t *testing.T) {
	ctx := context.Background()
	secondary := newBackendStub(t)

	p := prefs.New(prefs.NewMemoryStore())
	// Remembered host points at a dead port, so the first attempt fails
	// at the network level and discovery has to find the secondary.
	require.NoError(t, p.SetWorkingAPIURL(ctx, "http://127.0.0.1:1"))

	c := newTestClient(t, p, secondary.URL, "http://127.0.0.1:1")

	info, err := c.Clinic.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Riverside Clinic", info.Name)
	assert.Equal(t, int64(1), secondary.healthHits.Load(), "one probe during discovery")

	// The working host is remembered for the next session.
	remembered, err := p.WorkingAPIURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, secondary.URL, remembered)

	// Follow-up requests go straight to the adopted host, no re-probe.
	_, err = c.Clinic.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), secondary.healthHits.Load(), "no probe on follow-up requests")
	assert.Equal(t, int64(2), secondary.requestHits.Load())
}

func TestClient_PinsLANDefaultWhenEverythingIsDown(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, prefs.New(prefs.NewMemoryStore()), "http://127.0.0.1:1", "http://127.0.0.1:1")

	_, err := c.Clinic.Info(ctx)
	require.Error(t, err)

	// After giving up the client sits on the hardcoded default so a
	// later request starts from a known place, not a stale host.
	assert.Equal(t, "http://127.0.0.1:1", c.BaseURL(ctx))
}

func TestClient_HTTPErrorIsNotRetried(t *testing.T) {
	ctx := context.Background()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"appointment not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, prefs.New(prefs.NewMemoryStore()), srv.URL, srv.URL)

	_, err := c.Appointments.Get(ctx, "appt-1")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "appointment not found", apiErr.Message)

	assert.Equal(t, int64(1), hits.Load(), "HTTP status failures must not trigger host switching")
}

func TestClient_AttachesBearerToken(t *testing.T) {
	ctx := context.Background()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ClinicInfo{})
	}))
	defer srv.Close()

	c := newTestClient(t, prefs.New(prefs.NewMemoryStore()), srv.URL, srv.URL)
	c.SetAuthToken("tok-123")

	_, err := c.Clinic.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_NoTokenMeansNoAuthHeader(t *testing.T) {
	ctx := context.Background()
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ClinicInfo{})
	}))
	defer srv.Close()

	c := newTestClient(t, prefs.New(prefs.NewMemoryStore()), srv.URL, srv.URL)

	_, err := c.Clinic.Info(ctx)
	require.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestClient_ValidatesCreateAppointmentLocally(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid request must not reach the backend")
	}))
	defer srv.Close()

	c := newTestClient(t, prefs.New(prefs.NewMemoryStore()), srv.URL, srv.URL)

	_, err := c.Appointments.Create(ctx, CreateAppointmentRequest{PatientID: "p1"})
	assert.Error(t, err)
}
