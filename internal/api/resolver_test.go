package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicdesk/internal/prefs"
)

func newTestResolver(t *testing.T, p *prefs.Preferences, lan, local string) *Resolver {
	t.Helper()
	return NewResolver(ResolverConfig{
		Prefs:      p,
		LANDefault: lan,
		Localhost:  local,
	})
}

func TestResolver_CandidateOrder(t *testing.T) {
	ctx := context.Background()
	p := prefs.New(prefs.NewMemoryStore())
	require.NoError(t, p.SetManualAPIURL(ctx, "http://manual:5000"))
	require.NoError(t, p.SetWorkingAPIURL(ctx, "http://working:5000"))

	r := newTestResolver(t, p, "http://lan:5000", "http://localhost:5000")

	got := r.Candidates(ctx)
	want := []string{"http://manual:5000", "http://working:5000", "http://lan:5000", "http://localhost:5000"}
	assert.Equal(t, want, got)
}

func TestResolver_CandidatesDeduplicate(t *testing.T) {
	ctx := context.Background()
	p := prefs.New(prefs.NewMemoryStore())
	require.NoError(t, p.SetWorkingAPIURL(ctx, "http://lan:5000"))

	r := newTestResolver(t, p, "http://lan:5000", "http://localhost:5000")

	got := r.Candidates(ctx)
	assert.Equal(t, []string{"http://lan:5000", "http://localhost:5000"}, got)
}

func TestResolver_CandidatesSkipFailedHosts(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver(t, prefs.New(prefs.NewMemoryStore()), "http://lan:5000", "http://localhost:5000")

	r.MarkFailed("http://lan:5000")

	got := r.Candidates(ctx)
	assert.Equal(t, []string{"http://localhost:5000"}, got)
}

func TestResolver_InitialPrefersManualOverride(t *testing.T) {
	ctx := context.Background()
	p := prefs.New(prefs.NewMemoryStore())
	require.NoError(t, p.SetManualAPIURL(ctx, "http://manual:5000/"))
	require.NoError(t, p.SetWorkingAPIURL(ctx, "http://working:5000"))

	r := newTestResolver(t, p, "http://lan:5000", "http://localhost:5000")

	assert.Equal(t, "http://manual:5000", r.Initial(ctx), "manual override wins and is slash-trimmed")
}

func TestResolver_InitialUsesRememberedURL(t *testing.T) {
	ctx := context.Background()
	p := prefs.New(prefs.NewMemoryStore())
	require.NoError(t, p.SetWorkingAPIURL(ctx, "http://working:5000"))

	r := newTestResolver(t, p, "http://lan:5000", "http://localhost:5000")

	assert.Equal(t, "http://working:5000", r.Initial(ctx))
}

func TestResolver_InitialIgnoresRememberedURLWhenAutoDetectOff(t *testing.T) {
	ctx := context.Background()
	p := prefs.New(prefs.NewMemoryStore())
	require.NoError(t, p.SetWorkingAPIURL(ctx, "http://working:5000"))
	require.NoError(t, p.SetAutoDetect(ctx, false))

	r := newTestResolver(t, p, "http://lan:5000", "http://localhost:5000")

	assert.Equal(t, "http://lan:5000", r.Initial(ctx))
}

func TestResolver_DiscoverAdoptsFirstHealthyHost(t *testing.T) {
	ctx := context.Background()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("probe hit %s, want /health", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer healthy.Close()

	p := prefs.New(prefs.NewMemoryStore())
	// Dead host first in priority; discovery must walk past it.
	require.NoError(t, p.SetWorkingAPIURL(ctx, "http://127.0.0.1:1"))

	r := newTestResolver(t, p, healthy.URL, "http://127.0.0.1:1")

	host, err := r.Discover(ctx)
	require.NoError(t, err)
	assert.Equal(t, healthy.URL, host)

	// The adopted host is persisted for the next run.
	remembered, err := p.WorkingAPIURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, healthy.URL, remembered)
}

func TestResolver_DiscoverFailsWhenNothingResponds(t *testing.T) {
	ctx := context.Background()
	r := newTestResolver(t, prefs.New(prefs.NewMemoryStore()), "http://127.0.0.1:1", "http://127.0.0.1:1")

	_, err := r.Discover(ctx)
	assert.Error(t, err)
}
