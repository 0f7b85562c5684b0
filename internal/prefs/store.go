// Package prefs persists small client-side preferences: the backend URL
// override, the last-known-working backend URL, the auto-detect flag, and
// the auth token. Values live under a fixed namespace so several tools can
// share one redis instance without colliding.
package prefs

import (
	"context"
	"strconv"
	"sync"
)

// Well-known preference keys.
const (
	KeyManualAPIURL  = "api:manual_url"
	KeyWorkingAPIURL = "api:working_url"
	KeyAutoDetect    = "api:auto_detect"
	KeyAuthToken     = "auth:token"
)

// namespace prefixes every stored key.
const namespace = "clinicdesk:"

// Store is a namespaced string key-value store. A missing key yields the
// empty string with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore keeps preferences for the lifetime of the process. Used in
// tests and for one-off CLI invocations where nothing should persist.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[namespace+key], nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[namespace+key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, namespace+key)
	return nil
}

// Preferences exposes typed accessors over a Store.
type Preferences struct {
	store Store
}

// New wraps a Store with typed accessors.
func New(store Store) *Preferences {
	return &Preferences{store: store}
}

// ManualAPIURL returns the operator-configured backend URL, if any.
func (p *Preferences) ManualAPIURL(ctx context.Context) (string, error) {
	return p.store.Get(ctx, KeyManualAPIURL)
}

// SetManualAPIURL records an explicit backend URL override.
func (p *Preferences) SetManualAPIURL(ctx context.Context, url string) error {
	return p.store.Set(ctx, KeyManualAPIURL, url)
}

// WorkingAPIURL returns the last backend URL a request succeeded against.
func (p *Preferences) WorkingAPIURL(ctx context.Context) (string, error) {
	return p.store.Get(ctx, KeyWorkingAPIURL)
}

// SetWorkingAPIURL remembers a backend URL that just worked.
func (p *Preferences) SetWorkingAPIURL(ctx context.Context, url string) error {
	return p.store.Set(ctx, KeyWorkingAPIURL, url)
}

// AutoDetect reports whether host discovery is enabled. Absent → true.
func (p *Preferences) AutoDetect(ctx context.Context) (bool, error) {
	raw, err := p.store.Get(ctx, KeyAutoDetect)
	if err != nil {
		return true, err
	}
	if raw == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true, nil
	}
	return v, nil
}

// SetAutoDetect toggles host discovery.
func (p *Preferences) SetAutoDetect(ctx context.Context, enabled bool) error {
	return p.store.Set(ctx, KeyAutoDetect, strconv.FormatBool(enabled))
}

// AuthToken returns the stored bearer token, if any.
func (p *Preferences) AuthToken(ctx context.Context) (string, error) {
	return p.store.Get(ctx, KeyAuthToken)
}

// SetAuthToken stores the bearer token issued at login.
func (p *Preferences) SetAuthToken(ctx context.Context, token string) error {
	return p.store.Set(ctx, KeyAuthToken, token)
}

// ClearAuthToken removes the stored token on logout.
func (p *Preferences) ClearAuthToken(ctx context.Context) error {
	return p.store.Delete(ctx, KeyAuthToken)
}
