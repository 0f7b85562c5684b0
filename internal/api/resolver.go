package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/observability/metrics"
	"github.com/clinicdesk/clinicdesk/internal/prefs"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

const defaultProbeTimeout = 3 * time.Second

// Resolver picks a reachable backend base URL from a prioritized
// candidate list: manual override, remembered working URL, hardcoded LAN
// default, localhost fallback. Hosts that failed during this resolver's
// lifetime are skipped; the set is not shared across instances.
type Resolver struct {
	prefs       *prefs.Preferences
	lanDefault  string
	localhost   string
	probeClient *http.Client
	logger      *logging.Logger
	metrics     *metrics.ClientMetrics

	mu     sync.Mutex
	failed map[string]struct{}
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	Prefs        *prefs.Preferences
	LANDefault   string
	Localhost    string
	ProbeTimeout time.Duration
	Logger       *logging.Logger
	Metrics      *metrics.ClientMetrics
}

// NewResolver creates a host resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	timeout := cfg.ProbeTimeout
	if timeout == 0 {
		timeout = defaultProbeTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{
		prefs:       cfg.Prefs,
		lanDefault:  strings.TrimSuffix(cfg.LANDefault, "/"),
		localhost:   strings.TrimSuffix(cfg.Localhost, "/"),
		probeClient: &http.Client{Timeout: timeout},
		logger:      logger,
		metrics:     cfg.Metrics,
		failed:      make(map[string]struct{}),
	}
}

// LANDefault returns the hardcoded fallback host.
func (r *Resolver) LANDefault() string {
	return r.lanDefault
}

// Candidates returns the prioritized host list with duplicates and
// known-failed hosts removed. An empty result means every candidate has
// failed this session; the caller falls back to the LAN default.
func (r *Resolver) Candidates(ctx context.Context) []string {
	var ordered []string
	if r.prefs != nil {
		if manual, err := r.prefs.ManualAPIURL(ctx); err == nil && manual != "" {
			ordered = append(ordered, strings.TrimSuffix(manual, "/"))
		}
		if working, err := r.prefs.WorkingAPIURL(ctx); err == nil && working != "" {
			ordered = append(ordered, strings.TrimSuffix(working, "/"))
		}
	}
	ordered = append(ordered, r.lanDefault, r.localhost)

	seen := make(map[string]struct{}, len(ordered))
	var out []string
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range ordered {
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		if _, bad := r.failed[u]; bad {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Initial returns the host to try first, without probing: the manual
// override if set, then the remembered working URL, then the LAN default.
func (r *Resolver) Initial(ctx context.Context) string {
	if r.prefs != nil {
		if manual, err := r.prefs.ManualAPIURL(ctx); err == nil && manual != "" {
			return strings.TrimSuffix(manual, "/")
		}
		if auto, err := r.prefs.AutoDetect(ctx); err == nil && !auto {
			return r.lanDefault
		}
		if working, err := r.prefs.WorkingAPIURL(ctx); err == nil && working != "" {
			return strings.TrimSuffix(working, "/")
		}
	}
	return r.lanDefault
}

// MarkFailed records a host as unreachable for this resolver's lifetime.
func (r *Resolver) MarkFailed(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[host] = struct{}{}
}

// Discover probes the remaining candidates in priority order and adopts
// the first that answers /health, persisting it as the working URL.
func (r *Resolver) Discover(ctx context.Context) (string, error) {
	for _, host := range r.Candidates(ctx) {
		if r.probe(ctx, host) {
			r.adopt(ctx, host)
			return host, nil
		}
		r.MarkFailed(host)
		r.metrics.ObserveProbeFailure(host)
	}
	return "", fmt.Errorf("api: no reachable backend host")
}

func (r *Resolver) adopt(ctx context.Context, host string) {
	r.logger.Info("adopted backend host", "host", host)
	r.metrics.ObserveHostSwitch(host)
	if r.prefs == nil {
		return
	}
	// Best effort: a dead preference store must not fail the request
	// that just found a working backend.
	if err := r.prefs.SetWorkingAPIURL(ctx, host); err != nil {
		r.logger.Warn("could not persist working backend URL", "host", host, "error", err)
	}
}

func (r *Resolver) probe(ctx context.Context, host string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.probeClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 500
}
