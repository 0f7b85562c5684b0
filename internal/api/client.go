// Package api is the client for the clinic backend REST API. It resolves
// a reachable backend host from a candidate list, attaches the bearer
// token, and retries requests that failed at the network level against
// alternate hosts, bounded by a retry cap.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/clinicdesk/clinicdesk/internal/observability/metrics"
	"github.com/clinicdesk/clinicdesk/pkg/logging"
)

const (
	defaultRequestTimeout = 10 * time.Second
	defaultMaxHostRetries = 2
)

// Client talks to the clinic backend. Resource call groups hang off the
// exported fields; all of them share the same host resolution, auth and
// retry behavior.
type Client struct {
	httpClient *http.Client
	resolver   *Resolver
	logger     *logging.Logger
	metrics    *metrics.ClientMetrics
	tracer     trace.Tracer
	maxRetries int

	mu      sync.Mutex
	baseURL string
	token   string

	Auth           *AuthService
	Patients       *PatientsService
	Doctors        *DoctorsService
	Appointments   *AppointmentsService
	Staff          *StaffService
	Chat           *ChatService
	Documents      *DocumentsService
	MedicalHistory *MedicalHistoryService
	Clinic         *ClinicService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches request/discovery counters.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithMaxHostRetries caps how many host switches a single request may
// trigger before the client gives up and pins the hardcoded default.
func WithMaxHostRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient creates a backend API client using the given host resolver.
func NewClient(resolver *Resolver, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		resolver:   resolver,
		logger:     logging.Default(),
		tracer:     otel.Tracer("github.com/clinicdesk/clinicdesk/internal/api"),
		maxRetries: defaultMaxHostRetries,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c: c}
	c.Patients = &PatientsService{c: c}
	c.Doctors = &DoctorsService{c: c}
	c.Appointments = &AppointmentsService{c: c}
	c.Staff = &StaffService{c: c}
	c.Chat = &ChatService{c: c}
	c.Documents = &DocumentsService{c: c}
	c.MedicalHistory = &MedicalHistoryService{c: c}
	c.Clinic = &ClinicService{c: c}
	return c
}

// SetAuthToken attaches a bearer token to every subsequent request.
// Called once after login; there is no automatic refresh.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// BaseURL returns the backend host currently in use.
func (c *Client) BaseURL(ctx context.Context) string {
	return c.currentBase(ctx)
}

func (c *Client) currentBase(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.baseURL == "" {
		c.baseURL = c.resolver.Initial(ctx)
	}
	return c.baseURL
}

func (c *Client) setBase(host string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = host
}

func (c *Client) currentToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// do issues one logical request. Network-class failures mark the current
// host failed and trigger discovery of an alternate host, replaying the
// request there. After maxRetries switches the client pins the hardcoded
// LAN default and surfaces the error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, resource string) error {
	ctx, span := c.tracer.Start(ctx, "api."+resource,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		))
	defer span.End()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal %s request: %w", resource, err)
		}
	}

	for attempt := 0; ; attempt++ {
		base := c.currentBase(ctx)
		err := c.roundTrip(ctx, base, method, path, query, payload, out, resource)
		if err == nil {
			return nil
		}
		if !isNetworkError(err) {
			span.RecordError(err)
			return err
		}

		c.resolver.MarkFailed(base)
		c.logger.Warn("backend host unreachable", "host", base, "attempt", attempt, "error", err)

		if attempt >= c.maxRetries {
			c.setBase(c.resolver.LANDefault())
			span.RecordError(err)
			return fmt.Errorf("api: backend unreachable after %d host switches: %w", c.maxRetries, err)
		}

		host, derr := c.resolver.Discover(ctx)
		if derr != nil {
			c.setBase(c.resolver.LANDefault())
			span.RecordError(derr)
			return fmt.Errorf("api: %s: %w", resource, err)
		}
		c.setBase(host)
	}
}

func (c *Client) roundTrip(ctx context.Context, base, method, path string, query url.Values, payload []byte, out any, resource string) error {
	endpoint := base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: create %s request: %w", resource, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(resource, method, "network_error", time.Since(start).Seconds())
		return fmt.Errorf("api: %s request: %w", resource, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveRequest(resource, method, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return &Error{
			StatusCode: resp.StatusCode,
			Resource:   resource,
			Message:    serverMessage(respBody),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s response: %w", resource, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any, resource string) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, resource)
}

func (c *Client) post(ctx context.Context, path string, body, out any, resource string) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, resource)
}

func (c *Client) put(ctx context.Context, path string, body, out any, resource string) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, resource)
}

func (c *Client) patch(ctx context.Context, path string, body, out any, resource string) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, resource)
}
