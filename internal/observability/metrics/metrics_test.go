package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClientMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.ObserveRequest("appointments", "GET", "200", 0.05)
	m.ObserveRequest("appointments", "GET", "200", 0.10)
	m.ObserveRequest("doctors", "GET", "503", 0.01)

	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("appointments", "GET", "200")); got != 2 {
		t.Errorf("appointments 200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("doctors", "GET", "503")); got != 1 {
		t.Errorf("doctors 503 count = %v, want 1", got)
	}
}

func TestClientMetrics_HostDiscoveryCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)

	m.ObserveHostSwitch("http://localhost:5000")
	m.ObserveProbeFailure("http://192.168.1.50:5000")
	m.ObserveProbeFailure("http://192.168.1.50:5000")

	if got := testutil.ToFloat64(m.hostSwitchTotal.WithLabelValues("http://localhost:5000")); got != 1 {
		t.Errorf("host switch count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.probeFailTotal.WithLabelValues("http://192.168.1.50:5000")); got != 2 {
		t.Errorf("probe failure count = %v, want 2", got)
	}

	problems, err := testutil.GatherAndLint(reg)
	if err != nil {
		t.Fatalf("lint gather: %v", err)
	}
	for _, p := range problems {
		if strings.Contains(p.Metric, "clinicdesk") {
			t.Errorf("metric lint: %s: %s", p.Metric, p.Text)
		}
	}
}

func TestClientMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *ClientMetrics
	m.ObserveRequest("appointments", "GET", "200", 0.01)
	m.ObserveHostSwitch("anywhere")
	m.ObserveProbeFailure("anywhere")
}
