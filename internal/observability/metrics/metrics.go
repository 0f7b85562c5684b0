package metrics

import "github.com/prometheus/client_golang/prometheus"

// ClientMetrics exposes counters/histograms for backend API calls and
// host discovery.
type ClientMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestLatency  *prometheus.HistogramVec
	hostSwitchTotal *prometheus.CounterVec
	probeFailTotal  *prometheus.CounterVec
}

func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	m := &ClientMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicdesk",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total backend API requests",
		}, []string{"resource", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinicdesk",
			Subsystem: "api",
			Name:      "request_latency_seconds",
			Help:      "Latency of backend API requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"resource"}),
		hostSwitchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicdesk",
			Subsystem: "api",
			Name:      "host_switch_total",
			Help:      "Host discovery switches to an alternate backend URL",
		}, []string{"to"}),
		probeFailTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicdesk",
			Subsystem: "api",
			Name:      "probe_failures_total",
			Help:      "Failed health probes during host discovery",
		}, []string{"host"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency, m.hostSwitchTotal, m.probeFailTotal)
	return m
}

func (m *ClientMetrics) ObserveRequest(resource, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(resource, method, status).Inc()
	m.requestLatency.WithLabelValues(resource).Observe(seconds)
}

func (m *ClientMetrics) ObserveHostSwitch(to string) {
	if m == nil {
		return
	}
	m.hostSwitchTotal.WithLabelValues(to).Inc()
}

func (m *ClientMetrics) ObserveProbeFailure(host string) {
	if m == nil {
		return
	}
	m.probeFailTotal.WithLabelValues(host).Inc()
}
