// Package metrics exposes Prometheus collectors for the API, the analytics
// engines, the sync jobs and the upstream clients.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultNamespace = "courtvision"

// Option configures a Manager.
type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Manager) { m.runtime = true }
}

// Manager owns a private registry. A nil *Manager is a valid no-op sink.
type Manager struct {
	namespace string
	buckets   []float64
	runtime   bool
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	rankingRequests  *prometheus.CounterVec
	rankingOmissions *prometheus.CounterVec
	impactRequests   *prometheus.CounterVec

	syncTeams    *prometheus.CounterVec
	syncRows     *prometheus.CounterVec
	syncDuration *prometheus.HistogramVec

	webhookEvents *prometheus.CounterVec

	upstreamRequests *prometheus.CounterVec
	breakerState     *prometheus.GaugeVec

	cacheLookups *prometheus.CounterVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.register()
	return m
}

func (m *Manager) register() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "requests_total",
		Help: "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name:    "request_duration_seconds",
		Help:    "HTTP request latency by route pattern and method.",
		Buckets: m.buckets,
	}, []string{"route", "method"})

	m.rankingRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "analytics",
		Name: "ranking_requests_total",
		Help: "Ranking computations by outcome.",
	}, []string{"outcome"})

	m.rankingOmissions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "analytics",
		Name: "ranking_omissions_total",
		Help: "Group or stat results skipped during ranking, by reason.",
	}, []string{"reason"})

	m.impactRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "analytics",
		Name: "impact_requests_total",
		Help: "Teammate impact computations by outcome.",
	}, []string{"outcome"})

	m.syncTeams = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "sync",
		Name: "teams_total",
		Help: "Teams processed by sync jobs, by job and result.",
	}, []string{"job", "result"})

	m.syncRows = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "sync",
		Name: "rows_total",
		Help: "Game log rows written by sync jobs.",
	}, []string{"job"})

	m.syncDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "sync",
		Name:    "run_duration_seconds",
		Help:    "Wall time of a full sync run.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"job"})

	m.webhookEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "billing",
		Name: "webhook_events_total",
		Help: "Billing webhook events by type and outcome.",
	}, []string{"type", "outcome"})

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "upstream",
		Name: "requests_total",
		Help: "Outbound calls by upstream and result.",
	}, []string{"upstream", "result"})

	m.breakerState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "upstream",
		Name: "circuit_open",
		Help: "1 when the named circuit breaker is open or half open.",
	}, []string{"upstream"})

	m.cacheLookups = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "cache",
		Name: "lookups_total",
		Help: "Cache lookups by cache name and result.",
	}, []string{"cache", "result"})
}

// Registry exposes the underlying registry for scraping and tests.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})
}

func (m *Manager) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Manager) RankingComputed(outcome string, omissionReasons []string) {
	if m == nil {
		return
	}
	m.rankingRequests.WithLabelValues(outcome).Inc()
	for _, reason := range omissionReasons {
		m.rankingOmissions.WithLabelValues(reason).Inc()
	}
}

func (m *Manager) ImpactComputed(outcome string) {
	if m == nil {
		return
	}
	m.impactRequests.WithLabelValues(outcome).Inc()
}

func (m *Manager) SyncTeamFinished(job string, ok bool, rows int) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.syncTeams.WithLabelValues(job, result).Inc()
	if rows > 0 {
		m.syncRows.WithLabelValues(job).Add(float64(rows))
	}
}

func (m *Manager) SyncRunFinished(job string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.syncDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}

func (m *Manager) WebhookEvent(eventType, outcome string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType, outcome).Inc()
}

func (m *Manager) UpstreamCall(upstream string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.upstreamRequests.WithLabelValues(upstream, result).Inc()
}

// BreakerStateChanged records a circuit breaker transition.
func (m *Manager) BreakerStateChanged(name string, _ string, to string) {
	if m == nil {
		return
	}
	v := 0.0
	if to != "closed" {
		v = 1
	}
	m.breakerState.WithLabelValues(name).Set(v)
}

func (m *Manager) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}
