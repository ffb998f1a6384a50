package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"sid/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncUpstreamRequests(resource, outcome string)
	ObserveUpstreamDuration(resource string, duration time.Duration)
	IncStaleServed()
	IncDegradedLookups()
	SetCachedUsers(count int)
	SetCachedPosts(count int)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	staleServed      prometheus.Counter
	degradedLookups  prometheus.Counter
	cachedUsers      prometheus.Gauge
	cachedPosts      prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncUpstreamRequests(resource, outcome string) {
	m.upstreamRequests.WithLabelValues(resource, outcome).Inc()
}

func (m *MetricsProvider) ObserveUpstreamDuration(resource string, duration time.Duration) {
	m.upstreamDuration.WithLabelValues(resource).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStaleServed() {
	m.staleServed.Inc()
}

func (m *MetricsProvider) IncDegradedLookups() {
	m.degradedLookups.Inc()
}

func (m *MetricsProvider) SetCachedUsers(count int) {
	m.cachedUsers.Set(float64(count))
}

func (m *MetricsProvider) SetCachedPosts(count int) {
	m.cachedPosts.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sid_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sid_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_response_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_response_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		upstreamRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sid_upstream_requests_total",
			Help: "Total number of upstream API calls",
		}, []string{"resource", "outcome"}),

		upstreamDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sid_upstream_duration_seconds",
			Help:    "Upstream API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),

		staleServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_stale_served_total",
			Help: "Times a stale cached value was served after a refresh failure",
		}),

		degradedLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sid_degraded_lookups_total",
			Help: "Per-item lookups that degraded to an empty result",
		}),

		cachedUsers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sid_cached_users",
			Help: "Number of users in the cached directory",
		}),

		cachedPosts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "sid_cached_posts",
			Help: "Number of posts in the merged view",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                  {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)  {}
func (n *noopMetrics) IncCacheHits()                                     {}
func (n *noopMetrics) IncCacheMisses()                                   {}
func (n *noopMetrics) IncUpstreamRequests(_, _ string)                   {}
func (n *noopMetrics) ObserveUpstreamDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncStaleServed()                                   {}
func (n *noopMetrics) IncDegradedLookups()                               {}
func (n *noopMetrics) SetCachedUsers(_ int)                              {}
func (n *noopMetrics) SetCachedPosts(_ int)                              {}
