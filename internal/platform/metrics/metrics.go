package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Methods are nil-safe
// so resolvers can run without a registry in tests.
type Metrics struct {
	BaseYearResolutions    *prometheus.CounterVec
	InstitutionResolutions *prometheus.CounterVec
	CacheHits              prometheus.Counter
	CacheMisses            prometheus.Counter
	RequestDuration        *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		BaseYearResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "recadastro_baseyear_resolutions_total",
			Help: "Base-year resolutions by scope (user/school) and answering source (stored/parameter/fallback)",
		}, []string{"scope", "source"}),
		InstitutionResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "recadastro_institution_resolutions_total",
			Help: "Institution resolutions by answering source (primary/legacy/none/skipped)",
		}, []string{"source"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "recadastro_resolution_cache_hits_total",
			Help: "Combined resolutions served from the Redis cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "recadastro_resolution_cache_misses_total",
			Help: "Combined resolutions that had to run the full cascade",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recadastro_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) ObserveBaseYear(scope, source string) {
	if m == nil {
		return
	}
	m.BaseYearResolutions.WithLabelValues(scope, source).Inc()
}

func (m *Metrics) ObserveInstitutions(source string) {
	if m == nil {
		return
	}
	m.InstitutionResolutions.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Inc()
		return
	}
	m.CacheMisses.Inc()
}

func (m *Metrics) ObserveRequest(route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(elapsed.Seconds())
}
