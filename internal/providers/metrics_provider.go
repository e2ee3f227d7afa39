package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"time"
	"vcheck/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncDecisions(status string)
	IncCheckinsEnqueued(channel string)
	IncCheckinsWritten(channel string)
	AddCheckinsDropped(channel string, count int)
	IncRotations(channel string)
	SetQueueDepth(channel string, depth int)
	SetChannelFailed(channel string, failed bool)
	IncArchived(channel string)
	ObserveArchiveDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	decisions        *prometheus.CounterVec
	checkinsEnqueued *prometheus.CounterVec
	checkinsWritten  *prometheus.CounterVec
	checkinsDropped  *prometheus.CounterVec
	rotations        *prometheus.CounterVec
	queueDepth       *prometheus.GaugeVec
	channelFailed    *prometheus.GaugeVec
	archived         *prometheus.CounterVec
	archiveDuration  prometheus.Histogram
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

func (m *MetricsProvider) IncDecisions(status string) {
	m.decisions.WithLabelValues(status).Inc()
}

func (m *MetricsProvider) IncCheckinsEnqueued(channel string) {
	m.checkinsEnqueued.WithLabelValues(channel).Inc()
}

func (m *MetricsProvider) IncCheckinsWritten(channel string) {
	m.checkinsWritten.WithLabelValues(channel).Inc()
}

func (m *MetricsProvider) AddCheckinsDropped(channel string, count int) {
	m.checkinsDropped.WithLabelValues(channel).Add(float64(count))
}

func (m *MetricsProvider) IncRotations(channel string) {
	m.rotations.WithLabelValues(channel).Inc()
}

func (m *MetricsProvider) SetQueueDepth(channel string, depth int) {
	m.queueDepth.WithLabelValues(channel).Set(float64(depth))
}

func (m *MetricsProvider) SetChannelFailed(channel string, failed bool) {
	v := 0.0
	if failed {
		v = 1
	}
	m.channelFailed.WithLabelValues(channel).Set(v)
}

func (m *MetricsProvider) IncArchived(channel string) {
	m.archived.WithLabelValues(channel).Inc()
}

func (m *MetricsProvider) ObserveArchiveDuration(duration time.Duration) {
	m.archiveDuration.Observe(duration.Seconds())
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
			Name: "vcheck_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vcheck_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vcheck_cache_hits_total",
			Help: "Total number of decision cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vcheck_cache_misses_total",
			Help: "Total number of decision cache misses",
		}),

		decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vcheck_decisions_total",
			Help: "Update gate decisions by status",
		}, []string{"status"}),

		checkinsEnqueued: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vcheck_checkins_enqueued_total",
			Help: "Checkins accepted into a channel queue",
		}, []string{"channel"}),

		checkinsWritten: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vcheck_checkins_written_total",
			Help: "Checkin lines appended to daily log files",
		}, []string{"channel"}),

		checkinsDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vcheck_checkins_dropped_total",
			Help: "Checkins lost to a write failure or an expired shutdown grace period",
		}, []string{"channel"}),

		rotations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vcheck_log_rotations_total",
			Help: "Daily log file rotations",
		}, []string{"channel"}),

		queueDepth: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vcheck_queue_depth",
			Help: "Checkins waiting to be written",
		}, []string{"channel"}),

		channelFailed: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vcheck_channel_failed",
			Help: "1 when the channel writer stopped on a filesystem error",
		}, []string{"channel"}),

		archived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vcheck_archived_files_total",
			Help: "Daily log files compressed by the archiver",
		}, []string{"channel"}),

		archiveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vcheck_archive_duration_seconds",
			Help:    "Duration of archive sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncDecisions(_ string)                            {}
func (n *noopMetrics) IncCheckinsEnqueued(_ string)                     {}
func (n *noopMetrics) IncCheckinsWritten(_ string)                      {}
func (n *noopMetrics) AddCheckinsDropped(_ string, _ int)               {}
func (n *noopMetrics) IncRotations(_ string)                            {}
func (n *noopMetrics) SetQueueDepth(_ string, _ int)                    {}
func (n *noopMetrics) SetChannelFailed(_ string, _ bool)                {}
func (n *noopMetrics) IncArchived(_ string)                             {}
func (n *noopMetrics) ObserveArchiveDuration(_ time.Duration)           {}
