package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Tree Metrics
var (
	WaterAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWaterAttempts,
			Help: HelpTextWaterAttempts,
		},
		[]string{LabelOutcome},
	)

	HarvestAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHarvestAttempts,
			Help: HelpTextHarvestAttempts,
		},
		[]string{LabelOutcome},
	)

	WateredCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWateredCount,
			Help: HelpTextWateredCount,
		},
	)

	HarvestCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHarvestCount,
			Help: HelpTextHarvestCount,
		},
	)

	StorageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStorageErrors,
			Help: HelpTextStorageErrors,
		},
		[]string{LabelOperation},
	)

	StateCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameStateCacheHits,
			Help: HelpTextStateCacheHits,
		},
	)
)

// Message Board Metrics
var (
	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMessagesPosted,
			Help: HelpTextMessagesPosted,
		},
	)

	MessagesDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMessagesDeleted,
			Help: HelpTextMessagesDeleted,
		},
		[]string{LabelScope},
	)
)

// Event Stream Metrics
var (
	EventsBroadcast = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsBroadcast,
			Help: HelpTextEventsBroadcast,
		},
		[]string{LabelType},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSSEClients,
			Help: HelpTextSSEClients,
		},
	)
)

// ObserveTreeState mirrors the persisted counters into the gauges
func ObserveTreeState(wateredCount, harvestCount int) {
	WateredCount.Set(float64(wateredCount))
	HarvestCount.Set(float64(harvestCount))
}
