package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beacon_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Ingestion metrics
	IngestEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_ingest_events_total",
			Help: "Total number of events received",
		},
		[]string{"business_id", "status"}, // status: accepted, rejected
	)

	IngestValidationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_ingest_validation_errors_total",
			Help: "Total number of payload validation errors",
		},
		[]string{"reason"}, // reason: missing_field, type_mismatch
	)

	// Rule engine metrics
	RuleEvaluationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_rule_evaluations_total",
			Help: "Total number of rule condition evaluations",
		},
	)

	RuleMatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_rule_matches_total",
			Help: "Total number of rule conditions that matched an event",
		},
	)

	CooldownSuppressedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_cooldown_suppressed_total",
			Help: "Total number of rule matches suppressed by an active cooldown",
		},
	)

	// Alert metrics
	AlertsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_alerts_generated_total",
			Help: "Total number of alerts generated by the pipeline",
		},
		[]string{"severity"},
	)

	AlertsAcknowledgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_alerts_acknowledged_total",
			Help: "Total number of alert acknowledgements",
		},
	)

	// Notifier metrics
	NotifierPublishTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_notifier_publish_total",
			Help: "Total number of alert notifications published to Kafka",
		},
		[]string{"status"}, // status: success, failed
	)

	NotifierPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "beacon_notifier_publish_duration_seconds",
			Help:    "Time taken to publish an alert notification",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	NotifierBytesWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "beacon_notifier_bytes_written_total",
			Help: "Total bytes written to the notification topic",
		},
	)

	// Panic recovery
	PanicsRecovered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beacon_panics_recovered_total",
			Help: "Total number of panics recovered",
		},
		[]string{"component"},
	)
)
