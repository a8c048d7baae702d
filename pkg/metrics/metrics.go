// Package metrics provides Prometheus metrics for the Clover service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DispositionsTotal tracks call dispositions by outcome
	DispositionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "dialing",
			Name:      "dispositions_total",
			Help:      "Total number of call dispositions by outcome",
		},
		[]string{"agency_id", "outcome"},
	)

	// DialReadyLeadsReturned tracks dial-ready queue sizes handed to agents
	DialReadyLeadsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clover",
			Subsystem: "dialing",
			Name:      "dial_ready_leads_returned",
			Help:      "Number of leads returned per dial-ready request",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 40, 50},
		},
	)

	// LeadsCreatedTotal tracks lead creation by source
	LeadsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "leads",
			Name:      "created_total",
			Help:      "Total number of leads created by source",
		},
		[]string{"agency_id", "source"},
	)

	// LeadImportsTotal tracks batch lead import results
	LeadImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "imports",
			Name:      "leads_total",
			Help:      "Total number of imported leads by status",
		},
		[]string{"agency_id", "status"},
	)

	// KafkaMessagesPublished tracks Kafka messages published
	KafkaMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "kafka",
			Name:      "messages_published_total",
			Help:      "Total number of messages published to Kafka",
		},
		[]string{"topic", "status"},
	)

	// KafkaPublishDuration tracks Kafka publish duration
	KafkaPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clover",
			Subsystem: "kafka",
			Name:      "publish_duration_seconds",
			Help:      "Duration of Kafka publish operations in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
	)

	// StatsCacheHits tracks dashboard stats cache lookups
	StatsCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clover",
			Subsystem: "dashboard",
			Name:      "stats_cache_lookups_total",
			Help:      "Total number of dashboard stats cache lookups by result",
		},
		[]string{"result"},
	)
)

// RecordDisposition records a resolved call disposition
func RecordDisposition(agencyID, outcome string) {
	DispositionsTotal.WithLabelValues(agencyID, outcome).Inc()
}

// RecordKafkaPublish records a Kafka publish operation
func RecordKafkaPublish(topic, status string, durationSeconds float64) {
	KafkaMessagesPublished.WithLabelValues(topic, status).Inc()
	KafkaPublishDuration.Observe(durationSeconds)
}
