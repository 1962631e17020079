package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsProcessed *prometheus.CounterVec
	fraudRuleHits         *prometheus.CounterVec
	alertsTriggered       *prometheus.CounterVec
	notificationOutcomes  *prometheus.CounterVec
	projectionDuration    prometheus.Histogram
	authEventsTotal       *prometheus.CounterVec
}

func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		transactionsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_processed_total",
				Help: "Total number of transactions processed",
			},
			[]string{"verdict"},
		),
		fraudRuleHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_fraud_rule_hits_total",
				Help: "Total number of fraud rule matches by rule",
			},
			[]string{"rule"},
		),
		alertsTriggered: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_alerts_triggered_total",
				Help: "Total number of alert rules triggered by kind",
			},
			[]string{"kind"},
		),
		notificationOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_notification_dispatch_total",
				Help: "Notification dispatch outcomes by status",
			},
			[]string{"status"},
		),
		projectionDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ledger_projection_duration_milliseconds",
				Help:    "Balance projection duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		authEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_authentication_events_total",
				Help: "Authentication events by type and result",
			},
			[]string{"event", "result"},
		),
	}
}

func (m *PrometheusMetrics) RecordTransactionProcessed(fraud bool) {
	verdict := "clean"
	if fraud {
		verdict = "fraud"
	}
	m.transactionsProcessed.WithLabelValues(verdict).Inc()
}

func (m *PrometheusMetrics) RecordFraudRuleHit(rule string) {
	m.fraudRuleHits.WithLabelValues(rule).Inc()
}

func (m *PrometheusMetrics) RecordAlertTriggered(kind string) {
	m.alertsTriggered.WithLabelValues(kind).Inc()
}

func (m *PrometheusMetrics) RecordNotificationOutcome(status string) {
	m.notificationOutcomes.WithLabelValues(status).Inc()
}

func (m *PrometheusMetrics) ObserveProjectionDuration(d time.Duration) {
	m.projectionDuration.Observe(float64(d.Milliseconds()))
}

func (m *PrometheusMetrics) RecordAuthEvent(event, result string) {
	m.authEventsTotal.WithLabelValues(event, result).Inc()
}
