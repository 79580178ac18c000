package telegram

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons recorded by the handler.
const (
	RejectionUnauthorized = "unauthorized"
	RejectionNoLink       = "no_link"
)

// UpdateMetricsRecorder records handler-level metrics about processed updates.
// The interface keeps the handler testable without a live Prometheus registry.
type UpdateMetricsRecorder interface {
	// RecordUpdate increments the received-update counter.
	RecordUpdate()

	// RecordRejection increments the rejection counter for the given reason.
	RecordRejection(reason string)

	// RecordChunksSent adds the number of message chunks delivered for one summary.
	RecordChunksSent(count int)
}

// PrometheusUpdateMetrics implements UpdateMetricsRecorder using Prometheus.
type PrometheusUpdateMetrics struct {
	updatesCounter    prometheus.Counter
	rejectionsCounter *prometheus.CounterVec
	chunksCounter     prometheus.Counter
}

var (
	updateMetricsInstance *PrometheusUpdateMetrics
	updateMetricsOnce     sync.Once
)

// NewPrometheusUpdateMetrics creates the Prometheus-backed recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusUpdateMetrics() *PrometheusUpdateMetrics {
	updateMetricsOnce.Do(func() {
		updateMetricsInstance = &PrometheusUpdateMetrics{
			updatesCounter: promauto.NewCounter(prometheus.CounterOpts{
				Name: "bot_updates_received_total",
				Help: "Total number of Telegram updates received",
			}),
			rejectionsCounter: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "bot_updates_rejected_total",
				Help: "Total number of updates rejected before summarization",
			}, []string{"reason"}),
			chunksCounter: promauto.NewCounter(prometheus.CounterOpts{
				Name: "bot_summary_chunks_sent_total",
				Help: "Total number of summary message chunks sent to chats",
			}),
		}
	})
	return updateMetricsInstance
}

// RecordUpdate implements UpdateMetricsRecorder.RecordUpdate
func (p *PrometheusUpdateMetrics) RecordUpdate() {
	p.updatesCounter.Inc()
}

// RecordRejection implements UpdateMetricsRecorder.RecordRejection
func (p *PrometheusUpdateMetrics) RecordRejection(reason string) {
	p.rejectionsCounter.WithLabelValues(reason).Inc()
}

// RecordChunksSent implements UpdateMetricsRecorder.RecordChunksSent
func (p *PrometheusUpdateMetrics) RecordChunksSent(count int) {
	p.chunksCounter.Add(float64(count))
}
