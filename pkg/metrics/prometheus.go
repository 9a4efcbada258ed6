package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	gamesIngested  *prometheus.CounterVec
	recordsDropped *prometheus.CounterVec
	opportunities  *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		gamesIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddspull_games_ingested_total",
				Help: "Total number of normalized games ingested",
			},
			[]string{"sport"},
		),
		recordsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddspull_records_dropped_total",
				Help: "Records dropped during normalization and cleaning",
			},
			[]string{"stage"},
		),
		opportunities: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddspull_opportunities_total",
				Help: "Betting opportunities found, by kind",
			},
			[]string{"kind"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddspull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "oddspull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordGamesIngested records games that survived cleaning for a sport.
func (r *Recorder) RecordGamesIngested(sport string, n int) {
	r.gamesIngested.WithLabelValues(sport).Add(float64(n))
}

// RecordRecordsDropped records rows lost at a pipeline stage.
func (r *Recorder) RecordRecordsDropped(stage string, n int) {
	r.recordsDropped.WithLabelValues(stage).Add(float64(n))
}

// RecordOpportunity records one found opportunity by kind (ev, arbitrage).
func (r *Recorder) RecordOpportunity(kind string) {
	r.opportunities.WithLabelValues(kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
