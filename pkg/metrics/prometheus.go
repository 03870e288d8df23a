package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	missingCells *prometheus.CounterVec
	anomalies    *prometheus.CounterVec
	rowsRemoved  *prometheus.CounterVec
	rowsExported *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	calendarSize prometheus.Gauge
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		missingCells: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finweave_missing_cells_total",
				Help: "Total null OHLCV cells detected before cleaning",
			},
			[]string{"symbol"},
		),
		anomalies: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finweave_anomalies_total",
				Help: "Total OHLC inconsistencies detected",
			},
			[]string{"symbol", "kind"},
		),
		rowsRemoved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finweave_rows_removed_total",
				Help: "Rows dropped during cleaning for lack of a usable close",
			},
			[]string{"symbol"},
		),
		rowsExported: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finweave_rows_exported_total",
				Help: "Master table rows handed to the export backend",
			},
			[]string{"backend"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finweave_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		calendarSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "finweave_master_calendar_dates",
				Help: "Distinct dates in the latest master calendar",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finweave_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
	}
}

// RecordMissingCells records null cells found for a symbol.
func (r *Recorder) RecordMissingCells(symbol string, n int) {
	r.missingCells.WithLabelValues(symbol).Add(float64(n))
}

// RecordAnomalies records detected inconsistencies of one kind for a symbol.
func (r *Recorder) RecordAnomalies(symbol, kind string, n int) {
	r.anomalies.WithLabelValues(symbol, kind).Add(float64(n))
}

// RecordRowsRemoved records rows dropped during cleaning for a symbol.
func (r *Recorder) RecordRowsRemoved(symbol string, n int) {
	r.rowsRemoved.WithLabelValues(symbol).Add(float64(n))
}

// RecordRowsExported records master rows handed to a backend.
func (r *Recorder) RecordRowsExported(backend string, n int) {
	r.rowsExported.WithLabelValues(backend).Add(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordCalendarSize records the latest master calendar length.
func (r *Recorder) RecordCalendarSize(n int) {
	r.calendarSize.Set(float64(n))
}

// RecordLatency records stage latency in seconds.
func (r *Recorder) RecordLatency(stage string, seconds float64) {
	r.latency.WithLabelValues(stage).Observe(seconds)
}
