// Package metrics provides Prometheus instrumentation for DTAUS parse and
// write sessions.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ssargent/dtaus/pkg/codec"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for DTAUS processing. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	// Record metrics
	recordsTotal        *prometheus.CounterVec
	recordsWrittenTotal *prometheus.CounterVec

	// Logical file metrics
	logicalFilesTotal *prometheus.CounterVec

	// Tolerance metrics
	toleranceWarningsTotal *prometheus.CounterVec

	// Byte counters
	bytesReadTotal    prometheus.Counter
	bytesWrittenTotal prometheus.Counter

	// Parse session metrics
	parseDuration    *prometheus.HistogramVec
	parseErrorsTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		recordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dtaus_records_total",
				Help: "Total number of records decoded",
			},
			[]string{"type"},
		),

		recordsWrittenTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dtaus_records_written_total",
				Help: "Total number of records encoded and written",
			},
			[]string{"type"},
		),

		logicalFilesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dtaus_logical_files_total",
				Help: "Total number of logical files decoded, by header direction flag",
			},
			[]string{"direction"},
		),

		toleranceWarningsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dtaus_tolerance_warnings_total",
				Help: "Total number of non-conformant fields accepted under the tolerance policy",
			},
			[]string{"kind"},
		),

		bytesReadTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dtaus_bytes_read_total",
				Help: "Total number of record bytes read",
			},
		),

		bytesWrittenTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "dtaus_bytes_written_total",
				Help: "Total number of record bytes written",
			},
		),

		parseDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dtaus_parse_duration_seconds",
				Help:    "Duration of a complete stream parse in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),

		parseErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dtaus_parse_errors_total",
				Help: "Total number of failed parses, by error kind",
			},
			[]string{"kind"},
		),
	}

	return m
}

// RecordRecord records a decoded record
func (m *Metrics) RecordRecord(rt codec.RecordType, size int) {
	if m == nil {
		return
	}
	m.recordsTotal.WithLabelValues(rt.String()).Inc()
	m.bytesReadTotal.Add(float64(size))
}

// RecordWrittenRecord records an encoded record
func (m *Metrics) RecordWrittenRecord(rt codec.RecordType, size int) {
	if m == nil {
		return
	}
	m.recordsWrittenTotal.WithLabelValues(rt.String()).Inc()
	m.bytesWrittenTotal.Add(float64(size))
}

// RecordLogicalFile records a sealed logical file
func (m *Metrics) RecordLogicalFile(direction codec.Direction) {
	if m == nil {
		return
	}
	m.logicalFilesTotal.WithLabelValues(string(direction)).Inc()
}

// RecordWarning records an accepted deviation
func (m *Metrics) RecordWarning(kind codec.ErrorKind) {
	if m == nil {
		return
	}
	m.toleranceWarningsTotal.WithLabelValues(label(kind)).Inc()
}

// ObserveParse records the outcome of a parse session
func (m *Metrics) ObserveParse(duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := statusSuccess
	if err != nil {
		status = statusError
		m.parseErrorsTotal.WithLabelValues(label(codec.KindOf(err))).Inc()
	}
	m.parseDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// label turns an error kind into a metric label such as "currency_flag_invalid".
func label(kind codec.ErrorKind) string {
	if kind == 0 {
		return "io"
	}
	return strings.ReplaceAll(kind.String(), " ", "_")
}
