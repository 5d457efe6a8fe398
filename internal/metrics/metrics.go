// Package metrics records per-run conversion counters for the node-exporter
// textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gridloc"

// Recorder holds the metrics of a single conversion run on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	RowsRead       prometheus.Counter
	RecordsWritten prometheus.Counter
	RowsSkipped    *prometheus.CounterVec // labels: reason={blank_text,bad_number}
	RunDuration    prometheus.Gauge
	OutputBytes    prometheus.Gauge
	LastSuccess    prometheus.Gauge
}

// New creates a Recorder with all metrics registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_read_total",
			Help:      "Data rows read from the input spreadsheet.",
		}),
		RecordsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_written_total",
			Help:      "Location records written to the JSON artifact.",
		}),
		RowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped_total",
			Help:      "Rows excluded from the artifact, by reason.",
		}, []string{"reason"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last conversion run.",
		}),
		OutputBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_bytes",
			Help:      "Size of the JSON artifact written by the last run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
	}

	r.registry.MustRegister(
		r.RowsRead,
		r.RecordsWritten,
		r.RowsSkipped,
		r.RunDuration,
		r.OutputBytes,
		r.LastSuccess,
	)

	return r
}

// ObserveSuccess records a completed run that finished at end.
func (r *Recorder) ObserveSuccess(duration time.Duration, outputBytes int64, end time.Time) {
	r.RunDuration.Set(duration.Seconds())
	r.OutputBytes.Set(float64(outputBytes))
	r.LastSuccess.Set(float64(end.Unix()))
}

// Gatherer exposes the run registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the registry in text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
