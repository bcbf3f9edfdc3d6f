// file: internal/metrics/metrics.go
// version: 2.1.0
// guid: d6cb0e26-fa35-4338-b6e9-c84216c3cf84

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "music_organizer"

// Recorder collects the counters of one organizer or undo run in its own
// registry. A nil *Recorder discards everything.
type Recorder struct {
	registry *prometheus.Registry

	files         *prometheus.CounterVec
	metadataReads *prometheus.CounterVec
	restores      *prometheus.CounterVec
	bytesMoved    prometheus.Counter
	playlists     prometheus.Counter
	runDuration   *prometheus.GaugeVec
}

// New creates a recorder with every metric registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Files processed by terminal outcome",
		}, []string{"outcome"}),
		metadataReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "metadata_reads_total",
			Help:      "Metadata reads by result kind (ok or fallback)",
		}, []string{"kind"}),
		restores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undo_records_total",
			Help:      "Undo log records by result",
		}, []string{"result"}),
		bytesMoved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moved_bytes_total",
			Help:      "Bytes of audio moved",
		}),
		playlists: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "playlists_written_total",
			Help:      "Playlist manifests written",
		}),
		runDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run by operation",
		}, []string{"operation"}),
	}
	r.registry.MustRegister(r.files, r.metadataReads, r.restores, r.bytesMoved, r.playlists, r.runDuration)
	return r
}

// Gatherer exposes the recorder's registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the metrics in Prometheus text format, for node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// ObserveFile counts a file by its terminal outcome.
func (r *Recorder) ObserveFile(outcome string) {
	if r == nil {
		return
	}
	r.files.WithLabelValues(outcome).Inc()
}

// ObserveMetadata counts a metadata read by result kind.
func (r *Recorder) ObserveMetadata(kind string) {
	if r == nil {
		return
	}
	r.metadataReads.WithLabelValues(kind).Inc()
}

// ObserveRestore counts an undo record by what happened to it.
func (r *Recorder) ObserveRestore(result string) {
	if r == nil {
		return
	}
	r.restores.WithLabelValues(result).Inc()
}

// AddBytesMoved adds n to the moved byte total.
func (r *Recorder) AddBytesMoved(n int64) {
	if r == nil || n <= 0 {
		return
	}
	r.bytesMoved.Add(float64(n))
}

// IncPlaylists counts one written playlist.
func (r *Recorder) IncPlaylists() {
	if r == nil {
		return
	}
	r.playlists.Inc()
}

// ObserveRunDuration records how long an organize or undo run took.
func (r *Recorder) ObserveRunDuration(operation string, d time.Duration) {
	if r == nil {
		return
	}
	r.runDuration.WithLabelValues(operation).Set(d.Seconds())
}
