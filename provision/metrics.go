package provision

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts provisioning outcomes. A nil *Metrics records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	buckets *prometheus.CounterVec
	folders *prometheus.CounterVec
	lastRun prometheus.Gauge
}

// NewMetrics registers the provisioning collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		buckets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "create_s3_buckets",
			Name:      "bucket_requests_total",
			Help:      "Create-bucket requests by outcome.",
		}, []string{"status"}),
		folders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "create_s3_buckets",
			Name:      "folder_markers_total",
			Help:      "Folder marker writes by outcome.",
		}, []string{"result"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "create_s3_buckets",
			Name:      "last_run_success",
			Help:      "1 if the last run provisioned everything, else 0.",
		}),
	}
	m.Registry.MustRegister(m.buckets, m.folders, m.lastRun)
	return m
}

func (m *Metrics) observeBucket(s Status) {
	if m == nil {
		return
	}
	m.buckets.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) observeFolder(r FolderResult) {
	if m == nil {
		return
	}
	switch {
	case r.Skipped:
		m.folders.WithLabelValues("skipped").Inc()
	case r.Err != nil:
		m.folders.WithLabelValues("failed").Inc()
	default:
		m.folders.WithLabelValues("created").Inc()
	}
}

func (m *Metrics) observeRun(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.lastRun.Set(1)
	} else {
		m.lastRun.Set(0)
	}
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
