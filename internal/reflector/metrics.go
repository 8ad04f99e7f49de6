package reflector

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes reflector activity as Prometheus collectors. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	listTotal    *prometheus.CounterVec
	listDuration prometheus.Histogram
	deltasTotal  *prometheus.CounterVec
	snapshotSize prometheus.Gauge
}

// NewMetrics creates the collectors for the reflector called name and
// registers them with reg.
func NewMetrics(reg prometheus.Registerer, name string) (*Metrics, error) {
	constLabels := prometheus.Labels{"reflector": name}

	m := &Metrics{
		listTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "informers",
			Subsystem:   "reflector",
			Name:        "list_total",
			Help:        "Number of list calls by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		listDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "informers",
			Subsystem:   "reflector",
			Name:        "list_duration_seconds",
			Help:        "Duration of list calls.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}),
		deltasTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "informers",
			Subsystem:   "reflector",
			Name:        "deltas_total",
			Help:        "Number of deltas emitted by type.",
			ConstLabels: constLabels,
		}, []string{"type"}),
		snapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "informers",
			Subsystem:   "reflector",
			Name:        "snapshot_objects",
			Help:        "Number of objects in the current snapshot.",
			ConstLabels: constLabels,
		}),
	}

	for _, c := range []prometheus.Collector{m.listTotal, m.listDuration, m.deltasTotal, m.snapshotSize} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register reflector metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Metrics) observeList(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.listTotal.WithLabelValues(result).Inc()
	m.listDuration.Observe(d.Seconds())
}

func (m *Metrics) observeDelta(t DeltaType) {
	if m == nil {
		return
	}
	m.deltasTotal.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) setSnapshotSize(n int) {
	if m == nil {
		return
	}
	m.snapshotSize.Set(float64(n))
}
