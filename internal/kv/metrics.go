package kv

import "github.com/prometheus/client_golang/prometheus"

const (
	labelBlob = "blob"

	resultOK    = "ok"
	resultQuota = "quota_exceeded"
	resultError = "error"
)

// Metrics holds the substrate's Prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	reads        *prometheus.CounterVec
	writes       *prometheus.CounterVec
	decodeErrors *prometheus.CounterVec
	bytesUsed    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewear",
			Subsystem: "kv",
			Name:      "reads_total",
			Help:      "Substrate reads by collection key.",
		}, []string{"key"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewear",
			Subsystem: "kv",
			Name:      "writes_total",
			Help:      "Substrate writes by collection key and result.",
		}, []string{"key", "result"}),
		decodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewear",
			Subsystem: "kv",
			Name:      "decode_errors_total",
			Help:      "Stored values that could not be decoded and were read as empty.",
		}, []string{"key"}),
		bytesUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rewear",
			Subsystem: "kv",
			Name:      "bytes_used",
			Help:      "Bytes counted against the storage quota after the last write.",
		}),
	}
	reg.MustRegister(m.reads, m.writes, m.decodeErrors, m.bytesUsed)
	return m
}

func (m *Metrics) read(key string) {
	if m == nil {
		return
	}
	m.reads.WithLabelValues(key).Inc()
}

func (m *Metrics) write(key, result string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(key, result).Inc()
}

func (m *Metrics) decodeError(key string) {
	if m == nil {
		return
	}
	m.decodeErrors.WithLabelValues(key).Inc()
}
