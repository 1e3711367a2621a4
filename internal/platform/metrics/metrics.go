package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del cliente de catálogo.
//
// Cada instancia usa su propio Registry para que los tests puedan crear
// varias sin el panic de "duplicate metrics collector registration".
//
//   - catalog_remote_requests_total{operation,outcome}
//   - catalog_remote_request_duration_seconds{operation}
//   - catalog_store_busy
//   - catalog_cached_records
type Metrics struct {
	Registry *prometheus.Registry

	RemoteRequests *prometheus.CounterVec
	RemoteDuration *prometheus.HistogramVec
	Busy           prometheus.Gauge
	CachedRecords  prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		RemoteRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_remote_requests_total",
				Help: "Requests issued to the remote pet store",
			},
			[]string{"operation", "outcome"},
		),
		RemoteDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_remote_request_duration_seconds",
				Help:    "Latency of remote pet store requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Busy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_store_busy",
			Help: "1 while any record store request is outstanding",
		}),
		CachedRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_cached_records",
			Help: "Records currently held in the in-memory cache",
		}),
	}
	reg.MustRegister(m.RemoteRequests, m.RemoteDuration, m.Busy, m.CachedRecords)
	return m
}

// ObserveRemote registra una llamada al store remoto.
// outcome: ok | not_found | rate_limited | error
func (m *Metrics) ObserveRemote(operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RemoteRequests.WithLabelValues(operation, outcome).Inc()
	m.RemoteDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (m *Metrics) SetBusy(busy bool) {
	if m == nil {
		return
	}
	if busy {
		m.Busy.Set(1)
		return
	}
	m.Busy.Set(0)
}

func (m *Metrics) SetCached(n int) {
	if m == nil {
		return
	}
	m.CachedRecords.Set(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
