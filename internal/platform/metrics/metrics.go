package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level Prometheus metrics for the service.
type Metrics struct {
	RequestLatency  *prometheus.HistogramVec
	RequestsTotal   *prometheus.CounterVec
	PanicsRecovered prometheus.Counter
}

var (
	once     sync.Once
	instance *Metrics
)

// New returns the process-wide HTTP metrics, registering them on first use.
func New() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "companyintel_http_request_duration_seconds",
				Help:    "Latency of HTTP requests by route and method",
				Buckets: prometheus.DefBuckets,
			}, []string{"route", "method"}),
			RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "companyintel_http_requests_total",
				Help: "Total HTTP requests by route, method and status",
			}, []string{"route", "method", "status"}),
			PanicsRecovered: promauto.NewCounter(prometheus.CounterOpts{
				Name: "companyintel_http_panics_recovered_total",
				Help: "Total handler panics recovered by middleware",
			}),
		}
	})
	return instance
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestLatency.WithLabelValues(route, method).Observe(d.Seconds())
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
}

// IncrementPanicsRecovered increments the recovered panic counter by 1.
func (m *Metrics) IncrementPanicsRecovered() {
	if m == nil {
		return
	}
	m.PanicsRecovered.Inc()
}
