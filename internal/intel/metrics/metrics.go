package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Branch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Metrics provides observability for the aggregation pipeline.
type Metrics struct {
	// Adapter branch latencies by source
	BranchLatency *prometheus.HistogramVec

	// Adapter branch outcomes by source, outcome and error category
	BranchOutcome *prometheus.CounterVec

	// Cache lookups by namespace and result
	CacheLookups *prometheus.CounterVec

	// Reports built, by grade
	Reports *prometheus.CounterVec

	// Full report latency including fan-out
	ReportLatency prometheus.Histogram
}

var (
	once    sync.Once
	metrics *Metrics
)

// New returns the process-wide pipeline metrics, registering them on first use.
func New() *Metrics {
	once.Do(func() {
		metrics = &Metrics{
			BranchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "companyintel_adapter_duration_seconds",
				Help:    "Duration of upstream adapter calls by source",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
			}, []string{"source"}),

			BranchOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "companyintel_adapter_outcomes_total",
				Help: "Adapter branch outcomes by source",
			}, []string{"source", "outcome", "category"}),

			CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "companyintel_cache_lookups_total",
				Help: "Result cache lookups by namespace and result",
			}, []string{"namespace", "result"}), // result: "hit", "miss"

			Reports: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "companyintel_reports_total",
				Help: "Composite reports built by trust grade",
			}, []string{"grade"}),

			ReportLatency: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "companyintel_report_duration_seconds",
				Help:    "Duration of full report assembly on cache miss",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
			}),
		}
	})
	return metrics
}

// ObserveBranch records one adapter branch. category is empty unless the outcome is a failure.
func (m *Metrics) ObserveBranch(source, outcome, category string, d time.Duration) {
	if m == nil {
		return
	}
	if outcome != OutcomeSkipped {
		m.BranchLatency.WithLabelValues(source).Observe(d.Seconds())
	}
	m.BranchOutcome.WithLabelValues(source, outcome, category).Inc()
}

// IncrementCacheLookup records a cache hit or miss.
func (m *Metrics) IncrementCacheLookup(namespace string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(namespace, result).Inc()
}

// ObserveReport records a freshly built report.
func (m *Metrics) ObserveReport(grade string, d time.Duration) {
	if m == nil {
		return
	}
	m.Reports.WithLabelValues(grade).Inc()
	m.ReportLatency.Observe(d.Seconds())
}
