// Package orchestrator assembles composite company reports. It resolves the
// registry identifier first, then fans out to every source adapter at once.
// A failing or slow adapter only empties its own slot.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"companyintel/internal/intel/cache"
	"companyintel/internal/intel/metrics"
	"companyintel/internal/intel/models"
)

// FilingsSource is the securities-filings registry.
type FilingsSource interface {
	Search(ctx context.Context, query string) ([]models.Candidate, error)
	Company(ctx context.Context, id models.RegistryID) (*models.CompanyIdentity, error)
	Financials(ctx context.Context, id models.RegistryID) (*models.FinancialSeries, error)
}

// ComplaintsSource is the consumer-complaint registry.
type ComplaintsSource interface {
	Fetch(ctx context.Context, name string) (*models.ComplaintSummary, error)
}

// EnvironmentalSource is the environmental-compliance registry.
type EnvironmentalSource interface {
	Fetch(ctx context.Context, name string) (*models.EnvironmentalSummary, error)
}

// SafetySource is the workplace-safety registry.
type SafetySource interface {
	Fetch(ctx context.Context, name string) (*models.SafetySummary, error)
}

// PatentsSource is the patent/trademark registry.
type PatentsSource interface {
	Fetch(ctx context.Context, name string) (*models.IPSummary, error)
}

// BankingSource is the banking-health registry.
type BankingSource interface {
	Fetch(ctx context.Context, name string) (*models.BankingSummary, error)
}

// Sources groups the adapters the orchestrator fans out to. All are required.
type Sources struct {
	Filings       FilingsSource
	Complaints    ComplaintsSource
	Environmental EnvironmentalSource
	Safety        SafetySource
	Patents       PatentsSource
	Banking       BankingSource
}

func (s Sources) validate() error {
	switch {
	case s.Filings == nil:
		return fmt.Errorf("filings source is required")
	case s.Complaints == nil:
		return fmt.Errorf("complaints source is required")
	case s.Environmental == nil:
		return fmt.Errorf("environmental source is required")
	case s.Safety == nil:
		return fmt.Errorf("safety source is required")
	case s.Patents == nil:
		return fmt.Errorf("patents source is required")
	case s.Banking == nil:
		return fmt.Errorf("banking source is required")
	}
	return nil
}

const (
	DefaultAdapterTimeout = 15 * time.Second

	// MinSearchLength is the shortest query, in runes, that reaches the registry.
	MinSearchLength = 2
)

// Orchestrator builds composite reports and candidate searches.
type Orchestrator struct {
	sources        Sources
	cache          *cache.Cache
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	adapterTimeout time.Duration
	reportTTL      time.Duration
	searchTTL      time.Duration
}

type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithAdapterTimeout bounds every adapter branch independently.
func WithAdapterTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.adapterTimeout = d
		}
	}
}

func WithReportTTL(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.reportTTL = d
		}
	}
}

func WithSearchTTL(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.searchTTL = d
		}
	}
}

// New creates an orchestrator over sources, storing results in c.
func New(sources Sources, c *cache.Cache, opts ...Option) (*Orchestrator, error) {
	if err := sources.validate(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("cache is required")
	}

	o := &Orchestrator{
		sources:        sources,
		cache:          c,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:         otel.Tracer("companyintel/orchestrator"),
		adapterTimeout: DefaultAdapterTimeout,
		reportTTL:      cache.DefaultReportTTL,
		searchTTL:      cache.DefaultSearchTTL,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}
