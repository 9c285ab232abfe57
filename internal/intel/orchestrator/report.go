package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"companyintel/internal/intel/cache"
	"companyintel/internal/intel/metrics"
	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
	"companyintel/internal/intel/scoring"
	dErrors "companyintel/pkg/domain-errors"
	"companyintel/pkg/requestcontext"
)

// ReportKey is the cache key for a report request.
func ReportKey(name string, id models.RegistryID) string {
	return cache.NamespaceReport + strings.ToLower(name) + ":" + id.String()
}

// Report builds, or returns the cached, composite report for the named company.
// rawID is an optional registry identifier; when empty the first search
// candidate is adopted. Only request validation fails the call.
func (o *Orchestrator) Report(ctx context.Context, name, rawID string) (*models.CompositeReport, error) {
	return o.report(ctx, name, rawID, true)
}

// Refresh rebuilds the report without reading the cache and replaces the
// cached entry. The previous entry keeps serving until the rebuild finishes.
func (o *Orchestrator) Refresh(ctx context.Context, name, rawID string) (*models.CompositeReport, error) {
	return o.report(ctx, name, rawID, false)
}

func (o *Orchestrator) report(ctx context.Context, name, rawID string, useCache bool) (*models.CompositeReport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "company name is required")
	}
	var id models.RegistryID
	if raw := strings.TrimSpace(rawID); raw != "" {
		parsed, err := models.ParseRegistryID(raw)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeValidation, "cik must be 1 to 10 digits")
		}
		id = parsed
	}

	key := ReportKey(name, id)
	if useCache {
		if report, ok := cache.GetAs[*models.CompositeReport](o.cache, key); ok {
			o.metrics.IncrementCacheLookup(cache.NamespaceReport, true)
			return report, nil
		}
		o.metrics.IncrementCacheLookup(cache.NamespaceReport, false)
	}

	ctx, span := o.tracer.Start(ctx, "orchestrator.Report", trace.WithAttributes(
		attribute.String("company.name", name),
		attribute.String("company.cik", id.String()),
	))
	defer span.End()
	start := time.Now()

	var candidates []models.Candidate
	if id.IsZero() {
		candidates = o.resolve(ctx, name)
		if len(candidates) > 0 {
			id = candidates[0].RegistryID
		}
	}
	span.SetAttributes(attribute.String("company.resolved_cik", id.String()))

	report := o.collect(ctx, name, id)
	report.Candidates = candidates
	report.Availability = report.ComputeAvailability()
	report.GeneratedAt = requestcontext.Now(ctx)
	report.TrustScore = scoring.Calculate(report.GeneratedAt, report.Filings, report.Complaints, report.Environmental, report.Safety)

	// Slots emptied by the caller's own cancellation must not be cached.
	if err := ctx.Err(); err != nil {
		o.logger.WarnContext(ctx, "company report not cached",
			"request_id", requestcontext.RequestID(ctx),
			"company", name,
			"error", err,
		)
		return report, nil
	}
	o.cache.Set(key, report, o.reportTTL)
	o.metrics.ObserveReport(string(report.TrustScore.Grade), time.Since(start))
	o.logger.InfoContext(ctx, "company report built",
		"request_id", requestcontext.RequestID(ctx),
		"company", name,
		"cik", id.String(),
		"overall", report.TrustScore.Overall,
		"grade", report.TrustScore.Grade,
	)
	return report, nil
}

// resolve searches for name under the adapter timeout.
func (o *Orchestrator) resolve(ctx context.Context, name string) []models.Candidate {
	ctx, cancel := context.WithTimeout(ctx, o.adapterTimeout)
	defer cancel()
	candidates, _ := o.Search(ctx, name)
	return candidates
}

// outcome is the tagged result of one adapter branch.
type outcome[T any] struct {
	value   *T
	err     error
	skipped bool
}

// collect fans out to every adapter. Branches write only their own outcome and
// always return nil, so one failure never cancels a sibling.
func (o *Orchestrator) collect(ctx context.Context, name string, id models.RegistryID) *models.CompositeReport {
	var (
		g             errgroup.Group
		company       outcome[models.CompanyIdentity]
		financials    outcome[models.FinancialSeries]
		complaints    outcome[models.ComplaintSummary]
		environmental outcome[models.EnvironmentalSummary]
		safety        outcome[models.SafetySummary]
		patents       outcome[models.IPSummary]
		banking       outcome[models.BankingSummary]
	)

	if id.IsZero() {
		company.skipped = true
		financials.skipped = true
	} else {
		launch(ctx, o, &g, models.SourceFilings, &company, func(ctx context.Context) (*models.CompanyIdentity, error) {
			return o.sources.Filings.Company(ctx, id)
		})
		launch(ctx, o, &g, models.SourceFinancials, &financials, func(ctx context.Context) (*models.FinancialSeries, error) {
			return o.sources.Filings.Financials(ctx, id)
		})
	}
	launch(ctx, o, &g, models.SourceComplaints, &complaints, func(ctx context.Context) (*models.ComplaintSummary, error) {
		return o.sources.Complaints.Fetch(ctx, name)
	})
	launch(ctx, o, &g, models.SourceEnvironmental, &environmental, func(ctx context.Context) (*models.EnvironmentalSummary, error) {
		return o.sources.Environmental.Fetch(ctx, name)
	})
	launch(ctx, o, &g, models.SourceSafety, &safety, func(ctx context.Context) (*models.SafetySummary, error) {
		return o.sources.Safety.Fetch(ctx, name)
	})
	launch(ctx, o, &g, models.SourcePatents, &patents, func(ctx context.Context) (*models.IPSummary, error) {
		return o.sources.Patents.Fetch(ctx, name)
	})
	launch(ctx, o, &g, models.SourceBanking, &banking, func(ctx context.Context) (*models.BankingSummary, error) {
		return o.sources.Banking.Fetch(ctx, name)
	})
	_ = g.Wait()

	if company.skipped {
		o.metrics.ObserveBranch(string(models.SourceFilings), metrics.OutcomeSkipped, "", 0)
		o.metrics.ObserveBranch(string(models.SourceFinancials), metrics.OutcomeSkipped, "", 0)
	}

	report := &models.CompositeReport{
		CompanyName:   name,
		RegistryID:    id,
		Filings:       company.value,
		Financials:    financials.value,
		Complaints:    complaints.value,
		Environmental: environmental.value,
		Safety:        safety.value,
		Patents:       patents.value,
		Banking:       banking.value,
	}
	if report.Filings != nil && report.Filings.Name != "" {
		report.CompanyName = report.Filings.Name
	}
	return report
}

// launch runs fn under its own timeout and span and records the outcome.
// A panic in fn is converted into an internal error for that branch only.
func launch[T any](ctx context.Context, o *Orchestrator, g *errgroup.Group, source models.Source, out *outcome[T], fn func(context.Context) (*T, error)) {
	g.Go(func() (err error) {
		ctx, cancel := context.WithTimeout(ctx, o.adapterTimeout)
		defer cancel()
		ctx, span := o.tracer.Start(ctx, "adapter."+string(source), trace.WithAttributes(attribute.String("source", string(source))))
		defer span.End()
		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				out.value = nil
				out.err = providers.NewProviderError(providers.ErrorInternal, string(source), "adapter panicked", fmt.Errorf("%v", r))
			}
			o.record(ctx, span, source, out.err, time.Since(start))
			err = nil
		}()

		value, fetchErr := fn(ctx)
		if fetchErr != nil {
			value = nil
		}
		out.value, out.err = value, fetchErr
		return nil
	})
}

func (o *Orchestrator) record(ctx context.Context, span trace.Span, source models.Source, err error, d time.Duration) {
	if err == nil {
		o.metrics.ObserveBranch(string(source), metrics.OutcomeSuccess, "", d)
		return
	}

	category := providers.GetCategory(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, string(category))
	o.metrics.ObserveBranch(string(source), metrics.OutcomeFailure, string(category), d)
	o.logger.WarnContext(ctx, "source unavailable",
		"request_id", requestcontext.RequestID(ctx),
		"source", source,
		"category", category,
		"error", err,
	)
}
