package orchestrator

//go:generate mockgen -source=orchestrator.go -destination=mocks/mocks.go -package=mocks FilingsSource,ComplaintsSource,EnvironmentalSource,SafetySource,PatentsSource,BankingSource

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"companyintel/internal/intel/cache"
	"companyintel/internal/intel/models"
	"companyintel/internal/intel/orchestrator/mocks"
	"companyintel/internal/intel/providers"
	dErrors "companyintel/pkg/domain-errors"
	"companyintel/pkg/requestcontext"
)

// =============================================================================
// Orchestrator Test Suite
// =============================================================================
// Justification for unit tests: the orchestrator owns request validation,
// identifier resolution, fan-out isolation and caching. Adapters are mocked so
// each branch can be failed, delayed or panicked independently.

var reportTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type OrchestratorSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	filings       *mocks.MockFilingsSource
	complaints    *mocks.MockComplaintsSource
	environmental *mocks.MockEnvironmentalSource
	safety        *mocks.MockSafetySource
	patents       *mocks.MockPatentsSource
	banking       *mocks.MockBankingSource
	cache         *cache.Cache
	spans         *tracetest.SpanRecorder
	orchestrator  *Orchestrator
	ctx           context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.filings = mocks.NewMockFilingsSource(s.ctrl)
	s.complaints = mocks.NewMockComplaintsSource(s.ctrl)
	s.environmental = mocks.NewMockEnvironmentalSource(s.ctrl)
	s.safety = mocks.NewMockSafetySource(s.ctrl)
	s.patents = mocks.NewMockPatentsSource(s.ctrl)
	s.banking = mocks.NewMockBankingSource(s.ctrl)
	s.cache = cache.New()
	s.spans = tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans))

	var err error
	s.orchestrator, err = New(s.sources(), s.cache,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithTracer(provider.Tracer("test")),
		WithAdapterTimeout(200*time.Millisecond),
	)
	s.Require().NoError(err)
	s.ctx = requestcontext.WithTime(requestcontext.WithRequestID(context.Background(), "req-1"), reportTime)
}

func (s *OrchestratorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorSuite) sources() Sources {
	return Sources{
		Filings:       s.filings,
		Complaints:    s.complaints,
		Environmental: s.environmental,
		Safety:        s.safety,
		Patents:       s.patents,
		Banking:       s.banking,
	}
}

var (
	acmeID       = models.MustRegistryID("320193")
	acmeIdentity = &models.CompanyIdentity{
		RegistryID:    acmeID,
		Name:          "ACME CORPORATION",
		RecentFilings: []models.Filing{{Form: "10-K", FilingDate: "2025-02-01"}},
	}
	acmeFinancials    = &models.FinancialSeries{Revenue: []models.Observation{{PeriodEnd: "2024-12-31", Value: 1e9, Year: 2024}}}
	acmeComplaints    = &models.ComplaintSummary{CompanyName: "ACME", TotalComplaints: 12000, TimelyResponseRate: 99, DisputedRate: 10}
	acmeEnvironmental = &models.EnvironmentalSummary{Facilities: []models.Facility{}, ComplianceRate: 100}
	acmeSafety        = &models.SafetySummary{TotalInspections: 2, Inspections: []models.Inspection{{ActivityNumber: "1"}, {ActivityNumber: "2"}}}
	acmeBanking       = &models.BankingSummary{Institutions: []models.Institution{}}
)

// expectNameSources sets up successful responses for every name-keyed adapter.
func (s *OrchestratorSuite) expectNameSources(name string) {
	s.complaints.EXPECT().Fetch(gomock.Any(), name).Return(acmeComplaints, nil)
	s.environmental.EXPECT().Fetch(gomock.Any(), name).Return(acmeEnvironmental, nil)
	s.safety.EXPECT().Fetch(gomock.Any(), name).Return(acmeSafety, nil)
	s.patents.EXPECT().Fetch(gomock.Any(), name).Return(&models.IPSummary{}, nil)
	s.banking.EXPECT().Fetch(gomock.Any(), name).Return(acmeBanking, nil)
}

// expectCancelledSources makes every adapter fail with the context's error.
func (s *OrchestratorSuite) expectCancelledSources(id models.RegistryID, name string) {
	s.filings.EXPECT().Company(gomock.Any(), id).DoAndReturn(
		func(ctx context.Context, _ models.RegistryID) (*models.CompanyIdentity, error) { return nil, ctx.Err() })
	s.filings.EXPECT().Financials(gomock.Any(), id).DoAndReturn(
		func(ctx context.Context, _ models.RegistryID) (*models.FinancialSeries, error) { return nil, ctx.Err() })
	s.complaints.EXPECT().Fetch(gomock.Any(), name).DoAndReturn(
		func(ctx context.Context, _ string) (*models.ComplaintSummary, error) { return nil, ctx.Err() })
	s.environmental.EXPECT().Fetch(gomock.Any(), name).DoAndReturn(
		func(ctx context.Context, _ string) (*models.EnvironmentalSummary, error) { return nil, ctx.Err() })
	s.safety.EXPECT().Fetch(gomock.Any(), name).DoAndReturn(
		func(ctx context.Context, _ string) (*models.SafetySummary, error) { return nil, ctx.Err() })
	s.patents.EXPECT().Fetch(gomock.Any(), name).DoAndReturn(
		func(ctx context.Context, _ string) (*models.IPSummary, error) { return nil, ctx.Err() })
	s.banking.EXPECT().Fetch(gomock.Any(), name).DoAndReturn(
		func(ctx context.Context, _ string) (*models.BankingSummary, error) { return nil, ctx.Err() })
}

func (s *OrchestratorSuite) expectIdentitySources(id models.RegistryID) {
	s.filings.EXPECT().Company(gomock.Any(), id).Return(acmeIdentity, nil)
	s.filings.EXPECT().Financials(gomock.Any(), id).Return(acmeFinancials, nil)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *OrchestratorSuite) TestNew() {
	s.Run("nil source returns error", func() {
		sources := s.sources()
		sources.Safety = nil
		_, err := New(sources, s.cache)
		s.Error(err)
		s.Contains(err.Error(), "safety source is required")
	})

	s.Run("nil cache returns error", func() {
		_, err := New(s.sources(), nil)
		s.Error(err)
		s.Contains(err.Error(), "cache is required")
	})

	s.Run("options override defaults", func() {
		o, err := New(s.sources(), s.cache, WithAdapterTimeout(time.Second), WithReportTTL(time.Minute), WithSearchTTL(0))
		s.Require().NoError(err)
		s.Equal(time.Second, o.adapterTimeout)
		s.Equal(time.Minute, o.reportTTL)
		s.Equal(cache.DefaultSearchTTL, o.searchTTL)
	})
}

// =============================================================================
// Validation Tests
// =============================================================================
// Justification: invalid requests must fail before any adapter is called.
// gomock fails the test on any unexpected adapter call.

func (s *OrchestratorSuite) TestReportValidation() {
	s.Run("blank name", func() {
		report, err := s.orchestrator.Report(s.ctx, "   ", "")
		s.Nil(report)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("malformed identifier", func() {
		report, err := s.orchestrator.Report(s.ctx, "Acme", "12ab")
		s.Nil(report)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("identifier too long", func() {
		_, err := s.orchestrator.Report(s.ctx, "Acme", "12345678901")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

// =============================================================================
// Report Assembly Tests
// =============================================================================

func (s *OrchestratorSuite) TestReportWithIdentifier() {
	s.expectIdentitySources(acmeID)
	s.expectNameSources("Acme")

	report, err := s.orchestrator.Report(s.ctx, "  Acme ", "320193")
	s.Require().NoError(err)

	s.Equal("ACME CORPORATION", report.CompanyName)
	s.Equal(acmeID, report.RegistryID)
	s.Equal(acmeIdentity, report.Filings)
	s.Equal(acmeFinancials, report.Financials)
	s.Equal(acmeComplaints, report.Complaints)
	s.Equal(reportTime, report.GeneratedAt)
	s.Nil(report.Candidates)
	for _, source := range models.AllSources {
		s.True(report.Availability[source], string(source))
	}
}

func (s *OrchestratorSuite) TestReportUnresolvedIdentifier() {
	// Example: no identifier, no candidates, only complaint data available.
	s.filings.EXPECT().Search(gomock.Any(), "Acme Corp").Return([]models.Candidate{}, nil)
	s.complaints.EXPECT().Fetch(gomock.Any(), "Acme Corp").Return(acmeComplaints, nil)
	s.environmental.EXPECT().Fetch(gomock.Any(), "Acme Corp").Return(&models.EnvironmentalSummary{ComplianceRate: 100}, nil)
	s.safety.EXPECT().Fetch(gomock.Any(), "Acme Corp").
		Return(nil, providers.NewProviderError(providers.ErrorNotFound, "osha", "no inspections", nil))
	s.patents.EXPECT().Fetch(gomock.Any(), "Acme Corp").Return(nil, errors.New("unreachable"))
	s.banking.EXPECT().Fetch(gomock.Any(), "Acme Corp").Return(nil, errors.New("unreachable"))

	report, err := s.orchestrator.Report(s.ctx, "Acme Corp", "")
	s.Require().NoError(err)

	s.Equal("Acme Corp", report.CompanyName)
	s.True(report.RegistryID.IsZero())
	s.Nil(report.Filings)
	s.Nil(report.Financials)
	s.Nil(report.Safety)
	s.False(report.Availability[models.SourceFilings])
	s.False(report.Availability[models.SourceFinancials])
	s.True(report.Availability[models.SourceComplaints])
	s.True(report.Availability[models.SourceEnvironmental])

	s.Equal(65, report.TrustScore.Categories.ConsumerComplaints.Score)
	s.Equal(66, report.TrustScore.Overall)
	s.Equal(models.GradeD, report.TrustScore.Grade)
}

func (s *OrchestratorSuite) TestReportResolvesFirstCandidate() {
	candidates := []models.Candidate{
		{RegistryID: acmeID, Name: "ACME CORP", Ticker: "ACME"},
		{RegistryID: models.MustRegistryID("42"), Name: "ACME HOLDINGS"},
	}
	s.filings.EXPECT().Search(gomock.Any(), "Acme").Return(candidates, nil)
	s.expectIdentitySources(acmeID)
	s.expectNameSources("Acme")

	report, err := s.orchestrator.Report(s.ctx, "Acme", "")
	s.Require().NoError(err)
	s.Equal(acmeID, report.RegistryID)
	s.Equal(candidates, report.Candidates)
	s.NotNil(report.Filings)
}

func (s *OrchestratorSuite) TestReportEmptyFinancialsUnavailable() {
	s.filings.EXPECT().Company(gomock.Any(), acmeID).Return(acmeIdentity, nil)
	s.filings.EXPECT().Financials(gomock.Any(), acmeID).Return(&models.FinancialSeries{}, nil)
	s.expectNameSources("Acme")

	report, err := s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
	s.NotNil(report.Financials)
	s.False(report.Availability[models.SourceFinancials])
	s.True(report.Availability[models.SourceFilings])
}

func (s *OrchestratorSuite) TestReportResolutionBoundedByAdapterTimeout() {
	s.filings.EXPECT().Search(gomock.Any(), "Acme").DoAndReturn(
		func(ctx context.Context, _ string) ([]models.Candidate, error) {
			_, hasDeadline := ctx.Deadline()
			s.True(hasDeadline)
			<-ctx.Done()
			return nil, ctx.Err()
		})
	s.expectNameSources("Acme")

	start := time.Now()
	report, err := s.orchestrator.Report(s.ctx, "Acme", "")
	s.Require().NoError(err)
	s.True(time.Since(start) < 5*time.Second)

	s.True(report.RegistryID.IsZero())
	s.Empty(report.Candidates)
	s.NotNil(report.Complaints)
}

// =============================================================================
// Isolation Tests
// =============================================================================
// Justification: a failing, slow or panicking adapter must only empty its
// own slot and must never fail the report.

func (s *OrchestratorSuite) TestReportIsolatesFailingAdapter() {
	s.expectIdentitySources(acmeID)
	s.complaints.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeComplaints, nil)
	s.environmental.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeEnvironmental, nil)
	s.safety.EXPECT().Fetch(gomock.Any(), "Acme").
		Return(nil, providers.NewProviderError(providers.ErrorProviderOutage, "osha", "status 503", nil))
	s.patents.EXPECT().Fetch(gomock.Any(), "Acme").Return(&models.IPSummary{}, nil)
	s.banking.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeBanking, nil)

	report, err := s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)

	s.Nil(report.Safety)
	s.False(report.Availability[models.SourceSafety])
	for _, source := range models.AllSources {
		if source != models.SourceSafety {
			s.True(report.Availability[source], string(source))
		}
	}

	failed := s.endedSpan("adapter.osha")
	s.Require().NotNil(failed)
	s.Equal(codes.Error, failed.Status().Code)
	s.Equal(string(providers.ErrorProviderOutage), failed.Status().Description)
}

func (s *OrchestratorSuite) TestReportIsolatesSlowAdapter() {
	s.expectIdentitySources(acmeID)
	s.complaints.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeComplaints, nil)
	s.environmental.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeEnvironmental, nil)
	s.safety.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeSafety, nil)
	s.patents.EXPECT().Fetch(gomock.Any(), "Acme").Return(&models.IPSummary{}, nil)
	s.banking.EXPECT().Fetch(gomock.Any(), "Acme").DoAndReturn(
		func(ctx context.Context, _ string) (*models.BankingSummary, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	start := time.Now()
	report, err := s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
	s.True(time.Since(start) < 5*time.Second)

	s.Nil(report.Banking)
	s.NotNil(report.Safety)
	s.NotNil(report.Complaints)
}

func (s *OrchestratorSuite) TestReportIsolatesPanickingAdapter() {
	s.expectIdentitySources(acmeID)
	s.complaints.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeComplaints, nil)
	s.environmental.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeEnvironmental, nil)
	s.safety.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeSafety, nil)
	s.patents.EXPECT().Fetch(gomock.Any(), "Acme").DoAndReturn(
		func(context.Context, string) (*models.IPSummary, error) {
			panic("unexpected payload")
		})
	s.banking.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeBanking, nil)

	report, err := s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
	s.Nil(report.Patents)
	s.NotNil(report.Banking)

	failed := s.endedSpan("adapter.uspto")
	s.Require().NotNil(failed)
	s.Equal(string(providers.ErrorInternal), failed.Status().Description)
}

func (s *OrchestratorSuite) TestReportDropsValueReturnedWithError() {
	s.expectIdentitySources(acmeID)
	s.complaints.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeComplaints, errors.New("partial"))
	s.environmental.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeEnvironmental, nil)
	s.safety.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeSafety, nil)
	s.patents.EXPECT().Fetch(gomock.Any(), "Acme").Return(&models.IPSummary{}, nil)
	s.banking.EXPECT().Fetch(gomock.Any(), "Acme").Return(acmeBanking, nil)

	report, err := s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
	s.Nil(report.Complaints)
	s.Equal(70, report.TrustScore.Categories.ConsumerComplaints.Score)
}

// =============================================================================
// Caching Tests
// =============================================================================

func (s *OrchestratorSuite) TestReportCached() {
	s.expectIdentitySources(acmeID)
	s.expectNameSources("Acme")

	first, err := s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)

	// Same key after case folding and padding; no further adapter calls.
	second, err := s.orchestrator.Report(s.ctx, "ACME", "0000320193")
	s.Require().NoError(err)
	s.Same(first, second)

	_, ok := s.cache.Get(ReportKey("acme", acmeID))
	s.True(ok)
}

func (s *OrchestratorSuite) TestReportCacheExpires() {
	now := reportTime
	s.cache = cache.New(cache.WithClock(func() time.Time { return now }))
	o, err := New(s.sources(), s.cache, WithReportTTL(time.Minute))
	s.Require().NoError(err)

	s.expectIdentitySources(acmeID)
	s.expectNameSources("Acme")
	_, err = o.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)

	now = now.Add(2 * time.Minute)
	s.expectIdentitySources(acmeID)
	s.expectNameSources("Acme")
	_, err = o.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
}

func (s *OrchestratorSuite) TestReportNotCachedWhenCallerGoesAway() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	s.expectCancelledSources(acmeID, "Acme")

	report, err := s.orchestrator.Report(ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
	for _, source := range models.AllSources {
		s.False(report.Availability[source], string(source))
	}
	_, ok := s.cache.Get(ReportKey("acme", acmeID))
	s.False(ok)

	// The next caller gets a fresh fan-out, not the degraded report.
	s.expectIdentitySources(acmeID)
	s.expectNameSources("Acme")
	report, err = s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
	for _, source := range models.AllSources {
		s.True(report.Availability[source], string(source))
	}
	_, ok = s.cache.Get(ReportKey("acme", acmeID))
	s.True(ok)
}

func (s *OrchestratorSuite) TestRefreshReplacesCachedReport() {
	s.expectIdentitySources(acmeID)
	s.expectNameSources("Acme")
	first, err := s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)

	s.expectIdentitySources(acmeID)
	s.expectNameSources("Acme")
	refreshed, err := s.orchestrator.Refresh(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
	s.NotSame(first, refreshed)

	cached, err := s.orchestrator.Report(s.ctx, "Acme", acmeID.String())
	s.Require().NoError(err)
	s.Same(refreshed, cached)
}

func (s *OrchestratorSuite) TestRefreshValidatesRequest() {
	_, err := s.orchestrator.Refresh(s.ctx, "", "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

// =============================================================================
// Search Tests
// =============================================================================

func (s *OrchestratorSuite) TestSearch() {
	s.Run("short query makes no calls", func() {
		got, err := s.orchestrator.Search(s.ctx, " a ")
		s.NoError(err)
		s.NotNil(got)
		s.Empty(got)
	})

	s.Run("results are cached", func() {
		want := []models.Candidate{{RegistryID: acmeID, Name: "ACME CORP"}}
		s.filings.EXPECT().Search(gomock.Any(), "acme").Return(want, nil).Times(1)

		got, err := s.orchestrator.Search(s.ctx, "acme")
		s.NoError(err)
		s.Equal(want, got)

		got, err = s.orchestrator.Search(s.ctx, "ACME")
		s.NoError(err)
		s.Equal(want, got)
	})

	s.Run("adapter failure yields empty list", func() {
		s.filings.EXPECT().Search(gomock.Any(), "globex").Return(nil, errors.New("directory down"))

		got, err := s.orchestrator.Search(s.ctx, "globex")
		s.NoError(err)
		s.NotNil(got)
		s.Empty(got)

		_, ok := s.cache.Get(SearchKey("globex"))
		s.False(ok, "failures are not cached")
	})

	s.Run("cancelled context", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		_, err := s.orchestrator.Search(ctx, "initech")
		s.ErrorIs(err, context.Canceled)
	})
}

func (s *OrchestratorSuite) endedSpan(name string) sdktrace.ReadOnlySpan {
	for _, span := range s.spans.Ended() {
		if span.Name() == name {
			return span
		}
	}
	return nil
}
