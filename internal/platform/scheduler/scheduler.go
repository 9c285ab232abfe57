// Package scheduler runs the service's periodic jobs: cache eviction and the
// popular-company warm-up.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"companyintel/internal/intel/models"
	"companyintel/internal/platform/config"
)

// Sweeper evicts expired cache entries and reports how many were removed.
type Sweeper interface {
	Sweep() int
}

// Refresher rebuilds a company report and replaces its cached entry.
type Refresher interface {
	Refresh(ctx context.Context, name, registryID string) (*models.CompositeReport, error)
}

// Scheduler manages all cron jobs. Jobs run under ctx and stop when it is done.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	logger *slog.Logger
}

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a scheduler. Overlapping runs of the same job are skipped.
func New(ctx context.Context, opts ...Option) *Scheduler {
	s := &Scheduler{
		ctx:    ctx,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	return s
}

// RegisterSweep evicts expired entries from sweeper on spec.
func (s *Scheduler) RegisterSweep(spec string, sweeper Sweeper) error {
	if _, err := s.cron.AddFunc(spec, func() { s.sweep(sweeper) }); err != nil {
		return fmt.Errorf("register cache sweep: %w", err)
	}
	return nil
}

// RegisterWarmUp rebuilds reports for companies on spec so they stay cached.
// spec should fire more often than the report TTL.
func (s *Scheduler) RegisterWarmUp(spec string, refresher Refresher, companies []config.PopularCompany) error {
	if _, err := s.cron.AddFunc(spec, func() { s.WarmUp(refresher, companies) }); err != nil {
		return fmt.Errorf("register warm-up: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.InfoContext(s.ctx, "scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops the scheduler and waits for running jobs, or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.InfoContext(ctx, "scheduler stopped")
	case <-ctx.Done():
		s.logger.WarnContext(ctx, "scheduler stop timed out", "error", ctx.Err())
	}
}

func (s *Scheduler) sweep(sweeper Sweeper) {
	removed := sweeper.Sweep()
	s.logger.DebugContext(s.ctx, "cache sweep finished", "removed", removed)
}

// WarmUp rebuilds each company's report in turn, bypassing any cached entry.
// Failures are logged and skipped.
func (s *Scheduler) WarmUp(refresher Refresher, companies []config.PopularCompany) {
	start := time.Now()
	var built int
	for _, c := range companies {
		if s.ctx.Err() != nil {
			break
		}
		if _, err := refresher.Refresh(s.ctx, c.Name, c.CIK); err != nil {
			s.logger.WarnContext(s.ctx, "warm-up report failed",
				"company", c.Name,
				"cik", c.CIK,
				"error", err,
			)
			continue
		}
		built++
	}
	s.logger.InfoContext(s.ctx, "warm-up finished",
		"built", built,
		"total", len(companies),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
