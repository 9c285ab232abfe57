package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"companyintel/internal/intel/cache"
	"companyintel/internal/intel/handler"
	intelmetrics "companyintel/internal/intel/metrics"
	"companyintel/internal/intel/orchestrator"
	"companyintel/internal/intel/providers"
	"companyintel/internal/intel/providers/banking"
	"companyintel/internal/intel/providers/complaints"
	"companyintel/internal/intel/providers/environmental"
	"companyintel/internal/intel/providers/filings"
	"companyintel/internal/intel/providers/patents"
	"companyintel/internal/intel/providers/safety"
	"companyintel/internal/platform/config"
	"companyintel/internal/platform/httpserver"
	"companyintel/internal/platform/logger"
	"companyintel/internal/platform/metrics"
	"companyintel/internal/platform/scheduler"
	"companyintel/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal/intel.
func main() {
	configPath := flag.String("config", os.Getenv("COMPANYINTEL_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := cache.New()
	pipelineMetrics := intelmetrics.New()
	httpMetrics := metrics.New()

	orch, err := orchestrator.New(buildSources(cfg, store, log), store,
		orchestrator.WithLogger(log),
		orchestrator.WithMetrics(pipelineMetrics),
		orchestrator.WithAdapterTimeout(cfg.Adapters.Timeout),
		orchestrator.WithReportTTL(cfg.Cache.ReportTTL),
		orchestrator.WithSearchTTL(cfg.Cache.SearchTTL),
	)
	if err != nil {
		log.Error("build orchestrator", "error", err)
		os.Exit(1)
	}

	jobs := scheduler.New(ctx, scheduler.WithLogger(log))
	if err := jobs.RegisterSweep(cfg.Cache.SweepCron, store); err != nil {
		log.Error("schedule cache sweep", "error", err)
		os.Exit(1)
	}
	if cfg.WarmUp.Enabled {
		if err := jobs.RegisterWarmUp(cfg.WarmUp.Cron, orch, cfg.WarmUp.Companies); err != nil {
			log.Error("schedule warm-up", "error", err)
			os.Exit(1)
		}
		go jobs.WarmUp(orch, cfg.WarmUp.Companies)
	}
	jobs.Start()

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())
	handler.New(orch, log, httpMetrics, cfg.Server.RequestTimeout).Register(router)

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting companyintel", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	jobs.Stop(shutdownCtx)
}

// buildSources creates one rate-limited, breaker-guarded client per registry.
func buildSources(cfg *config.Config, store *cache.Cache, log *slog.Logger) orchestrator.Sources {
	client := func(id string, p config.Provider, extra ...providers.ClientOption) *providers.Client {
		breaker := circuit.New(id,
			circuit.WithFailureThreshold(cfg.Adapters.Breaker.FailureThreshold),
			circuit.WithCooldown(cfg.Adapters.Breaker.Cooldown),
		)
		opts := []providers.ClientOption{
			providers.WithRateLimit(p.RateLimit, p.Burst),
			providers.WithBreaker(breaker),
			providers.WithLogger(log),
		}
		return providers.NewClient(id, append(opts, extra...)...)
	}

	sec := cfg.Adapters.Filings
	filingsOpts := []filings.Option{filings.WithDirectoryCache(store, cfg.Cache.DirectoryTTL)}
	if sec.BaseURL != "" {
		filingsOpts = append(filingsOpts, filings.WithDirectoryURL(sec.BaseURL))
	}
	if sec.DataURL != "" {
		filingsOpts = append(filingsOpts, filings.WithDataURL(sec.DataURL))
	}

	complaintsOpts := []complaints.Option{complaints.WithLogger(log)}
	if u := cfg.Adapters.Complaints.BaseURL; u != "" {
		complaintsOpts = append(complaintsOpts, complaints.WithBaseURL(u))
	}
	var environmentalOpts []environmental.Option
	if u := cfg.Adapters.Environmental.BaseURL; u != "" {
		environmentalOpts = append(environmentalOpts, environmental.WithBaseURL(u))
	}
	var safetyOpts []safety.Option
	if u := cfg.Adapters.Safety.BaseURL; u != "" {
		safetyOpts = append(safetyOpts, safety.WithBaseURL(u))
	}
	patentsOpts := []patents.Option{patents.WithLogger(log)}
	if u := cfg.Adapters.Patents.BaseURL; u != "" {
		patentsOpts = append(patentsOpts, patents.WithBaseURL(u))
	}
	bankingOpts := []banking.Option{banking.WithLogger(log), banking.WithAPIKey(cfg.Adapters.Banking.APIKey)}
	if u := cfg.Adapters.Banking.BaseURL; u != "" {
		bankingOpts = append(bankingOpts, banking.WithBaseURL(u))
	}

	return orchestrator.Sources{
		Filings:       filings.New(client(filings.ProviderID, sec, providers.WithHeader("User-Agent", cfg.Adapters.UserAgent)), filingsOpts...),
		Complaints:    complaints.New(client(complaints.ProviderID, cfg.Adapters.Complaints), complaintsOpts...),
		Environmental: environmental.New(client(environmental.ProviderID, cfg.Adapters.Environmental), environmentalOpts...),
		Safety:        safety.New(client(safety.ProviderID, cfg.Adapters.Safety), safetyOpts...),
		Patents:       patents.New(client(patents.ProviderID, cfg.Adapters.Patents), patentsOpts...),
		Banking:       banking.New(client(banking.ProviderID, cfg.Adapters.Banking), bankingOpts...),
	}
}
