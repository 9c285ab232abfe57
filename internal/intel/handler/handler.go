// Package handler exposes the company report and search endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"companyintel/internal/intel/models"
	"companyintel/internal/platform/metrics"
	"companyintel/internal/platform/middleware"
	"companyintel/pkg/platform/httputil"
)

// Service defines the interface for report and search operations.
type Service interface {
	Report(ctx context.Context, name, registryID string) (*models.CompositeReport, error)
	Search(ctx context.Context, query string) ([]models.Candidate, error)
}

// Handler handles the company intelligence endpoints.
type Handler struct {
	logger         *slog.Logger
	service        Service
	metrics        *metrics.Metrics
	requestTimeout time.Duration
}

// New creates a new company intelligence Handler.
func New(service Service, logger *slog.Logger, metrics *metrics.Metrics, requestTimeout time.Duration) *Handler {
	return &Handler{
		logger:         logger,
		service:        service,
		metrics:        metrics,
		requestTimeout: requestTimeout,
	}
}

// SearchResponse is the body of the search endpoint.
type SearchResponse struct {
	Results []models.Candidate `json:"results"`
}

// Register registers the company routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	apiRouter := chi.NewRouter()
	apiRouter.Use(middleware.RequestID)
	apiRouter.Use(middleware.Recovery(h.logger, h.metrics))
	apiRouter.Use(middleware.RequestTime)
	apiRouter.Use(middleware.ClientMetadata)
	apiRouter.Use(middleware.Logger(h.logger))
	apiRouter.Use(middleware.Timeout(h.requestTimeout))
	apiRouter.Use(middleware.LatencyMiddleware(h.metrics))
	apiRouter.Get("/api/company-report", h.handleReport)
	apiRouter.Get("/api/company-search", h.handleSearch)

	r.Mount("/", apiRouter)
}

// handleReport builds the composite report for ?company=<name>&cik=<id>.
func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	report, err := h.service.Report(ctx, query.Get("company"), query.Get("cik"))
	if err != nil {
		h.logger.WarnContext(ctx, "company report rejected",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

// handleSearch lists registry candidates for ?q=<query>.
func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	results, err := h.service.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.WarnContext(ctx, "company search failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if results == nil {
		results = []models.Candidate{}
	}
	httputil.WriteJSON(w, http.StatusOK, SearchResponse{Results: results})
}
