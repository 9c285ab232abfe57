package orchestrator

import (
	"context"
	"strings"
	"unicode/utf8"

	"companyintel/internal/intel/cache"
	"companyintel/internal/intel/models"
	"companyintel/pkg/requestcontext"
)

// SearchKey is the cache key for a candidate search.
func SearchKey(query string) string {
	return cache.NamespaceSearch + strings.ToLower(query)
}

// Search returns up to ten registry candidates for query. Queries shorter than
// two characters return an empty list without I/O. Adapter failures are
// logged and yield an empty list; only a finished context is an error.
func (o *Orchestrator) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchLength {
		return []models.Candidate{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := SearchKey(query)
	if candidates, ok := cache.GetAs[[]models.Candidate](o.cache, key); ok {
		o.metrics.IncrementCacheLookup(cache.NamespaceSearch, true)
		return candidates, nil
	}
	o.metrics.IncrementCacheLookup(cache.NamespaceSearch, false)

	ctx, span := o.tracer.Start(ctx, "orchestrator.Search")
	defer span.End()

	candidates, err := o.sources.Filings.Search(ctx, query)
	if err != nil {
		o.logger.WarnContext(ctx, "company search failed",
			"request_id", requestcontext.RequestID(ctx),
			"query", query,
			"error", err,
		)
		return []models.Candidate{}, nil
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	o.cache.Set(key, candidates, o.searchTTL)
	return candidates, nil
}
