// Package patents adapts the patent/trademark registry. Only the patent
// assignment lookup is publicly reachable; trademark search has no usable
// endpoint and is always reported as unsupported.
package patents

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
)

// ProviderID names this registry in errors, logs and metrics.
const ProviderID = "uspto"

const (
	DefaultBaseURL = "https://assignment-api.uspto.gov"

	maxPatents = 10

	assignmentNote = "patent data from assignment records; trademark lookup: " + models.UnsupportedLookupNote
)

// Adapter reads the patent assignment registry.
type Adapter struct {
	client  *providers.Client
	baseURL string
	logger  *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the registry API root.
func WithBaseURL(u string) Option {
	return func(a *Adapter) {
		a.baseURL = strings.TrimRight(u, "/")
	}
}

// WithLogger records degraded lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates a patent registry adapter.
func New(client *providers.Client, opts ...Option) *Adapter {
	a := &Adapter{
		client:  client,
		baseURL: DefaultBaseURL,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fetch looks up patent assignments owned by name. When the assignment API
// cannot be reached the result is still a summary, marked unsupported, so
// callers can tell "no patents" from "lookup not possible".
func (a *Adapter) Fetch(ctx context.Context, name string) (*models.IPSummary, error) {
	q := url.Values{}
	q.Set("query", name)
	q.Set("filter", "OwnerName")
	q.Set("rows", "10")
	q.Set("start", "0")

	raw, err := a.client.GetJSON(ctx, a.baseURL+"/patent/lookup?"+q.Encode())
	if err != nil {
		switch providers.GetCategory(err) {
		case providers.ErrorBadData, providers.ErrorInternal:
			return nil, err
		}
		a.logger.InfoContext(ctx, "patent lookup unreachable, reporting unsupported",
			"source", ProviderID,
			"error", err,
		)
		return Unsupported(), nil
	}

	docs := providers.Slice(providers.Path(raw, "response", "docs"))
	if docs == nil {
		docs = providers.Slice(providers.Path(raw, "patents"))
	}
	patents := parsePatents(docs)

	total := providers.AsInt(providers.Path(raw, "response", "numFound"))
	if total == 0 {
		total = len(patents)
	}

	return &models.IPSummary{
		Patents:         patents,
		Trademarks:      []models.Trademark{},
		TotalPatents:    total,
		TotalTrademarks: 0,
		PatentLookup:    models.LookupAvailable,
		TrademarkLookup: models.LookupUnsupported,
		Note:            assignmentNote,
	}, nil
}

// Unsupported is the summary reported when no patent endpoint is usable.
func Unsupported() *models.IPSummary {
	return &models.IPSummary{
		Patents:         []models.Patent{},
		Trademarks:      []models.Trademark{},
		PatentLookup:    models.LookupUnsupported,
		TrademarkLookup: models.LookupUnsupported,
		Note:            models.UnsupportedLookupNote,
	}
}

func parsePatents(docs []any) []models.Patent {
	out := make([]models.Patent, 0, min(len(docs), maxPatents))
	for _, d := range docs {
		if len(out) >= maxPatents {
			break
		}
		m := providers.Object(d)
		if m == nil {
			continue
		}
		out = append(out, models.Patent{
			Title:      providers.Str(m, "inventionTitle", "title"),
			Number:     providers.Str(m, "patentNumber", "patent_number"),
			FilingDate: providers.Str(m, "filingDate"),
			GrantDate:  providers.Str(m, "grantDate", "executionDate"),
			Inventors:  providers.Strings(m["inventors"]),
		})
	}
	return out
}
