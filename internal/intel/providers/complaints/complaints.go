// Package complaints adapts the consumer-complaint registry.
package complaints

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
	strutil "companyintel/pkg/platform/strings"
)

// ProviderID names this registry in errors, logs and metrics.
const ProviderID = "cfpb"

const (
	DefaultBaseURL = "https://www.consumerfinance.gov/data-research/consumer-complaints/search/api/v1"

	pageSize        = "25"
	suggestionCount = "5"
	maxBuckets      = 10
	maxRecent       = 10
	maxYears        = 5
)

// Adapter reads the complaint registry.
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

// WithLogger records fallback decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates a complaint registry adapter.
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

// Fetch resolves name to the registry's canonical company name and
// summarizes its complaints. If the company-filtered query fails it retries
// once as a free-text search on the caller's name.
func (a *Adapter) Fetch(ctx context.Context, name string) (*models.ComplaintSummary, error) {
	canonical := a.canonicalName(ctx, name)

	raw, err := a.client.GetJSON(ctx, a.searchURL("company", canonical))
	if err == nil {
		return parseSummary(raw, canonical, models.ComplaintSearchByCompany)
	}
	a.logger.DebugContext(ctx, "complaint company query failed, falling back to free text",
		"source", ProviderID,
		"company", canonical,
		"error", err,
	)

	raw, err = a.client.GetJSON(ctx, a.searchURL("search_term", name))
	if err != nil {
		return nil, err
	}
	return parseSummary(raw, name, models.ComplaintSearchByFreeText)
}

// canonicalName picks the first suggestion that contains, or is contained in,
// the query; else the first suggestion; else the query. Suggest failures are
// not fatal.
func (a *Adapter) canonicalName(ctx context.Context, name string) string {
	q := url.Values{}
	q.Set("text", name)
	q.Set("size", suggestionCount)

	raw, err := a.client.GetJSON(ctx, a.baseURL+"/_suggest_company?"+q.Encode())
	if err != nil {
		a.logger.DebugContext(ctx, "complaint suggest failed", "source", ProviderID, "error", err)
		return name
	}
	return BestSuggestion(name, providers.Strings(raw))
}

// BestSuggestion applies the canonical-name heuristic to a suggestion list.
func BestSuggestion(query string, suggestions []string) string {
	if len(suggestions) == 0 {
		return query
	}
	for _, s := range suggestions {
		if strutil.EitherContainsFold(s, query) {
			return s
		}
	}
	return suggestions[0]
}

func (a *Adapter) searchURL(param, value string) string {
	q := url.Values{}
	q.Set(param, value)
	q.Set("size", pageSize)
	q.Set("sort", "created_date_desc")
	q.Set("no_aggs", "false")
	return a.baseURL + "/?" + q.Encode()
}

func parseSummary(raw any, companyName string, mode models.ComplaintSearchMode) (*models.ComplaintSummary, error) {
	data := providers.Object(raw)
	if data == nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, "search response is not an object", nil)
	}
	aggs := providers.Object(data["aggregations"])

	return &models.ComplaintSummary{
		CompanyName:        companyName,
		SearchMode:         mode,
		TotalComplaints:    parseTotal(providers.Path(data, "hits", "total")),
		Products:           namedBuckets(aggs, "product"),
		Issues:             namedBuckets(aggs, "issue"),
		TimelyResponseRate: yesRate(aggs, "timely"),
		DisputedRate:       yesRate(aggs, "consumer_disputed"),
		RecentComplaints:   recentComplaints(providers.Slice(providers.Path(data, "hits", "hits"))),
		ComplaintsByYear:   yearBuckets(aggs),
	}, nil
}

// parseTotal accepts both {"value": n, "relation": "eq"} and a bare number.
func parseTotal(v any) int {
	if m := providers.Object(v); m != nil {
		return providers.Int(m, "value")
	}
	return providers.AsInt(v)
}

// buckets reads aggregations.<name>.<name>.buckets.
func buckets(aggs map[string]any, name string) []map[string]any {
	items := providers.Slice(providers.Path(aggs, name, name, "buckets"))
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m := providers.Object(item); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func namedBuckets(aggs map[string]any, name string) []models.Bucket {
	bs := buckets(aggs, name)
	out := make([]models.Bucket, 0, min(len(bs), maxBuckets))
	for _, b := range bs[:min(len(bs), maxBuckets)] {
		out = append(out, models.Bucket{Name: providers.Str(b, "key"), Count: providers.Int(b, "doc_count")})
	}
	return out
}

// yesRate is Yes/(Yes+No) as a percentage with one decimal. Buckets with any
// other key (N/A, unknown) do not enter the denominator.
func yesRate(aggs map[string]any, name string) float64 {
	var yes, no int
	for _, b := range buckets(aggs, name) {
		switch strings.ToLower(providers.Str(b, "key")) {
		case "yes":
			yes += providers.Int(b, "doc_count")
		case "no":
			no += providers.Int(b, "doc_count")
		}
	}
	if yes+no == 0 {
		return 0
	}
	return providers.RoundTo(float64(yes)/float64(yes+no)*100, 1)
}

func recentComplaints(hits []any) []models.Complaint {
	out := make([]models.Complaint, 0, min(len(hits), maxRecent))
	for _, h := range hits {
		if len(out) >= maxRecent {
			break
		}
		src := providers.Object(providers.Path(h, "_source"))
		if src == nil {
			continue
		}
		out = append(out, models.Complaint{
			Date:            providers.Str(src, "date_received"),
			Product:         providers.Str(src, "product"),
			Issue:           providers.Str(src, "issue"),
			CompanyResponse: providers.Str(src, "company_response"),
			Timely:          strings.EqualFold(providers.Str(src, "timely"), "yes"),
		})
	}
	return out
}

// yearBuckets reads the date histogram, newest year first.
func yearBuckets(aggs map[string]any) []models.YearCount {
	bs := buckets(aggs, "date_received_min")
	out := make([]models.YearCount, 0, len(bs))
	for _, b := range bs {
		year := bucketYear(b)
		if year == 0 {
			continue
		}
		out = append(out, models.YearCount{Year: year, Count: providers.Int(b, "doc_count")})
	}
	slices.SortStableFunc(out, func(x, y models.YearCount) int {
		return cmp.Compare(y.Year, x.Year)
	})
	return out[:min(len(out), maxYears)]
}

func bucketYear(b map[string]any) int {
	if s := providers.Str(b, "key_as_string"); s != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z", time.DateOnly} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Year()
			}
		}
		if len(s) >= 4 {
			if t, err := time.Parse("2006", s[:4]); err == nil {
				return t.Year()
			}
		}
	}
	if ms := providers.AsFloat(b["key"]); ms != 0 {
		return time.UnixMilli(int64(ms)).UTC().Year()
	}
	return 0
}
