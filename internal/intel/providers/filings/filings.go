// Package filings adapts the securities-filings registry: the bulk ticker
// directory used for company search, per-company submissions, and XBRL
// company facts.
package filings

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"companyintel/internal/intel/cache"
	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
	strutil "companyintel/pkg/platform/strings"
)

// ProviderID names this registry in errors, logs and metrics.
const ProviderID = "sec"

const (
	DefaultDirectoryURL = "https://www.sec.gov"
	DefaultDataURL      = "https://data.sec.gov"

	maxCandidates    = 10
	maxRecentFilings = 20
	directoryKey     = cache.NamespaceDirectory + "sec-tickers"
)

// Adapter reads the filings registry.
type Adapter struct {
	client       *providers.Client
	directoryURL string
	dataURL      string
	cache        *cache.Cache
	directoryTTL time.Duration
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithDirectoryURL overrides the host serving the bulk ticker directory.
func WithDirectoryURL(u string) Option {
	return func(a *Adapter) {
		a.directoryURL = strings.TrimRight(u, "/")
	}
}

// WithDataURL overrides the host serving submissions and company facts.
func WithDataURL(u string) Option {
	return func(a *Adapter) {
		a.dataURL = strings.TrimRight(u, "/")
	}
}

// WithDirectoryCache memoises the parsed ticker directory for ttl.
func WithDirectoryCache(c *cache.Cache, ttl time.Duration) Option {
	return func(a *Adapter) {
		a.cache = c
		a.directoryTTL = ttl
	}
}

// New creates a filings adapter. The client must send a User-Agent with
// contact details; the registry rejects anonymous traffic.
func New(client *providers.Client, opts ...Option) *Adapter {
	a := &Adapter{
		client:       client,
		directoryURL: DefaultDirectoryURL,
		dataURL:      DefaultDataURL,
		directoryTTL: cache.DefaultDirectoryTTL,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type directoryEntry struct {
	cik    string
	title  string
	ticker string
}

// Search matches query against the ticker directory: company title by
// case-insensitive substring, ticker by case-insensitive equality.
// At most ten candidates are returned, in directory order.
func (a *Adapter) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	directory, err := a.directory(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]models.Candidate, 0, maxCandidates)
	for _, e := range directory {
		if !strutil.ContainsFold(e.title, query) && !strings.EqualFold(e.ticker, query) {
			continue
		}
		id, err := models.ParseRegistryID(e.cik)
		if err != nil {
			continue
		}
		results = append(results, models.Candidate{RegistryID: id, Name: e.title, Ticker: e.ticker})
		if len(results) >= maxCandidates {
			break
		}
	}
	return results, nil
}

func (a *Adapter) directory(ctx context.Context) ([]directoryEntry, error) {
	if a.cache != nil {
		if d, ok := cache.GetAs[[]directoryEntry](a.cache, directoryKey); ok {
			return d, nil
		}
	}

	raw, err := a.client.GetJSON(ctx, a.directoryURL+"/files/company_tickers.json")
	if err != nil {
		return nil, err
	}
	d, err := parseDirectory(raw)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		a.cache.Set(directoryKey, d, a.directoryTTL)
	}
	return d, nil
}

// parseDirectory flattens the {"0": {...}, "1": {...}} directory object,
// preserving the numeric key order the registry publishes.
func parseDirectory(raw any) ([]directoryEntry, error) {
	obj := providers.Object(raw)
	if obj == nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, "ticker directory is not an object", nil)
	}

	type keyed struct {
		idx   int
		key   string
		entry directoryEntry
	}
	rows := make([]keyed, 0, len(obj))
	for k, v := range obj {
		m := providers.Object(v)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(k)
		if err != nil {
			idx = len(obj)
		}
		rows = append(rows, keyed{idx: idx, key: k, entry: directoryEntry{
			cik:    providers.Str(m, "cik_str", "cik"),
			title:  providers.Str(m, "title", "name"),
			ticker: providers.Str(m, "ticker"),
		}})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].idx != rows[j].idx {
			return rows[i].idx < rows[j].idx
		}
		return rows[i].key < rows[j].key
	})

	out := make([]directoryEntry, len(rows))
	for i, r := range rows {
		out[i] = r.entry
	}
	return out, nil
}

// Company fetches the submissions record for id.
func (a *Adapter) Company(ctx context.Context, id models.RegistryID) (*models.CompanyIdentity, error) {
	if id.IsZero() {
		return nil, providers.NewProviderError(providers.ErrorInternal, ProviderID, "registry id required", nil)
	}
	raw, err := a.client.GetJSON(ctx, fmt.Sprintf("%s/submissions/CIK%s.json", a.dataURL, id))
	if err != nil {
		return nil, err
	}
	data := providers.Object(raw)
	if data == nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, "submissions is not an object", nil)
	}

	return &models.CompanyIdentity{
		RegistryID:           id,
		Name:                 providers.Str(data, "name"),
		Tickers:              strutil.DedupeAndTrim(providers.Strings(data["tickers"])),
		Exchanges:            strutil.DedupeAndTrim(providers.Strings(data["exchanges"])),
		SIC:                  providers.Str(data, "sic"),
		SICDescription:       providers.Str(data, "sicDescription"),
		StateOfIncorporation: providers.Str(data, "stateOfIncorporation"),
		FiscalYearEnd:        providers.Str(data, "fiscalYearEnd"),
		EIN:                  providers.Str(data, "ein"),
		Website:              providers.Str(data, "website"),
		BusinessAddress:      parseAddress(providers.Path(data, "addresses", "business")),
		MailingAddress:       parseAddress(providers.Path(data, "addresses", "mailing")),
		RecentFilings:        parseRecentFilings(data),
	}, nil
}

func parseAddress(v any) models.Address {
	m := providers.Object(v)
	return models.Address{
		Street1:        providers.Str(m, "street1"),
		Street2:        providers.Str(m, "street2"),
		City:           providers.Str(m, "city"),
		StateOrCountry: providers.Str(m, "stateOrCountry"),
		ZipCode:        providers.Str(m, "zipCode"),
	}
}

// parseRecentFilings zips the registry's parallel arrays. The form array
// drives the length; shorter sibling arrays yield empty fields.
func parseRecentFilings(data map[string]any) []models.Filing {
	recent := providers.Object(providers.Path(data, "filings", "recent"))
	forms := providers.Slice(recent["form"])
	dates := providers.Slice(recent["filingDate"])
	docs := providers.Slice(recent["primaryDocument"])
	descs := providers.Slice(recent["primaryDocDescription"])

	n := min(len(forms), maxRecentFilings)
	out := make([]models.Filing, 0, n)
	for i := range n {
		out = append(out, models.Filing{
			Form:            providers.AsString(forms[i]),
			FilingDate:      at(dates, i),
			PrimaryDocument: at(docs, i),
			Description:     at(descs, i),
		})
	}
	return out
}

func at(items []any, i int) string {
	if i >= len(items) {
		return ""
	}
	return providers.AsString(items[i])
}
