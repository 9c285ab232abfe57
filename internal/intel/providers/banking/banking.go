// Package banking adapts the banking-health registry. Exact-name filtering
// there is fragile, so the adapter walks an ordered list of query strategies
// and keeps the first that yields rows.
package banking

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
)

// ProviderID names this registry in errors, logs and metrics.
const ProviderID = "fdic"

const (
	DefaultBaseURL = "https://banks.data.fdic.gov"

	financialFields   = "INSTNAME,CERT,CITY,STNAME,ASSET,DEP,NETINC,ESTYMD,ACTIVE,REGAGENT,CHRTAGNT,INSTCAT,REPDTE,ROA,EQCAPRT"
	institutionFields = "INSTNAME,CERT,CITY,STALP,STNAME,ASSET,DEP,NETINC,ESTYMD,ACTIVE,REGAGENT,CHRTAGNT,INSTCAT,ROA,EQCAPRT"
)

// Strategy is one way of asking the registry for an institution by name.
type Strategy struct {
	Name     string
	Endpoint string
	Fields   string
	Filter   func(name string) string
}

// Strategies are tried in order.
var Strategies = []Strategy{
	{
		Name:     "financials_instname",
		Endpoint: "/api/financials",
		Fields:   financialFields,
		Filter:   func(name string) string { return fmt.Sprintf("INSTNAME:%q", name) },
	},
	{
		Name:     "institutions_instname",
		Endpoint: "/api/institutions",
		Fields:   institutionFields,
		Filter:   func(name string) string { return fmt.Sprintf("INSTNAME:%q", name) },
	},
	{
		Name:     "institutions_name_upper",
		Endpoint: "/api/institutions",
		Fields:   institutionFields,
		Filter:   func(name string) string { return fmt.Sprintf("NAME:%q", strings.ToUpper(name)) },
	},
}

// Adapter reads the banking registry.
type Adapter struct {
	client  *providers.Client
	baseURL string
	apiKey  string
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

// WithAPIKey sends an api_key parameter on every query.
func WithAPIKey(key string) Option {
	return func(a *Adapter) {
		a.apiKey = key
	}
}

// WithLogger records failed strategies.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates a banking registry adapter.
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

// Fetch returns institutions matching name from the first productive
// strategy. When every strategy errors or is empty the result is a
// not-found summary, not an error. Running out of time is a timeout.
func (a *Adapter) Fetch(ctx context.Context, name string) (*models.BankingSummary, error) {
	for _, s := range Strategies {
		if err := ctx.Err(); err != nil {
			return nil, providers.NewProviderError(providers.ErrorTimeout, ProviderID, "strategies incomplete", err)
		}
		raw, err := a.client.GetJSON(ctx, a.strategyURL(s, name))
		if err != nil {
			a.logger.DebugContext(ctx, "banking strategy failed",
				"source", ProviderID,
				"strategy", s.Name,
				"error", err,
			)
			continue
		}
		institutions := parseInstitutions(raw)
		if len(institutions) > 0 {
			return &models.BankingSummary{Institutions: institutions, Found: true, Strategy: s.Name}, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, providers.NewProviderError(providers.ErrorTimeout, ProviderID, "strategies incomplete", err)
	}
	return &models.BankingSummary{Institutions: []models.Institution{}, Found: false}, nil
}

func (a *Adapter) strategyURL(s Strategy, name string) string {
	q := url.Values{}
	q.Set("filters", s.Filter(name))
	q.Set("fields", s.Fields)
	q.Set("limit", "10")
	q.Set("sort_by", "ASSET")
	q.Set("sort_order", "DESC")
	if a.apiKey != "" {
		q.Set("api_key", a.apiKey)
	}
	return a.baseURL + s.Endpoint + "?" + q.Encode()
}

// parseInstitutions reads {"data": [{"data": {...}}]}. Registry money figures
// are in thousands.
func parseInstitutions(raw any) []models.Institution {
	rows := providers.Slice(providers.Path(raw, "data"))
	out := make([]models.Institution, 0, len(rows))
	for _, row := range rows {
		d := providers.Object(providers.Path(row, "data"))
		if d == nil {
			continue
		}
		out = append(out, models.Institution{
			Name:               providers.Str(d, "INSTNAME"),
			CertNumber:         providers.Str(d, "CERT"),
			City:               providers.Str(d, "CITY"),
			State:              providers.Str(d, "STNAME", "STALP"),
			TotalAssets:        providers.Thousands(providers.Float(d, "ASSET")),
			TotalDeposits:      providers.Thousands(providers.Float(d, "DEP")),
			NetIncome:          providers.Thousands(providers.Float(d, "NETINC")),
			Established:        providers.Str(d, "ESTYMD"),
			Active:             providers.Int(d, "ACTIVE") == 1,
			Regulator:          providers.Str(d, "REGAGENT"),
			CharterClass:       providers.Str(d, "CHRTAGNT"),
			InsuredStatus:      providers.Str(d, "INSTCAT"),
			ReturnOnAssets:     providers.Float(d, "ROA"),
			EquityCapitalRatio: providers.Float(d, "EQCAPRT"),
		})
	}
	return out
}
