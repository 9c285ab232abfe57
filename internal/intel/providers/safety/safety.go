// Package safety adapts the workplace-safety inspection registry. The registry
// has served both snake_case and camelCase schemas, so every attribute is read
// through a priority list of field names.
package safety

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
)

// ProviderID names this registry in errors, logs and metrics.
const ProviderID = "osha"

const (
	DefaultBaseURL = "https://data.dol.gov/get"

	maxInspections = 25
)

// Adapter reads the safety registry.
type Adapter struct {
	client  *providers.Client
	baseURL string
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBaseURL overrides the registry API root.
func WithBaseURL(u string) Option {
	return func(a *Adapter) {
		a.baseURL = strings.TrimRight(u, "/")
	}
}

// New creates a safety registry adapter.
func New(client *providers.Client, opts ...Option) *Adapter {
	a := &Adapter{client: client, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fetch returns the most recent inspections for establishments matching name.
// A payload that is not a non-empty array is an error; there is no partial fallback.
func (a *Adapter) Fetch(ctx context.Context, name string) (*models.SafetySummary, error) {
	endpoint := fmt.Sprintf("%s/inspection/search/%s/limit/%d/orderby/open_date/desc",
		a.baseURL, url.PathEscape(name), maxInspections)
	raw, err := a.client.GetJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	rows, ok := raw.([]any)
	if !ok {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, "inspection search is not an array", nil)
	}
	if len(rows) == 0 {
		return nil, providers.NewProviderError(providers.ErrorNotFound, ProviderID, "no inspections for "+name, nil)
	}

	inspections := make([]models.Inspection, 0, min(len(rows), maxInspections))
	for _, row := range rows {
		if len(inspections) >= maxInspections {
			break
		}
		r := providers.Object(row)
		if r == nil {
			continue
		}
		inspections = append(inspections, parseInspection(r))
	}
	return models.NewSafetySummary(inspections), nil
}

func parseInspection(r map[string]any) models.Inspection {
	return models.Inspection{
		ActivityNumber:    providers.Str(r, "activity_nr", "activityNr"),
		EstablishmentName: providers.Str(r, "estab_name", "establishment_name", "estabName"),
		Site:              providers.Str(r, "site_address", "siteAddress"),
		City:              providers.Str(r, "site_city", "siteCity"),
		State:             providers.Str(r, "site_state", "siteState"),
		OpenDate:          providers.Str(r, "open_date", "openDate"),
		CloseDate:         providers.Str(r, "close_case_date", "closeDate"),
		InspectionType:    providers.Str(r, "insp_type", "inspType"),
		TotalPenalty:      providers.Float(r, "total_current_penalty", "totalCurrentPenalty", "penalty"),
		Serious:           providers.Int(r, "serious_violations", "nr_serious"),
		Willful:           providers.Int(r, "willful_violations", "nr_willful"),
		Other:             providers.Int(r, "other_violations", "nr_other"),
	}
}
