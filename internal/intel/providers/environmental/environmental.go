// Package environmental adapts the environmental-compliance registry. Lookups
// are two-phase: a name search yields a query handle plus aggregate counts,
// then the handle is paged for facility detail.
package environmental

import (
	"context"
	"math"
	"net/url"
	"strings"

	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
)

// ProviderID names this registry in errors, logs and metrics.
const ProviderID = "epa"

const (
	DefaultBaseURL = "https://echodata.epa.gov/echo"

	maxFacilities = 20
)

// program labels, in the order they are reported.
const (
	ProgramCleanAir          = "Clean Air Act"
	ProgramCleanWater        = "Clean Water Act"
	ProgramRCRA              = "RCRA"
	ProgramSafeDrinkingWater = "Safe Drinking Water"
	ProgramToxicsReleaseInv  = "TRI"
)

// Adapter reads the environmental registry.
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

// New creates an environmental registry adapter.
func New(client *providers.Client, opts ...Option) *Adapter {
	a := &Adapter{client: client, baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Fetch summarizes facilities whose name matches name. A search that yields
// no handle or no rows is a successful, empty summary.
func (a *Adapter) Fetch(ctx context.Context, name string) (*models.EnvironmentalSummary, error) {
	q := url.Values{}
	q.Set("output", "JSON")
	q.Set("p_fn", name)
	raw, err := a.client.GetJSON(ctx, a.baseURL+"/echo_rest_services.get_facilities?"+q.Encode())
	if err != nil {
		return nil, err
	}
	results := providers.Object(providers.Path(raw, "Results"))

	queryID := providers.Str(results, "QueryID")
	total := providers.Int(results, "QueryRows")
	if queryID == "" || total <= 0 {
		return &models.EnvironmentalSummary{Facilities: []models.Facility{}, ComplianceRate: 100}, nil
	}

	q = url.Values{}
	q.Set("output", "JSON")
	q.Set("qid", queryID)
	q.Set("pageno", "1")
	raw, err = a.client.GetJSON(ctx, a.baseURL+"/echo_rest_services.get_qid?"+q.Encode())
	if err != nil {
		return nil, err
	}

	snc := providers.Int(results, "SVRows")
	return &models.EnvironmentalSummary{
		Facilities:      parseFacilities(providers.Slice(providers.Path(raw, "Results", "Facilities"))),
		TotalFacilities: total,
		TotalViolations: snc + providers.Int(results, "CVRows"),
		TotalPenalties:  providers.Float(results, "TotalPenalties"),
		ComplianceRate:  ComplianceRate(total, snc),
	}, nil
}

// ComplianceRate is round((total-snc)/total*100), or 100 with no facilities.
func ComplianceRate(total, snc int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(total-snc) / float64(total) * 100))
}

func parseFacilities(items []any) []models.Facility {
	out := make([]models.Facility, 0, min(len(items), maxFacilities))
	for _, item := range items {
		if len(out) >= maxFacilities {
			break
		}
		f := providers.Object(item)
		if f == nil {
			continue
		}
		out = append(out, models.Facility{
			Name:                     providers.Str(f, "FacName"),
			RegistryID:               providers.Str(f, "RegistryID"),
			Address:                  providers.Str(f, "FacStreet"),
			City:                     providers.Str(f, "FacCity"),
			State:                    providers.Str(f, "FacState"),
			ComplianceStatus:         withDefault(providers.Str(f, "FacComplianceStatus"), "Unknown"),
			LastInspection:           withDefault(providers.Str(f, "FacDateLastInspection"), "N/A"),
			InspectionCount:          providers.Int(f, "FacInspectionCount"),
			Penalties:                providers.Float(f, "CAAPenalties"),
			Programs:                 programs(f),
			SignificantNoncompliance: strings.EqualFold(providers.Str(f, "FacSNCFlg"), "Y"),
		})
	}
	return out
}

// programs derives applicable programs from per-program status and flag fields.
func programs(f map[string]any) []string {
	out := make([]string, 0, 5)
	if flag(f, "AIRFlag") || providers.Str(f, "CAAComplianceStatus") != "" {
		out = append(out, ProgramCleanAir)
	}
	if providers.Str(f, "CWAComplianceStatus") != "" {
		out = append(out, ProgramCleanWater)
	}
	if providers.Str(f, "RCRAComplianceStatus") != "" {
		out = append(out, ProgramRCRA)
	}
	if providers.Str(f, "SDWAComplianceStatus") != "" {
		out = append(out, ProgramSafeDrinkingWater)
	}
	if flag(f, "TRIFlag") {
		out = append(out, ProgramToxicsReleaseInv)
	}
	return out
}

func flag(f map[string]any, key string) bool {
	return providers.Str(f, key) == "Y"
}

func withDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
