package filings

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
)

const maxObservations = 5

// revenueConcepts are tried in priority order; filers moved between them over the years.
var revenueConcepts = []string{
	"RevenueFromContractWithCustomerExcludingAssessedTax",
	"RevenueFromContractWithCustomerIncludingAssessedTax",
	"Revenues",
	"SalesRevenueNet",
	"SalesRevenueGoodsNet",
}

// Financials extracts up to five annual observations per concept from the
// company-facts endpoint.
func (a *Adapter) Financials(ctx context.Context, id models.RegistryID) (*models.FinancialSeries, error) {
	if id.IsZero() {
		return nil, providers.NewProviderError(providers.ErrorInternal, ProviderID, "registry id required", nil)
	}
	raw, err := a.client.GetJSON(ctx, fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", a.dataURL, id))
	if err != nil {
		return nil, err
	}
	gaap := providers.Object(providers.Path(raw, "facts", "us-gaap"))

	revenue := make([][]models.Observation, 0, len(revenueConcepts))
	for _, concept := range revenueConcepts {
		revenue = append(revenue, annualSeries(gaap, concept))
	}

	return &models.FinancialSeries{
		Revenue:            mostCurrent(revenue),
		NetIncome:          annualSeries(gaap, "NetIncomeLoss"),
		TotalAssets:        annualSeries(gaap, "Assets"),
		TotalLiabilities:   annualSeries(gaap, "Liabilities"),
		ShareholdersEquity: annualSeries(gaap, "StockholdersEquity"),
	}, nil
}

type fact struct {
	end   string
	filed string
	value float64
	year  int
}

// annualSeries keeps USD facts from annual reports, newest period first, one
// per calendar year of period end. Within a year the latest-filed fact wins.
func annualSeries(gaap map[string]any, concept string) []models.Observation {
	entries := providers.Slice(providers.Path(gaap, concept, "units", "USD"))
	facts := make([]fact, 0, len(entries))
	for _, e := range entries {
		m := providers.Object(e)
		form := providers.Str(m, "form")
		if form != "10-K" && form != "10-K/A" {
			continue
		}
		end := providers.Str(m, "end")
		periodEnd, err := time.Parse(time.DateOnly, end)
		if err != nil {
			continue
		}
		facts = append(facts, fact{
			end:   end,
			filed: providers.Str(m, "filed"),
			value: providers.AsFloat(m["val"]),
			year:  periodEnd.Year(),
		})
	}

	slices.SortStableFunc(facts, func(x, y fact) int {
		if c := cmp.Compare(y.end, x.end); c != 0 {
			return c
		}
		return cmp.Compare(y.filed, x.filed)
	})

	seen := make(map[int]struct{}, maxObservations)
	out := make([]models.Observation, 0, maxObservations)
	for _, f := range facts {
		if _, dup := seen[f.year]; dup {
			continue
		}
		seen[f.year] = struct{}{}
		out = append(out, models.Observation{PeriodEnd: f.end, Value: f.value, Year: f.year})
		if len(out) >= maxObservations {
			break
		}
	}
	return out
}

// mostCurrent picks the non-empty series whose newest year is greatest.
// Ties go to the earlier (higher-priority) series.
func mostCurrent(candidates [][]models.Observation) []models.Observation {
	var best []models.Observation
	for _, c := range candidates {
		if len(c) == 0 {
			continue
		}
		if best == nil || c[0].Year > best[0].Year {
			best = c
		}
	}
	if best == nil {
		return []models.Observation{}
	}
	return best
}
