package safety

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companyintel/internal/intel/models"
	"companyintel/internal/intel/providers"
	"companyintel/internal/intel/providers/contract"
	"companyintel/pkg/testutil"
)

const mixedSchemaBody = `[
	{
		"activity_nr": 1700123, "estab_name": "ACME WAREHOUSE", "site_address": "9 DOCK ST",
		"site_city": "NEWARK", "site_state": "NJ", "open_date": "2024-05-02",
		"close_case_date": "2024-09-30", "insp_type": "B", "total_current_penalty": "15625.00",
		"serious_violations": 2, "willful_violations": 0, "other_violations": 1
	},
	{
		"activityNr": "1700456", "estabName": "ACME PLANT", "siteCity": "AKRON", "siteState": "OH",
		"openDate": "2023-11-20", "inspType": "A", "totalCurrentPenalty": 161323,
		"nr_serious": "4", "nr_willful": "1", "nr_other": "0"
	},
	"not an object"
]`

func newAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler)
	srv := testutil.NewFakeRegistry(t, mux)
	return New(providers.NewClient(ProviderID, providers.WithRateLimit(0, 0)), WithBaseURL(srv.URL))
}

func TestFetchContract(t *testing.T) {
	adapter := newAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inspection/search/Acme Corp/limit/25/orderby/open_date/desc", r.URL.Path)
		testutil.JSONResponse(http.StatusOK, mixedSchemaBody)(w, r)
	})

	suite := &contract.ContractSuite[models.SafetySummary]{
		ProviderID: ProviderID,
		Tests: []contract.ContractTest[models.SafetySummary]{
			{
				Name: "reads both schema generations",
				Fetch: func(ctx context.Context) (*models.SafetySummary, error) {
					return adapter.Fetch(ctx, "Acme Corp")
				},
				ValidateFunc: func(t *testing.T, s *models.SafetySummary) {
					require.Len(t, s.Inspections, 2)
					first, second := s.Inspections[0], s.Inspections[1]
					assert.Equal(t, "1700123", first.ActivityNumber)
					assert.Equal(t, "ACME WAREHOUSE", first.EstablishmentName)
					assert.Equal(t, "2024-09-30", first.CloseDate)
					assert.Equal(t, 15625.0, first.TotalPenalty)
					assert.Equal(t, "1700456", second.ActivityNumber)
					assert.Equal(t, "ACME PLANT", second.EstablishmentName)
					assert.Equal(t, "AKRON", second.City)
					assert.Equal(t, 4, second.Serious)
					assert.Equal(t, 1, second.Willful)
				},
			},
			{
				Name: "totals are exact sums of the inspections",
				Fetch: func(ctx context.Context) (*models.SafetySummary, error) {
					return adapter.Fetch(ctx, "Acme Corp")
				},
				ValidateFunc: func(t *testing.T, s *models.SafetySummary) {
					assert.Equal(t, 2, s.TotalInspections)
					assert.Equal(t, 8, s.TotalViolations)
					assert.Equal(t, 6, s.SeriousViolations)
					assert.Equal(t, 1, s.WillfulViolations)
					assert.Equal(t, 176948.0, s.TotalPenalties)
				},
			},
		},
	}
	suite.Run(t)
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		category providers.ErrorCategory
		retry    bool
	}{
		{name: "empty array", handler: testutil.JSONResponse(http.StatusOK, `[]`), category: providers.ErrorNotFound},
		{name: "object payload", handler: testutil.JSONResponse(http.StatusOK, `{"error": "gone"}`), category: providers.ErrorBadData},
		{name: "server error", handler: testutil.JSONResponse(http.StatusInternalServerError, `[]`), category: providers.ErrorProviderOutage, retry: true},
	}
	for _, tt := range tests {
		adapter := newAdapter(t, tt.handler)
		(&contract.ErrorContractTest{
			Name:       tt.name,
			ProviderID: ProviderID,
			Call: func(ctx context.Context) error {
				_, err := adapter.Fetch(ctx, "Acme")
				return err
			},
			ExpectedError: tt.category,
			ExpectedRetry: tt.retry,
		}).Run(t)
	}
}
