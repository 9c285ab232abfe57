// Package models holds the canonical records produced by the source adapters
// and the composite report assembled from them. Records are values: adapters
// build them once and nothing mutates them afterwards.
package models

// Candidate is one search hit from the filings registry directory.
type Candidate struct {
	RegistryID RegistryID `json:"cik"`
	Name       string     `json:"name"`
	Ticker     string     `json:"ticker"`
}

// Address is a registered address as reported by the filings registry.
type Address struct {
	Street1        string `json:"street1"`
	Street2        string `json:"street2"`
	City           string `json:"city"`
	StateOrCountry string `json:"state_or_country"`
	ZipCode        string `json:"zip_code"`
}

// Filing is one entry of the registry's recent-filings list.
type Filing struct {
	Form            string `json:"form"`
	FilingDate      string `json:"filing_date"`
	PrimaryDocument string `json:"primary_document"`
	Description     string `json:"description"`
}

// CompanyIdentity is the filings registry's view of a company.
type CompanyIdentity struct {
	RegistryID           RegistryID `json:"cik"`
	Name                 string     `json:"name"`
	Tickers              []string   `json:"tickers"`
	Exchanges            []string   `json:"exchanges"`
	SIC                  string     `json:"sic"`
	SICDescription       string     `json:"sic_description"`
	StateOfIncorporation string     `json:"state_of_incorporation"`
	FiscalYearEnd        string     `json:"fiscal_year_end"`
	EIN                  string     `json:"ein"`
	Website              string     `json:"website"`
	BusinessAddress      Address    `json:"business_address"`
	MailingAddress       Address    `json:"mailing_address"`
	RecentFilings        []Filing   `json:"recent_filings"`
}

// Ticker returns the primary ticker, if any.
func (c *CompanyIdentity) Ticker() string {
	if len(c.Tickers) == 0 {
		return ""
	}
	return c.Tickers[0]
}

// Observation is one annual data point of a financial concept.
type Observation struct {
	PeriodEnd string  `json:"period"`
	Value     float64 `json:"value"`
	Year      int     `json:"year"`
}

// FinancialSeries holds up to five annual observations per concept, newest first,
// one per calendar year.
type FinancialSeries struct {
	Revenue            []Observation `json:"revenue"`
	NetIncome          []Observation `json:"net_income"`
	TotalAssets        []Observation `json:"total_assets"`
	TotalLiabilities   []Observation `json:"total_liabilities"`
	ShareholdersEquity []Observation `json:"shareholders_equity"`
}

// IsEmpty reports whether no concept produced any observation.
func (f *FinancialSeries) IsEmpty() bool {
	return len(f.Revenue) == 0 &&
		len(f.NetIncome) == 0 &&
		len(f.TotalAssets) == 0 &&
		len(f.TotalLiabilities) == 0 &&
		len(f.ShareholdersEquity) == 0
}

// Bucket is a named count from a registry aggregation.
type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// YearCount is a per-year count.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Complaint is one recent consumer complaint.
type Complaint struct {
	Date            string `json:"date"`
	Product         string `json:"product"`
	Issue           string `json:"issue"`
	CompanyResponse string `json:"company_response"`
	Timely          bool   `json:"timely"`
}

// ComplaintSearchMode records which complaint query produced the data.
type ComplaintSearchMode string

const (
	ComplaintSearchByCompany  ComplaintSearchMode = "company"
	ComplaintSearchByFreeText ComplaintSearchMode = "free_text"
)

// ComplaintSummary aggregates the consumer-complaint registry.
// Rates are percentages over determinate yes/no buckets only.
type ComplaintSummary struct {
	CompanyName        string              `json:"company_name"`
	SearchMode         ComplaintSearchMode `json:"search_mode"`
	TotalComplaints    int                 `json:"total_complaints"`
	Products           []Bucket            `json:"products"`
	Issues             []Bucket            `json:"issues"`
	TimelyResponseRate float64             `json:"timely_response_rate"`
	DisputedRate       float64             `json:"disputed_rate"`
	RecentComplaints   []Complaint         `json:"recent_complaints"`
	ComplaintsByYear   []YearCount         `json:"complaints_by_year"`
}

// Facility is one environmental-registry facility.
type Facility struct {
	Name                     string   `json:"name"`
	RegistryID               string   `json:"registry_id"`
	Address                  string   `json:"address"`
	City                     string   `json:"city"`
	State                    string   `json:"state"`
	ComplianceStatus         string   `json:"compliance_status"`
	LastInspection           string   `json:"last_inspection"`
	InspectionCount          int      `json:"inspection_count"`
	Penalties                float64  `json:"penalties"`
	Programs                 []string `json:"programs"`
	SignificantNoncompliance bool     `json:"significant_noncompliance"`
}

// EnvironmentalSummary aggregates the environmental-compliance registry.
// Totals come from the registry's search aggregate, not from Facilities.
type EnvironmentalSummary struct {
	Facilities      []Facility `json:"facilities"`
	TotalFacilities int        `json:"total_facilities"`
	TotalViolations int        `json:"total_violations"`
	TotalPenalties  float64    `json:"total_penalties"`
	ComplianceRate  int        `json:"compliance_rate"`
}

// Inspection is one workplace-safety inspection.
type Inspection struct {
	ActivityNumber    string  `json:"activity_nr"`
	EstablishmentName string  `json:"establishment_name"`
	Site              string  `json:"site"`
	City              string  `json:"city"`
	State             string  `json:"state"`
	OpenDate          string  `json:"open_date"`
	CloseDate         string  `json:"close_date"`
	InspectionType    string  `json:"inspection_type"`
	TotalPenalty      float64 `json:"total_penalty"`
	Serious           int     `json:"serious_violations"`
	Willful           int     `json:"willful_violations"`
	Other             int     `json:"other_violations"`
}

// SafetySummary aggregates the workplace-safety registry. Totals are exact
// sums over Inspections.
type SafetySummary struct {
	Inspections       []Inspection `json:"inspections"`
	TotalInspections  int          `json:"total_inspections"`
	TotalViolations   int          `json:"total_violations"`
	TotalPenalties    float64      `json:"total_penalties"`
	SeriousViolations int          `json:"serious_violation_count"`
	WillfulViolations int          `json:"willful_violation_count"`
}

// NewSafetySummary derives the totals from inspections.
func NewSafetySummary(inspections []Inspection) *SafetySummary {
	s := &SafetySummary{Inspections: inspections, TotalInspections: len(inspections)}
	for _, in := range inspections {
		s.TotalViolations += in.Serious + in.Willful + in.Other
		s.TotalPenalties += in.TotalPenalty
		s.SeriousViolations += in.Serious
		s.WillfulViolations += in.Willful
	}
	return s
}

// LookupStatus says whether a registry sub-lookup is actually backed by a working endpoint.
type LookupStatus string

const (
	LookupAvailable   LookupStatus = "available"
	LookupUnsupported LookupStatus = "unsupported"
)

// UnsupportedLookupNote annotates lookups that have no usable public endpoint.
const UnsupportedLookupNote = "unsupported data source — requires authenticated access"

// Patent is one patent-assignment record.
type Patent struct {
	Title      string   `json:"title"`
	Number     string   `json:"patent_number"`
	FilingDate string   `json:"filing_date"`
	GrantDate  string   `json:"grant_date"`
	Inventors  []string `json:"inventors"`
	Abstract   string   `json:"abstract"`
}

// Trademark is a trademark record. No endpoint currently yields these.
type Trademark struct {
	Name               string `json:"name"`
	SerialNumber       string `json:"serial_number"`
	RegistrationNumber string `json:"registration_number"`
	FilingDate         string `json:"filing_date"`
	Status             string `json:"status"`
	Description        string `json:"description"`
}

// IPSummary aggregates the patent/trademark registry. Totals are registry
// reported and may exceed the number of detailed records.
type IPSummary struct {
	Patents         []Patent     `json:"patents"`
	Trademarks      []Trademark  `json:"trademarks"`
	TotalPatents    int          `json:"total_patents"`
	TotalTrademarks int          `json:"total_trademarks"`
	PatentLookup    LookupStatus `json:"patent_lookup"`
	TrademarkLookup LookupStatus `json:"trademark_lookup"`
	Note            string       `json:"note"`
}

// Institution is one banking-registry institution. Money is in whole currency units.
type Institution struct {
	Name               string  `json:"name"`
	CertNumber         string  `json:"cert_number"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	TotalAssets        float64 `json:"total_assets"`
	TotalDeposits      float64 `json:"total_deposits"`
	NetIncome          float64 `json:"net_income"`
	Established        string  `json:"established"`
	Active             bool    `json:"active"`
	Regulator          string  `json:"regulator_name"`
	CharterClass       string  `json:"charter_class"`
	InsuredStatus      string  `json:"insured_status"`
	ReturnOnAssets     float64 `json:"return_on_assets"`
	EquityCapitalRatio float64 `json:"equity_capital_ratio"`
}

// BankingSummary aggregates the banking-health registry.
type BankingSummary struct {
	Institutions []Institution `json:"institutions"`
	Found        bool          `json:"found"`
	Strategy     string        `json:"strategy,omitempty"`
}
