package models

import "time"

// Source names one upstream provider slot in a composite report.
type Source string

const (
	SourceFilings       Source = "sec"
	SourceFinancials    Source = "financials"
	SourceComplaints    Source = "cfpb"
	SourceEnvironmental Source = "epa"
	SourceSafety        Source = "osha"
	SourcePatents       Source = "uspto"
	SourceBanking       Source = "fdic"
)

// AllSources lists every slot in report order.
var AllSources = []Source{
	SourceFilings,
	SourceFinancials,
	SourceComplaints,
	SourceEnvironmental,
	SourceSafety,
	SourcePatents,
	SourceBanking,
}

// Availability maps each source to whether its slot carries data.
type Availability map[Source]bool

// CompositeReport is the best-effort aggregation for one company query.
// A nil slot means the source was skipped or failed.
type CompositeReport struct {
	CompanyName   string                `json:"company_name"`
	RegistryID    RegistryID            `json:"cik"`
	Candidates    []Candidate           `json:"candidates,omitempty"`
	Filings       *CompanyIdentity      `json:"sec"`
	Financials    *FinancialSeries      `json:"financials"`
	Complaints    *ComplaintSummary     `json:"cfpb"`
	Environmental *EnvironmentalSummary `json:"epa"`
	Safety        *SafetySummary        `json:"osha"`
	Patents       *IPSummary            `json:"uspto"`
	Banking       *BankingSummary       `json:"fdic"`
	TrustScore    TrustScore            `json:"trust_score"`
	Availability  Availability          `json:"data_availability"`
	GeneratedAt   time.Time             `json:"generated_at"`
}

// ComputeAvailability derives the availability map from the report slots.
// A financial series only counts when at least one concept has observations.
func (r *CompositeReport) ComputeAvailability() Availability {
	return Availability{
		SourceFilings:       r.Filings != nil,
		SourceFinancials:    r.Financials != nil && !r.Financials.IsEmpty(),
		SourceComplaints:    r.Complaints != nil,
		SourceEnvironmental: r.Environmental != nil,
		SourceSafety:        r.Safety != nil,
		SourcePatents:       r.Patents != nil,
		SourceBanking:       r.Banking != nil,
	}
}

// Grade is a letter grade derived from the overall trust score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// CategoryScore is one weighted sub-score with a human-readable explanation.
type CategoryScore struct {
	Score   int     `json:"score"`
	Weight  float64 `json:"weight"`
	Details string  `json:"details"`
}

// Categories holds the four scored categories.
type Categories struct {
	ConsumerComplaints      CategoryScore `json:"consumer_complaints"`
	EnvironmentalCompliance CategoryScore `json:"environmental_compliance"`
	WorkplaceSafety         CategoryScore `json:"workplace_safety"`
	RegulatoryFiling        CategoryScore `json:"regulatory_filing"`
}

// All returns the categories in a fixed order.
func (c Categories) All() []CategoryScore {
	return []CategoryScore{
		c.ConsumerComplaints,
		c.EnvironmentalCompliance,
		c.WorkplaceSafety,
		c.RegulatoryFiling,
	}
}

// TrustScore is the weighted composite regulatory-health score.
type TrustScore struct {
	Overall    int        `json:"overall"`
	Grade      Grade      `json:"grade"`
	GradeColor string     `json:"grade_color"`
	Categories Categories `json:"categories"`
}
