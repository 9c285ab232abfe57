// Package scoring derives the trust score from the regulatory slots of a
// composite report. Everything here is pure: no I/O, no clock reads. The
// caller passes the evaluation time.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"companyintel/internal/intel/models"
)

// Weights for categories with and without data.
const (
	WeightPresent       = 1.0
	WeightFilingPresent = 0.75
	WeightAbsent        = 0.5

	// OverallWithoutWeight is the overall score when no category carries weight.
	OverallWithoutWeight = 50
)

// Baselines used when a category has no data.
const (
	BaselineComplaints    = 70
	BaselineEnvironmental = 75
	BaselineSafety        = 75
	BaselineFiling        = 50
)

// AnnualReportForm is the filing form type that earns the annual-report bonus.
const AnnualReportForm = "10-K"

// Calculate scores the four categories and combines them into the weighted
// overall score. Any input may be nil.
func Calculate(
	now time.Time,
	filings *models.CompanyIdentity,
	complaints *models.ComplaintSummary,
	env *models.EnvironmentalSummary,
	safety *models.SafetySummary,
) models.TrustScore {
	categories := models.Categories{
		ConsumerComplaints:      ScoreComplaints(complaints),
		EnvironmentalCompliance: ScoreEnvironmental(env),
		WorkplaceSafety:         ScoreSafety(safety),
		RegulatoryFiling:        ScoreFilings(now, filings),
	}
	overall := Overall(categories.All())
	return models.TrustScore{
		Overall:    overall,
		Grade:      GradeFor(overall),
		GradeColor: ColorFor(overall),
		Categories: categories,
	}
}

// Overall is round(sum(score*weight) / sum(weight)), or 50 with no weight.
func Overall(categories []models.CategoryScore) int {
	var weighted, total float64
	for _, c := range categories {
		weighted += float64(c.Score) * c.Weight
		total += c.Weight
	}
	if total <= 0 {
		return OverallWithoutWeight
	}
	return int(math.Round(weighted / total))
}

// ScoreComplaints scores consumer-complaint history.
func ScoreComplaints(c *models.ComplaintSummary) models.CategoryScore {
	if c == nil {
		return models.CategoryScore{Score: BaselineComplaints, Weight: WeightAbsent, Details: "No consumer complaint data available"}
	}

	score := 90
	switch total := c.TotalComplaints; {
	case total > 10000:
		score -= 30
	case total > 5000:
		score -= 20
	case total > 1000:
		score -= 15
	case total > 100:
		score -= 5
	}

	switch rate := c.TimelyResponseRate; {
	case rate >= 98:
		score += 5
	case rate >= 95:
		score += 2
	case rate < 80:
		score -= 10
	}

	switch rate := c.DisputedRate; {
	case rate > 30:
		score -= 10
	case rate > 20:
		score -= 5
	}

	details := fmt.Sprintf("%s complaints, %s%% timely response",
		humanize.Comma(int64(c.TotalComplaints)), humanize.Ftoa(c.TimelyResponseRate))
	return models.CategoryScore{Score: clamp(score), Weight: WeightPresent, Details: details}
}

// ScoreEnvironmental scores environmental compliance. Zero facilities counts as no data.
func ScoreEnvironmental(e *models.EnvironmentalSummary) models.CategoryScore {
	if e == nil || e.TotalFacilities == 0 {
		return models.CategoryScore{Score: BaselineEnvironmental, Weight: WeightAbsent, Details: "No environmental facility data"}
	}

	score := 90
	switch v := e.TotalViolations; {
	case v > 50:
		score -= 30
	case v > 20:
		score -= 20
	case v > 5:
		score -= 10
	case v > 0:
		score -= 5
	}

	switch p := e.TotalPenalties; {
	case p > 1_000_000:
		score -= 20
	case p > 100_000:
		score -= 10
	case p > 10_000:
		score -= 5
	}

	switch r := e.ComplianceRate; {
	case r >= 95:
		score += 5
	case r < 50:
		score -= 15
	}

	details := fmt.Sprintf("%s facilities, %s violations, $%s in penalties",
		humanize.Comma(int64(e.TotalFacilities)), humanize.Comma(int64(e.TotalViolations)), humanize.Commaf(e.TotalPenalties))
	return models.CategoryScore{Score: clamp(score), Weight: WeightPresent, Details: details}
}

// ScoreSafety scores workplace-safety history. Zero inspections counts as no data.
func ScoreSafety(s *models.SafetySummary) models.CategoryScore {
	if s == nil || s.TotalInspections == 0 {
		return models.CategoryScore{Score: BaselineSafety, Weight: WeightAbsent, Details: "No workplace safety inspection data"}
	}

	score := 85
	if s.WillfulViolations > 0 {
		score -= 25
	}

	switch n := s.SeriousViolations; {
	case n > 20:
		score -= 20
	case n > 10:
		score -= 15
	case n > 0:
		score -= 5
	}

	switch p := s.TotalPenalties; {
	case p > 500_000:
		score -= 15
	case p > 100_000:
		score -= 10
	case p > 10_000:
		score -= 5
	}

	details := fmt.Sprintf("%s inspections, %s violations, $%s penalties",
		humanize.Comma(int64(s.TotalInspections)), humanize.Comma(int64(s.TotalViolations)), humanize.Commaf(s.TotalPenalties))
	return models.CategoryScore{Score: clamp(score), Weight: WeightPresent, Details: details}
}

// ScoreFilings scores filing activity over the year before now.
func ScoreFilings(now time.Time, f *models.CompanyIdentity) models.CategoryScore {
	if f == nil {
		return models.CategoryScore{Score: BaselineFiling, Weight: WeightAbsent, Details: "No securities filing data"}
	}

	score := 85
	switch recent := RecentFilingCount(now, f.RecentFilings); {
	case recent > 5:
		score += 10
	case recent > 0:
		score += 5
	default:
		score -= 15
	}

	for _, filing := range f.RecentFilings {
		if filing.Form == AnnualReportForm {
			score += 5
			break
		}
	}

	return models.CategoryScore{
		Score:   clamp(score),
		Weight:  WeightFilingPresent,
		Details: fmt.Sprintf("%d recent filings, CIK: %s", len(f.RecentFilings), f.RegistryID),
	}
}

// RecentFilingCount counts filings dated after now minus one year.
// Unparseable dates do not count.
func RecentFilingCount(now time.Time, filings []models.Filing) int {
	cutoff := now.AddDate(-1, 0, 0)
	n := 0
	for _, f := range filings {
		d, err := time.Parse(time.DateOnly, f.FilingDate)
		if err != nil {
			continue
		}
		if d.After(cutoff) {
			n++
		}
	}
	return n
}

// GradeFor maps an overall score to a letter grade. Tiers are inclusive at the lower bound.
func GradeFor(score int) models.Grade {
	switch {
	case score >= 90:
		return models.GradeA
	case score >= 80:
		return models.GradeB
	case score >= 70:
		return models.GradeC
	case score >= 60:
		return models.GradeD
	default:
		return models.GradeF
	}
}

var gradeColors = map[models.Grade]string{
	models.GradeA: "#10b981",
	models.GradeB: "#34d399",
	models.GradeC: "#fbbf24",
	models.GradeD: "#f97316",
	models.GradeF: "#ef4444",
}

// ColorFor maps an overall score to its severity color token.
func ColorFor(score int) string {
	return gradeColors[GradeFor(score)]
}

func clamp(score int) int {
	return max(0, min(100, score))
}
