// Package advisor derives macro-economic outlooks from a plan summary and
// classifies the overall risk of the project.
package advisor

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"homeplan/pkg/constants"
	"homeplan/pkg/loans"
	"homeplan/pkg/mathutil"
	"homeplan/pkg/plan"
)

// Risk is a coarse risk tier.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// Color maps a risk tier onto the traffic-light palette used by display
// layers.
func (r Risk) Color() string {
	switch r {
	case RiskLow:
		return "green"
	case RiskMedium:
		return "yellow"
	default:
		return "red"
	}
}

// Outlook is one macro-economic variant of the realistic case.
type Outlook struct {
	Name          string  `json:"name" yaml:"name"`
	RatePct       float64 `json:"ratePct" yaml:"ratePct"`
	IncomeDelta   float64 `json:"incomeDelta" yaml:"incomeDelta"`
	BankMonthly   float64 `json:"bankMonthly" yaml:"bankMonthly"`
	FamilyMonthly float64 `json:"familyMonthly" yaml:"familyMonthly"`
	TotalDebt     float64 `json:"totalDebt" yaml:"totalDebt"`
	DTIPct        float64 `json:"dtiPct" yaml:"dtiPct"`
	MonthlyNet    float64 `json:"monthlyNet" yaml:"monthlyNet"`
	Risk          Risk    `json:"risk" yaml:"risk"`
}

// Analysis is the full risk picture for one plan snapshot.
type Analysis struct {
	OverallRisk     Risk      `json:"overallRisk" yaml:"overallRisk"`
	Outlooks        []Outlook `json:"outlooks" yaml:"outlooks"`
	Recommendations []string  `json:"recommendations" yaml:"recommendations"`
}

// Analyzer computes risk analyses.
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates a new analyzer instance. A nil logger is replaced with
// a no-op logger.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// Analyze generates the three named outlooks (optimistic, realistic,
// conservative, in that order), classifies each, and derives the overall
// risk. A funding gap forces the overall risk to high regardless of how the
// realistic outlook stands on its own.
func (a *Analyzer) Analyze(in plan.Inputs, s plan.Summary) Analysis {
	optimisticRate := math.Max(constants.RateFloorPct, in.BankRatePct-constants.RateShockPct)
	outlooks := []Outlook{
		a.buildOutlook("Optimistic", in, s, optimisticRate, +constants.IncomeShockPct),
		a.buildOutlook("Realistic", in, s, in.BankRatePct, 0),
		a.buildOutlook("Conservative", in, s, in.BankRatePct+constants.RateShockPct, -constants.IncomeShockPct),
	}

	overall := outlooks[1].Risk
	if s.FundingGap > 0 {
		overall = RiskHigh
		a.logger.Debug("funding gap forces overall risk to high",
			zap.String("op", "advisor.Analyze"),
			zap.Float64("fundingGap", s.FundingGap),
		)
	}

	return Analysis{
		OverallRisk:     overall,
		Outlooks:        outlooks,
		Recommendations: a.recommendations(in, s, outlooks),
	}
}

func (a *Analyzer) buildOutlook(name string, in plan.Inputs, s plan.Summary, ratePct, incomeDelta float64) Outlook {
	income := in.NetIncomeMonthly * (1 + incomeDelta/constants.PercentageMultiplier)
	bankMonthly := loans.CalculateMonthlyPayment(
		ratePct/constants.PercentageMultiplier, in.BankTermYears, in.BankLoanAmount)

	// The family loan terms are fixed by agreement; only the bank rate moves.
	totalDebt := bankMonthly + s.FamilyMonthly

	dtiPct := 100.0
	if income > 0 {
		dtiPct = mathutil.CalculatePercentage(totalDebt, income)
	}

	monthlyNet := income - in.OtherFixedCostsMonthly - totalDebt
	if in.UseAirbnbIncome {
		monthlyNet += in.AirbnbIncome
	}

	return Outlook{
		Name:          name,
		RatePct:       ratePct,
		IncomeDelta:   incomeDelta,
		BankMonthly:   mathutil.Round(bankMonthly),
		FamilyMonthly: s.FamilyMonthly,
		TotalDebt:     mathutil.Round(totalDebt),
		DTIPct:        mathutil.Round(dtiPct),
		MonthlyNet:    mathutil.Round(monthlyNet),
		Risk:          classifyOutlook(mathutil.Round(dtiPct), mathutil.Round(monthlyNet)),
	}
}

// classifyOutlook applies the ordered risk checks; the first matching branch
// wins.
func classifyOutlook(dtiPct, monthlyNet float64) Risk {
	if dtiPct <= constants.ComfortableDTIPct && monthlyNet > constants.ComfortBufferMonthly {
		return RiskLow
	}
	if dtiPct <= constants.StretchedDTIPct && monthlyNet > 0 {
		return RiskMedium
	}
	return RiskHigh
}

// recommendations assembles the advisory list in fixed priority order,
// capped at MaxRecommendations entries. When nothing fires, a single
// positive affirmation is returned instead.
func (a *Analyzer) recommendations(in plan.Inputs, s plan.Summary, outlooks []Outlook) []string {
	var recs []string

	if s.FundingGap > 0 {
		recs = append(recs, fmt.Sprintf(
			"The plan is short %.2f in funding. Increase own contributions, the family loan, or the bank loan before committing.",
			s.FundingGap))
	}

	if s.DTIPct > constants.StretchedDTIPct {
		recs = append(recs, fmt.Sprintf(
			"Debt service consumes %.1f%% of net income, past the %.0f%% ceiling lenders tolerate. Reduce the borrowed amount or extend the term.",
			s.DTIPct, constants.StretchedDTIPct))
	} else if s.DTIPct > constants.ComfortableDTIPct {
		recs = append(recs, fmt.Sprintf(
			"Debt service at %.1f%% of net income exceeds the comfortable %.0f%% mark. Consider a longer term or a smaller loan.",
			s.DTIPct, constants.ComfortableDTIPct))
	}

	if s.NetAfter < constants.ComfortBufferMonthly {
		recs = append(recs, fmt.Sprintf(
			"The monthly buffer of %.2f is below the recommended %.0f. One large repair could force new borrowing.",
			s.NetAfter, constants.ComfortBufferMonthly))
	}

	if conservative := outlooks[len(outlooks)-1]; conservative.DTIPct > constants.ConservativeDTIAlertPct {
		recs = append(recs, fmt.Sprintf(
			"Under the conservative outlook the DTI reaches %.1f%%. A rate rise combined with an income dip would make the plan untenable.",
			conservative.DTIPct))
	}

	if in.UseAirbnbIncome && in.AirbnbIncome > constants.AirbnbDependencyAlert {
		recs = append(recs, fmt.Sprintf(
			"The plan leans on %.2f of short-term rental income per month. Verify local regulations and stress-test without it.",
			in.AirbnbIncome))
	}

	if in.ContingencyPct < constants.RecommendedContingencyPct {
		recs = append(recs, fmt.Sprintf(
			"A renovation contingency of %.1f%% is thin; %.0f%% or more is advisable for a project of this size.",
			in.ContingencyPct, constants.RecommendedContingencyPct))
	}

	if len(recs) == 0 {
		recs = append(recs,
			"The plan is fully funded with a healthy debt ratio and monthly buffer. Proceed to formal financing offers.")
	}

	if len(recs) > constants.MaxRecommendations {
		recs = recs[:constants.MaxRecommendations]
	}

	return recs
}
