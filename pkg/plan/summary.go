package plan

import (
	"homeplan/pkg/constants"
	"homeplan/pkg/loans"
	"homeplan/pkg/mathutil"
)

// Summary is the consolidated financial picture derived from one Inputs
// snapshot. It carries no independent state; every field is a pure function
// of the inputs and is recomputed on demand.
type Summary struct {
	RegTax        float64 `json:"regTax" yaml:"regTax"`
	RenoWithCont  float64 `json:"renoWithCont" yaml:"renoWithCont"`
	TotalProject  float64 `json:"totalProject" yaml:"totalProject"`
	TotalSources  float64 `json:"totalSources" yaml:"totalSources"`
	FundingGap    float64 `json:"fundingGap" yaml:"fundingGap"`
	BankMonthly   float64 `json:"bankMonthly" yaml:"bankMonthly"`
	FamilyMonthly float64 `json:"familyMonthly" yaml:"familyMonthly"`
	TotalDebt     float64 `json:"totalDebt" yaml:"totalDebt"`
	DTIPct        float64 `json:"dtiPct" yaml:"dtiPct"`
	NetAfter      float64 `json:"netAfter" yaml:"netAfter"`
}

// Affordability is the display classification of a summary.
type Affordability string

const (
	AffordabilityGood Affordability = "good"
	AffordabilityWarn Affordability = "warn"
	AffordabilityBad  Affordability = "bad"
)

// Summarize derives the full Summary from one snapshot of inputs. All
// outputs are rounded to two decimals. Zero income yields a 0% DTI rather
// than an error or infinity.
func Summarize(in Inputs) Summary {
	regTax := mathutil.ApplyPercentage(in.PurchasePrice, in.RegistrationRatePct)
	renoWithCont := in.RenovationBudget * (1 + in.ContingencyPct/constants.PercentageMultiplier)
	totalProject := in.PurchasePrice + regTax + in.NotaryFees + renoWithCont
	totalSources := in.OwnCash + in.CryptoNet + in.FamilyLoanAmount + in.BankLoanAmount
	fundingGap := totalProject - totalSources

	bankMonthly := loans.CalculateMonthlyPayment(
		in.BankRatePct/constants.PercentageMultiplier, in.BankTermYears, in.BankLoanAmount)
	familyMonthly := loans.CalculateMonthlyPayment(
		in.FamilyLoanRatePct/constants.PercentageMultiplier, in.FamilyLoanTermYears, in.FamilyLoanAmount)
	totalDebt := bankMonthly + familyMonthly

	dtiPct := 0.0
	if in.NetIncomeMonthly > 0 {
		dtiPct = mathutil.CalculatePercentage(totalDebt, in.NetIncomeMonthly)
	}

	netAfter := in.NetIncomeMonthly - in.OtherFixedCostsMonthly - totalDebt
	if in.UseAirbnbIncome {
		netAfter += in.AirbnbIncome
	}

	return Summary{
		RegTax:        mathutil.Round(regTax),
		RenoWithCont:  mathutil.Round(renoWithCont),
		TotalProject:  mathutil.Round(totalProject),
		TotalSources:  mathutil.Round(totalSources),
		FundingGap:    mathutil.Round(fundingGap),
		BankMonthly:   mathutil.Round(bankMonthly),
		FamilyMonthly: mathutil.Round(familyMonthly),
		TotalDebt:     mathutil.Round(totalDebt),
		DTIPct:        mathutil.Round(dtiPct),
		NetAfter:      mathutil.Round(netAfter),
	}
}

// AutoBankLoan derives the bank loan amount that closes the gap between the
// total project cost and the other funding sources, floored at zero. It is a
// one-way derivation used to repopulate the bank loan field after a cost or
// source change, not a bidirectional constraint.
func AutoBankLoan(in Inputs) float64 {
	regTax := mathutil.ApplyPercentage(in.PurchasePrice, in.RegistrationRatePct)
	renoWithCont := in.RenovationBudget * (1 + in.ContingencyPct/constants.PercentageMultiplier)
	totalProject := in.PurchasePrice + regTax + in.NotaryFees + renoWithCont
	return mathutil.Round(mathutil.ClampNonNegative(totalProject - (in.OwnCash + in.CryptoNet + in.FamilyLoanAmount)))
}

// Classify buckets a summary for display. Bad conditions dominate Warn
// conditions, which dominate Good.
func (s Summary) Classify() Affordability {
	if s.FundingGap > 0 || s.DTIPct > constants.StretchedDTIPct || s.NetAfter < 0 {
		return AffordabilityBad
	}
	if s.FundingGap <= 0 && s.DTIPct <= constants.ComfortableDTIPct && s.NetAfter > 0 {
		return AffordabilityGood
	}
	return AffordabilityWarn
}
