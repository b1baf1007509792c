// Package plan defines the financial inputs for a purchase-plus-renovation
// project and derives the consolidated affordability summary from them.
package plan

// Inputs holds one immutable snapshot of the user-supplied parameters. The
// engine never mutates it; callers re-invoke the derivations after any
// change. All monetary fields are expected to arrive non-negative; clamping
// of malformed entry is the input layer's job.
type Inputs struct {
	// Project costs
	PurchasePrice       float64 `json:"purchasePrice" yaml:"purchasePrice"`
	RegistrationRatePct float64 `json:"registrationRatePct" yaml:"registrationRatePct"`
	NotaryFees          float64 `json:"notaryFees" yaml:"notaryFees"`
	RenovationBudget    float64 `json:"renovationBudget" yaml:"renovationBudget"`
	ContingencyPct      float64 `json:"contingencyPct" yaml:"contingencyPct"`

	// Funding sources
	OwnCash             float64 `json:"ownCash" yaml:"ownCash"`
	CryptoNet           float64 `json:"cryptoNet" yaml:"cryptoNet"`
	FamilyLoanAmount    float64 `json:"familyLoanAmount" yaml:"familyLoanAmount"`
	FamilyLoanRatePct   float64 `json:"familyLoanRatePct" yaml:"familyLoanRatePct"`
	FamilyLoanTermYears int     `json:"familyLoanTermYears" yaml:"familyLoanTermYears"`
	BankLoanAmount      float64 `json:"bankLoanAmount" yaml:"bankLoanAmount"`
	BankRatePct         float64 `json:"bankRatePct" yaml:"bankRatePct"`
	BankTermYears       int     `json:"bankTermYears" yaml:"bankTermYears"`

	// Monthly income and costs
	NetIncomeMonthly       float64 `json:"netIncomeMonthly" yaml:"netIncomeMonthly"`
	OtherFixedCostsMonthly float64 `json:"otherFixedCostsMonthly" yaml:"otherFixedCostsMonthly"`
	AirbnbIncome           float64 `json:"airbnbIncome" yaml:"airbnbIncome"`
	UseAirbnbIncome        bool    `json:"useAirbnbIncome" yaml:"useAirbnbIncome"`

	// Descriptive fields, carried through but not used in arithmetic
	ProjectName    string  `json:"projectName" yaml:"projectName"`
	ReportNotes    string  `json:"reportNotes" yaml:"reportNotes"`
	BusinessUsePct float64 `json:"businessUsePct" yaml:"businessUsePct"`
}

// DefaultInputs returns the baseline project parameters used when no
// configuration overrides them.
func DefaultInputs() Inputs {
	return Inputs{
		ProjectName:         "Home purchase & renovation",
		PurchasePrice:       700000,
		RegistrationRatePct: 2,
		NotaryFees:          5000,
		RenovationBudget:    450000,
		ContingencyPct:      12,

		OwnCash:             30000,
		CryptoNet:           0,
		FamilyLoanAmount:    200000,
		FamilyLoanRatePct:   2,
		FamilyLoanTermYears: 20,
		BankLoanAmount:      850000,
		BankRatePct:         4,
		BankTermYears:       25,

		NetIncomeMonthly:       5500,
		OtherFixedCostsMonthly: 1500,
		AirbnbIncome:           800,
		UseAirbnbIncome:        true,
	}
}
