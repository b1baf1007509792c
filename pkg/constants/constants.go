// Package constants provides shared constants for the homeplan application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Affordability and risk thresholds
const (
	// ComfortableDTIPct is the debt-to-income ceiling for a comfortable plan
	ComfortableDTIPct = 45.0

	// StretchedDTIPct is the debt-to-income ceiling beyond which a plan is untenable
	StretchedDTIPct = 55.0

	// ConservativeDTIAlertPct triggers an advisory when the conservative
	// outlook pushes DTI past it
	ConservativeDTIAlertPct = 60.0

	// ComfortBufferMonthly is the minimum monthly net surplus for a low-risk plan
	ComfortBufferMonthly = 1000.0

	// AirbnbDependencyAlert is the rental income level above which the plan
	// is flagged as dependent on it
	AirbnbDependencyAlert = 500.0

	// RecommendedContingencyPct is the minimum renovation contingency before
	// an advisory fires
	RecommendedContingencyPct = 12.0

	// MaxRecommendations caps the advisory list
	MaxRecommendations = 5
)

// Outlook shock parameters
const (
	// RateShockPct is the symmetric interest rate shock applied to the
	// optimistic and conservative outlooks
	RateShockPct = 0.5

	// RateFloorPct is the lowest rate the optimistic outlook may assume
	RateFloorPct = 0.5

	// IncomeShockPct is the symmetric income shock applied to the
	// optimistic and conservative outlooks
	IncomeShockPct = 10.0
)

// Sensitivity color-scale thresholds on the normalized [0,1] payment range
const (
	TierLowCutoff = 0.33
	TierMidCutoff = 0.67
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)
