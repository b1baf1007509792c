// Package loans provides fixed-payment loan amortization utilities.
package loans

import (
	"math"

	"go.uber.org/zap"
	"homeplan/pkg/constants"
	"homeplan/pkg/mathutil"
)

// Row holds one month of an amortization schedule. Monetary fields are
// rounded to two decimals at emission time.
type Row struct {
	Month     int     `json:"month" yaml:"month"`
	Payment   float64 `json:"payment" yaml:"payment"`
	Interest  float64 `json:"interest" yaml:"interest"`
	Principal float64 `json:"principal" yaml:"principal"`
	Balance   float64 `json:"balance" yaml:"balance"`
}

// CalculateMonthlyPayment calculates the fixed monthly payment for a loan
// using the standard annuity formula. The rate is an annual fraction
// (0.04 for 4%). A missing loan (zero principal or term) costs nothing,
// and a zero rate degrades to straight-line amortization.
func CalculateMonthlyPayment(annualRate float64, termYears int, principal float64) float64 {
	if principal <= 0 || termYears <= 0 {
		return 0
	}

	termMonths := termYears * constants.MonthsPerYear
	if annualRate <= 0 {
		return principal / float64(termMonths)
	}

	periodicRate := annualRate / constants.MonthsPerYear
	power := math.Pow(1.00+periodicRate, float64(termMonths))
	return principal * (periodicRate * power) / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of one payment
// against the remaining balance.
func CalculateInterestPayment(balance, annualRate float64) float64 {
	return balance * annualRate / constants.MonthsPerYear
}

// ScheduleGenerator builds amortization schedules.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance. A nil logger is
// replaced with a no-op logger.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// Generate creates the complete month-by-month schedule for a loan. The
// returned slice has exactly termYears*12 rows, or none at all when there
// is no loan. The principal portion of each payment is clamped to the
// remaining balance so the final row lands on an exact zero regardless of
// floating-point drift accumulated along the way.
func (g *ScheduleGenerator) Generate(principal, annualRate float64, termYears int) []Row {
	if principal <= 0 || termYears <= 0 {
		return nil
	}

	payment := CalculateMonthlyPayment(annualRate, termYears, principal)
	termMonths := termYears * constants.MonthsPerYear

	g.logger.Debug("generating amortization schedule",
		zap.String("op", "loans.Generate"),
		zap.Float64("principal", principal),
		zap.Float64("annualRate", annualRate),
		zap.Int("termMonths", termMonths),
	)

	rows := make([]Row, 0, termMonths)
	balance := principal
	for month := 1; month <= termMonths; month++ {
		interest := CalculateInterestPayment(balance, annualRate)
		principalPortion := math.Min(payment-interest, balance)
		balance = math.Max(0, balance-principalPortion)

		rows = append(rows, Row{
			Month:     month,
			Payment:   mathutil.Round(payment),
			Interest:  mathutil.Round(interest),
			Principal: mathutil.Round(principalPortion),
			Balance:   mathutil.Round(balance),
		})
	}

	return rows
}

// BuildSchedule is a convenience wrapper around a generator with no logging.
func BuildSchedule(principal, annualRate float64, termYears int) []Row {
	return NewScheduleGenerator(nil).Generate(principal, annualRate, termYears)
}
