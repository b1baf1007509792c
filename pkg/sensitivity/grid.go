// Package sensitivity sweeps loan amount and interest rate combinations to
// build a matrix of monthly payments and affordability flags.
package sensitivity

import (
	"fmt"

	"homeplan/pkg/constants"
	"homeplan/pkg/loans"
	"homeplan/pkg/mathutil"
)

// SweepConfig bounds the amount/rate sweep. Rates are percentages (4.0 for
// 4%), amounts are currency.
type SweepConfig struct {
	MinAmount  float64 `json:"minAmount" yaml:"minAmount"`
	MaxAmount  float64 `json:"maxAmount" yaml:"maxAmount"`
	StepAmount float64 `json:"stepAmount" yaml:"stepAmount"`
	MinRate    float64 `json:"minRate" yaml:"minRate"`
	MaxRate    float64 `json:"maxRate" yaml:"maxRate"`
	StepRate   float64 `json:"stepRate" yaml:"stepRate"`
}

// DefaultSweepConfig returns the sweep bounds used when no configuration
// overrides them.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		MinAmount:  600000,
		MaxAmount:  1000000,
		StepAmount: 50000,
		MinRate:    3.0,
		MaxRate:    5.5,
		StepRate:   0.25,
	}
}

// Validate fails fast on bounds that would produce an empty or unbounded
// sweep.
func (c SweepConfig) Validate() error {
	if c.MinAmount < 0 || c.MinRate < 0 {
		return fmt.Errorf("sweep bounds must be non-negative (minAmount=%.2f, minRate=%.2f)", c.MinAmount, c.MinRate)
	}
	if c.MinAmount > c.MaxAmount {
		return fmt.Errorf("minAmount %.2f exceeds maxAmount %.2f", c.MinAmount, c.MaxAmount)
	}
	if c.MinRate > c.MaxRate {
		return fmt.Errorf("minRate %.2f exceeds maxRate %.2f", c.MinRate, c.MaxRate)
	}
	if c.StepAmount <= 0 {
		return fmt.Errorf("stepAmount must be positive, got %.2f", c.StepAmount)
	}
	if c.StepRate <= 0 {
		return fmt.Errorf("stepRate must be positive, got %.2f", c.StepRate)
	}
	return nil
}

// Cell is one amount/rate combination of the sweep.
type Cell struct {
	Amount      float64 `json:"amount" yaml:"amount"`
	Rate        float64 `json:"rate" yaml:"rate"`
	Monthly     float64 `json:"monthly" yaml:"monthly"`
	Comfortable bool    `json:"comfortable" yaml:"comfortable"`
}

// Grid is the row-major sweep result: one row per amount ascending, one
// column per rate ascending within the row.
type Grid struct {
	Rows [][]Cell `json:"rows" yaml:"rows"`
}

// Generate sweeps the configured amount/rate space. Cells are stepped by
// integer counts rather than repeated float addition so the max boundary is
// never skipped or duplicated by accumulated drift. A cell is comfortable
// when the swept payment plus the fixed family loan payment stays within the
// comfortable share of net income; with no income every cell is
// uncomfortable.
func Generate(cfg SweepConfig, bankTermYears int, familyMonthly, netIncomeMonthly float64) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	amountSteps := stepCount(cfg.MinAmount, cfg.MaxAmount, cfg.StepAmount)
	rateSteps := stepCount(cfg.MinRate, cfg.MaxRate, cfg.StepRate)

	rows := make([][]Cell, 0, amountSteps)
	for i := 0; i < amountSteps; i++ {
		amount := cfg.MinAmount + float64(i)*cfg.StepAmount
		row := make([]Cell, 0, rateSteps)
		for j := 0; j < rateSteps; j++ {
			rate := cfg.MinRate + float64(j)*cfg.StepRate
			monthly := mathutil.Round(loans.CalculateMonthlyPayment(
				rate/constants.PercentageMultiplier, bankTermYears, amount))

			comfortable := false
			if netIncomeMonthly > 0 {
				share := mathutil.CalculatePercentage(monthly+familyMonthly, netIncomeMonthly)
				comfortable = share <= constants.ComfortableDTIPct
			}

			row = append(row, Cell{
				Amount:      amount,
				Rate:        rate,
				Monthly:     monthly,
				Comfortable: comfortable,
			})
		}
		rows = append(rows, row)
	}

	return &Grid{Rows: rows}, nil
}

// stepCount computes floor((max-min)/step)+1 with a small epsilon so a max
// boundary that divides evenly is never lost to float division noise.
func stepCount(min, max, step float64) int {
	const epsilon = 1e-9
	return int((max-min)/step+epsilon) + 1
}

// Amounts returns the distinct row keys in ascending order, for axis labels.
func (g *Grid) Amounts() []float64 {
	amounts := make([]float64, 0, len(g.Rows))
	for _, row := range g.Rows {
		if len(row) > 0 {
			amounts = append(amounts, row[0].Amount)
		}
	}
	return amounts
}

// Rates returns the distinct column keys in ascending order, for axis labels.
func (g *Grid) Rates() []float64 {
	if len(g.Rows) == 0 {
		return nil
	}
	rates := make([]float64, 0, len(g.Rows[0]))
	for _, cell := range g.Rows[0] {
		rates = append(rates, cell.Rate)
	}
	return rates
}

// MonthlyRange returns the min and max payment across the whole grid, used
// to normalize the color scale.
func (g *Grid) MonthlyRange() (min, max float64) {
	first := true
	for _, row := range g.Rows {
		for _, cell := range row {
			if first {
				min, max = cell.Monthly, cell.Monthly
				first = false
				continue
			}
			if cell.Monthly < min {
				min = cell.Monthly
			}
			if cell.Monthly > max {
				max = cell.Monthly
			}
		}
	}
	return min, max
}
