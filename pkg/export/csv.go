package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"homeplan/pkg/loans"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

// WriteSummaryCSV writes the summary as metric,amount rows.
func WriteSummaryCSV(w io.Writer, s plan.Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"metric", "amount"}); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, line := range summaryLines(s) {
		if err := cw.Write([]string{line.label, formatAmount(line.value)}); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	if err := cw.Write([]string{"Affordability", string(s.Classify())}); err != nil {
		return fmt.Errorf("write summary row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WriteScheduleCSV writes an amortization schedule with one row per month.
func WriteScheduleCSV(w io.Writer, rows []loans.Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"month", "payment", "interest", "principal", "balance"}); err != nil {
		return fmt.Errorf("write schedule header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			fmt.Sprintf("%d", row.Month),
			formatAmount(row.Payment),
			formatAmount(row.Interest),
			formatAmount(row.Principal),
			formatAmount(row.Balance),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write schedule row %d: %w", row.Month, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteGridCSV writes the sensitivity matrix with rates as columns and one
// row per amount. Uncomfortable payments carry a trailing "!" marker.
func WriteGridCSV(w io.Writer, grid *sensitivity.Grid) error {
	cw := csv.NewWriter(w)

	header := []string{"amount"}
	for _, rate := range grid.Rates() {
		header = append(header, fmt.Sprintf("%.2f%%", rate))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write grid header: %w", err)
	}

	for _, row := range grid.Rows {
		if len(row) == 0 {
			continue
		}
		record := []string{formatAmount(row[0].Amount)}
		for _, cell := range row {
			value := formatAmount(cell.Monthly)
			if !cell.Comfortable {
				value += "!"
			}
			record = append(record, value)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write grid row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
