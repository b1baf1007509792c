// Package export renders derived plan figures as terminal text, CSV rows,
// and XLSX workbooks. All formats share the engine's field names and
// two-decimal rounding so exported figures reconcile.
package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"homeplan/pkg/advisor"
	"homeplan/pkg/loans"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

// PrettySummary outputs a human-readable rather than machine-readable table.
func PrettySummary(w io.Writer, in plan.Inputs, s plan.Summary) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Summary for %s ---\n", in.ProjectName)
	fmt.Fprintf(w, "Metric               | Amount\n")
	fmt.Fprintf(w, "______               | ______\n")
	for _, line := range summaryLines(s) {
		p.Fprintf(w, "%-20s | $%.2f\n", line.label, line.value)
	}
	fmt.Fprintf(w, "Affordability        | %s\n", strings.ToUpper(string(s.Classify())))
}

// PrettySchedule outputs an amortization schedule table.
func PrettySchedule(w io.Writer, name string, rows []loans.Row) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "--- Amortization schedule: %s ---\n", name)
	if len(rows) == 0 {
		fmt.Fprintf(w, "(no loan)\n")
		return
	}
	fmt.Fprintf(w, "Month | Payment    | Interest   | Principal  | Balance\n")
	fmt.Fprintf(w, "_____ | _______    | ________   | _________  | _______\n")
	for _, row := range rows {
		p.Fprintf(w, "%5d | %10.2f | %10.2f | %10.2f | %12.2f\n",
			row.Month, row.Payment, row.Interest, row.Principal, row.Balance)
	}
}

// PrettyGrid outputs the sensitivity matrix with one row per amount. Cells
// carry a trailing marker when the payment is not comfortable.
func PrettyGrid(w io.Writer, grid *sensitivity.Grid) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "Amount \\ Rate |")
	for _, rate := range grid.Rates() {
		fmt.Fprintf(w, " %8.2f%% |", rate)
	}
	fmt.Fprintf(w, "\n")

	for _, row := range grid.Rows {
		if len(row) == 0 {
			continue
		}
		p.Fprintf(w, "%13.0f |", row[0].Amount)
		for _, cell := range row {
			marker := " "
			if !cell.Comfortable {
				marker = "!"
			}
			p.Fprintf(w, " %8.2f%s |", cell.Monthly, marker)
		}
		fmt.Fprintf(w, "\n")
	}
}

// PrettyOutlooks outputs the risk outlook table.
func PrettyOutlooks(w io.Writer, a advisor.Analysis) {
	p := message.NewPrinter(language.English)

	fmt.Fprintf(w, "Overall risk: %s (%s)\n", a.OverallRisk, a.OverallRisk.Color())
	for _, o := range a.Outlooks {
		p.Fprintf(w, "%-12s | rate %5.2f%% | income %+4.0f%% | debt $%.2f | DTI %5.1f%% | net $%.2f | %s\n",
			o.Name, o.RatePct, o.IncomeDelta, o.TotalDebt, o.DTIPct, o.MonthlyNet, o.Risk)
	}
}

type summaryLine struct {
	label string
	value float64
}

// summaryLines fixes the order and labels shared by every output format.
func summaryLines(s plan.Summary) []summaryLine {
	return []summaryLine{
		{"Registration tax", s.RegTax},
		{"Renovation w/ cont.", s.RenoWithCont},
		{"Total project", s.TotalProject},
		{"Total sources", s.TotalSources},
		{"Funding gap", s.FundingGap},
		{"Bank monthly", s.BankMonthly},
		{"Family monthly", s.FamilyMonthly},
		{"Total debt service", s.TotalDebt},
		{"DTI %", s.DTIPct},
		{"Net after costs", s.NetAfter},
	}
}
