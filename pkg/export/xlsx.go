package export

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"homeplan/pkg/advisor"
	"homeplan/pkg/loans"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

const currencyFormat = "#,##0.00"

// Workbook bundles everything that goes into one exported spreadsheet.
type Workbook struct {
	Inputs         plan.Inputs
	Summary        plan.Summary
	BankSchedule   []loans.Row
	FamilySchedule []loans.Row
	Grid           *sensitivity.Grid
	Analysis       advisor.Analysis
}

// BuildWorkbook renders the plan into an XLSX file with one sheet per
// derived entity. Figures carry the same rounding as every other output.
func BuildWorkbook(wb Workbook) (*xlsx.File, error) {
	f := xlsx.NewFile()

	if err := addSummarySheet(f, wb.Summary); err != nil {
		return nil, err
	}
	if err := addScheduleSheet(f, "Bank Loan", wb.BankSchedule); err != nil {
		return nil, err
	}
	if err := addScheduleSheet(f, "Family Loan", wb.FamilySchedule); err != nil {
		return nil, err
	}
	if wb.Grid != nil {
		if err := addGridSheet(f, wb.Grid); err != nil {
			return nil, err
		}
	}
	if len(wb.Analysis.Outlooks) > 0 {
		if err := addOutlookSheet(f, wb.Analysis); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func addSummarySheet(f *xlsx.File, s plan.Summary) error {
	sheet, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "xlsx: add summary sheet")
	}

	header := sheet.AddRow()
	header.AddCell().SetString("metric")
	header.AddCell().SetString("amount")

	for _, line := range summaryLines(s) {
		row := sheet.AddRow()
		row.AddCell().SetString(line.label)
		row.AddCell().SetFloatWithFormat(line.value, currencyFormat)
	}

	row := sheet.AddRow()
	row.AddCell().SetString("Affordability")
	row.AddCell().SetString(string(s.Classify()))

	return nil
}

func addScheduleSheet(f *xlsx.File, name string, rows []loans.Row) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "xlsx: add %s sheet", name)
	}

	header := sheet.AddRow()
	for _, label := range []string{"month", "payment", "interest", "principal", "balance"} {
		header.AddCell().SetString(label)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt(r.Month)
		row.AddCell().SetFloatWithFormat(r.Payment, currencyFormat)
		row.AddCell().SetFloatWithFormat(r.Interest, currencyFormat)
		row.AddCell().SetFloatWithFormat(r.Principal, currencyFormat)
		row.AddCell().SetFloatWithFormat(r.Balance, currencyFormat)
	}

	return nil
}

func addGridSheet(f *xlsx.File, grid *sensitivity.Grid) error {
	sheet, err := f.AddSheet("Sensitivity")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sensitivity sheet")
	}

	header := sheet.AddRow()
	header.AddCell().SetString("amount")
	for _, rate := range grid.Rates() {
		header.AddCell().SetString(fmt.Sprintf("%.2f%%", rate))
	}

	for _, gridRow := range grid.Rows {
		if len(gridRow) == 0 {
			continue
		}
		row := sheet.AddRow()
		row.AddCell().SetFloatWithFormat(gridRow[0].Amount, currencyFormat)
		for _, cell := range gridRow {
			c := row.AddCell()
			if cell.Comfortable {
				c.SetFloatWithFormat(cell.Monthly, currencyFormat)
			} else {
				c.SetString(fmt.Sprintf("%.2f!", cell.Monthly))
			}
		}
	}

	return nil
}

func addOutlookSheet(f *xlsx.File, a advisor.Analysis) error {
	sheet, err := f.AddSheet("Outlooks")
	if err != nil {
		return eris.Wrap(err, "xlsx: add outlooks sheet")
	}

	header := sheet.AddRow()
	for _, label := range []string{"name", "ratePct", "incomeDelta", "bankMonthly", "totalDebt", "dtiPct", "monthlyNet", "risk"} {
		header.AddCell().SetString(label)
	}

	for _, o := range a.Outlooks {
		row := sheet.AddRow()
		row.AddCell().SetString(o.Name)
		row.AddCell().SetFloatWithFormat(o.RatePct, "0.00")
		row.AddCell().SetFloatWithFormat(o.IncomeDelta, "0")
		row.AddCell().SetFloatWithFormat(o.BankMonthly, currencyFormat)
		row.AddCell().SetFloatWithFormat(o.TotalDebt, currencyFormat)
		row.AddCell().SetFloatWithFormat(o.DTIPct, "0.00")
		row.AddCell().SetFloatWithFormat(o.MonthlyNet, currencyFormat)
		row.AddCell().SetString(string(o.Risk))
	}

	summary := sheet.AddRow()
	summary.AddCell().SetString("overall")
	summary.AddCell().SetString(string(a.OverallRisk))

	return nil
}
