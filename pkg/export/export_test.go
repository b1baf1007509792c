package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"homeplan/pkg/advisor"
	"homeplan/pkg/loans"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

func fixture(t *testing.T) (plan.Inputs, plan.Summary, *sensitivity.Grid, advisor.Analysis) {
	t.Helper()

	in := plan.DefaultInputs()
	s := plan.Summarize(in)
	grid, err := sensitivity.Generate(sensitivity.DefaultSweepConfig(), in.BankTermYears, s.FamilyMonthly, in.NetIncomeMonthly)
	require.NoError(t, err)
	a := advisor.NewAnalyzer(nil).Analyze(in, s)
	return in, s, grid, a
}

func TestWriteSummaryCSV(t *testing.T) {
	_, s, _, _ := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSummaryCSV(&buf, s))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header, ten metrics, affordability.
	require.Len(t, records, 12)
	assert.Equal(t, []string{"metric", "amount"}, records[0])

	byLabel := map[string]string{}
	for _, record := range records[1:] {
		byLabel[record[0]] = record[1]
	}
	assert.Equal(t, fmt.Sprintf("%.2f", s.TotalProject), byLabel["Total project"])
	assert.Equal(t, fmt.Sprintf("%.2f", s.FundingGap), byLabel["Funding gap"])
	assert.Equal(t, string(s.Classify()), byLabel["Affordability"])
}

func TestWriteScheduleCSV(t *testing.T) {
	rows := loans.BuildSchedule(850000, 0.04, 25)

	var buf bytes.Buffer
	require.NoError(t, WriteScheduleCSV(&buf, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(rows)+1)
	assert.Equal(t, []string{"month", "payment", "interest", "principal", "balance"}, records[0])

	// Figures reconcile with the engine's rounding.
	last := records[len(records)-1]
	assert.Equal(t, strconv.Itoa(rows[len(rows)-1].Month), last[0])
	assert.Equal(t, "0.00", last[4])
}

func TestWriteGridCSV(t *testing.T) {
	_, _, grid, _ := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteGridCSV(&buf, grid))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(grid.Rows)+1)
	require.Len(t, records[0], len(grid.Rates())+1)

	// Cell figures match the grid, with the comfort marker where flagged.
	cell := grid.Rows[0][0]
	want := fmt.Sprintf("%.2f", cell.Monthly)
	if !cell.Comfortable {
		want += "!"
	}
	assert.Equal(t, want, records[1][1])
}

func TestBuildWorkbook(t *testing.T) {
	in, s, grid, a := fixture(t)

	f, err := BuildWorkbook(Workbook{
		Inputs:         in,
		Summary:        s,
		BankSchedule:   loans.BuildSchedule(in.BankLoanAmount, in.BankRatePct/100, in.BankTermYears),
		FamilySchedule: loans.BuildSchedule(in.FamilyLoanAmount, in.FamilyLoanRatePct/100, in.FamilyLoanTermYears),
		Grid:           grid,
		Analysis:       a,
	})
	require.NoError(t, err)

	for _, name := range []string{"Summary", "Bank Loan", "Family Loan", "Sensitivity", "Outlooks"} {
		_, ok := f.Sheet[name]
		assert.True(t, ok, "workbook missing sheet %s", name)
	}

	bank := f.Sheet["Bank Loan"]
	assert.Len(t, bank.Rows, in.BankTermYears*12+1)

	grid2 := f.Sheet["Sensitivity"]
	assert.Len(t, grid2.Rows, len(grid.Rows)+1)
}

func TestPrettyOutputs(t *testing.T) {
	in, s, grid, a := fixture(t)

	var buf bytes.Buffer
	PrettySummary(&buf, in, s)
	out := buf.String()
	assert.Contains(t, out, in.ProjectName)
	assert.Contains(t, out, "Total project")
	assert.Contains(t, out, strings.ToUpper(string(s.Classify())))

	buf.Reset()
	PrettyGrid(&buf, grid)
	assert.Contains(t, buf.String(), "Amount \\ Rate")

	buf.Reset()
	PrettyOutlooks(&buf, a)
	assert.Contains(t, buf.String(), "Overall risk")
	assert.Contains(t, buf.String(), "Conservative")
}
