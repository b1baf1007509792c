package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"homeplan/pkg/advisor"
	"homeplan/pkg/constants"
	"homeplan/pkg/export"
	"homeplan/pkg/loans"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full plan workbook (summary, schedules, sensitivity, outlooks) as XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		in := conf.Plan
		s := plan.Summarize(in)
		analysis := advisor.NewAnalyzer(logger).Analyze(in, s)

		grid, err := sensitivity.Generate(conf.Sweep, in.BankTermYears, s.FamilyMonthly, in.NetIncomeMonthly)
		if err != nil {
			return err
		}

		f, err := export.BuildWorkbook(export.Workbook{
			Inputs:  in,
			Summary: s,
			BankSchedule: loans.BuildSchedule(
				in.BankLoanAmount, in.BankRatePct/constants.PercentageMultiplier, in.BankTermYears),
			FamilySchedule: loans.BuildSchedule(
				in.FamilyLoanAmount, in.FamilyLoanRatePct/constants.PercentageMultiplier, in.FamilyLoanTermYears),
			Grid:     grid,
			Analysis: analysis,
		})
		if err != nil {
			return err
		}

		if err := f.Save(exportOut); err != nil {
			return fmt.Errorf("failed to save workbook to %s: %w", exportOut, err)
		}

		logger.Info("workbook exported",
			zap.String("op", "cli.export"),
			zap.String("path", exportOut),
			zap.Duration("duration", time.Since(start)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "homeplan.xlsx", "output workbook path")
	rootCmd.AddCommand(exportCmd)
}
