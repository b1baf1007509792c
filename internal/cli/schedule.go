package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"homeplan/pkg/constants"
	"homeplan/pkg/export"
	"homeplan/pkg/loans"
)

var scheduleLoan string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Build the month-by-month amortization schedule for one loan",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := conf.Plan

		var name string
		var rows []loans.Row
		switch scheduleLoan {
		case "bank":
			name = "bank loan"
			rows = loans.NewScheduleGenerator(logger).Generate(
				in.BankLoanAmount, in.BankRatePct/constants.PercentageMultiplier, in.BankTermYears)
		case "family":
			name = "family loan"
			rows = loans.NewScheduleGenerator(logger).Generate(
				in.FamilyLoanAmount, in.FamilyLoanRatePct/constants.PercentageMultiplier, in.FamilyLoanTermYears)
		default:
			return fmt.Errorf("unknown loan %q: expected bank or family", scheduleLoan)
		}

		if outputFormat == constants.OutputFormatCSV {
			return export.WriteScheduleCSV(os.Stdout, rows)
		}
		export.PrettySchedule(os.Stdout, name, rows)
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleLoan, "loan", "bank", "which loan to amortize: bank, family")
	rootCmd.AddCommand(scheduleCmd)
}
