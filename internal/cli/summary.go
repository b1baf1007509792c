package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"homeplan/pkg/constants"
	"homeplan/pkg/export"
	"homeplan/pkg/plan"
)

var autoBankLoan bool

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Compute the consolidated financial summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := conf.Plan
		if autoBankLoan {
			in.BankLoanAmount = plan.AutoBankLoan(in)
			logger.Debug("bank loan auto-derived",
				zap.String("op", "cli.summary"),
				zap.Float64("bankLoanAmount", in.BankLoanAmount),
			)
		}

		s := plan.Summarize(in)
		if outputFormat == constants.OutputFormatCSV {
			return export.WriteSummaryCSV(os.Stdout, s)
		}
		export.PrettySummary(os.Stdout, in, s)
		return nil
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&autoBankLoan, "auto-bank-loan", false,
		"derive the bank loan amount from project cost minus other sources before summarizing")
	rootCmd.AddCommand(summaryCmd)
}
