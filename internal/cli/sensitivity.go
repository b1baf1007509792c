package cli

import (
	"os"

	"github.com/spf13/cobra"
	"homeplan/pkg/constants"
	"homeplan/pkg/export"
	"homeplan/pkg/plan"
	"homeplan/pkg/sensitivity"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Sweep loan amount and rate combinations into a payment matrix",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := conf.Plan
		s := plan.Summarize(in)

		grid, err := sensitivity.Generate(conf.Sweep, in.BankTermYears, s.FamilyMonthly, in.NetIncomeMonthly)
		if err != nil {
			return err
		}

		if outputFormat == constants.OutputFormatCSV {
			return export.WriteGridCSV(os.Stdout, grid)
		}
		export.PrettyGrid(os.Stdout, grid)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sensitivityCmd)
}
