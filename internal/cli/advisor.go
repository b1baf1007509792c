package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"homeplan/pkg/advisor"
	"homeplan/pkg/export"
	"homeplan/pkg/plan"
)

var advisorReport bool

var advisorCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Classify plan risk under optimistic, realistic, and conservative outlooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := conf.Plan
		s := plan.Summarize(in)
		analysis := advisor.NewAnalyzer(logger).Analyze(in, s)

		if advisorReport {
			fmt.Fprint(os.Stdout, advisor.RenderReport(in, s, analysis, time.Now()))
			return nil
		}

		export.PrettyOutlooks(os.Stdout, analysis)
		fmt.Fprintln(os.Stdout)
		for i, rec := range analysis.Recommendations {
			fmt.Fprintf(os.Stdout, "%d. %s\n", i+1, rec)
		}
		return nil
	},
}

func init() {
	advisorCmd.Flags().BoolVar(&advisorReport, "report", false, "print the full narrative report")
	rootCmd.AddCommand(advisorCmd)
}
