package advisor

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"homeplan/pkg/plan"
)

// RenderReport composes the multi-section narrative report for one analysis.
// The text is a deterministic function of its arguments; only the generatedAt
// line varies between otherwise identical calls. Numbers are formatted with
// English locale separators.
func RenderReport(in plan.Inputs, s plan.Summary, a Analysis, generatedAt time.Time) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	title := in.ProjectName
	if title == "" {
		title = "Financial plan"
	}
	fmt.Fprintf(&b, "=== %s ===\n", title)
	fmt.Fprintf(&b, "Generated %s\n\n", generatedAt.Format("2006-01-02 15:04"))

	b.WriteString("-- Project cost --\n")
	p.Fprintf(&b, "Purchase price:            %12.2f\n", in.PurchasePrice)
	p.Fprintf(&b, "Registration tax (%.1f%%):  %12.2f\n", in.RegistrationRatePct, s.RegTax)
	p.Fprintf(&b, "Notary fees:               %12.2f\n", in.NotaryFees)
	p.Fprintf(&b, "Renovation incl. %.0f%% cont.: %10.2f\n", in.ContingencyPct, s.RenoWithCont)
	p.Fprintf(&b, "Total project:             %12.2f\n\n", s.TotalProject)

	b.WriteString("-- Funding --\n")
	p.Fprintf(&b, "Own cash:                  %12.2f\n", in.OwnCash)
	p.Fprintf(&b, "Crypto (net):              %12.2f\n", in.CryptoNet)
	p.Fprintf(&b, "Family loan:               %12.2f\n", in.FamilyLoanAmount)
	p.Fprintf(&b, "Bank loan:                 %12.2f\n", in.BankLoanAmount)
	p.Fprintf(&b, "Total sources:             %12.2f\n", s.TotalSources)
	if s.FundingGap > 0 {
		p.Fprintf(&b, "Funding gap:               %12.2f (shortfall)\n\n", s.FundingGap)
	} else {
		p.Fprintf(&b, "Funding surplus:           %12.2f\n\n", -s.FundingGap)
	}

	b.WriteString("-- Monthly position --\n")
	p.Fprintf(&b, "Bank payment:              %12.2f\n", s.BankMonthly)
	p.Fprintf(&b, "Family payment:            %12.2f\n", s.FamilyMonthly)
	p.Fprintf(&b, "Total debt service:        %12.2f\n", s.TotalDebt)
	p.Fprintf(&b, "Debt-to-income:            %11.1f%%\n", s.DTIPct)
	p.Fprintf(&b, "Net after all costs:       %12.2f\n\n", s.NetAfter)

	fmt.Fprintf(&b, "-- Outlooks (overall risk: %s) --\n", strings.ToUpper(string(a.OverallRisk)))
	for _, o := range a.Outlooks {
		p.Fprintf(&b, "%-12s rate %.2f%%, income %+.0f%%: debt %.2f/mo, DTI %.1f%%, net %.2f/mo [%s]\n",
			o.Name, o.RatePct, o.IncomeDelta, o.TotalDebt, o.DTIPct, o.MonthlyNet, o.Risk)
	}
	b.WriteString("\n")

	b.WriteString("-- Recommendations --\n")
	for i, rec := range a.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}

	if in.ReportNotes != "" {
		fmt.Fprintf(&b, "\n-- Notes --\n%s\n", in.ReportNotes)
	}

	return b.String()
}
