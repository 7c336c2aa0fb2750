package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/renovo/internal/domain"
)

const scoreBarWidth = 10

// FormatQuote renders one quote as a task table with totals, scores and the
// assumptions behind the prices.
func FormatQuote(q *domain.Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n",
		Bold(q.QuoteID),
		Dim(q.CreatedUTC.UTC().Format("2006-01-02 15:04 UTC")),
		StylePurple.Render(string(q.Assumptions.Scenario)))

	for _, z := range q.Zones {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render(z.ZoneName),
			Dim(fmt.Sprintf("%.1f m2 · %s · index %.2f", z.AreaM2, z.City, z.CityIndex)))

		headers := []string{"TASK", "QTY", "MATERIALS", "LABOR", "NET", "VAT", "TOTAL", "DAYS"}
		rows := make([][]string, 0, len(z.Tasks))
		for _, t := range z.Tasks {
			rows = append(rows, []string{
				string(t.Task),
				fmt.Sprintf("%.2f %s", t.Quantity, t.UnitMaterialDesc.Unit),
				Money(t.Materials.Cost, ""),
				fmt.Sprintf("%s (%.1fh)", Money(t.Labor.Cost, ""), t.Labor.Hours),
				Money(t.Pricing.NetPrice, ""),
				Percent(t.Pricing.VATRate),
				Money(t.Pricing.TotalPrice, ""),
				fmt.Sprintf("%d", t.EstimatedDurationDays),
			})
		}
		b.WriteString(RenderTable(headers, rows, 1, 2, 3, 4, 5, 6, 7))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-12s %s\n", "Net", Money(q.Totals.NetPrice, q.Currency))
	fmt.Fprintf(&b, "%-12s %s\n", "VAT", Money(q.Totals.VATAmount, q.Currency))
	fmt.Fprintf(&b, "%-12s %s\n", "Total", Bold(Money(q.Totals.TotalPrice, q.Currency)))

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-12s %s %s\n", "Confidence", RenderScoreBar(q.Confidence.Score, scoreBarWidth), flagList(q.Confidence.Flags))
	fmt.Fprintf(&b, "%-12s %s %s\n", "Trust", RenderScoreBar(q.Trust.Score, scoreBarWidth), flagList(q.Trust.Flags))

	a := q.Assumptions
	if len(a.Notes) > 0 || len(a.Adjustments) > 0 || a.BudgetConscious || a.FeedbackNudge != 0 {
		b.WriteString("\n")
		if a.BudgetConscious {
			b.WriteString(StyleYellow.Render("  budget conscious") + "\n")
		}
		if a.FeedbackNudge != 0 {
			b.WriteString(Dim(fmt.Sprintf("  feedback margin nudge %+.2f", a.FeedbackNudge)) + "\n")
		}
		for _, adj := range a.Adjustments {
			b.WriteString(Dim("  · "+adj) + "\n")
		}
		for _, n := range a.Notes {
			b.WriteString(StyleYellow.Render("  NOTE: "+n) + "\n")
		}
	}

	return RenderBox("Quote", b.String())
}

// FormatScenarios renders every quote followed by a side-by-side total
// comparison when there is more than one.
func FormatScenarios(quotes []*domain.Quote) string {
	var b strings.Builder
	for _, q := range quotes {
		b.WriteString(FormatQuote(q))
		b.WriteString("\n")
	}
	if len(quotes) < 2 {
		return b.String()
	}

	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{
			string(q.Assumptions.Scenario),
			Money(q.Totals.NetPrice, q.Currency),
			Money(q.Totals.TotalPrice, q.Currency),
			ScoreIndicator(q.Trust.Score, nil),
		})
	}
	b.WriteString(RenderBox("Scenarios",
		RenderTable([]string{"SCENARIO", "NET", "TOTAL", "TRUST"}, rows, 1, 2)))
	b.WriteString("\n")
	return b.String()
}

func flagList(flags []string) string {
	if len(flags) == 0 {
		return ""
	}
	return Dim(strings.Join(flags, ", "))
}
