package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
)

// FormatFeedbackSummary renders the learned margin nudge and productivity
// multipliers.
func FormatFeedbackSummary(s contract.FeedbackSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-16s %d\n", "Outcomes", s.Records)
	fmt.Fprintf(&b, "%-16s %s\n", "Recent accepts", Percent(s.RecentAccept))
	nudge := Dim("+0.00")
	switch {
	case s.MarginNudge > 0:
		nudge = StyleGreen.Render(fmt.Sprintf("%+.2f", s.MarginNudge))
	case s.MarginNudge < 0:
		nudge = StyleYellow.Render(fmt.Sprintf("%+.2f", s.MarginNudge))
	}
	fmt.Fprintf(&b, "%-16s %s\n", "Margin nudge", nudge)
	if s.Degraded {
		b.WriteString(StyleRed.Render("  WARNING: stored feedback was unreadable; quotes use neutral defaults") + "\n")
	}

	if len(s.Multipliers) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(s.Multipliers))
		for _, m := range s.Multipliers {
			rows = append(rows, []string{
				m.City,
				string(m.Task),
				fmt.Sprintf("%.3f", m.Multiplier),
				fmt.Sprintf("%d", m.Samples),
			})
		}
		b.WriteString(RenderTable([]string{"CITY", "TASK", "MULTIPLIER", "SAMPLES"}, rows, 2, 3))
	}

	return RenderBox("Feedback", b.String())
}

// FormatOutcome confirms a recorded accept/reject outcome.
func FormatOutcome(r domain.FeedbackRecord) string {
	verdict := StyleRed.Render("rejected")
	if r.Accepted {
		verdict = StyleGreen.Render("accepted")
	}
	return fmt.Sprintf("%s %s %s\n", Bold(r.QuoteID), verdict, Dim(r.Timestamp.UTC().Format("2006-01-02 15:04")))
}

// FormatMultiplier confirms an updated productivity multiplier.
func FormatMultiplier(m domain.ProductivityMultiplier) string {
	return fmt.Sprintf("%s/%s multiplier %s %s\n",
		m.City, m.Task,
		Bold(fmt.Sprintf("%.3f", m.Multiplier)),
		Dim(fmt.Sprintf("(%d sample(s), last ratio %.2f)", m.Samples, m.LastRatio)))
}
