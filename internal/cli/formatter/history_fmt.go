package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/renovo/internal/contract"
)

// FormatHistory renders stored quotes newest first with the change against
// the previous quote.
func FormatHistory(resp *contract.HistoryResponse, now time.Time) string {
	if len(resp.Entries) == 0 {
		return Dim("No quotes yet. Run `renovo quote` to price a transcript.") + "\n"
	}

	headers := []string{"ID", "WHEN", "CITY", "AREA", "SCENARIO", "TOTAL", "CHANGE", "CONF", "TRUST"}
	rows := make([][]string, 0, len(resp.Entries))
	for _, e := range resp.Entries {
		rows = append(rows, []string{
			e.QuoteID,
			HumanTimestamp(e.CreatedUTC, now),
			e.City,
			fmt.Sprintf("%.1f", e.AreaM2),
			string(e.Scenario),
			Money(e.TotalPrice, "EUR"),
			ChangeIndicator(e.ChangePct),
			ScoreStyle(e.Confidence).Render(fmt.Sprintf("%.2f", e.Confidence)),
			ScoreStyle(e.Trust).Render(fmt.Sprintf("%.2f", e.Trust)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows, 3, 5, 6, 7, 8))
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d quote(s)", len(resp.Entries))))
	return RenderBox("History", b.String())
}
