// Package export renders quotes in flat formats for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/renovo/internal/domain"
)

// TaskColumns is the CSV header.
var TaskColumns = []string{
	"quote_id", "scenario", "zone", "city", "task", "quantity", "unit",
	"unit_cost", "materials_cost", "labor_hours", "labor_cost",
	"margin", "net_price", "vat_rate", "vat_amount", "total_price", "duration_days",
}

// WriteTasksCSV writes one row per priced task of every quote, followed by a
// totals row per quote.
func WriteTasksCSV(w io.Writer, quotes ...*domain.Quote) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TaskColumns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, q := range quotes {
		for _, z := range q.Zones {
			for _, t := range z.Tasks {
				row := []string{
					q.QuoteID,
					string(q.Assumptions.Scenario),
					z.ZoneName,
					z.City,
					string(t.Task),
					money(t.Quantity),
					t.UnitMaterialDesc.Unit,
					money(t.UnitMaterialDesc.UnitCost),
					money(t.Materials.Cost),
					money(t.Labor.Hours),
					money(t.Labor.Cost),
					ratio(t.Pricing.Margin),
					money(t.Pricing.NetPrice),
					ratio(t.Pricing.VATRate),
					money(t.Pricing.VATAmount),
					money(t.Pricing.TotalPrice),
					strconv.Itoa(t.EstimatedDurationDays),
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("writing csv row for %s: %w", t.Task, err)
				}
			}
		}
		total := make([]string, len(TaskColumns))
		total[0] = q.QuoteID
		total[1] = string(q.Assumptions.Scenario)
		total[4] = "TOTAL"
		total[12] = money(q.Totals.NetPrice)
		total[14] = money(q.Totals.VATAmount)
		total[15] = money(q.Totals.TotalPrice)
		if err := cw.Write(total); err != nil {
			return fmt.Errorf("writing csv totals: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func ratio(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
