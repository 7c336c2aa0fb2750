package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/renovo/internal/contract"
	"github.com/alexanderramin/renovo/internal/domain"
)

// FormatGraph renders the task graph edges and, when present, the detected
// and resolved task lists.
func FormatGraph(r *contract.GraphReport) string {
	var b strings.Builder

	rows := make([][]string, 0, len(r.Nodes))
	for _, n := range r.Nodes {
		var signals []string
		for _, s := range n.RequiredSignals {
			signals = append(signals, string(s))
		}
		rows = append(rows, []string{
			string(n.ID),
			string(n.Category),
			strings.Join(signals, ", "),
		})
	}
	b.WriteString(RenderTable([]string{"TASK", "CATEGORY", "SIGNALS"}, rows))

	if len(r.Edges) > 0 {
		b.WriteString("\n")
		for _, e := range r.Edges {
			arrow := "──▶"
			if e.Kind == "implied" {
				arrow = "╌╌▶"
			}
			line := fmt.Sprintf("  %s %s %s", e.From, Dim(arrow), e.To)
			if e.Rule != "" {
				line += " " + Dim("when "+e.Rule)
			}
			b.WriteString(line + "\n")
		}
	}

	if len(r.Detected) > 0 || len(r.Resolved) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%-9s %s\n", "Detected", taskChain(r.Detected))
		fmt.Fprintf(&b, "%-9s %s\n", "Resolved", StyleGreen.Render(taskChain(r.Resolved)))
	}

	return RenderBox("Task graph", b.String())
}

func taskChain(ids []domain.TaskID) string {
	if len(ids) == 0 {
		return Dim("(none)")
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, " → ")
}
