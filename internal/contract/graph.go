package contract

import "github.com/alexanderramin/renovo/internal/domain"

type GraphNode struct {
	ID              domain.TaskID       `json:"id"`
	Label           string              `json:"label"`
	Category        domain.Category     `json:"category"`
	RequiredSignals []domain.SignalName `json:"required_signals"`
}

type GraphEdge struct {
	From domain.TaskID `json:"from"`
	To   domain.TaskID `json:"to"`
	Kind string        `json:"kind"`
	Rule string        `json:"rule,omitempty"`
}

// GraphReport describes the pricing graph and, when a transcript was given,
// how it resolves.
type GraphReport struct {
	Nodes    []GraphNode     `json:"nodes"`
	Edges    []GraphEdge     `json:"edges"`
	Detected []domain.TaskID `json:"detected,omitempty"`
	Resolved []domain.TaskID `json:"resolved,omitempty"`
}
