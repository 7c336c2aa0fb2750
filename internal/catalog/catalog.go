package catalog

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/renovo/internal/domain"
)

// Entry is the material and labor baseline for one task.
type Entry struct {
	Task              domain.TaskID `yaml:"task"`
	Description       string        `yaml:"description"`
	Unit              string        `yaml:"unit"`
	UnitCost          float64       `yaml:"unit_cost"`
	WastageFraction   float64       `yaml:"wastage_fraction"`
	LaborHoursPerUnit float64       `yaml:"labor_hours_per_unit"`
	Notes             string        `yaml:"notes,omitempty"`
}

// Desc renders the entry as the quote's unit material description.
func (e Entry) Desc() domain.MaterialDesc {
	return domain.MaterialDesc{
		Description:     e.Description,
		Unit:            e.Unit,
		UnitCost:        e.UnitCost,
		WastageFraction: e.WastageFraction,
	}
}

// Validate checks that the numbers are usable for pricing.
func (e Entry) Validate() error {
	if e.Task == "" {
		return fmt.Errorf("catalog entry: task is required")
	}
	if e.UnitCost < 0 {
		return fmt.Errorf("catalog entry %q: unit_cost must be >= 0", e.Task)
	}
	if e.WastageFraction < 0 || e.WastageFraction >= 1 {
		return fmt.Errorf("catalog entry %q: wastage_fraction must be in [0,1)", e.Task)
	}
	if e.LaborHoursPerUnit < 0 {
		return fmt.Errorf("catalog entry %q: labor_hours_per_unit must be >= 0", e.Task)
	}
	if e.Unit == "" {
		return fmt.Errorf("catalog entry %q: unit is required", e.Task)
	}
	return nil
}

// Catalog is a read-only lookup of entries keyed by task.
type Catalog struct {
	entries map[domain.TaskID]Entry
}

// New builds a catalog from entries, rejecting invalid or duplicate ones.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[domain.TaskID]Entry, len(entries))}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.entries[e.Task]; dup {
			return nil, fmt.Errorf("catalog: duplicate entry for %q", e.Task)
		}
		c.entries[e.Task] = e
	}
	return c, nil
}

// Lookup returns the entry for task or an UnknownTaskError.
func (c *Catalog) Lookup(task domain.TaskID) (Entry, error) {
	e, ok := c.entries[task]
	if !ok {
		return Entry{}, &domain.UnknownTaskError{Task: task, Ref: "price catalog"}
	}
	return e, nil
}

// Entries returns all entries sorted by task id.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Task < out[j].Task })
	return out
}

// Covers returns the tasks in ids that have no catalog entry.
func (c *Catalog) Covers(ids []domain.TaskID) []domain.TaskID {
	var missing []domain.TaskID
	for _, id := range ids {
		if _, ok := c.entries[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
