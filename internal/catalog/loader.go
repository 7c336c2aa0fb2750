package catalog

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/renovo/internal/domain"
)

type catalogFile struct {
	Version string  `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

// LoadFile reads a YAML price list and overlays it on the built-in entries.
// Entries in the file replace built-in entries for the same task; new tasks
// are added.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse overlays a YAML document on the built-in entries.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	merged := DefaultEntries()
	pos := make(map[domain.TaskID]int, len(merged))
	for i, e := range merged {
		pos[e.Task] = i
	}

	seen := make(map[domain.TaskID]bool, len(f.Entries))
	for i, e := range f.Entries {
		if seen[e.Task] {
			return nil, fmt.Errorf("entries[%d]: duplicate task %q", i, e.Task)
		}
		seen[e.Task] = true
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		if j, ok := pos[e.Task]; ok {
			merged[j] = e
			continue
		}
		pos[e.Task] = len(merged)
		merged = append(merged, e)
	}

	slog.Debug("catalog loaded", "version", f.Version, "overrides", len(f.Entries), "entries", len(merged))
	return New(merged)
}
