package preset

import (
	"fmt"
	"sort"
)

// Registry indexes presets by ID.
type Registry struct {
	byID map[string]*Preset
}

// NewRegistry builds a Registry from presets.
//
// Postcondition: Returns an error if any two presets share an ID.
func NewRegistry(presets []*Preset) (*Registry, error) {
	byID := make(map[string]*Preset, len(presets))
	for _, p := range presets {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("preset: duplicate id %q", p.ID)
		}
		byID[p.ID] = p
	}
	return &Registry{byID: byID}, nil
}

// Get returns the preset with the given id.
func (r *Registry) Get(id string) (*Preset, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// IDs returns every registered id in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered presets.
func (r *Registry) Len() int {
	return len(r.byID)
}
