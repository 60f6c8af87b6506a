// Package preset provides named roll definitions loaded from YAML.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/dice/internal/game/dice"
)

// Preset is a reusable, named roll such as "attack" or "fireball".
type Preset struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Spec        string `yaml:"spec"`
	Modifier    int    `yaml:"modifier"`
	// Where, if non-empty, is a condition applied to every roll of the preset,
	// e.g. ">=5" to count successes.
	Where string `yaml:"where"`
}

// Validate checks that the preset satisfies basic invariants.
//
// Precondition: p must not be nil.
// Postcondition: Returns nil iff ID and Spec are non-empty and Where, when set,
// is a valid condition.
func (p *Preset) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("preset: id must not be empty")
	}
	if strings.TrimSpace(p.Spec) == "" {
		return fmt.Errorf("preset %q: spec must not be empty", p.ID)
	}
	if p.Where != "" {
		if _, err := dice.ParseCondition(p.Where); err != nil {
			return fmt.Errorf("preset %q: %w", p.ID, err)
		}
	}
	return nil
}

// Roll rolls the preset with r and applies Where when set.
//
// Precondition: r must be non-nil; p must have passed Validate.
// Postcondition: Returns the (possibly filtered) roll or a condition error.
func (p *Preset) Roll(r *dice.Roller) (*dice.Roll, error) {
	roll := r.Roll(p.Spec, p.Modifier)
	if p.Where == "" {
		return roll, nil
	}
	return r.Where(roll, p.Where)
}

// Range returns the theoretical bounds of the preset before any Where filter.
func (p *Preset) Range() (lo, hi int) {
	return dice.Range(p.Spec, p.Modifier)
}

// LoadPresetFromBytes parses a single preset from raw YAML bytes.
//
// Postcondition: Returns a validated *Preset, or an error.
func LoadPresetFromBytes(data []byte) (*Preset, error) {
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing preset YAML: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPresets reads all *.yaml files in dir and returns the parsed presets in
// directory order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all presets or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadPresets(dir string) ([]*Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading preset dir %q: %w", dir, err)
	}

	var presets []*Preset
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		p, err := LoadPresetFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		presets = append(presets, p)
	}
	return presets, nil
}
