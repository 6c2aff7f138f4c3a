package domain

import "fmt"

// MissingValue replaces absent trait values before training.
// It takes part in splits like any other value.
const MissingValue = -1.0

// DefaultNameColumn is the header of the column holding character names.
const DefaultNameColumn = "Names"

// Trait is a numeric attribute column, one value per character.
type Trait struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float64 `json:"values" yaml:"values"`
}

// Dataset is the validated character/trait table a game is trained on.
// It is immutable once loaded.
type Dataset struct {
	Characters []string `json:"characters" yaml:"characters"`
	Traits     []Trait  `json:"traits" yaml:"traits"`
}

// Validate checks the structural invariants of the table.
func (d *Dataset) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: dataset is nil", ErrNoUsableTraits)
	}
	if len(d.Traits) == 0 {
		return ErrNoUsableTraits
	}
	for _, t := range d.Traits {
		if len(t.Values) != len(d.Characters) {
			return fmt.Errorf("trait %q has %d values for %d characters", t.Name, len(t.Values), len(d.Characters))
		}
	}
	return nil
}

// TraitNames returns the ordered feature list.
func (d *Dataset) TraitNames() []string {
	names := make([]string, len(d.Traits))
	for i, t := range d.Traits {
		names[i] = t.Name
	}
	return names
}

// Value returns the value of trait for the character at row.
func (d *Dataset) Value(trait, row int) float64 {
	return d.Traits[trait].Values[row]
}

// Len returns the number of characters.
func (d *Dataset) Len() int {
	return len(d.Characters)
}
