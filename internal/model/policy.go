package model

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Bounds is an inclusive min/max range for a field length or count.
type Bounds struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// Contains reports whether n falls within the bounds.
func (b Bounds) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// Policy holds the configurable field constraints applied to event payloads.
// String bounds are measured in runes, perks in list entries.
type Policy struct {
	Name        Bounds `toml:"name"`
	Description Bounds `toml:"description"`
	Location    Bounds `toml:"location"`
	Date        Bounds `toml:"date"`
	Perks       Bounds `toml:"perks"`
}

// DefaultPolicy returns the built-in field constraints.
func DefaultPolicy() Policy {
	return Policy{
		Name:        Bounds{Min: 1, Max: 120},
		Description: Bounds{Min: 0, Max: 2000},
		Location:    Bounds{Min: 0, Max: 200},
		Date:        Bounds{Min: 0, Max: 60},
		Perks:       Bounds{Min: 0, Max: 20},
	}
}

// LoadPolicy reads a TOML policy file, filling unset fields from the
// defaults. Missing keys keep their default bounds.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Policy{}, fmt.Errorf("load policy %s: %w", path, err)
	}
	return p, nil
}
