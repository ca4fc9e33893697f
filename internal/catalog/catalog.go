// Package catalog holds the immutable set of drawable characters. It is
// loaded once at startup and never mutated afterwards.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Character is one catalog entry. Roles maps a role name to the power the
// character fights with when placed in that role's slot.
type Character struct {
	Name  string         `json:"name"`
	Roles map[string]int `json:"roles"`
}

// RequiredRoles lists the role names every character must carry a power
// value for. Kept in sync with engine.Roles.
var RequiredRoles = []string{"Captain", "Vice", "Tank", "Healer", "Support1", "Support2"}

// Load reads a catalog from a JSON file: an array of {name, roles} records.
func Load(path string) ([]Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var chars []Character
	if err := json.Unmarshal(data, &chars); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := Validate(chars); err != nil {
		return nil, err
	}
	return chars, nil
}

// Validate checks the catalog invariants: at least one character, unique
// names, and a positive power for every required role.
func Validate(chars []Character) error {
	if len(chars) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	seen := make(map[string]bool, len(chars))
	for _, c := range chars {
		if c.Name == "" {
			return fmt.Errorf("catalog entry with empty name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate character %q", c.Name)
		}
		seen[c.Name] = true
		for _, role := range RequiredRoles {
			p, ok := c.Roles[role]
			if !ok {
				return fmt.Errorf("character %q missing role %q", c.Name, role)
			}
			if p <= 0 {
				return fmt.Errorf("character %q has non-positive power for %q", c.Name, role)
			}
		}
	}
	return nil
}
