// Package disabled persists the set of disabled shortcode codes.
package disabled

import (
	"errors"
	"fmt"
	"slices"

	"gorm.io/gorm"

	"github.com/render-shortcodes/render/internal/db/controller/option"
)

const (
	// OptionName is the option holding the disabled codes.
	OptionName = "render_disabled_shortcodes"

	// LegacyOptionName is the option written by older releases. It is merged
	// into OptionName on load and then removed.
	LegacyOptionName = "usl_disabled_shortcodes"
)

// Set is an insertion ordered set of shortcode codes.
type Set []string

// Contains reports whether code is in the set.
func (s Set) Contains(code string) bool {
	return slices.Contains(s, code)
}

// Union returns s with codes appended, without duplicates.
func (s Set) Union(codes ...string) Set {
	out := slices.Clone(s)

	for _, code := range codes {
		if code != "" && !out.Contains(code) {
			out = append(out, code)
		}
	}

	return out
}

// Difference returns s without codes.
func (s Set) Difference(codes ...string) Set {
	out := make(Set, 0, len(s))

	for _, code := range s {
		if !slices.Contains(codes, code) {
			out = append(out, code)
		}
	}

	return out
}

// Lookup returns the set as a map for fast membership checks.
func (s Set) Lookup() map[string]bool {
	m := make(map[string]bool, len(s))
	for _, code := range s {
		m[code] = true
	}

	return m
}

func read(db *gorm.DB, name string) (Set, bool, error) {
	var codes []string

	err := option.GetJSON(db, name, &codes)
	if errors.Is(err, option.ErrOptionNotFound) {
		return Set{}, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return Set{}.Union(codes...), true, nil
}

// Load returns the persisted set, migrating the legacy option when present.
func Load(db *gorm.DB) (Set, error) {
	set, _, err := read(db, OptionName)
	if err != nil {
		return nil, err
	}

	legacy, found, err := read(db, LegacyOptionName)
	if err != nil {
		return nil, err
	}

	if !found {
		return set, nil
	}

	set = set.Union(legacy...)
	if err = Save(db, set); err != nil {
		return nil, err
	}

	if err = option.Delete(db, LegacyOptionName); err != nil && !errors.Is(err, option.ErrOptionNotFound) {
		return nil, fmt.Errorf("failed to remove %s: %w", LegacyOptionName, err)
	}

	return set, nil
}

// Save persists the set.
func Save(db *gorm.DB, set Set) error {
	if set == nil {
		set = Set{}
	}

	return option.SetJSON(db, OptionName, []string(set))
}

// Disable adds codes to the persisted set and returns the new set.
func Disable(db *gorm.DB, codes ...string) (Set, error) {
	return apply(db, func(s Set) Set { return s.Union(codes...) })
}

// Enable removes codes from the persisted set and returns the new set.
func Enable(db *gorm.DB, codes ...string) (Set, error) {
	return apply(db, func(s Set) Set { return s.Difference(codes...) })
}

func apply(db *gorm.DB, fn func(Set) Set) (Set, error) {
	var out Set

	// load and save in one transaction so concurrent bulk actions do not drop codes
	err := db.Transaction(func(tx *gorm.DB) error {
		current, err := Load(tx)
		if err != nil {
			return err
		}

		out = fn(current)

		return Save(tx, out)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
