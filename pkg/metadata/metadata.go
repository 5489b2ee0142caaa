// Package metadata describes the features of a table: the raw type of every
// feature and the special (semantic) type groups a feature may belong to.
//
// A FeatureMetadata value is immutable once built. Every accessor returns a
// copy, and KeepFeatures returns a new value.
package metadata

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrUnknownFeature is returned when a feature has no metadata entry.
var ErrUnknownFeature = errors.New("feature has no metadata")

// FeatureMetadata pairs a raw type map with special type groups.
type FeatureMetadata struct {
	typeMapRaw          *TypeMapRaw
	typeGroupMapSpecial map[string][]string
}

// New builds feature metadata. Every feature listed in a special group must
// also be present in the raw type map.
func New(typeMapRaw *TypeMapRaw, typeGroupMapSpecial map[string][]string) (*FeatureMetadata, error) {
	if typeMapRaw == nil {
		typeMapRaw = NewTypeMapRaw()
	}
	special := cloneGroups(typeGroupMapSpecial)
	for _, tag := range sortedKeys(special) {
		for _, feature := range special[tag] {
			if _, ok := typeMapRaw.Get(feature); !ok {
				return nil, fmt.Errorf("special type %q lists %q: %w", tag, feature, ErrUnknownFeature)
			}
		}
	}
	return &FeatureMetadata{
		typeMapRaw:          typeMapRaw.Clone(),
		typeGroupMapSpecial: special,
	}, nil
}

// Features returns all feature names in order.
func (m *FeatureMetadata) Features() []string {
	return m.typeMapRaw.Names()
}

// FeatureTypeRaw returns the raw type of a feature.
func (m *FeatureMetadata) FeatureTypeRaw(feature string) (string, error) {
	t, ok := m.typeMapRaw.Get(feature)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, feature)
	}
	return t, nil
}

// TypeMapRaw returns a copy of the raw type map.
func (m *FeatureMetadata) TypeMapRaw() *TypeMapRaw {
	return m.typeMapRaw.Clone()
}

// TypeGroupMapRaw groups features by raw type, each group in feature order.
func (m *FeatureMetadata) TypeGroupMapRaw() map[string][]string {
	groups := make(map[string][]string)
	for _, name := range m.typeMapRaw.Names() {
		t, _ := m.typeMapRaw.Get(name)
		groups[t] = append(groups[t], name)
	}
	return groups
}

// TypeGroupMapSpecial returns a copy of the special type groups.
func (m *FeatureMetadata) TypeGroupMapSpecial() map[string][]string {
	return cloneGroups(m.typeGroupMapSpecial)
}

// KeepFeatures returns metadata restricted to the given features. The original
// feature order is preserved and special groups are filtered the same way.
func (m *FeatureMetadata) KeepFeatures(features []string) (*FeatureMetadata, error) {
	keep := make(map[string]struct{}, len(features))
	for _, f := range features {
		if _, ok := m.typeMapRaw.Get(f); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
		}
		keep[f] = struct{}{}
	}

	raw := NewTypeMapRaw()
	for _, name := range m.typeMapRaw.Names() {
		if _, ok := keep[name]; ok {
			t, _ := m.typeMapRaw.Get(name)
			raw.Set(name, t)
		}
	}

	special := make(map[string][]string, len(m.typeGroupMapSpecial))
	for tag, group := range m.typeGroupMapSpecial {
		var kept []string
		for _, f := range group {
			if _, ok := keep[f]; ok {
				kept = append(kept, f)
			}
		}
		if len(kept) > 0 {
			special[tag] = kept
		}
	}

	return &FeatureMetadata{typeMapRaw: raw, typeGroupMapSpecial: special}, nil
}

// Full merges special groups with the leftover raw groups. A feature claimed by
// any special group is dropped from its raw group; raw groups left empty are
// omitted. Neither input is modified.
func Full(typeGroupMapRaw, typeGroupMapSpecial map[string][]string) map[string][]string {
	full := cloneGroups(typeGroupMapSpecial)

	claimed := make(map[string]struct{})
	for _, group := range typeGroupMapSpecial {
		for _, f := range group {
			claimed[f] = struct{}{}
		}
	}

	for _, rawType := range sortedKeys(typeGroupMapRaw) {
		var leftover []string
		for _, f := range typeGroupMapRaw[rawType] {
			if _, ok := claimed[f]; !ok {
				leftover = append(leftover, f)
			}
		}
		if len(leftover) > 0 {
			full[rawType] = append(full[rawType], leftover...)
		}
	}

	return full
}

// SortedTags returns the keys of a group map in lexical order.
func SortedTags(groups map[string][]string) []string {
	return sortedKeys(groups)
}

func cloneGroups(groups map[string][]string) map[string][]string {
	out := make(map[string][]string, len(groups))
	for tag, group := range groups {
		out[tag] = slices.Clone(group)
	}
	return out
}

func sortedKeys(groups map[string][]string) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
