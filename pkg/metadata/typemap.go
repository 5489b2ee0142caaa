package metadata

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// TypeMapRaw maps feature names to raw type tags and remembers insertion order.
type TypeMapRaw struct {
	names []string
	types map[string]string
}

// NewTypeMapRaw returns an empty map.
func NewTypeMapRaw() *TypeMapRaw {
	return &TypeMapRaw{types: make(map[string]string)}
}

// Set assigns a raw type to a feature. New features are appended to the order;
// existing features keep their position.
func (m *TypeMapRaw) Set(name, rawType string) *TypeMapRaw {
	if m.types == nil {
		m.types = make(map[string]string)
	}
	if _, ok := m.types[name]; !ok {
		m.names = append(m.names, name)
	}
	m.types[name] = rawType
	return m
}

// Get returns the raw type of a feature.
func (m *TypeMapRaw) Get(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	t, ok := m.types[name]
	return t, ok
}

// Names returns the feature names in order.
func (m *TypeMapRaw) Names() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.names)
}

// Len returns the number of features.
func (m *TypeMapRaw) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// Clone returns an independent copy.
func (m *TypeMapRaw) Clone() *TypeMapRaw {
	out := NewTypeMapRaw()
	for _, name := range m.Names() {
		out.Set(name, m.types[name])
	}
	return out
}

// MarshalYAML encodes the map as a YAML mapping in feature order.
func (m *TypeMapRaw) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range m.Names() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.types[name]},
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, keeping the document order.
func (m *TypeMapRaw) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: type map must be a mapping", value.Line)
	}
	*m = TypeMapRaw{types: make(map[string]string, len(value.Content)/2)}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		if _, dup := m.types[key.Value]; dup {
			return fmt.Errorf("line %d: duplicate feature %q", key.Line, key.Value)
		}
		m.Set(key.Value, val.Value)
	}
	return nil
}
