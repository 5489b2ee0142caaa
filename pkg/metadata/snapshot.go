package metadata

// Document is the serialized form of FeatureMetadata.
type Document struct {
	TypeMapRaw          *TypeMapRaw         `yaml:"type_map_raw"`
	TypeGroupMapSpecial map[string][]string `yaml:"type_group_map_special,omitempty"`
}

// Document returns the serializable form of the metadata.
func (m *FeatureMetadata) Document() *Document {
	if m == nil {
		return nil
	}
	return &Document{
		TypeMapRaw:          m.TypeMapRaw(),
		TypeGroupMapSpecial: m.TypeGroupMapSpecial(),
	}
}

// FromDocument rebuilds metadata, applying the same validation as New.
func FromDocument(doc *Document) (*FeatureMetadata, error) {
	if doc == nil {
		return nil, nil
	}
	return New(doc.TypeMapRaw, doc.TypeGroupMapSpecial)
}
