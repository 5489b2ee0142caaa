package metadata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/kestrel/pkg/metadata"
)

func rawMap(pairs ...string) *metadata.TypeMapRaw {
	m := metadata.NewTypeMapRaw()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func TestNew_RejectsUnknownSpecialFeature(t *testing.T) {
	_, err := metadata.New(rawMap("x", "int"), map[string][]string{"text": {"y"}})
	assert.ErrorIs(t, err, metadata.ErrUnknownFeature)
}

func TestNew_CopiesInputs(t *testing.T) {
	raw := rawMap("x", "int")
	special := map[string][]string{"text": {"x"}}

	md, err := metadata.New(raw, special)
	require.NoError(t, err)

	raw.Set("y", "float")
	special["text"][0] = "changed"

	assert.Equal(t, []string{"x"}, md.Features())
	assert.Equal(t, map[string][]string{"text": {"x"}}, md.TypeGroupMapSpecial())
}

func TestFeatureTypeRaw(t *testing.T) {
	md, err := metadata.New(rawMap("x", "int", "y", "object"), nil)
	require.NoError(t, err)

	got, err := md.FeatureTypeRaw("y")
	require.NoError(t, err)
	assert.Equal(t, "object", got)

	_, err = md.FeatureTypeRaw("z")
	assert.ErrorIs(t, err, metadata.ErrUnknownFeature)
}

func TestTypeGroupMapRaw(t *testing.T) {
	md, err := metadata.New(rawMap("a", "int", "b", "float", "c", "int"), nil)
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{
		"int":   {"a", "c"},
		"float": {"b"},
	}, md.TypeGroupMapRaw())
}

func TestKeepFeatures(t *testing.T) {
	md, err := metadata.New(
		rawMap("a", "int", "b", "object", "c", "float"),
		map[string][]string{"text": {"b"}},
	)
	require.NoError(t, err)

	kept, err := md.KeepFeatures([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, kept.Features(), "original order is preserved")
	assert.Empty(t, kept.TypeGroupMapSpecial())

	kept, err = md.KeepFeatures([]string{"b"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"text": {"b"}}, kept.TypeGroupMapSpecial())

	_, err = md.KeepFeatures([]string{"a", "missing"})
	assert.ErrorIs(t, err, metadata.ErrUnknownFeature)
}

func TestFull(t *testing.T) {
	tests := []struct {
		name    string
		raw     map[string][]string
		special map[string][]string
		want    map[string][]string
	}{
		{
			name:    "special claims a raw feature",
			raw:     map[string][]string{"int": {"x", "y"}},
			special: map[string][]string{"text": {"y"}},
			want:    map[string][]string{"text": {"y"}, "int": {"x"}},
		},
		{
			name:    "no special groups",
			raw:     map[string][]string{"int": {"x"}, "float": {"z"}},
			special: nil,
			want:    map[string][]string{"int": {"x"}, "float": {"z"}},
		},
		{
			name:    "raw group fully claimed is omitted",
			raw:     map[string][]string{"object": {"t"}, "int": {"x"}},
			special: map[string][]string{"text": {"t"}},
			want:    map[string][]string{"text": {"t"}, "int": {"x"}},
		},
		{
			name:    "raw and special share a tag",
			raw:     map[string][]string{"datetime": {"d1", "d2"}},
			special: map[string][]string{"datetime": {"d1"}},
			want:    map[string][]string{"datetime": {"d1", "d2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := metadata.Full(tt.raw, tt.special)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFull_DoesNotAliasInputs(t *testing.T) {
	special := map[string][]string{"text": {"y"}}
	got := metadata.Full(map[string][]string{"int": {"x"}}, special)
	got["text"][0] = "changed"
	assert.Equal(t, "y", special["text"][0])
}

func TestDocument_YAMLPreservesOrder(t *testing.T) {
	md, err := metadata.New(
		rawMap("zeta", "int", "alpha", "object"),
		map[string][]string{"text": {"alpha"}},
	)
	require.NoError(t, err)

	data, err := yaml.Marshal(md.Document())
	require.NoError(t, err)
	text := string(data)
	assert.Less(t, strings.Index(text, "zeta: int"), strings.Index(text, "alpha: object"))

	var doc metadata.Document
	require.NoError(t, yaml.Unmarshal(data, &doc))

	back, err := metadata.FromDocument(&doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, back.Features())
	assert.Equal(t, md.TypeGroupMapSpecial(), back.TypeGroupMapSpecial())
}
