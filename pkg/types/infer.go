// Package types infers raw and special feature types from table columns.
package types

import (
	"strings"
	"time"

	"github.com/simonhull/firebird-suite/kestrel/pkg/metadata"
	"github.com/simonhull/firebird-suite/kestrel/pkg/table"
)

const (
	// textMinUniqueRatio is the unique/rows ratio a column must exceed to be text.
	textMinUniqueRatio = 0.01
	// textMinAvgWords is the mean word count over unique values required for text.
	textMinAvgWords = 3.0
)

// RawTypeOf returns the raw type tag of a column. Missing cells are ignored;
// a column with no present cells is object.
func RawTypeOf(values []any) string {
	kind := ""
	for _, v := range values {
		var k string
		switch v.(type) {
		case nil:
			continue
		case int64:
			k = RawInt
		case float64:
			k = RawFloat
		case bool:
			k = RawBool
		case time.Time:
			k = RawDatetime
		default:
			return RawObject
		}

		switch {
		case kind == "":
			kind = k
		case kind == k:
		case isNumeric(kind) && isNumeric(k):
			kind = promote(kind, k)
		default:
			return RawObject
		}
	}
	if kind == "" {
		return RawObject
	}
	return kind
}

func isNumeric(rawType string) bool {
	info, ok := Lookup(rawType)
	return ok && info.Numeric
}

func promote(a, b string) string {
	if Registry[a].Ordinal >= Registry[b].Ordinal {
		return a
	}
	return b
}

// TypeMapRaw returns the raw type of every column, in column order.
func TypeMapRaw(t *table.Table) *metadata.TypeMapRaw {
	m := metadata.NewTypeMapRaw()
	for _, name := range t.Columns() {
		values, _ := t.Column(name)
		m.Set(name, RawTypeOf(values))
	}
	return m
}

// TypeGroupMapSpecial groups columns by special type. Only text is detected.
func TypeGroupMapSpecial(t *table.Table) map[string][]string {
	groups := make(map[string][]string)
	for _, name := range t.Columns() {
		values, _ := t.Column(name)
		if IsText(values) {
			groups[SpecialText] = append(groups[SpecialText], name)
		}
	}
	return groups
}

// IsText reports whether an object column holds free text: enough distinct
// values and at least three words per distinct value on average.
func IsText(values []any) bool {
	if len(values) == 0 || RawTypeOf(values) != RawObject {
		return false
	}

	seen := make(map[string]struct{})
	var unique []string
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			unique = append(unique, s)
		}
	}
	if len(unique) == 0 {
		return false
	}

	if float64(len(unique))/float64(len(values)) <= textMinUniqueRatio {
		return false
	}

	words := 0
	for _, s := range unique {
		words += len(strings.Fields(s))
	}
	return float64(words)/float64(len(unique)) >= textMinAvgWords
}

// FeatureMetadata infers metadata for every column of a table.
func FeatureMetadata(t *table.Table) (*metadata.FeatureMetadata, error) {
	return metadata.New(TypeMapRaw(t), TypeGroupMapSpecial(t))
}
