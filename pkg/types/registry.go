package types

import (
	"fmt"
	"sort"
)

// Raw type tags.
const (
	RawInt      = "int"
	RawFloat    = "float"
	RawBool     = "bool"
	RawDatetime = "datetime"
	RawObject   = "object"
)

// Special type tags.
const (
	SpecialText = "text"
)

// TypeInfo contains metadata about a raw type
type TypeInfo struct {
	GoType    string // Go type of the cells, "" when cells are mixed
	Numeric   bool   // Usable as a numeric model input as-is
	Ordinal   int    // Promotion order when mixing numeric types
	Describer string // Short human readable description
}

// Registry contains all known raw types
var Registry = map[string]TypeInfo{
	RawInt: {
		GoType:    "int64",
		Numeric:   true,
		Ordinal:   1,
		Describer: "integer",
	},
	RawFloat: {
		GoType:    "float64",
		Numeric:   true,
		Ordinal:   2,
		Describer: "floating point",
	},
	RawBool: {
		GoType:    "bool",
		Describer: "boolean",
	},
	RawDatetime: {
		GoType:    "time.Time",
		Describer: "timestamp",
	},
	RawObject: {
		Describer: "string or mixed",
	},
}

// Lookup retrieves type info by raw type tag
func Lookup(rawType string) (TypeInfo, bool) {
	info, ok := Registry[rawType]
	return info, ok
}

// Describe returns the human readable description of a raw type
func Describe(rawType string) (string, error) {
	info, ok := Lookup(rawType)
	if !ok {
		return "", fmt.Errorf("unknown raw type: %s", rawType)
	}
	return info.Describer, nil
}

// ListTypes returns all raw type tags in sorted order
func ListTypes() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
