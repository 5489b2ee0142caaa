package generators

import "slices"

// renameFeatures applies prefix then suffix to the output columns and to every
// feature listed in the special type groups. The inputs are not modified.
// updated is true when any column name changed.
func renameFeatures(columns []string, groups map[string][]string, prefix, suffix string) ([]string, map[string][]string, bool) {
	rename := func(name string) string {
		return prefix + name + suffix
	}

	renamed := make([]string, len(columns))
	for i, c := range columns {
		renamed[i] = rename(c)
	}

	var renamedGroups map[string][]string
	if groups != nil {
		renamedGroups = make(map[string][]string, len(groups))
		for tag, group := range groups {
			out := make([]string, len(group))
			for i, f := range group {
				out[i] = rename(f)
			}
			renamedGroups[tag] = out
		}
	}

	return renamed, renamedGroups, !slices.Equal(columns, renamed)
}
