package analysis

import "strings"

// TerritorialFilter excludes administrative units whose department code
// starts with any of the configured prefixes (the overseas and abroad
// code ranges). Matching is purely on the code string: any code falling
// in an excluded range is dropped.
type TerritorialFilter struct {
	Prefixes []string
}

func NewTerritorialFilter(prefixes []string) TerritorialFilter {
	return TerritorialFilter{Prefixes: prefixes}
}

// Excludes reports whether a department code falls in an excluded range.
func (f TerritorialFilter) Excludes(departmentCode string) bool {
	for _, prefix := range f.Prefixes {
		if strings.HasPrefix(departmentCode, prefix) {
			return true
		}
	}
	return false
}
