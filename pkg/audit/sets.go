package audit

import (
	"strings"

	set "github.com/deckarep/golang-set"
)

// uniqueNames returns the non-empty names in the specified slice with surrounding whitespace
// removed and duplicates dropped. The order of first occurrence is kept.
func uniqueNames(names []string) []string {
	seen := set.NewSet()
	var unique []string
	for _, v := range names {
		name := strings.TrimSpace(v)
		if name == "" || seen.Contains(name) {
			continue
		}

		seen.Add(name)
		unique = append(unique, name)
	}

	return unique
}
