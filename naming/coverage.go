package naming

import (
	"slices"

	"github.com/samber/lo"
)

// CheckCoverage fails with an *UnmatchedError listing every discovered
// name that no generation rule accounted for.
func CheckCoverage(discovered, accounted []string) error {
	missing := unaccounted(discovered, accounted)
	if len(missing) == 0 {
		return nil
	}
	return &UnmatchedError{Names: missing}
}

// unaccounted returns the sorted distinct names of discovered missing from
// accounted. It is never nil.
func unaccounted(discovered, accounted []string) []string {
	missing := lo.Uniq(lo.Without(discovered, accounted...))
	slices.Sort(missing)
	return missing
}
