package util

/**
 * Generic shared utilities
 */

// SliceIncludes returns true is slice includes value
func SliceIncludes[T comparable](s []T, val T) bool {
	for _, v := range s {
		if v == val {
			return true
		}
	}
	return false
}

// Unique returns a copy of s with duplicate values removed, keeping the
// first occurrence of each
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
