// Package rank builds comparators that order by a key and fall back to a
// numeric identity, so equal keys always come out in the same order.
package rank

import "cmp"

// Stable returns a comparator for slices.SortStableFunc. Items are ordered by
// less (reversed when desc is set); ties are broken by id ascending no matter
// the direction.
func Stable[T any](less func(a, b T) int, id func(T) int32, desc bool) func(a, b T) int {
	return func(a, b T) int {
		c := less(a, b)
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	}
}

// By returns a key comparator for any ordered field.
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
