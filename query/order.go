package query

import "slices"

// Comparator orders two elements: negative when a sorts first, positive when
// b does, zero when equal
type Comparator[T any] func(a, b T) int

// sortCollection sorts leaves in place with a stable sort. Group order is left
// as grouping produced it.
func sortCollection[T any](c Collection[T], cmp Comparator[T]) {
	if !c.grouped {
		slices.SortStableFunc(c.records, cmp)
		return
	}
	for _, g := range c.groups {
		sortCollection(g.Values, cmp)
	}
}
