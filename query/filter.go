package query

// Predicate reports whether an element matches
type Predicate[T any] func(T) bool

// filterClauses keeps the items that satisfy every clause, where a clause is
// satisfied when any one of its predicates holds. Each clause yields the union
// of its predicates' matches; successive unions are intersected by position.
// Input order is kept and no item appears twice.
func filterClauses[E any](items []E, clauses [][]Predicate[E]) []E {
	if len(clauses) == 0 {
		return items
	}
	if len(items) == 0 {
		return nil
	}

	var running []int
	for n, clause := range clauses {
		union := matchAny(items, clause)
		if n == 0 {
			running = union
		} else {
			running = intersect(running, union)
		}
		if len(running) == 0 {
			return nil
		}
	}

	out := make([]E, len(running))
	for i, pos := range running {
		out[i] = items[pos]
	}
	return out
}

// matchAny returns the ascending positions of items matched by at least one predicate
func matchAny[E any](items []E, clause []Predicate[E]) []int {
	var positions []int
	for i, item := range items {
		for _, pred := range clause {
			if pred(item) {
				positions = append(positions, i)
				break
			}
		}
	}
	return positions
}

// intersect merges two ascending position lists
func intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// filterCollection applies record clauses to c. On a grouped collection the
// clauses are pushed down to every leaf, and a group survives only if
// something under it still matches.
func filterCollection[T any](c Collection[T], clauses [][]Predicate[T]) Collection[T] {
	if len(clauses) == 0 {
		return c
	}
	if !c.grouped {
		return Flat(filterClauses(c.records, clauses))
	}

	groups := make([]Group[T], 0, len(c.groups))
	for _, g := range c.groups {
		values := filterCollection(g.Values, clauses)
		if values.Len() == 0 {
			continue
		}
		groups = append(groups, Group[T]{Key: g.Key, Values: values})
	}
	return Grouped(groups)
}

// filterRows applies row clauses to the top-level elements of c
func filterRows[T any](c Collection[T], clauses [][]Predicate[Row[T]]) Collection[T] {
	if len(clauses) == 0 {
		return c
	}
	return fromRows(filterClauses(c.Rows(), clauses), c.grouped)
}
