package query

// Collection is the working set of a query. It is either flat, holding records,
// or grouped, holding one Group per distinct key. A group's Values is again a
// Collection, nested once per group-by selector.
type Collection[T any] struct {
	records []T
	groups  []Group[T]
	grouped bool
}

// Group is a key and the records (or nested groups) that produced it
type Group[T any] struct {
	Key    any
	Values Collection[T]
}

// Len returns the number of top-level elements of the group's values
func (g Group[T]) Len() int {
	return g.Values.Len()
}

// Flat creates a flat Collection over records
func Flat[T any](records []T) Collection[T] {
	return Collection[T]{records: records}
}

// Grouped creates a grouped Collection
func Grouped[T any](groups []Group[T]) Collection[T] {
	return Collection[T]{groups: groups, grouped: true}
}

// IsGrouped returns true if the collection holds groups rather than records
func (c Collection[T]) IsGrouped() bool {
	return c.grouped
}

// Records returns the records of a flat collection, nil when grouped
func (c Collection[T]) Records() []T {
	return c.records
}

// Groups returns the groups of a grouped collection, nil when flat
func (c Collection[T]) Groups() []Group[T] {
	return c.groups
}

// Len returns the number of top-level elements
func (c Collection[T]) Len() int {
	if c.grouped {
		return len(c.groups)
	}
	return len(c.records)
}

// Depth returns the number of grouping levels above the leaves
func (c Collection[T]) Depth() int {
	if !c.grouped {
		return 0
	}
	if len(c.groups) == 0 {
		return 1
	}
	return 1 + c.groups[0].Values.Depth()
}

// Leaves returns every record in the collection, depth-first in group order
func (c Collection[T]) Leaves() []T {
	if !c.grouped {
		return c.records
	}
	var out []T
	for _, g := range c.groups {
		out = append(out, g.Values.Leaves()...)
	}
	return out
}

// Rows returns the top-level elements as rows
func (c Collection[T]) Rows() []Row[T] {
	if c.grouped {
		rows := make([]Row[T], len(c.groups))
		for i := range c.groups {
			rows[i] = Row[T]{group: &c.groups[i]}
		}
		return rows
	}
	rows := make([]Row[T], len(c.records))
	for i, r := range c.records {
		rows[i] = Row[T]{record: r}
	}
	return rows
}

// slice returns the top-level elements in [from, to)
func (c Collection[T]) slice(from, to int) Collection[T] {
	if c.grouped {
		return Grouped(c.groups[from:to])
	}
	return Flat(c.records[from:to])
}

// fromRows rebuilds a collection of the given shape from top-level rows
func fromRows[T any](rows []Row[T], grouped bool) Collection[T] {
	if grouped {
		groups := make([]Group[T], 0, len(rows))
		for _, r := range rows {
			groups = append(groups, *r.group)
		}
		return Grouped(groups)
	}
	records := make([]T, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record)
	}
	return Flat(records)
}

// Row is a top-level element of a Collection: a record when the collection is
// flat, a group once grouping has run. Having predicates and projections
// receive rows.
type Row[T any] struct {
	record T
	group  *Group[T]
}

// RecordRow wraps a record as a row
func RecordRow[T any](record T) Row[T] {
	return Row[T]{record: record}
}

// GroupRow wraps a group as a row
func GroupRow[T any](group Group[T]) Row[T] {
	return Row[T]{group: &group}
}

// IsGroup returns true if the row holds a group
func (r Row[T]) IsGroup() bool {
	return r.group != nil
}

// Record returns the row's record. ok is false for group rows.
func (r Row[T]) Record() (record T, ok bool) {
	if r.group != nil {
		return record, false
	}
	return r.record, true
}

// Group returns the row's group. ok is false for record rows.
func (r Row[T]) Group() (group Group[T], ok bool) {
	if r.group == nil {
		return group, false
	}
	return *r.group, true
}

// Leaves returns the record of a record row, or every record under a group row
func (r Row[T]) Leaves() []T {
	if r.group == nil {
		return []T{r.record}
	}
	return r.group.Values.Leaves()
}

// Pair is one element of a cross join
type Pair[A, B any] struct {
	Left  A
	Right B
}

// CrossJoin returns the Cartesian product of primary and secondary,
// primary-major: every secondary element is paired with primary[0] first.
func CrossJoin[A, B any](primary []A, secondary []B) []Pair[A, B] {
	out := make([]Pair[A, B], 0, len(primary)*len(secondary))
	for _, a := range primary {
		for _, b := range secondary {
			out = append(out, Pair[A, B]{Left: a, Right: b})
		}
	}
	return out
}
