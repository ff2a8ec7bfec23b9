package query

import "fmt"

// Projection is a query whose rows are mapped to U by a selector
type Projection[T, U any] struct {
	query    *Query[T]
	selector Selector[Row[T], U]
}

// Select maps each top-level row of q through sel. It counts as the query's
// SELECT; execute the returned projection instead of q. Rows are groups when
// q groups, so a projection flattens a grouped result into one U per group.
func Select[T, U any](q *Query[T], sel Selector[Row[T], U]) *Projection[T, U] {
	if q.configure(OperatorSelect) {
		if sel == nil {
			q.fail(fmt.Errorf("%w: select selector", ErrNilFunction))
		}
		q.projected = true
	}
	return &Projection[T, U]{query: q, selector: sel}
}

// Query returns the underlying query for further configuration
func (p *Projection[T, U]) Query() *Query[T] {
	return p.query
}

// Execute runs the pipeline, projects the rows and applies the limit
func (p *Projection[T, U]) Execute() (*Result[U], error) {
	q := p.query
	rows, stats, err := q.run()
	if err != nil {
		return nil, err
	}

	out := make([]U, 0, rows.Len())
	for _, row := range rows.Rows() {
		out = append(out, p.selector(row))
	}

	stat := StageStat{
		Stage:   StageSelect,
		Applied: true,
		RowsIn:  rows.Len(),
		RowsOut: len(out),
	}
	traceStage(stat)

	return paginate(Flat(out), q.options.ValidateLimit(q.limit), q.offset, append(stats, stat))
}

// LeafProjection is a query whose leaf records are mapped to U, keeping any
// group structure
type LeafProjection[T, U any] struct {
	query    *Query[T]
	selector Selector[T, U]
}

// SelectEach maps every leaf record of q through sel. Unlike Select, groups are
// kept and only the records inside them change. It counts as the query's SELECT.
func SelectEach[T, U any](q *Query[T], sel Selector[T, U]) *LeafProjection[T, U] {
	if q.configure(OperatorSelect) {
		if sel == nil {
			q.fail(fmt.Errorf("%w: select selector", ErrNilFunction))
		}
		q.projected = true
	}
	return &LeafProjection[T, U]{query: q, selector: sel}
}

// Query returns the underlying query for further configuration
func (p *LeafProjection[T, U]) Query() *Query[T] {
	return p.query
}

// Execute runs the pipeline, maps the leaves and applies the limit
func (p *LeafProjection[T, U]) Execute() (*Result[U], error) {
	q := p.query
	rows, stats, err := q.run()
	if err != nil {
		return nil, err
	}

	out := mapCollection(rows, p.selector)

	stat := StageStat{
		Stage:   StageSelect,
		Applied: true,
		RowsIn:  rows.Len(),
		RowsOut: out.Len(),
	}
	traceStage(stat)

	return paginate(out, q.options.ValidateLimit(q.limit), q.offset, append(stats, stat))
}

func mapCollection[T, U any](c Collection[T], sel Selector[T, U]) Collection[U] {
	if !c.grouped {
		out := make([]U, len(c.records))
		for i, r := range c.records {
			out[i] = sel(r)
		}
		return Flat(out)
	}
	groups := make([]Group[U], len(c.groups))
	for i, g := range c.groups {
		groups[i] = Group[U]{Key: g.Key, Values: mapCollection(g.Values, sel)}
	}
	return Grouped(groups)
}
