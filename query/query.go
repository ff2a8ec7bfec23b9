package query

import (
	"fmt"
	"slices"

	"github.com/hadi77ir/go-memquery/internal/cursor"
	"github.com/hadi77ir/go-memquery/internal/logging"
)

// NoLimit disables truncation when passed to Limit
const NoLimit = -1

// Query accumulates operators over records of type T and runs them once.
//
// Configuration methods may be called in any order and return the query for
// chaining. SELECT, FROM, GROUPBY, ORDERBY and EXECUTE may each be used once;
// WHERE and HAVING add one clause per call; LIMIT may be called repeatedly and
// the last value wins. The first configuration error is kept and reported by
// Err and Execute.
//
// A Query is not safe for concurrent use.
type Query[T any] struct {
	options *Options

	source  []T
	where   [][]Predicate[T]
	groupBy []Selector[T, any]
	orderBy Comparator[T]
	having  [][]Predicate[Row[T]]
	limit   int
	offset  int

	projected bool
	states    [operatorCount]opState
	err       error
}

// New creates an empty query with default options
func New[T any]() *Query[T] {
	return NewWithOptions[T](nil)
}

// NewWithOptions creates an empty query with the given options
func NewWithOptions[T any](opts *Options) *Query[T] {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Query[T]{options: opts}
}

// Err returns the first configuration error, if any
func (q *Query[T]) Err() error {
	return q.err
}

// claim marks an exactly-once operator as used
func (q *Query[T]) claim(op Operator) error {
	if q.states[op] == opSet {
		return DuplicateOperatorError(op)
	}
	q.states[op] = opSet
	return nil
}

func (q *Query[T]) fail(err error) {
	logging.Debug().Err(err).Msg("query configuration error")
	if q.err == nil {
		q.err = err
	}
}

// configure claims op and records any error. It returns true when the
// caller should store its configuration.
func (q *Query[T]) configure(op Operator) bool {
	if err := q.claim(op); err != nil {
		q.fail(err)
		return false
	}
	return true
}

// From sets the records to query
func (q *Query[T]) From(records []T) *Query[T] {
	if q.configure(OperatorFrom) {
		q.source = records
	}
	return q
}

// FromJoin sets the records of q to the cross join of primary and secondary.
// It counts as the query's FROM.
func FromJoin[A, B any](q *Query[Pair[A, B]], primary []A, secondary []B) *Query[Pair[A, B]] {
	if q.configure(OperatorFrom) {
		q.source = CrossJoin(primary, secondary)
	}
	return q
}

// Where adds a clause that keeps records matching any of preds. Records must
// match every clause. A call without predicates adds nothing.
func (q *Query[T]) Where(preds ...Predicate[T]) *Query[T] {
	if len(preds) == 0 {
		return q
	}
	if slices.ContainsFunc(preds, func(p Predicate[T]) bool { return p == nil }) {
		q.fail(fmt.Errorf("%w: where predicate", ErrNilFunction))
		return q
	}
	q.where = append(q.where, slices.Clone(preds))
	return q
}

// GroupBy nests records by each key in turn, the first key outermost
func (q *Query[T]) GroupBy(keys ...Selector[T, any]) *Query[T] {
	if !q.configure(OperatorGroupBy) {
		return q
	}
	if slices.ContainsFunc(keys, func(k Selector[T, any]) bool { return k == nil }) {
		q.fail(fmt.Errorf("%w: group-by selector", ErrNilFunction))
		return q
	}
	q.groupBy = slices.Clone(keys)
	return q
}

// Having adds a clause over top-level rows: groups once GroupBy has run,
// records otherwise. Combination rules are those of Where.
func (q *Query[T]) Having(preds ...Predicate[Row[T]]) *Query[T] {
	if len(preds) == 0 {
		return q
	}
	if slices.ContainsFunc(preds, func(p Predicate[Row[T]]) bool { return p == nil }) {
		q.fail(fmt.Errorf("%w: having predicate", ErrNilFunction))
		return q
	}
	q.having = append(q.having, slices.Clone(preds))
	return q
}

// OrderBy sorts the leaf records. Group order is not changed.
func (q *Query[T]) OrderBy(cmp Comparator[T]) *Query[T] {
	if !q.configure(OperatorOrderBy) {
		return q
	}
	if cmp == nil {
		q.fail(fmt.Errorf("%w: order-by comparator", ErrNilFunction))
		return q
	}
	q.orderBy = cmp
	return q
}

// Limit caps the number of top-level rows returned. It is not an
// exactly-once operator: the last call wins. n <= 0 means no limit.
func (q *Query[T]) Limit(n int) *Query[T] {
	q.limit = n
	return q
}

// Page starts the result at the position encoded in a cursor taken from a
// previous Result. An empty cursor selects the first page.
func (q *Query[T]) Page(pageCursor string) *Query[T] {
	data, err := cursor.Decode(pageCursor)
	if err != nil {
		q.fail(fmt.Errorf("%w: %v", ErrInvalidCursor, err))
		return q
	}
	q.offset = 0
	if data != nil {
		q.offset = data.Offset
	}
	return q
}

// SelectAll returns rows unchanged. It counts as the query's SELECT.
func (q *Query[T]) SelectAll() *Query[T] {
	q.configure(OperatorSelect)
	return q
}

// Execute runs the pipeline and returns the rows without projection
func (q *Query[T]) Execute() (*Result[T], error) {
	if q.projected {
		if err := q.claim(OperatorExecute); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: query has a projection, execute it instead", ErrInvalidQuery)
	}

	rows, stats, err := q.run()
	if err != nil {
		return nil, err
	}

	stats = append(stats, StageStat{
		Stage:   StageSelect,
		Applied: q.states[OperatorSelect] == opSet,
		RowsIn:  rows.Len(),
		RowsOut: rows.Len(),
	})
	traceStage(stats[len(stats)-1])

	return paginate(rows, q.options.ValidateLimit(q.limit), q.offset, stats)
}

// run executes the stages before SELECT
func (q *Query[T]) run() (Collection[T], []StageStat, error) {
	if err := q.claim(OperatorExecute); err != nil {
		return Collection[T]{}, nil, err
	}
	if q.err != nil {
		return Collection[T]{}, nil, q.err
	}

	// the caller's slice is never sorted in place
	working := Flat(slices.Clone(q.source))
	stats := make([]StageStat, 0, len(Pipeline))

	for _, stage := range Pipeline {
		if stage == StageSelect {
			break
		}

		stat := StageStat{Stage: stage, RowsIn: working.Len()}
		switch stage {
		case StageWhere:
			stat.Applied = len(q.where) > 0
			working = filterCollection(working, q.where)

		case StageGroupBy:
			stat.Applied = len(q.groupBy) > 0
			if stat.Applied {
				grouped, err := groupRecords(working.Leaves(), q.groupBy)
				if err != nil {
					return Collection[T]{}, nil, NewOperatorError(OperatorGroupBy, err)
				}
				working = grouped
			}

		case StageOrderBy:
			stat.Applied = q.orderBy != nil
			if stat.Applied {
				sortCollection(working, q.orderBy)
			}

		case StageHaving:
			stat.Applied = len(q.having) > 0
			working = filterRows(working, q.having)
		}
		stat.RowsOut = working.Len()

		traceStage(stat)
		stats = append(stats, stat)
	}

	return working, stats, nil
}

// paginate applies LIMIT from offset and builds the result
func paginate[U any](rows Collection[U], limit, offset int, stats []StageStat) (*Result[U], error) {
	total := rows.Len()

	start := offset
	if start > total {
		start = total
	}
	end := total
	if limit > 0 && start+limit < total {
		end = start + limit
	}

	page := rows
	if start > 0 || end < total {
		page = rows.slice(start, end)
	}

	stat := StageStat{
		Stage:   StageLimit,
		Applied: limit > 0 || start > 0,
		RowsIn:  total,
		RowsOut: page.Len(),
	}
	traceStage(stat)

	result := &Result[U]{
		Rows:          page,
		TotalItems:    int64(total),
		ShowingFrom:   start + 1,
		ShowingTo:     end,
		ItemsReturned: page.Len(),
		Stages:        append(stats, stat),
	}

	var err error
	if end < total {
		result.NextPageCursor, err = cursor.Encode(&cursor.CursorData{
			Offset:    end,
			Direction: cursor.DirectionNext,
			PageSize:  limit,
		})
		if err != nil {
			return nil, err
		}
	}
	if start > 0 {
		prev := 0
		if limit > 0 && start-limit > 0 {
			prev = start - limit
		}
		result.PrevPageCursor, err = cursor.Encode(&cursor.CursorData{
			Offset:    prev,
			Direction: cursor.DirectionPrev,
			PageSize:  limit,
		})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func traceStage(stat StageStat) {
	logging.Trace().
		Stringer("stage", stat.Stage).
		Bool("applied", stat.Applied).
		Int("rows_in", stat.RowsIn).
		Int("rows_out", stat.RowsOut).
		Msg("stage done")
}
