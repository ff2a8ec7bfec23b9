package query

// Result is the outcome of executing a query
type Result[T any] struct {
	// Rows is the final collection: grouped when GroupBy ran and no projection
	// flattened it
	Rows Collection[T]

	// NextPageCursor is the cursor for the next page (empty if no next page)
	NextPageCursor string `json:"next_page_cursor"`

	// PrevPageCursor is the cursor for the previous page (empty if no previous page)
	PrevPageCursor string `json:"prev_page_cursor"`

	// TotalItems is the number of top-level rows before the limit was applied
	TotalItems int64 `json:"total_items"`

	// ShowingFrom is the starting index (1-based) of rows in the current page
	ShowingFrom int `json:"showing_from"`

	// ShowingTo is the ending index (1-based) of rows in the current page
	ShowingTo int `json:"showing_to"`

	// ItemsReturned is the number of top-level rows returned in this page
	ItemsReturned int `json:"items_returned"`

	// Stages lists every pipeline stage in the order it ran
	Stages []StageStat `json:"-"`
}

// HasNextPage returns true if there is a next page available
func (r *Result[T]) HasNextPage() bool {
	return r.NextPageCursor != ""
}

// HasPrevPage returns true if there is a previous page available
func (r *Result[T]) HasPrevPage() bool {
	return r.PrevPageCursor != ""
}

// IsEmpty returns true if the result contains no rows
func (r *Result[T]) IsEmpty() bool {
	return r.ItemsReturned == 0
}
