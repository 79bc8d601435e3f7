package pagination

// CursorResult represents a cursor-based paginated result
// Generic type T allows reuse across different entity types
type CursorResult[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
}

// NewCursorResult wraps an already trimmed page. cursorFn is only called
// when hasMore is set, with the last item of the page.
func NewCursorResult[T any](items []T, hasMore bool, cursorFn func(T) (string, error)) (*CursorResult[T], error) {
	if items == nil {
		items = []T{}
	}

	result := &CursorResult[T]{
		Items:   items,
		HasMore: hasMore,
	}

	if hasMore && len(items) > 0 {
		cursor, err := cursorFn(items[len(items)-1])
		if err != nil {
			return nil, err
		}
		result.NextCursor = &cursor
	}

	return result, nil
}
