package storage

import (
	"context"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/google/uuid"
)

// ListResult is one page of history, newest first.
// Contains domain objects - no encoding/decoding at this layer
type ListResult struct {
	Items      []domain.Evaluation
	NextCursor *domain.Cursor
	HasMore    bool
}

type Reader interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error)
	// List returns up to size evaluations strictly after cursor
	// (nil for the first page).
	List(ctx context.Context, cursor *domain.Cursor, size int) (*ListResult, error)
}

// History is a store that can both record and list evaluations.
type History interface {
	Storer
	Reader
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewListResult trims items fetched with size+1 to size and derives the
// next cursor from the last kept item.
func NewListResult(items []domain.Evaluation, size int) *ListResult {
	hasMore := len(items) > size
	if hasMore {
		items = items[:size]
	}

	result := &ListResult{
		Items:   items,
		HasMore: hasMore,
	}
	if hasMore && len(items) > 0 {
		c := domain.CursorOf(items[len(items)-1])
		result.NextCursor = &c
	}
	return result
}
