package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Cursor marks the last evaluation of a history page. History is ordered
// newest first by CreatedAt, ties broken by ID descending.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// CursorOf returns the cursor positioned at e.
func CursorOf(e Evaluation) Cursor {
	return Cursor{CreatedAt: e.CreatedAt, ID: e.ID}
}

// Precedes reports whether e belongs after the cursor in history order.
func (c Cursor) Precedes(e Evaluation) bool {
	if e.CreatedAt.Equal(c.CreatedAt) {
		return bytes.Compare(e.ID[:], c.ID[:]) < 0
	}
	return e.CreatedAt.Before(c.CreatedAt)
}

// NewerFirst orders evaluations for history listings.
func NewerFirst(a, b Evaluation) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return bytes.Compare(a.ID[:], b.ID[:]) > 0
	}
	return a.CreatedAt.After(b.CreatedAt)
}
