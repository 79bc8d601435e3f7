package dto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/google/uuid"
)

// Cursor is the wire form of domain.Cursor.
type Cursor struct {
	CreatedAt int64     `json:"t"` // unix microseconds
	ID        uuid.UUID `json:"i"`
}

// EncodeCursor converts a domain cursor to a base64-encoded string
func EncodeCursor(c domain.Cursor) (string, error) {
	if c.ID == uuid.Nil {
		return "", fmt.Errorf("cursor ID cannot be nil")
	}

	b, err := json.Marshal(Cursor{
		CreatedAt: c.CreatedAt.UnixMicro(),
		ID:        c.ID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}

	return base64.URLEncoding.EncodeToString(b), nil
}

// DecodeCursor parses a base64-encoded cursor string
func DecodeCursor(s string) (*domain.Cursor, error) {
	if s == "" {
		return nil, nil
	}

	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor: %w", err)
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cursor: %w", err)
	}

	if c.ID == uuid.Nil {
		return nil, fmt.Errorf("invalid cursor: ID cannot be nil")
	}

	return &domain.Cursor{
		CreatedAt: time.UnixMicro(c.CreatedAt).UTC(),
		ID:        c.ID,
	}, nil
}
