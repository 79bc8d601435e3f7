package storage

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/google/uuid"
)

// Storer persists evaluations. A zero ID is replaced by a fresh one and a
// zero CreatedAt by the current time.
type Storer interface {
	Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error)
}

type Type string

const (
	None     Type = "none"
	InMem    Type = "in_mem"
	JSONFile Type = "json_file"
	PG       Type = "pg"
	ES       Type = "es"
)

// Types lists every supported storage type.
var Types = []Type{None, InMem, JSONFile, PG, ES}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}

// ErrNotFound is returned by Reader.Get for an unknown ID.
var ErrNotFound = errors.New("evaluation not found")
