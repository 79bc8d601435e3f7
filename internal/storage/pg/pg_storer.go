package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/infix-calc/internal/domain"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Storer keeps evaluation history in the evaluations table
// (db/migrations/001_evaluations.up.sql).
type Storer struct {
	db   *pgxpool.Pool
	pool *ConnectionPool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	if pool == nil {
		return nil, errors.New("connection pool is required")
	}
	return &Storer{db: pool.pool, pool: pool}, nil
}

const selectColumns = `id, expression, tokens, result, failure_stage, failure_kind, failure_message, created_at`

func (s *Storer) Save(ctx context.Context, evaluation domain.Evaluation) (uuid.UUID, error) {
	if evaluation.ID == uuid.Nil {
		evaluation.ID = uuid.New()
	}
	if evaluation.CreatedAt.IsZero() {
		evaluation.CreatedAt = time.Now().UTC()
	}

	tokensJSON, err := json.Marshal(evaluation.Tokens)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal tokens: %w", err)
	}

	var stage, kind, message *string
	if f := evaluation.Failure; f != nil {
		st, k := string(f.Stage), string(f.Kind)
		stage, kind, message = &st, &k, &f.Message
	}

	cmd := `
        INSERT INTO evaluations (id, expression, tokens, result, failure_stage, failure_kind, failure_message, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id;
    `
	var id uuid.UUID
	err = s.db.QueryRow(
		ctx,
		cmd,
		evaluation.ID,
		evaluation.Expression,
		tokensJSON,
		evaluation.Result,
		stage,
		kind,
		message,
		evaluation.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert evaluation: %w", err)
	}

	return id, nil
}

func (s *Storer) Get(ctx context.Context, id uuid.UUID) (*domain.Evaluation, error) {
	row := s.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM evaluations WHERE id = $1`, id)

	ev, err := scanEvaluation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation: %w", err)
	}
	return ev, nil
}

func (s *Storer) List(ctx context.Context, cursor *domain.Cursor, size int) (*storage.ListResult, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if cursor == nil {
		rows, err = s.db.Query(ctx, `
			SELECT `+selectColumns+` FROM evaluations
			ORDER BY created_at DESC, id DESC
			LIMIT $1`, size+1)
	} else {
		rows, err = s.db.Query(ctx, `
			SELECT `+selectColumns+` FROM evaluations
			WHERE (created_at, id) < ($1, $2)
			ORDER BY created_at DESC, id DESC
			LIMIT $3`, cursor.CreatedAt, cursor.ID, size+1)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Evaluation, 0, size+1)
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		items = append(items, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate evaluations: %w", err)
	}

	return storage.NewListResult(items, size), nil
}

func (s *Storer) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func scanEvaluation(row pgx.Row) (*domain.Evaluation, error) {
	var (
		ev                   domain.Evaluation
		tokensJSON           []byte
		stage, kind, message *string
	)
	if err := row.Scan(&ev.ID, &ev.Expression, &tokensJSON, &ev.Result, &stage, &kind, &message, &ev.CreatedAt); err != nil {
		return nil, err
	}

	if len(tokensJSON) > 0 {
		if err := json.Unmarshal(tokensJSON, &ev.Tokens); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tokens: %w", err)
		}
	}
	if kind != nil {
		ev.Failure = &domain.Failure{Kind: domain.ErrorKind(*kind)}
		if stage != nil {
			ev.Failure.Stage = domain.Stage(*stage)
		}
		if message != nil {
			ev.Failure.Message = *message
		}
	}
	ev.CreatedAt = ev.CreatedAt.UTC()

	return &ev, nil
}
