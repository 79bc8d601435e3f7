package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/infix-calc/internal/storage"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/es"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/jsonfile"
	"github.com/DjordjeVuckovic/infix-calc/internal/storage/pg"
)

var (
	_ storage.History = (*in_mem.InMemStorer)(nil)
	_ storage.History = (*jsonfile.JsonFileStorer)(nil)
	_ storage.History = (*pg.Storer)(nil)
	_ storage.History = (*es.Storer)(nil)
)

// New creates the history store selected by cfg. It returns a nil History
// when history is disabled. The cleanup func is never nil.
func New(ctx context.Context, cfg *StorageConfig) (storage.History, func(), error) {
	noop := func() {}

	switch cfg.Type {
	case storage.None:
		return nil, noop, nil

	case storage.InMem:
		return in_mem.NewInMemStorer(), noop, nil

	case storage.JSONFile:
		return jsonfile.NewJsonFileStorer(cfg.FilePath), noop, nil

	case storage.PG:
		if cfg.Pg == nil {
			return nil, noop, fmt.Errorf("invalid config for PostgreSQL storage: missing pool config")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		s, err := pg.NewStorer(pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return s, pool.Close, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, noop, fmt.Errorf("invalid config for Elasticsearch storage: missing client config")
		}
		s, err := es.NewStorer(ctx, *cfg.Es)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	default:
		return nil, noop, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
