package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PoolConfig struct {
	ConnStr string
	// MaxConns overrides pool_max_conns from ConnStr when positive.
	MaxConns int32
}

// ConnectionPool owns the pgx pool backing the evaluations table.
type ConnectionPool struct {
	pool *pgxpool.Pool
}

// NewConnectionPool opens the pool and verifies the database answers.
func NewConnectionPool(ctx context.Context, cfg PoolConfig) (*ConnectionPool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.ConnStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL connection string: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping evaluations database: %w", err)
	}

	return &ConnectionPool{pool: pool}, nil
}

func (p *ConnectionPool) Pool() *pgxpool.Pool {
	return p.pool
}

func (p *ConnectionPool) Close() {
	p.pool.Close()
}

func (p *ConnectionPool) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}
