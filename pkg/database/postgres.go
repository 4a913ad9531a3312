package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresDriver struct {
	uri  string
	pool *pgxpool.Pool
}

func (d *postgresDriver) Connect(ctx context.Context) error {
	cfg, err := pgxpool.ParseConfig(d.uri)
	if err != nil {
		return fmt.Errorf("parse postgres config: %w", err)
	}
	cfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return fmt.Errorf("postgres ping: %w", err)
	}

	d.pool = pool
	return nil
}

func (d *postgresDriver) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}

func (d *postgresDriver) Close(_ context.Context) error {
	d.pool.Close()
	return nil
}

// Postgres returns the connection pool. It fails with ErrNotConnected before the
// first successful connect and when the target is not Postgres.
func (s *Store) Postgres() (*pgxpool.Pool, error) {
	if !s.connected.Load() {
		return nil, ErrNotConnected
	}
	d, ok := s.driver.(*postgresDriver)
	if !ok {
		return nil, fmt.Errorf("database is %s, not postgres", s.target.Kind())
	}
	return d.pool, nil
}
