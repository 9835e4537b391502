package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgx connection pool holding the spell data tables.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and checks the connection.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

func (d *DB) Close() {
	d.pool.Close()
}

func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

func (d *DB) Spells() *SpellRepository {
	return NewSpellRepository(d.pool)
}

func (d *DB) Importer() *SpellImporter {
	return NewSpellImporter(d.pool)
}
