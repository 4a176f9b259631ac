/*
Package archive holds the chat server's optional durability sinks: a Postgres
event archive mirroring lifecycle events (never chat content or room state),
and an S3 upload of rotated protocol log segments. Both are no-ops unless
configured via environment variables (DATABASE_DSN, S3_BUCKET).

This file follows the same pgxpool-plus-goose-migration bootstrap used
elsewhere in this codebase, pointed at a single append-only chat_events
table.
*/
package archive

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// newPool opens a pgxpool.Pool against dsn and applies pending migrations.
func newPool(dsn string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("archive: parse DATABASE_DSN: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("archive: create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("archive: ping database: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := runMigrations(sqlDB); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// runMigrations applies every pending migration embedded in this package.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("archive: set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("archive: apply migrations: %w", err)
	}

	return nil
}
