// Package repomanager picks a storage backend from a DSN, opens its
// connection pool, applies the embedded goose migrations and vends
// repositories bound to a dbx.DBTX.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dmitrijs2005/gotodo/internal/dbx"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/todos"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	Driver() string
	RunMigrations(ctx context.Context, db *sql.DB) error
	Todos(db dbx.DBTX) todos.Repository
}

// gooseUp is a seam for testing the migration runner.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// ParseDSN maps a DSN onto a RepositoryManager and the data source name
// understood by its driver.
//
//	postgres://…, postgresql://…   → PostgreSQL via pgx
//	sqlite://path, sqlite:path     → SQLite file (or ":memory:")
func ParseDSN(dsn string) (RepositoryManager, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresRepositoryManager(), dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return NewSQLiteRepositoryManager(), strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return NewSQLiteRepositoryManager(), strings.TrimPrefix(dsn, "sqlite:"), nil
	default:
		return nil, "", fmt.Errorf("unsupported database DSN %q", dsn)
	}
}

// Open resolves dsn, opens the pool and runs migrations. The caller owns the
// returned *sql.DB and must close it.
func Open(ctx context.Context, dsn string, opts dbx.PoolOptions) (*sql.DB, RepositoryManager, error) {
	m, source, err := ParseDSN(dsn)
	if err != nil {
		return nil, nil, err
	}

	if m.Driver() == sqliteDriver {
		// one writer; also keeps ":memory:" on a single shared connection
		opts.MaxOpenConns = 1
		opts.ConnMaxLifetime = 0
	}

	db, err := dbx.Open(ctx, m.Driver(), source, opts)
	if err != nil {
		return nil, nil, err
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, m, nil
}
