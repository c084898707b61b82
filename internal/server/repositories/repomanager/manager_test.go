package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/dbx"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/todos"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn        string
		wantDriver string
		wantSource string
		wantErr    bool
	}{
		{dsn: "postgres://u:p@db:5432/todo?sslmode=disable", wantDriver: "pgx", wantSource: "postgres://u:p@db:5432/todo?sslmode=disable"},
		{dsn: "postgresql://db/todo", wantDriver: "pgx", wantSource: "postgresql://db/todo"},
		{dsn: "sqlite://todo.db", wantDriver: "sqlite", wantSource: "todo.db"},
		{dsn: "sqlite::memory:", wantDriver: "sqlite", wantSource: ":memory:"},
		{dsn: "mysql://nope", wantErr: true},
		{dsn: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			m, source, err := ParseDSN(tt.dsn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, m.Driver())
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)

	assert.IsType(t, &todos.PostgresRepository{}, NewPostgresRepositoryManager().Todos(db))
	assert.IsType(t, &todos.SQLiteRepository{}, NewSQLiteRepositoryManager().Todos(db))

	var _ RepositoryManager = NewPostgresRepositoryManager()
	var _ RepositoryManager = NewSQLiteRepositoryManager()
}

func TestRunMigrations_UsesDialect(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var got []goose.Dialect
	gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
		files, err := fs.Glob(fsys, "*.sql")
		if err != nil || len(files) == 0 {
			return errors.New("no migrations")
		}
		got = append(got, dialect)
		return nil
	}

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	require.NoError(t, NewSQLiteRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, []goose.Dialect{goose.DialectPostgres, goose.DialectSQLite3}, got)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)

	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })
	gooseUp = func(context.Context, goose.Dialect, *sql.DB, fs.FS) error {
		return errors.New("boom")
	}

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestOpen_SQLiteMigratesAndServes(t *testing.T) {
	ctx := context.Background()

	db, m, err := Open(ctx, "sqlite::memory:", dbx.PoolOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := m.Todos(db)
	saved, err := repo.Save(ctx, models.NewTodo("Buy groceries", "Milk, bread, and eggs"))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	_, err = repo.FindByID(ctx, saved.ID+1)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// a second run is a no-op
	require.NoError(t, m.RunMigrations(ctx, db))
}

func TestOpen_BadDSN(t *testing.T) {
	_, _, err := Open(context.Background(), "redis://localhost", dbx.PoolOptions{})
	require.Error(t, err)
}

func TestOpen_MigrationFailureClosesDB(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })
	gooseUp = func(context.Context, goose.Dialect, *sql.DB, fs.FS) error {
		return errors.New("bad migration")
	}

	_, _, err := Open(context.Background(), "sqlite::memory:", dbx.PoolOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error: bad migration")
}
