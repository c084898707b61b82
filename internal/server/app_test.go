package server

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gotodo/internal/dbx"
	"github.com/dmitrijs2005/gotodo/internal/server/config"
	"github.com/dmitrijs2005/gotodo/internal/server/objectstore"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gotodo/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopStore struct{}

func (nopStore) PutObject(context.Context, string, string, []byte, string) error { return nil }
func (nopStore) PresignGet(context.Context, string, string, time.Duration) (string, error) {
	return "", nil
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = "sqlite::memory:"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.ShutdownTimeout = time.Second
	return c
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := logOutput
	t.Cleanup(func() { logOutput = orig })
	logOutput = &buf
	return &buf
}

func TestNewApp(t *testing.T) {
	captureLogs(t)

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	assert.NotNil(t, app.todoService)
	assert.NotNil(t, app.metrics)
	assert.Nil(t, app.exportService, "export stays off without a bucket")
}

func TestNewApp_WithExport(t *testing.T) {
	captureLogs(t)

	orig := newObjectStore
	t.Cleanup(func() { newObjectStore = orig })

	var got objectstore.Options
	newObjectStore = func(ctx context.Context, opts objectstore.Options) (services.ObjectStore, error) {
		got = opts
		return nopStore{}, nil
	}

	c := testConfig()
	c.S3Bucket = "todos"
	c.MetricsEnabled = false

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	assert.NotNil(t, app.exportService)
	assert.Nil(t, app.metrics)
	assert.Equal(t, objectstore.Options{Region: c.S3Region, User: c.S3RootUser, Password: c.S3RootPassword, Endpoint: c.S3BaseEndpoint}, got)
}

func TestNewApp_Errors(t *testing.T) {
	captureLogs(t)

	t.Run("bad dsn", func(t *testing.T) {
		c := testConfig()
		c.DatabaseDSN = "mysql://nope"
		_, err := NewApp(context.Background(), c)
		assert.ErrorContains(t, err, "db init error")
	})

	t.Run("db open", func(t *testing.T) {
		orig := openDatabase
		t.Cleanup(func() { openDatabase = orig })
		openDatabase = func(ctx context.Context, dsn string, opts dbx.PoolOptions) (*sql.DB, repomanager.RepositoryManager, error) {
			return nil, nil, errors.New("connection refused")
		}
		_, err := NewApp(context.Background(), testConfig())
		assert.EqualError(t, err, "db init error: connection refused")
	})

	t.Run("object store", func(t *testing.T) {
		orig := newObjectStore
		t.Cleanup(func() { newObjectStore = orig })
		newObjectStore = func(ctx context.Context, opts objectstore.Options) (services.ObjectStore, error) {
			return nil, errors.New("bad region")
		}
		c := testConfig()
		c.S3Bucket = "todos"
		_, err := NewApp(context.Background(), c)
		assert.EqualError(t, err, "object store init error: bad region")
	})
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	logs := captureLogs(t)

	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}

	assert.Error(t, app.db.Ping(), "database is closed after shutdown")
	assert.Contains(t, logs.String(), "App stopped")
}

func TestApp_RunStopsWhenServerFails(t *testing.T) {
	captureLogs(t)

	c := testConfig()
	c.EndpointAddrHTTP = "bad:address:1"
	c.EndpointAddrGRPC = ""

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after server failure")
	}
}
