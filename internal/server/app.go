// Package server wires configuration, storage, services and both network
// endpoints of the todo server, and runs them until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gotodo/internal/dbx"
	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/server/config"
	"github.com/dmitrijs2005/gotodo/internal/server/objectstore"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gotodo/internal/server/rest"
	"github.com/dmitrijs2005/gotodo/internal/server/services"

	gs "github.com/dmitrijs2005/gotodo/internal/server/grpc"
)

var (
	logOutput io.Writer = os.Stdout

	openDatabase = repomanager.Open

	newObjectStore = func(ctx context.Context, opts objectstore.Options) (services.ObjectStore, error) {
		return objectstore.NewS3Store(ctx, opts)
	}
)

var poolOptions = dbx.PoolOptions{
	MaxOpenConns:    10,
	MaxIdleConns:    5,
	ConnMaxLifetime: 30 * time.Minute,
}

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	todoService   *services.TodoService
	exportService *services.ExportService
	metrics       *rest.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(logOutput, c.LogLevel)

	db, rm, err := openDatabase(ctx, c.DatabaseDSN, poolOptions)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{
		config:      c,
		logger:      logger,
		db:          db,
		todoService: services.NewTodoService(rm.Todos(db), logger),
	}

	if c.ExportEnabled() {
		store, err := newObjectStore(ctx, objectstore.Options{
			Region:   c.S3Region,
			User:     c.S3RootUser,
			Password: c.S3RootPassword,
			Endpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("object store init error: %w", err)
		}
		app.exportService = services.NewExportService(app.todoService, store, c.S3Bucket, logger)
	}

	if c.MetricsEnabled {
		app.metrics = rest.NewMetrics()
	}

	logger.Info(ctx, "database ready", "driver", rm.Driver())
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	var exporter rest.Exporter
	if app.exportService != nil {
		exporter = app.exportService
	}

	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.todoService, exporter, app.metrics, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.todoService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a server fails,
// then closes the database once both servers have stopped.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(context.WithoutCancel(ctx), "App stopped")
}
