// Package rest exposes the todo service over HTTP/JSON, together with its
// OpenAPI document, a Swagger UI page and Prometheus metrics.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gotodo/internal/logging"
)

const (
	openAPIPath   = "/swaggerui-json"
	swaggerUIPath = "/swaggerui"
	metricsPath   = "/metrics"
)

type HTTPServer struct {
	address         string
	logger          logging.Logger
	handler         http.Handler
	shutdownTimeout time.Duration
}

// NewHTTPServer builds the route table. exporter and metrics may be nil,
// which leaves /export and /metrics unregistered.
func NewHTTPServer(address string, l logging.Logger, todos TodoService, exporter Exporter, metrics *Metrics, shutdownTimeout time.Duration) *HTTPServer {
	logger := l.With("module", "http_server")
	h := &handlers{todos: todos, exporter: exporter, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /todo", h.create)
	mux.HandleFunc("GET /todo", h.findAll)
	mux.HandleFunc("GET /todo/{id}", h.findOne)
	mux.HandleFunc("PATCH /todo/{id}", h.update)
	mux.HandleFunc("DELETE /todo/{id}", h.remove)

	if exporter != nil {
		mux.HandleFunc("POST /export", h.export)
	}

	mux.Handle("GET "+openAPIPath, openAPIHandler(OpenAPIDocument(exporter != nil)))
	mux.Handle("GET "+swaggerUIPath, swaggerUIHandler(openAPIPath))

	if metrics != nil {
		mux.Handle("GET "+metricsPath, metrics.Handler())
	}

	return &HTTPServer{
		address:         address,
		logger:          logger,
		handler:         instrument(mux, logger, metrics),
		shutdownTimeout: shutdownTimeout,
	}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
