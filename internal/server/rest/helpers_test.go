package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gotodo/internal/dbx"
	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gotodo/internal/server/services"
	"github.com/stretchr/testify/require"
)

// newTodoService returns a service backed by a migrated in-memory SQLite db.
func newTodoService(t *testing.T) *services.TodoService {
	t.Helper()
	db, m, err := repomanager.Open(context.Background(), "sqlite::memory:", dbx.PoolOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return services.NewTodoService(m.Todos(db), logging.Nop{})
}

func newTestServer(t *testing.T, exporter Exporter, metrics *Metrics) *HTTPServer {
	t.Helper()
	return NewHTTPServer(":0", logging.Nop{}, newTodoService(t), exporter, metrics, 0)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
