package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
	"github.com/dmitrijs2005/gotodo/internal/server/services"
)

const maxBodyBytes = 1 << 20

// TodoService is the part of services.TodoService the routes call.
type TodoService interface {
	Create(ctx context.Context, in services.CreateTodo) (*models.Todo, error)
	FindAll(ctx context.Context, title *string) ([]*models.Todo, error)
	FindOne(ctx context.Context, id int64) (*models.Todo, error)
	Update(ctx context.Context, id int64, patch models.TodoPatch) (*models.Todo, error)
	Remove(ctx context.Context, id int64) error
}

type Exporter interface {
	Export(ctx context.Context) (*services.Snapshot, error)
}

type createTodoRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"required,min=5,max=10000"`
}

// updateTodoRequest accepts any subset of fields; a present string must
// still satisfy the create limits.
type updateTodoRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=3,max=100"`
	Description *string `json:"description" validate:"omitnil,min=5,max=10000"`
	Complete    *bool   `json:"complete"`
}

type listTodosQuery struct {
	Title *string `schema:"title"`
}

type handlers struct {
	todos    TodoService
	exporter Exporter
	logger   logging.Logger
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.todos.Create(r.Context(), services.CreateTodo{Title: req.Title, Description: req.Description})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, todo)
}

func (h *handlers) findAll(w http.ResponseWriter, r *http.Request) {
	var q listTodosQuery
	if err := schemaDecoder.Decode(&q, r.URL.Query()); err != nil {
		h.writeError(w, r, NewError(CodeInvalidArgument, "invalid query: "+err.Error()))
		return
	}

	list, err := h.todos.FindAll(r.Context(), q.Title)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, list)
}

func (h *handlers) findOne(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.todos.FindOne(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, todo)
}

func (h *handlers) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req updateTodoRequest
	if err := h.decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	todo, err := h.todos.Update(r.Context(), id, models.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Complete:    req.Complete,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusOK, todo)
}

func (h *handlers) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.todos.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *handlers) export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.exporter.Export(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.respond(w, r, http.StatusCreated, snap)
}

// decodeBody reads a JSON body into dst and validates it.
func (h *handlers) decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return NewError(CodeInvalidArgument, "invalid request body: "+err.Error())
	}
	return validate.Struct(dst)
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", common.ErrorInvalidID, raw)
	}
	return id, nil
}

func (h *handlers) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := writeJSON(w, status, v); err != nil {
		h.logger.Error(r.Context(), "failed to encode response", "error", err)
	}
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	svcErr := toError(err)
	if svcErr.Code == CodeInternal {
		h.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	if encErr := writeJSON(w, svcErr.Code.HTTPStatus(), svcErr); encErr != nil {
		h.logger.Error(r.Context(), "failed to encode error response", "code", svcErr.Code, "error", encErr)
	}
}
