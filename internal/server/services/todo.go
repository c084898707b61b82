// Package services holds the server's business operations. Services receive
// their repositories at construction and keep no state between calls.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/logging"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
	"github.com/dmitrijs2005/gotodo/internal/server/repositories/todos"
)

// CreateTodo is the already validated payload of a create request.
type CreateTodo struct {
	Title       string
	Description string
}

type TodoService struct {
	repo   todos.Repository
	logger logging.Logger
}

func NewTodoService(repo todos.Repository, logger logging.Logger) *TodoService {
	return &TodoService{
		repo:   repo,
		logger: logger.With("module", "todo_service"),
	}
}

// Create stores a new, incomplete todo and returns it with its assigned ID.
func (s *TodoService) Create(ctx context.Context, in CreateTodo) (*models.Todo, error) {
	todo, err := s.repo.Save(ctx, models.NewTodo(in.Title, in.Description))
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}

	s.logger.Debug(ctx, "todo created", "id", todo.ID)
	return todo, nil
}

// FindAll lists todos. A nil title lists everything; otherwise the title is
// trimmed and lower-cased and used as a case-insensitive prefix. A title
// that is blank after trimming filters nothing.
func (s *TodoService) FindAll(ctx context.Context, title *string) ([]*models.Todo, error) {
	var filter todos.Filter
	if title != nil {
		filter.TitlePrefix = strings.ToLower(strings.TrimSpace(*title))
	}

	result, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}
	if result == nil {
		result = []*models.Todo{}
	}

	return result, nil
}

// FindOne returns the todo with the given id or common.ErrorTodoNotFound.
func (s *TodoService) FindOne(ctx context.Context, id int64) (*models.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorTodoNotFound
		}
		return nil, fmt.Errorf("error finding todo: %w", err)
	}

	return todo, nil
}

// Update applies patch to the stored todo. Nothing is written when the todo
// does not exist.
func (s *TodoService) Update(ctx context.Context, id int64, patch models.TodoPatch) (*models.Todo, error) {
	existing, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.Save(ctx, models.Merge(existing, patch))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// deleted between the read and the write
			return nil, common.ErrorTodoNotFound
		}
		return nil, fmt.Errorf("error updating todo: %w", err)
	}

	s.logger.Debug(ctx, "todo updated", "id", saved.ID)
	return saved, nil
}

// Remove deletes the todo with the given id. Removing an unknown id
// succeeds silently.
func (s *TodoService) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error removing todo: %w", err)
	}

	s.logger.Debug(ctx, "todo removed", "id", id)
	return nil
}
