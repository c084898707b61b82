package client

import (
	"context"

	"github.com/dmitrijs2005/gotodo/internal/todov1"
)

type Client interface {
	Close() error
	Create(ctx context.Context, title, description string) (*todov1.Todo, error)
	FindAll(ctx context.Context, title *string) ([]*todov1.Todo, error)
	FindOne(ctx context.Context, id int64) (*todov1.Todo, error)
	Update(ctx context.Context, req *todov1.UpdateRequest) (*todov1.Todo, error)
	Remove(ctx context.Context, id int64) error
}
