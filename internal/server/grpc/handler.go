package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/server/models"
	"github.com/dmitrijs2005/gotodo/internal/server/services"
	"github.com/dmitrijs2005/gotodo/internal/todov1"
	"github.com/dmitrijs2005/gotodo/internal/validatex"
	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type TodoService interface {
	Create(ctx context.Context, in services.CreateTodo) (*models.Todo, error)
	FindAll(ctx context.Context, title *string) ([]*models.Todo, error)
	FindOne(ctx context.Context, id int64) (*models.Todo, error)
	Update(ctx context.Context, id int64, patch models.TodoPatch) (*models.Todo, error)
	Remove(ctx context.Context, id int64) error
}

var validate = validatex.New()

func toWire(t *models.Todo) *todov1.Todo {
	return &todov1.Todo{ID: t.ID, Title: t.Title, Description: t.Description, Complete: t.Complete}
}

func (s *GRPCServer) Create(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := todov1.CreateRequestFromStruct(in)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	if err := validate.Struct(req); err != nil {
		return nil, s.mapError(ctx, err)
	}

	todo, err := s.todos.Create(ctx, services.CreateTodo{Title: req.Title, Description: req.Description})
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return toWire(todo).Struct(), nil
}

func (s *GRPCServer) FindAll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := todov1.FindAllRequestFromStruct(in)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	list, err := s.todos.FindAll(ctx, req.Title)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	out := make([]*todov1.Todo, 0, len(list))
	for _, t := range list {
		out = append(out, toWire(t))
	}
	return todov1.ListStruct(out), nil
}

func (s *GRPCServer) FindOne(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error) {
	todo, err := s.todos.FindOne(ctx, in.GetValue())
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return toWire(todo).Struct(), nil
}

func (s *GRPCServer) Update(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := todov1.UpdateRequestFromStruct(in)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	if err := validate.Struct(req); err != nil {
		return nil, s.mapError(ctx, err)
	}

	todo, err := s.todos.Update(ctx, req.ID, models.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Complete:    req.Complete,
	})
	if err != nil {
		return nil, s.mapError(ctx, err)
	}

	return toWire(todo).Struct(), nil
}

func (s *GRPCServer) Remove(ctx context.Context, in *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if err := s.todos.Remove(ctx, in.GetValue()); err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

// mapError converts service errors into gRPC statuses. Unknown errors are
// logged and reported as Internal without detail.
func (s *GRPCServer) mapError(ctx context.Context, err error) error {
	var valErrs validator.ValidationErrors
	switch {
	case errors.As(err, &valErrs):
		return status.Error(codes.InvalidArgument, validatex.Message(valErrs))
	case errors.Is(err, todov1.ErrMalformed):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorTodoNotFound):
		return status.Error(codes.NotFound, common.ErrorTodoNotFound.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
