package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/todov1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
}

// NewTodoClient connects lazily to endpointURL. A positive timeout bounds
// every call that does not already carry a deadline.
func NewTodoClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.timeoutInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *GRPCClient) timeoutInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Create(ctx context.Context, title, description string) (*todov1.Todo, error) {
	req := &todov1.CreateRequest{Title: title, Description: description}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, todov1.CreateMethod, req.Struct(), out); err != nil {
		return nil, c.mapError(err)
	}
	return todov1.TodoFromStruct(out)
}

func (c *GRPCClient) FindAll(ctx context.Context, title *string) ([]*todov1.Todo, error) {
	req := &todov1.FindAllRequest{Title: title}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, todov1.FindAllMethod, req.Struct(), out); err != nil {
		return nil, c.mapError(err)
	}
	return todov1.ListFromStruct(out)
}

func (c *GRPCClient) FindOne(ctx context.Context, id int64) (*todov1.Todo, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, todov1.FindOneMethod, wrapperspb.Int64(id), out); err != nil {
		return nil, c.mapError(err)
	}
	return todov1.TodoFromStruct(out)
}

func (c *GRPCClient) Update(ctx context.Context, req *todov1.UpdateRequest) (*todov1.Todo, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, todov1.UpdateMethod, req.Struct(), out); err != nil {
		return nil, c.mapError(err)
	}
	return todov1.TodoFromStruct(out)
}

func (c *GRPCClient) Remove(ctx context.Context, id int64) error {
	if err := c.conn.Invoke(ctx, todov1.RemoveMethod, wrapperspb.Int64(id), new(emptypb.Empty)); err != nil {
		return c.mapError(err)
	}
	return nil
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return common.ErrorTodoNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
