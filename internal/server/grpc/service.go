package grpc

import (
	"context"

	"github.com/dmitrijs2005/gotodo/internal/common"
	"github.com/dmitrijs2005/gotodo/internal/todov1"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// TodoServiceServer is the server API of todo.v1.TodoService.
type TodoServiceServer interface {
	Create(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FindAll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	FindOne(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	Update(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Remove(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: common.TodoServiceName,
	HandlerType: (*TodoServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Create", Handler: unary(todov1.CreateMethod, newStruct, (*GRPCServer).Create)},
		{MethodName: "FindAll", Handler: unary(todov1.FindAllMethod, newStruct, (*GRPCServer).FindAll)},
		{MethodName: "FindOne", Handler: unary(todov1.FindOneMethod, newInt64, (*GRPCServer).FindOne)},
		{MethodName: "Update", Handler: unary(todov1.UpdateMethod, newStruct, (*GRPCServer).Update)},
		{MethodName: "Remove", Handler: unary(todov1.RemoveMethod, newInt64, (*GRPCServer).Remove)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "todo/v1/todo.proto",
}

func newStruct() *structpb.Struct     { return new(structpb.Struct) }
func newInt64() *wrapperspb.Int64Value { return new(wrapperspb.Int64Value) }

// unary adapts a typed method to grpc.MethodHandler, running interceptors
// the way generated code does.
func unary[In proto.Message, Out proto.Message](
	method string,
	newIn func() In,
	call func(*GRPCServer, context.Context, In) (Out, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newIn()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(*GRPCServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(*GRPCServer), ctx, req.(In))
		}
		return interceptor(ctx, in, info, handler)
	}
}
