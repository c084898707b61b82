// Package grpc serves the todo service over gRPC. The service descriptor is
// written by hand; messages are protobuf well-known types (see todov1).
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gotodo/internal/logging"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address string
	todos   TodoService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, todos TodoService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		todos:   todos,
	}
}

// NewServer returns a grpc.Server with the todo service and interceptors
// registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	srv.RegisterService(&serviceDesc, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
