package sulGrpc

import (
	"context"
	"log/slog"
	"net"
	"sync"

	"gobbc/logging"
	"gobbc/sul"

	"github.com/golang/protobuf/ptypes/empty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Serves a probe over gRPC.
//
// A probe has a single reset history, so calls are serialized and the server supports one client at a time.
type Server struct {
	sync.Mutex
	probe  sul.Probe
	logger *slog.Logger
}

func NewServer(probe sul.Probe, logger *slog.Logger) *Server {
	return &Server{
		probe:  probe,
		logger: logging.OrDiscard(logger),
	}
}

func (s *Server) Reset(ctx context.Context, _ *empty.Empty) (*empty.Empty, error) {
	s.Lock()
	defer s.Unlock()
	if err := s.probe.Reset(); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) Step(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	s.Lock()
	defer s.Unlock()
	out, err := s.probe.Step(in.GetValue())
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(out), nil
}

// Serve the probe on the listener until the context is cancelled
func Serve(ctx context.Context, lis net.Listener, probe sul.Probe, logger *slog.Logger, opts ...grpc.ServerOption) error {
	srv := grpc.NewServer(opts...)
	RegisterProbeServer(srv, NewServer(probe, logger))
	go func() {
		<-ctx.Done()
		srv.GracefulStop()
	}()
	logging.OrDiscard(logger).Info("serving probe", "addr", lis.Addr().String())
	return srv.Serve(lis)
}
