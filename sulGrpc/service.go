package sulGrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName  = "gobbc.Probe"
	ResetMethod  = "/gobbc.Probe/Reset"
	StepMethod   = "/gobbc.Probe/Step"
	metadataFile = "gobbc/probe.proto"
)

// The server API of the probe service.
//
//	service Probe {
//	  rpc Reset(google.protobuf.Empty) returns (google.protobuf.Empty);
//	  rpc Step(google.protobuf.StringValue) returns (google.protobuf.StringValue);
//	}
type ProbeServer interface {
	Reset(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
	Step(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

func resetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProbeServer).Reset(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ResetMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ProbeServer).Reset(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func stepHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProbeServer).Step(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StepMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ProbeServer).Step(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// The service descriptor of the probe service. The messages are protobuf well known types.
var ProbeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProbeServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Reset",
			Handler:    resetHandler,
		},
		{
			MethodName: "Step",
			Handler:    stepHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: metadataFile,
}

func RegisterProbeServer(s grpc.ServiceRegistrar, srv ProbeServer) {
	s.RegisterService(&ProbeServiceDesc, srv)
}
