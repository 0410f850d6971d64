// Package rpc serves position analysis over gRPC. Messages travel as
// google.protobuf.Struct values, so the service needs no generated code.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName   = "connect4.Analyzer"
	AnalyzeMethod = "/" + ServiceName + "/Analyze"
)

// AnalyzerServer is the server side of the Analyzer service.
type AnalyzerServer interface {
	Analyze(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyzerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Analyze",
			Handler:    analyzeHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "connect4/analyzer.proto",
}

func Register(s grpc.ServiceRegistrar, impl AnalyzerServer) {
	s.RegisterService(&ServiceDesc, impl)
}

func analyzeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyzerServer).Analyze(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AnalyzeMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyzerServer).Analyze(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
