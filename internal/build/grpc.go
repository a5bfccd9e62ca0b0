package build

import (
	"context"

	"github.com/decred/slog"
	"google.golang.org/grpc"
)

// ErrorLogUnaryServerInterceptor logs, at Error level, any error returned
// by a unary RPC handler before it is sent to the caller. Ported from the
// teacher's errorLogUnaryServerInterceptor in log.go.
func ErrorLogUnaryServerInterceptor(logger slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler) (interface{}, error) {

		resp, err := handler(ctx, req)
		if err != nil {
			logger.Errorf("[%v]: %v", info.FullMethod, err)
		}
		return resp, err
	}
}

// ErrorLogStreamServerInterceptor is the streaming-RPC counterpart of
// ErrorLogUnaryServerInterceptor.
func ErrorLogStreamServerInterceptor(logger slog.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream,
		info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {

		err := handler(srv, ss)
		if err != nil {
			logger.Errorf("[%v]: %v", info.FullMethod, err)
		}
		return err
	}
}
