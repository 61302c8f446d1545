package sulGrpc

import (
	"context"
	"log/slog"
	"time"

	"gobbc/logging"

	"google.golang.org/grpc"
)

// Create a UnaryClientInterceptor logging every call to the probe at trace level and every failed call at warn level.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryClientInterceptor {
	logger = logging.OrDiscard(logger)
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		if err != nil {
			logger.Warn("probe call failed", "method", method, "error", err)
			return err
		}
		logger.Log(ctx, logging.LevelTrace, "probe call", "method", method, "duration", time.Since(start))
		return nil
	}
}
