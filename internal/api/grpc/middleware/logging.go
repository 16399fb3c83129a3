package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopkeeper-server/internal/logger"
)

// Logging records one line per unary call. Caller mistakes (bad input,
// missing resources, auth failures) are logged at Info; only server-side
// failures reach Error.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	l.logger.DebugContext(ctx, "gRPC call received", "method", info.FullMethod, "peer", peerAddr(ctx))

	resp, err := handler(ctx, req)

	code := status.Code(err)
	attrs := []any{
		"method", info.FullMethod,
		"code", code.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	}

	switch {
	case err == nil:
		l.logger.InfoContext(ctx, "gRPC call served", attrs...)
	case isServerFault(code):
		l.logger.ErrorContext(ctx, "gRPC call failed", append(attrs, "error", err.Error())...)
	default:
		l.logger.InfoContext(ctx, "gRPC call rejected", append(attrs, "reason", status.Convert(err).Message())...)
	}

	return resp, err
}

func isServerFault(code codes.Code) bool {
	switch code {
	case codes.Internal, codes.Unknown, codes.Unavailable, codes.DataLoss, codes.Unimplemented:
		return true
	}
	return false
}

func peerAddr(ctx context.Context) string {
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return "unknown"
}
