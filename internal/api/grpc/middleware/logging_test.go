package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopkeeper-server/internal/logger"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLogging_HandleGRPC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   grpc.UnaryHandler
		wantCode  codes.Code
		wantLevel string
		wantMsg   string
	}{
		{
			name: "served",
			handler: func(ctx context.Context, req any) (any, error) {
				return "ok", nil
			},
			wantCode:  codes.OK,
			wantLevel: "level=INFO",
			wantMsg:   `msg="gRPC call served"`,
		},
		{
			name: "caller mistake is info",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.FailedPrecondition, "cart is empty")
			},
			wantCode:  codes.FailedPrecondition,
			wantLevel: "level=INFO",
			wantMsg:   `reason="cart is empty"`,
		},
		{
			name: "internal is error",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.Internal, "internal server error")
			},
			wantCode:  codes.Internal,
			wantLevel: "level=ERROR",
			wantMsg:   `msg="gRPC call failed"`,
		},
		{
			name: "plain error is unknown",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, errors.New("boom")
			},
			wantCode:  codes.Unknown,
			wantLevel: "level=ERROR",
			wantMsg:   "error=boom",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := &syncBuffer{}
			lg := NewLogging(logger.NewWithWriter(out, int(slog.LevelDebug)))

			ctx := peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 7), Port: 4242}})
			info := &grpc.UnaryServerInfo{FullMethod: "/shop.v1.Cart/AddItem"}
			resp, err := lg.HandleGRPC(ctx, struct{}{}, info, tt.handler)

			if tt.wantCode == codes.OK {
				require.NoError(t, err)
				assert.Equal(t, "ok", resp)
			} else {
				assert.Equal(t, tt.wantCode, status.Code(err))
			}

			logs := out.String()
			assert.Contains(t, logs, "peer=10.0.0.7:4242")
			assert.Contains(t, logs, tt.wantLevel)
			assert.Contains(t, logs, tt.wantMsg)
			assert.Contains(t, logs, "code="+tt.wantCode.String())
		})
	}
}

func TestPeerAddr_Missing(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "unknown", peerAddr(context.Background()))
}
