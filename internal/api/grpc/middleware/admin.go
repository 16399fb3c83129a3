package middleware

import (
	"context"
	"crypto/subtle"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/logger"
)

const adminKeyHeader = "x-admin-key"

// AdminKey guards catalog management methods with a static API key.
// An empty configured key rejects every call.
type AdminKey struct {
	key    []byte
	logger *logger.Logger
}

func NewAdminKey(key string, logger *logger.Logger) *AdminKey {
	return &AdminKey{key: []byte(key), logger: logger}
}

// AuthFunc compares the x-admin-key metadata value with the configured key.
func (m *AdminKey) AuthFunc(ctx context.Context) (context.Context, error) {
	var presented string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(adminKeyHeader); len(values) > 0 {
			presented = values[0]
		}
	}

	if len(m.key) == 0 || subtle.ConstantTimeCompare([]byte(presented), m.key) != 1 {
		m.logger.WarnContext(ctx, "Admin key middleware: rejected request")
		apiErr := apierrors.NewErrInvalidAdminKey()
		return nil, status.Error(apiErr.GRPCCode, apiErr.Message)
	}

	return ctx, nil
}
