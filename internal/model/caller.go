package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated shopper through a request.
// GetUserIDFromContext reports false for anonymous calls.
type ContextManager interface {
	SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context
	GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool)
}
