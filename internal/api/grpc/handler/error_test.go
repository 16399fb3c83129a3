package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	productID := uuid.New()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "api error passthrough",
			in:       apierrors.NewErrProductNotFound(productID),
			wantCode: codes.NotFound,
			wantMsg:  apierrors.NewErrProductNotFound(productID).Message,
		},
		{
			name:     "wrapped api error",
			in:       fmt.Errorf("failed to place order: %w", apierrors.NewErrEmptyCart()),
			wantCode: codes.FailedPrecondition,
			wantMsg:  "cart is empty",
		},
		{
			name:     "model not found -> NotFound",
			in:       model.ErrNotFound,
			wantCode: codes.NotFound,
			wantMsg:  "resource not found",
		},
		{
			name:     "revoked token -> Unauthenticated",
			in:       fmt.Errorf("failed to refresh: %w", model.ErrTokenRevoked),
			wantCode: codes.Unauthenticated,
			wantMsg:  model.ErrTokenRevoked.Error(),
		},
		{
			name:     "invalid token -> Unauthenticated",
			in:       model.ErrTokenInvalid,
			wantCode: codes.Unauthenticated,
			wantMsg:  model.ErrTokenInvalid.Error(),
		},
		{
			name:     "other -> Internal",
			in:       errors.New("boom"),
			wantCode: codes.Internal,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := handleError(tt.in)
			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
