package handler

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

var tokenErrors = []error{
	model.ErrTokenInvalid,
	model.ErrTokenRevoked,
	model.ErrTokenExpired,
	model.ErrTokenMismatch,
}

func handleError(err error) error {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return status.Error(apiErr.GRPCCode, apiErr.Message)
	}

	if errors.Is(err, model.ErrNotFound) {
		return status.Error(codes.NotFound, "resource not found")
	}

	for _, tokenErr := range tokenErrors {
		if errors.Is(err, tokenErr) {
			return status.Error(codes.Unauthenticated, tokenErr.Error())
		}
	}

	return status.Error(codes.Internal, "internal server error")
}
