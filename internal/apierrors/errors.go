// Package apierrors contains errors that are safe to return to API clients.
package apierrors

import (
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
)

// APIError is a user-facing error with the gRPC code it maps to.
type APIError struct {
	GRPCCode codes.Code
	Message  string
}

func (e *APIError) Error() string {
	return e.Message
}

func newError(code codes.Code, format string, args ...any) *APIError {
	return &APIError{GRPCCode: code, Message: fmt.Sprintf(format, args...)}
}

func NewErrUserNotFound() *APIError {
	return newError(codes.NotFound, "user not found")
}

func NewErrSignupNotStarted(email string) *APIError {
	return newError(codes.NotFound, "no signup in progress for %s, request an OTP first", email)
}

func NewErrProductNotFound(id uuid.UUID) *APIError {
	return newError(codes.NotFound, "product %s not found", id)
}

func NewErrCartItemNotFound(productID uuid.UUID) *APIError {
	return newError(codes.NotFound, "cart item for product %s not found", productID)
}

func NewErrOrderNotFound(id uuid.UUID) *APIError {
	return newError(codes.NotFound, "order %s not found", id)
}

func NewErrDuplicateOrder(productID uuid.UUID) *APIError {
	return newError(codes.AlreadyExists, "order for product %s already exists", productID)
}

func NewErrEmptyCart() *APIError {
	return newError(codes.FailedPrecondition, "cart is empty")
}

func NewErrEmailIsTaken(email string) *APIError {
	return newError(codes.AlreadyExists, "email %s is already registered", email)
}

func NewErrInvalidOTP() *APIError {
	return newError(codes.InvalidArgument, "invalid OTP")
}

func NewErrOTPExpired() *APIError {
	return newError(codes.FailedPrecondition, "OTP expired, request a new one")
}

func NewErrOTPNotVerified() *APIError {
	return newError(codes.FailedPrecondition, "OTP verification required before updating password")
}

func NewErrPasswordNotSet() *APIError {
	return newError(codes.FailedPrecondition, "password is not set for this user")
}

func NewErrInvalidCredentials() *APIError {
	return newError(codes.Unauthenticated, "invalid email or password")
}

func NewErrInvalidArgument(format string, args ...any) *APIError {
	return newError(codes.InvalidArgument, format, args...)
}

func NewErrMissingAuthorizationToken() *APIError {
	return newError(codes.Unauthenticated, "missing authorization token")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return newError(codes.Unauthenticated, "invalid authorization token")
}

func NewErrInvalidAdminKey() *APIError {
	return newError(codes.PermissionDenied, "invalid admin key")
}
