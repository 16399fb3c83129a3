package handler

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopkeeper-server/internal/api/grpc/rpc"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// AuthService defines signup, login and password reset operations.
type AuthService interface {
	RequestSignupOTP(ctx context.Context, email string) error
	Signup(ctx context.Context, params model.SignupParams) (model.Session, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyPasswordResetOTP(ctx context.Context, email, otp string) error
	UpdatePassword(ctx context.Context, email, password string) error
}

// TokenService defines token refresh and revoke operations.
type TokenService interface {
	Refresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)
	RevokeByToken(ctx context.Context, refreshToken string) error
}

// Auth handles gRPC endpoints for authentication.
type Auth struct {
	rpc.UnimplementedAuthServer
	authService    AuthService
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// RequestSignupOTP emails a one-time code that starts signup.
func (h *Auth) RequestSignupOTP(ctx context.Context, req *rpc.RequestSignupOTPRequest) (*rpc.Empty, error) {
	h.logger.Debug("Auth handler: processing signup OTP request",
		"email", req.Email)

	if req.Email == "" {
		return nil, status.Error(codes.InvalidArgument, "email is required")
	}

	if err := h.authService.RequestSignupOTP(ctx, req.Email); err != nil {
		h.logger.Error("Auth handler: signup OTP request failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: signup OTP sent",
		"email", req.Email)

	return &rpc.Empty{}, nil
}

// Signup completes registration and returns a session.
func (h *Auth) Signup(ctx context.Context, req *rpc.SignupRequest) (*rpc.SessionResponse, error) {
	h.logger.Debug("Auth handler: processing signup request",
		"email", req.Email)

	if req.Email == "" || req.OTP == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email, otp and password are required")
	}

	session, err := h.authService.Signup(ctx, model.SignupParams{
		Email:    req.Email,
		OTP:      req.OTP,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: signup completed",
		"email", req.Email,
		"user_id", session.User.ID)

	return toSession(session), nil
}

// Login verifies credentials and returns a session.
func (h *Auth) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.SessionResponse, error) {
	h.logger.Debug("Auth handler: processing login request",
		"email", req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	session, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: login completed",
		"email", req.Email,
		"user_id", session.User.ID)

	return toSession(session), nil
}

// Logout ends every session of the caller.
func (h *Auth) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.Empty, error) {
	userID, err := userIDFromContext(ctx, h.contextManager)
	if err != nil {
		return nil, handleError(err)
	}

	if err := h.authService.Logout(ctx, userID); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: logout completed",
		"user_id", userID)

	return &rpc.Empty{}, nil
}

func (h *Auth) RequestPasswordReset(ctx context.Context, req *rpc.RequestPasswordResetRequest) (*rpc.Empty, error) {
	h.logger.Debug("Auth handler: processing password reset request",
		"email", req.Email)

	if req.Email == "" {
		return nil, status.Error(codes.InvalidArgument, "email is required")
	}

	if err := h.authService.RequestPasswordReset(ctx, req.Email); err != nil {
		h.logger.Error("Auth handler: password reset request failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.Empty{}, nil
}

func (h *Auth) VerifyPasswordResetOTP(ctx context.Context, req *rpc.VerifyPasswordResetOTPRequest) (*rpc.Empty, error) {
	h.logger.Debug("Auth handler: processing password reset OTP verification",
		"email", req.Email)

	if req.Email == "" || req.OTP == "" {
		return nil, status.Error(codes.InvalidArgument, "email and otp are required")
	}

	if err := h.authService.VerifyPasswordResetOTP(ctx, req.Email, req.OTP); err != nil {
		h.logger.Error("Auth handler: password reset OTP verification failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	return &rpc.Empty{}, nil
}

func (h *Auth) UpdatePassword(ctx context.Context, req *rpc.UpdatePasswordRequest) (*rpc.Empty, error) {
	h.logger.Debug("Auth handler: processing password update",
		"email", req.Email)

	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	if err := h.authService.UpdatePassword(ctx, req.Email, req.Password); err != nil {
		h.logger.Error("Auth handler: password update failed",
			"email", req.Email,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: password updated",
		"email", req.Email)

	return &rpc.Empty{}, nil
}

// RefreshToken exchanges a refresh token for a new token pair.
func (h *Auth) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.RefreshTokenResponse, error) {
	h.logger.Debug("Auth handler: processing token refresh request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	accessToken, refreshToken, err := h.tokenService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.logger.Error("Auth handler: token refresh failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token refresh successful")

	return &rpc.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RevokeToken revokes a refresh token.
func (h *Auth) RevokeToken(ctx context.Context, req *rpc.RevokeTokenRequest) (*rpc.Empty, error) {
	h.logger.Debug("Auth handler: processing token revoke request")

	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token is required")
	}

	if err := h.tokenService.RevokeByToken(ctx, req.RefreshToken); err != nil {
		h.logger.Error("Auth handler: token revoke failed",
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Auth handler: token revoke successful")

	return &rpc.Empty{}, nil
}

func toSession(s model.Session) *rpc.SessionResponse {
	return &rpc.SessionResponse{
		User:         toUser(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	}
}
