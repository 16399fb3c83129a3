package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// TokenService issues, rotates and revokes session tokens. Refresh tokens
// are persisted as sha256 hashes keyed by JTI.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	now        func() time.Time
	logger     *logger.Logger
}

// NewTokenService composes a TokenManager and a RefreshTokenStore. refreshTTL
// must match the manager's refresh lifetime; it only drives persisted expiry.
func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		refreshTTL: refreshTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// Issue creates a fresh access/refresh pair for the user.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (accessToken string, refreshToken string, err error) {
	return s.issue(ctx, userID, nil)
}

func (s *TokenService) issue(ctx context.Context, userID uuid.UUID, rotatedFrom *string) (string, string, error) {
	access, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.refreshTTL),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, rt); err != nil {
		return "", "", fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return access, refresh, nil
}

// Refresh validates the presented refresh token, revokes it and issues a new pair.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (newAccess string, newRefresh string, err error) {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		s.logger.DebugContext(ctx, "Token service: refresh token rejected", "error", err.Error())
		return "", "", model.ErrTokenInvalid
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if errors.Is(err, model.ErrNotFound) {
		return "", "", model.ErrTokenInvalid
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err := rt.Check(hashRefresh(presentedRefresh), s.now()); err != nil {
		s.logger.InfoContext(ctx, "Token service: refresh token rejected",
			"user_id", rt.UserID,
			"jti", jti,
			"reason", err.Error())
		return "", "", err
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return "", "", fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	rotatedFrom := rt.JTI
	return s.issue(ctx, rt.UserID, &rotatedFrom)
}

func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return model.ErrTokenInvalid
	}
	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user refresh tokens: %w", err)
	}
	return nil
}

// GetUserID returns the user an access token was issued to.
func (s *TokenService) GetUserID(_ context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}
