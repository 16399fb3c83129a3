package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

var _ model.RefreshTokenStore = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository stores hashed refresh tokens keyed by JTI.
type RefreshTokenRepository struct {
	db DB
}

func NewRefreshTokenRepository(db DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create inserts a token record. A reused JTI yields model.ErrConflict.
func (r *RefreshTokenRepository) Create(ctx context.Context, token model.RefreshToken) error {
	const query = `
		INSERT INTO refresh_tokens (id, jti, user_id, token_hash, issued_at, expires_at, rotated_from_jti)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.JTI,
		token.UserID,
		token.TokenHash,
		token.IssuedAt,
		token.ExpiresAt,
		token.RotatedFromJTI,
	)
	switch {
	case isUniqueViolation(err):
		return model.ErrConflict
	case err != nil:
		return fmt.Errorf("failed to create refresh token: %w", err)
	}
	return nil
}

// GetByJTI returns the token record, revoked or not.
func (r *RefreshTokenRepository) GetByJTI(ctx context.Context, jti string) (model.RefreshToken, error) {
	const query = `
		SELECT id, jti, user_id, token_hash, issued_at, expires_at, revoked_at, rotated_from_jti, created_at, updated_at
		FROM refresh_tokens
		WHERE jti = $1`

	var rt model.RefreshToken
	err := r.db.QueryRow(ctx, query, jti).Scan(
		&rt.ID,
		&rt.JTI,
		&rt.UserID,
		&rt.TokenHash,
		&rt.IssuedAt,
		&rt.ExpiresAt,
		&rt.RevokedAt,
		&rt.RotatedFromJTI,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return model.RefreshToken{}, model.ErrNotFound
	case err != nil:
		return model.RefreshToken{}, fmt.Errorf("failed to get refresh token %s: %w", jti, err)
	}
	return rt, nil
}

// RevokeByJTI is idempotent: revoking an unknown or revoked token succeeds.
func (r *RefreshTokenRepository) RevokeByJTI(ctx context.Context, jti string) error {
	return r.revoke(ctx, "jti = $1", jti)
}

// RevokeAllByUser ends every session of the user.
func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.revoke(ctx, "user_id = $1", userID)
}

func (r *RefreshTokenRepository) revoke(ctx context.Context, where string, arg any) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW(), updated_at = NOW()
		WHERE ` + where + ` AND revoked_at IS NULL`

	if _, err := r.db.Exec(ctx, query, arg); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens where %s: %w", where, err)
	}
	return nil
}
