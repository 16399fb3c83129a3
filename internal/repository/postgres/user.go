package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, email, username, password_hash, otp_code, otp_expires_at, is_otp_verified, status, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.OTPCode, &user.OTPExpiresAt,
		&user.IsOTPVerified, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpsertOTP creates a pending user for the email or refreshes the OTP of an
// existing one.
func (r *UserRepository) UpsertOTP(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, email, otp_code, otp_expires_at, is_otp_verified, status, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, FALSE, $5, $6, $6)
			  ON CONFLICT (email) DO UPDATE SET
			      otp_code = EXCLUDED.otp_code,
			      otp_expires_at = EXCLUDED.otp_expires_at,
			      updated_at = EXCLUDED.updated_at
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Email, user.OTPCode, user.OTPExpiresAt, model.UserStatusLoggedOut, user.UpdatedAt,
	))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to upsert user otp: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	query := `UPDATE users SET
			      username = $2, password_hash = $3, otp_code = $4, otp_expires_at = $5,
			      is_otp_verified = $6, status = $7, updated_at = $8
			  WHERE id = $1
			  RETURNING ` + userColumns

	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.OTPCode, user.OTPExpiresAt,
		user.IsOTPVerified, user.Status, user.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return saved, nil
}

func (r *UserRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.UserStatus) error {
	query := `UPDATE users SET status = $2, updated_at = NOW() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to set user status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
