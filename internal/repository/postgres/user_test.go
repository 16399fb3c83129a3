package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

var userRowColumns = []string{"id", "email", "username", "password_hash", "otp_code", "otp_expires_at", "is_otp_verified", "status", "created_at", "updated_at"}

func TestNewUserRepository(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	assert.NotNil(t, repo)
	assert.Equal(t, mock, repo.db)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	now := time.Now()

	tests := []struct {
		name    string
		setup   func(pgxmock.PgxPoolIface)
		wantErr error
		wantID  uuid.UUID
	}{
		{
			name: "found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
					WithArgs("a@example.com").
					WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(
						id, "a@example.com", "alice", "hash", ptr("1234"), ptr(now), false, model.UserStatusActive, now, now,
					))
			},
			wantID: id,
		},
		{
			name: "not found",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
					WithArgs("a@example.com").
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMockPool(t)
			tt.setup(mock)
			repo := NewUserRepository(mock)

			user, err := repo.GetByEmail(context.Background(), "a@example.com")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, user.ID)
				assert.Equal(t, "alice", user.Username)
				require.NotNil(t, user.OTPCode)
				assert.Equal(t, "1234", *user.OTPCode)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID_DatabaseError(t *testing.T) {
	mock := newMockPool(t)
	id := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(errors.New("connection reset"))

	repo := NewUserRepository(mock)
	_, err := repo.GetByID(context.Background(), id)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get user by id")
}

func TestUserRepository_UpsertOTP(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now()
	user := model.User{ID: uuid.New(), Email: "b@example.com", OTPCode: ptr("4321"), OTPExpiresAt: ptr(now.Add(time.Minute)), UpdatedAt: now}

	mock.ExpectQuery(`(?s)INSERT INTO users .* ON CONFLICT \(email\) DO UPDATE`).
		WithArgs(user.ID, user.Email, user.OTPCode, user.OTPExpiresAt, model.UserStatusLoggedOut, now).
		WillReturnRows(pgxmock.NewRows(userRowColumns).AddRow(
			user.ID, user.Email, "", "", user.OTPCode, user.OTPExpiresAt, false, model.UserStatusLoggedOut, now, now,
		))

	repo := NewUserRepository(mock)
	saved, err := repo.UpsertOTP(context.Background(), user)

	require.NoError(t, err)
	assert.Equal(t, user.ID, saved.ID)
	assert.False(t, saved.HasPassword())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	mock := newMockPool(t)
	id := uuid.New()
	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs(append([]any{id}, anyArgs(7)...)...).
		WillReturnError(pgx.ErrNoRows)

	repo := NewUserRepository(mock)
	_, err := repo.Update(context.Background(), model.User{ID: id})

	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "updated", affected: 1},
		{name: "missing user", affected: 0, wantErr: model.ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMockPool(t)
			id := uuid.New()
			mock.ExpectExec(`UPDATE users SET status = \$2`).
				WithArgs(id, model.UserStatusLoggedOut).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			repo := NewUserRepository(mock)
			err := repo.SetStatus(context.Background(), id, model.UserStatusLoggedOut)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
