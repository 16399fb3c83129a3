package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OTPDuration is the default lifetime of a one-time password.
const OTPDuration = time.Minute * 10

// UserStatus reflects whether the user currently holds a session.
type UserStatus int

const (
	UserStatusLoggedOut UserStatus = 0
	UserStatusActive    UserStatus = 1
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	UpsertOTP(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
	SetStatus(ctx context.Context, id uuid.UUID, status UserStatus) error
}

// User represents a stored user with credentials and OTP state.
type User struct {
	ID            uuid.UUID
	Email         string
	Username      string
	PasswordHash  string
	OTPCode       *string
	OTPExpiresAt  *time.Time
	IsOTPVerified bool
	Status        UserStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPassword reports whether signup was completed.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ClearOTP drops the pending code and its expiry.
func (u *User) ClearOTP() {
	u.OTPCode = nil
	u.OTPExpiresAt = nil
}

// UserDetail is the display subset of a user captured in snapshots.
type UserDetail struct {
	Username string
	Email    string
}

// Detail returns the display snapshot of the user.
func (u User) Detail() UserDetail {
	return UserDetail{Username: u.Username, Email: u.Email}
}

// Session is returned after successful signup or login.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
}

// SignupParams contains data required to complete signup.
type SignupParams struct {
	Email    string
	OTP      string
	Username string
	Password string
}
