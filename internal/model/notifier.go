package model

import "context"

// Notifier delivers OTP codes to users.
type Notifier interface {
	SendSignupOTP(ctx context.Context, email, code string) error
	SendPasswordResetOTP(ctx context.Context, email, code string) error
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// OTPGenerator produces one-time codes.
type OTPGenerator interface {
	Generate() (string, error)
}
