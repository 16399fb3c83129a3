package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/shopkeeper-server/internal/apierrors"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// Auth implements OTP-verified signup, password login and password reset.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	notifier     model.Notifier
	otp          model.OTPGenerator
	tokenService *TokenService
	otpTTL       time.Duration
	now          func() time.Time
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	notifier model.Notifier,
	otp model.OTPGenerator,
	tokenService *TokenService,
	otpTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	if otpTTL <= 0 {
		otpTTL = model.OTPDuration
	}
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		notifier:     notifier,
		otp:          otp,
		tokenService: tokenService,
		otpTTL:       otpTTL,
		now:          time.Now,
		logger:       logger,
	}
}

// RequestSignupOTP stores a fresh code for the email and mails it.
func (a *Auth) RequestSignupOTP(ctx context.Context, email string) error {
	a.logger.DebugContext(ctx, "Auth service: signup otp requested", "email", email)

	existing, err := a.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		a.logger.ErrorContext(ctx, "Auth service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if err == nil && existing.HasPassword() {
		return apierrors.NewErrEmailIsTaken(email)
	}

	code, expiresAt, err := a.newOTP()
	if err != nil {
		return err
	}

	now := a.now()
	_, err = a.userStore.UpsertOTP(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		OTPCode:      &code,
		OTPExpiresAt: &expiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		a.logger.ErrorContext(ctx, "Auth service: failed to store signup otp",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := a.notifier.SendSignupOTP(ctx, email, code); err != nil {
		a.logger.ErrorContext(ctx, "Auth service: failed to send signup otp",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to send otp: %w", err)
	}

	a.logger.InfoContext(ctx, "Auth service: signup otp sent", "email", email)
	return nil
}

// Signup verifies the OTP, sets the credentials and opens a session.
func (a *Auth) Signup(ctx context.Context, params model.SignupParams) (model.Session, error) {
	a.logger.DebugContext(ctx, "Auth service: completing signup", "email", params.Email)

	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, apierrors.NewErrSignupNotStarted(params.Email)
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user.HasPassword() {
		return model.Session{}, apierrors.NewErrEmailIsTaken(params.Email)
	}

	if err := a.checkOTP(user, params.OTP); err != nil {
		a.logger.InfoContext(ctx, "Auth service: signup otp rejected",
			"email", params.Email,
			"reason", err.Error())
		return model.Session{}, err
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		return model.Session{}, err
	}

	user.Username = params.Username
	user.PasswordHash = hash
	user.ClearOTP()
	user.IsOTPVerified = false
	user.Status = model.UserStatusActive
	user.UpdatedAt = a.now()

	user, err = a.userStore.Update(ctx, user)
	if err != nil {
		a.logger.ErrorContext(ctx, "Auth service: failed to save user",
			"email", params.Email,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to save user: %w", err)
	}

	session, err := a.openSession(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.InfoContext(ctx, "Auth service: signup completed",
		"email", params.Email,
		"user_id", user.ID)
	return session, nil
}

// Login checks the password and opens a session.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Session, error) {
	a.logger.DebugContext(ctx, "Auth service: login attempt", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if !user.HasPassword() {
		return model.Session{}, apierrors.NewErrPasswordNotSet()
	}

	if err := a.hasher.Compare(user.PasswordHash, password); err != nil {
		a.logger.InfoContext(ctx, "Auth service: login rejected",
			"email", email,
			"reason", err.Error())
		return model.Session{}, apierrors.NewErrInvalidCredentials()
	}

	if err := a.userStore.SetStatus(ctx, user.ID, model.UserStatusActive); err != nil {
		return model.Session{}, fmt.Errorf("failed to set user status: %w", err)
	}
	user.Status = model.UserStatusActive

	session, err := a.openSession(ctx, user)
	if err != nil {
		return model.Session{}, err
	}

	a.logger.InfoContext(ctx, "Auth service: login succeeded",
		"email", email,
		"user_id", user.ID)
	return session, nil
}

// Logout marks the user logged out and revokes every refresh token.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	err := a.userStore.SetStatus(ctx, userID, model.UserStatusLoggedOut)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to set user status: %w", err)
	}

	if err := a.tokenService.RevokeAllForUser(ctx, userID); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "Auth service: user logged out", "user_id", userID)
	return nil
}

// RequestPasswordReset stores a fresh code for an existing user and mails it.
func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	code, expiresAt, err := a.newOTP()
	if err != nil {
		return err
	}

	user.OTPCode = &code
	user.OTPExpiresAt = &expiresAt
	user.IsOTPVerified = false
	user.UpdatedAt = a.now()

	if _, err := a.userStore.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := a.notifier.SendPasswordResetOTP(ctx, email, code); err != nil {
		a.logger.ErrorContext(ctx, "Auth service: failed to send reset otp",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to send otp: %w", err)
	}

	a.logger.InfoContext(ctx, "Auth service: password reset otp sent", "email", email)
	return nil
}

// VerifyPasswordResetOTP consumes the code and allows one password update.
func (a *Auth) VerifyPasswordResetOTP(ctx context.Context, email, otp string) error {
	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := a.checkOTP(user, otp); err != nil {
		a.logger.InfoContext(ctx, "Auth service: reset otp rejected",
			"email", email,
			"reason", err.Error())
		return err
	}

	user.IsOTPVerified = true
	user.ClearOTP()
	user.UpdatedAt = a.now()

	if _, err := a.userStore.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	a.logger.InfoContext(ctx, "Auth service: reset otp verified", "email", email)
	return nil
}

// UpdatePassword replaces the password after a verified reset OTP. Existing
// sessions are revoked.
func (a *Auth) UpdatePassword(ctx context.Context, email, password string) error {
	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if !user.IsOTPVerified {
		return apierrors.NewErrOTPNotVerified()
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.IsOTPVerified = false
	user.ClearOTP()
	user.UpdatedAt = a.now()

	if _, err := a.userStore.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if err := a.tokenService.RevokeAllForUser(ctx, user.ID); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "Auth service: password updated", "user_id", user.ID)
	return nil
}

func (a *Auth) newOTP() (string, time.Time, error) {
	code, err := a.otp.Generate()
	if err != nil {
		return "", time.Time{}, err
	}
	return code, a.now().Add(a.otpTTL), nil
}

func (a *Auth) checkOTP(user model.User, otp string) error {
	if user.OTPCode == nil || *user.OTPCode != otp {
		return apierrors.NewErrInvalidOTP()
	}
	if user.OTPExpiresAt != nil && a.now().After(*user.OTPExpiresAt) {
		return apierrors.NewErrOTPExpired()
	}
	return nil
}

func (a *Auth) openSession(ctx context.Context, user model.User) (model.Session, error) {
	access, refresh, err := a.tokenService.Issue(ctx, user.ID)
	if err != nil {
		a.logger.ErrorContext(ctx, "Auth service: failed to issue tokens",
			"user_id", user.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return model.Session{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
