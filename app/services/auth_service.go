package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/shashiranjanraj/vastra/app/jobs"
	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/auth"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/queue"
)

// AuthService handles registration, login and the email OTP gate.
type AuthService struct {
	users UserRepo
	otps  OTPRepo
}

func NewAuthService(users UserRepo, otps OTPRepo) *AuthService {
	return &AuthService{users: users, otps: otps}
}

// AuthResult is what the auth endpoints return. Token is empty while
// the account still needs email verification.
type AuthResult struct {
	User              *models.User `json:"user"`
	Token             string       `json:"token,omitempty"`
	NeedsVerification bool         `json:"needs_verification,omitempty"`
}

// Register creates a customer account and starts email verification.
func (s *AuthService) Register(ctx context.Context, email, username, password, fullName string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	taken, err := s.users.ExistsOther(ctx, email, username, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicate
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Username: username,
		FullName: fullName,
		Password: hash,
		Roles:    []models.Role{models.RoleCustomer},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueOTP(ctx, email); err != nil {
		// The account exists; the user can request a fresh code.
		logger.WithCtx(ctx).Warn("auth: could not issue otp", "email", email, "error", err)
	}

	// A fresh registration gets a bearer token right away; only a later
	// login is gated on verification.
	token, err := auth.GenerateToken(user.ID, user.RoleStrings())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, NeedsVerification: true}, nil
}

// Login verifies credentials. Unverified accounts get a fresh OTP
// instead of a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		if err := s.issueOTP(ctx, email); err != nil {
			return nil, err
		}
		return &AuthResult{User: user, NeedsVerification: true}, nil
	}

	token, err := auth.GenerateToken(user.ID, user.RoleStrings())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// SendOTP issues a fresh code for an existing account.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return err
	}
	return s.issueOTP(ctx, email)
}

// VerifyOTP checks code against the latest issued one, marks the user
// verified and issues a token. The code is single-use.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	otp, err := s.otps.LatestByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if otp.Code != code {
		return nil, ErrInvalidOTP
	}

	if err := s.otps.DeleteByEmail(ctx, email); err != nil {
		return nil, err
	}

	if !user.IsVerified {
		user.IsVerified = true
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	token, err := auth.GenerateToken(user.ID, user.RoleStrings())
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// issueOTP replaces any prior codes for the email with a fresh one and
// queues the delivery email. Most recent code wins.
func (s *AuthService) issueOTP(ctx context.Context, email string) error {
	if err := s.otps.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	code, err := generateOTPCode()
	if err != nil {
		return err
	}
	if err := s.otps.Create(ctx, &models.OTP{Email: email, Code: code}); err != nil {
		return err
	}

	if err := queue.Dispatch(jobs.OTPEmailJob{Email: email, Code: code}); err != nil {
		logger.WithCtx(ctx).Error("auth: otp email dispatch failed", "email", email, "error", err)
	}
	return nil
}

// generateOTPCode produces a 6-digit code with a crypto source.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
