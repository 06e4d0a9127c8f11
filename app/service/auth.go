package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vibast-solutions/ms-go-jobtrack/app/dto"
	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
	"github.com/vibast-solutions/ms-go-jobtrack/app/mailer"
	"github.com/vibast-solutions/ms-go-jobtrack/app/repository"
)

var (
	ErrUserExists              = errors.New("user already exists")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidVerificationCode = errors.New("invalid or expired verification code")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrMailDelivery            = errors.New("failed to send verification email")
	ErrForbidden               = errors.New("operation not permitted")
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
}

// AuthService orchestrates login, registration, verification-code dispatch
// and token refresh/verification over the credential store, the one-time
// token store and the token issuer.
type AuthService struct {
	users         userRepository
	verifications *VerificationService
	tokens        *TokenService
	mail          mailer.Mailer
}

func NewAuthService(
	users userRepository,
	verifications *VerificationService,
	tokens *TokenService,
	mail mailer.Mailer,
) *AuthService {
	return &AuthService{
		users:         users,
		verifications: verifications,
		tokens:        tokens,
		mail:          mail,
	}
}

// Login authenticates an email/password pair and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Register creates a new account. The verification code previously mailed
// for the "register" purpose must check out; the new account starts
// unverified until the email-verification flow is completed.
func (s *AuthService) Register(ctx context.Context, email, password, code string) (*dto.LoginResult, error) {
	email = NormalizeEmail(email)

	ok, err := s.verifications.Check(ctx, email, code, PurposeRegister)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidVerificationCode
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Verified:     false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsDuplicateEntry(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return s.issuePair(user)
}

// SendVerificationEmail issues a fresh code for the (email, purpose) pair
// and mails it. The issued code is kept even when delivery fails, so a
// retry within the expiry window re-sends a replacement code.
func (s *AuthService) SendVerificationEmail(ctx context.Context, email, purpose string) error {
	email = NormalizeEmail(email)

	token, err := s.verifications.Issue(ctx, email, purpose)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your %s code", token.Purpose)
	body := fmt.Sprintf("Your code is %s, valid for 10 minutes.", token.Code)

	if err := s.mail.Send(token.Email, subject, body); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"email":   token.Email,
			"purpose": token.Purpose,
		}).Error("Failed to send verification email")
		return fmt.Errorf("%w: %s", ErrMailDelivery, err.Error())
	}

	logrus.WithFields(logrus.Fields{
		"email":   token.Email,
		"purpose": token.Purpose,
	}).Info("Verification email sent")
	return nil
}

// LoginWithCode authenticates via a one-time code issued for the
// "login_with_token" purpose.
func (s *AuthService) LoginWithCode(ctx context.Context, email, code string) (*dto.LoginResult, error) {
	email = NormalizeEmail(email)

	ok, err := s.verifications.Check(ctx, email, code, PurposeLoginWithToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidVerificationCode
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.issuePair(user)
}

// RefreshAccess mints a new access token from a refresh token.
func (s *AuthService) RefreshAccess(refreshToken string) (string, error) {
	return s.tokens.RefreshAccess(refreshToken)
}

// VerifyAccess validates an access token and confirms the embedded user
// still exists, returning the user.
func (s *AuthService) VerifyAccess(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// SelfInfo returns the account behind an authenticated identity.
func (s *AuthService) SelfInfo(ctx context.Context, identity Identity) (*entity.User, error) {
	if !identity.Authenticated {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) issuePair(user *entity.User) (*dto.LoginResult, error) {
	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResult{
		User:         user,
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
	}, nil
}
