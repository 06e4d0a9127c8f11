package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

// Verification code purposes used by the auth flows. The purpose tag is
// free-form at the store level; these are the two the service issues.
const (
	PurposeRegister       = "register"
	PurposeLoginWithToken = "login_with_token"
)

type verificationTokenRepository interface {
	Upsert(ctx context.Context, token *entity.VerificationToken) error
	Find(ctx context.Context, email, code, purpose string) (*entity.VerificationToken, error)
}

// VerificationService issues and checks one-time email verification codes.
// A checked code is deliberately not consumed; it stays valid until expiry.
type VerificationService struct {
	tokens verificationTokenRepository
	ttl    time.Duration
	now    func() time.Time
}

type VerificationServiceOption func(*VerificationService)

// WithVerificationClock overrides the clock, for expiry boundary tests.
func WithVerificationClock(now func() time.Time) VerificationServiceOption {
	return func(s *VerificationService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewVerificationService(tokens verificationTokenRepository, ttl time.Duration, opts ...VerificationServiceOption) *VerificationService {
	svc := &VerificationService{
		tokens: tokens,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Issue generates a fresh 6-digit code for the (email, purpose) pair,
// replacing any previous code for that pair.
func (s *VerificationService) Issue(ctx context.Context, email, purpose string) (*entity.VerificationToken, error) {
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	now := s.now()
	token := &entity.VerificationToken{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.tokens.Upsert(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Check reports whether the code matches a live token for the pair. It
// returns false for unknown codes and for codes whose expiry has passed; a
// code at exactly its expiry instant is still accepted.
func (s *VerificationService) Check(ctx context.Context, email, code, purpose string) (bool, error) {
	token, err := s.tokens.Find(ctx, email, code, purpose)
	if err != nil {
		return false, err
	}
	if token == nil {
		return false, nil
	}
	return !token.Expired(s.now()), nil
}

// generateCode draws a 6-digit decimal code in [100000, 999999] from a
// cryptographically strong source.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return (n.Add(n, big.NewInt(100000))).String(), nil
}
