package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
	"github.com/vibast-solutions/ms-go-jobtrack/config"
)

func tokenConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTAccessTokenTTL:  15 * time.Minute,
		JWTRefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := service.NewTokenService(tokenConfig())
	user := &entity.User{ID: 42}

	pair, err := svc.IssuePair(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatal("expected non-empty token pair")
	}
	if pair.Access == pair.Refresh {
		t.Fatal("access and refresh tokens must differ")
	}

	claims, err := svc.VerifyAccess(pair.Access)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
}

func TestTokenService_RefreshMintsAccess(t *testing.T) {
	svc := service.NewTokenService(tokenConfig())
	user := &entity.User{ID: 7}

	pair, err := svc.IssuePair(user)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	access, err := svc.RefreshAccess(pair.Refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	claims, err := svc.VerifyAccess(access)
	if err != nil {
		t.Fatalf("refreshed access token did not verify: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", claims.UserID)
	}
}

func TestTokenService_RejectsWrongTokenType(t *testing.T) {
	svc := service.NewTokenService(tokenConfig())
	pair, err := svc.IssuePair(&entity.User{ID: 1})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := svc.VerifyAccess(pair.Refresh); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}
	if _, err := svc.RefreshAccess(pair.Access); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for access token, got %v", err)
	}
}

func TestTokenService_RejectsTamperedToken(t *testing.T) {
	svc := service.NewTokenService(tokenConfig())
	pair, err := svc.IssuePair(&entity.User{ID: 1})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	tampered := pair.Access[:len(pair.Access)-2] + "xx"
	if _, err := svc.VerifyAccess(tampered); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	svc := service.NewTokenService(tokenConfig())
	pair, err := svc.IssuePair(&entity.User{ID: 1})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	other := service.NewTokenService(&config.Config{
		JWTSecret:          "other-secret",
		JWTAccessTokenTTL:  15 * time.Minute,
		JWTRefreshTokenTTL: 7 * 24 * time.Hour,
	})
	if _, err := other.VerifyAccess(pair.Access); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsExpiredAccess(t *testing.T) {
	current := time.Now()
	svc := service.NewTokenService(tokenConfig(), service.WithTokenClock(func() time.Time {
		return current
	}))

	pair, err := svc.IssuePair(&entity.User{ID: 1})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	current = current.Add(16 * time.Minute)
	if _, err := svc.VerifyAccess(pair.Access); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired access token, got %v", err)
	}

	// The refresh token outlives the access token by far.
	if _, err := svc.RefreshAccess(pair.Refresh); err != nil {
		t.Fatalf("refresh within its TTL failed: %v", err)
	}
}
