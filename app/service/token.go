package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
	"github.com/vibast-solutions/ms-go-jobtrack/config"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    uint64 `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenPair is a freshly minted access/refresh token pair.
type TokenPair struct {
	Access  string
	Refresh string
}

// TokenService mints and validates self-contained bearer tokens. Both token
// kinds are HS256-signed JWTs carrying the user id; validity is purely
// signature plus expiry, there is no server-side revocation.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type TokenServiceOption func(*TokenService)

// WithTokenClock overrides the clock used for issuance and is intended for
// expiry tests.
func WithTokenClock(now func() time.Time) TokenServiceOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTokenService(cfg *config.Config, opts ...TokenServiceOption) *TokenService {
	svc := &TokenService{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.JWTAccessTokenTTL,
		refreshTTL: cfg.JWTRefreshTokenTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// IssuePair mints an access and a refresh token bound to the user.
func (s *TokenService) IssuePair(user *entity.User) (*TokenPair, error) {
	access, err := s.sign(user.ID, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := s.sign(user.ID, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshAccess validates a refresh token and mints a new access token for
// the same user. The refresh token itself is not rotated.
func (s *TokenService) RefreshAccess(refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return s.sign(claims.UserID, tokenTypeAccess, s.accessTTL)
}

// VerifyAccess validates an access token and returns its claims without a
// store lookup.
func (s *TokenService) VerifyAccess(accessToken string) (*Claims, error) {
	return s.parse(accessToken, tokenTypeAccess)
}

func (s *TokenService) sign(userID uint64, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) parse(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
