package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType is the RFC 6750 token type reported to clients.
const TokenType = "bearer"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrRefreshExpired = errors.New("refresh token expired")
)

// TokenConfig carries the signing secrets and lifetimes for both token
// kinds. It is constructed once at startup and injected; there is no
// package-level secret state.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenManager issues and verifies the stateless HS256 tokens. Access and
// refresh tokens are signed with distinct secrets, so one kind never
// verifies as the other.
type TokenManager struct {
	cfg TokenConfig
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	return &TokenManager{cfg: cfg}
}

// IssueAccess signs a short-lived access token for the given subject.
func (m *TokenManager) IssueAccess(username string) (string, error) {
	return m.issue(username, m.cfg.AccessSecret, m.cfg.AccessTTL)
}

// IssueRefresh signs a longer-lived refresh token for the given subject.
func (m *TokenManager) IssueRefresh(username string) (string, error) {
	return m.issue(username, m.cfg.RefreshSecret, m.cfg.RefreshTTL)
}

func (m *TokenManager) issue(username string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccess validates an access token and returns its subject. Malformed,
// tampered and expired tokens all yield ErrInvalidToken; callers get a
// single rejection signal.
func (m *TokenManager) VerifyAccess(tokenString string) (string, error) {
	subject, err := m.verify(tokenString, m.cfg.AccessSecret)
	if err != nil {
		return "", ErrInvalidToken
	}
	return subject, nil
}

// VerifyRefresh validates a refresh token and returns its subject. Expiry is
// reported as ErrRefreshExpired, distinct from every other failure.
func (m *TokenManager) VerifyRefresh(tokenString string) (string, error) {
	subject, err := m.verify(tokenString, m.cfg.RefreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrRefreshExpired
		}
		return "", ErrInvalidToken
	}
	return subject, nil
}

func (m *TokenManager) verify(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
