// Package auth implements registration, login and the token lifecycle:
// bcrypt password hashing, access/refresh token issuance and verification,
// and the bearer middleware that resolves a token to a stored user.
package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/notekeeper/backend/internal/db"
)

const BcryptCost = 12

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the credential store the service depends on. *db.UserRepository
// satisfies it; tests use an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, user *db.User) error
	GetByUsername(ctx context.Context, username string) (*db.User, error)
}

var _ UserStore = (*db.UserRepository)(nil)

type Service struct {
	users  UserStore
	tokens *TokenManager
	logger *zap.Logger
}

func NewService(users UserStore, tokens *TokenManager, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Register creates a user with a bcrypt-hashed password. A taken username
// surfaces as db.ErrUsernameExists; the plaintext is never stored.
func (s *Service) Register(ctx context.Context, username, password, fullName string) (*db.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("username", username))
	return user, nil
}

// Authenticate looks up the user and verifies the password. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*db.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueTokenPair mints an access and a refresh token for the user.
func (s *Service) IssueTokenPair(user *db.User) (access, refresh string, err error) {
	access, err = s.tokens.IssueAccess(user.Username)
	if err != nil {
		return "", "", err
	}

	refresh, err = s.tokens.IssueRefresh(user.Username)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// RefreshAccess exchanges a valid refresh token for a new access token.
func (s *Service) RefreshAccess(refreshToken string) (string, error) {
	subject, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	return s.tokens.IssueAccess(subject)
}

// ResolveUser verifies an access token and maps its subject to a stored
// user. The subject may have stopped existing since the token was minted;
// that case surfaces as db.ErrUserNotFound rather than a panic downstream.
func (s *Service) ResolveUser(ctx context.Context, accessToken string) (*db.User, error) {
	subject, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	return s.users.GetByUsername(ctx, subject)
}
