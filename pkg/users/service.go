package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shalin-Shah-2002/Artium/pkg/auth"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
)

// ErrInvalidCredentials means the email/password pair did not authenticate.
// The same error covers an unknown email and a wrong password so the
// response never reveals which component failed.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// Service owns registration and login
type Service struct {
	repo     Repository
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenService
	tokenTTL time.Duration
	logger   *observability.Logger
	metrics  *observability.Metrics
}

// NewService creates the user service. metrics may be nil.
func NewService(repo Repository, hasher *auth.PasswordHasher, tokens *auth.TokenService, tokenTTL time.Duration, logger *observability.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		logger:   logger,
		metrics:  metrics,
	}
}

// NormalizeEmail lowercases and trims an email for case-insensitive
// uniqueness and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password and returns it.
// Fails with ErrEmailTaken when the email is already registered.
func (s *Service) Register(ctx context.Context, email, password string, name *string) (*User, error) {
	normalized := NormalizeEmail(email)

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		Email:        normalized,
		Name:         name,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.UsersRegisteredTotal.Inc()
	}
	s.logger.WithField("email", user.Email).Info("user registered")

	result := user.Clone()
	result.PasswordHash = ""
	return result, nil
}

// Login verifies the credentials and mints an access token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex(), s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.WithField("email", user.Email).Info("user logged in")
	return token, nil
}
