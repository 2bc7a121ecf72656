package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shalin-Shah-2002/Artium/pkg/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resolver turns a bearer token into a user record. It is the single
// authorization checkpoint: every protected operation resolves the caller
// here and scopes by the returned user's id, never by anything the client
// supplied.
type Resolver struct {
	tokens *auth.TokenService
	repo   Repository
}

// NewResolver creates an identity resolver
func NewResolver(tokens *auth.TokenService, repo Repository) *Resolver {
	return &Resolver{tokens: tokens, repo: repo}
}

// Resolve verifies the token and loads the user it names. The returned
// user has the password hash stripped. Failures are typed:
// auth.ErrTokenExpired, auth.ErrTokenMalformed, auth.ErrInvalidSubject,
// auth.ErrUserNotFound.
func (r *Resolver) Resolve(ctx context.Context, token string) (*User, error) {
	claims, err := r.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return nil, auth.ErrInvalidSubject
	}

	user, err := r.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	resolved := user.Clone()
	resolved.PasswordHash = ""
	return resolved, nil
}
