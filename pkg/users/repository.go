package users

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrEmailTaken means another user already registered this email
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotFound means no user matched the lookup
	ErrNotFound = errors.New("user not found")
)

// Repository defines storage operations for user records
type Repository interface {
	// Create inserts a new user and returns it with the assigned id.
	// Fails with ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *User) (*User, error)

	// GetByEmail looks a user up by lowercase-normalized email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID looks a user up by object id
	GetByID(ctx context.Context, id primitive.ObjectID) (*User, error)
}
