package users

import (
	"context"
	"time"

	"github.com/Shalin-Shah-2002/Artium/pkg/contextkeys"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an identity record. The password hash is never serialized
// outward; only the bson tag carries it into the store.
type User struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email"`
	Name         *string            `json:"name" bson:"name,omitempty"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// Clone returns a copy safe to hand outside the repository
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Name != nil {
		name := *u.Name
		clone.Name = &name
	}
	return &clone
}

// FromContext retrieves the resolved user placed in the request context by
// the auth middleware.
func FromContext(ctx context.Context) (*User, bool) {
	user, ok := contextkeys.CurrentUser(ctx).(*User)
	return user, ok
}
