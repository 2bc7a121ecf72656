package users

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by tests
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]*User
	byEmail map[string]primitive.ObjectID
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[primitive.ObjectID]*User),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

// Create inserts a new user, enforcing email uniqueness
func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, ErrEmailTaken
	}

	created := user.Clone()
	created.ID = primitive.NewObjectID()
	r.byID[created.ID] = created
	r.byEmail[created.Email] = created.ID
	return created.Clone(), nil
}

// GetByEmail looks a user up by email
func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

// GetByID looks a user up by object id
func (r *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user.Clone(), nil
}

// Delete removes a user; tests use it to simulate a deleted account
func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user, ok := r.byID[id]; ok {
		delete(r.byEmail, user.Email)
		delete(r.byID, id)
	}
}
