package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/Shalin-Shah-2002/Artium/pkg/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoRepository implements Repository over the users collection
type MongoRepository struct {
	coll    *mongo.Collection
	metrics *observability.Metrics
}

// NewMongoRepository creates a repository over the given store client.
// metrics may be nil.
func NewMongoRepository(client *storage.Client, metrics *observability.Metrics) *MongoRepository {
	return &MongoRepository{
		coll:    client.Collection(storage.UsersCollection),
		metrics: metrics,
	}
}

func (r *MongoRepository) observe(operation string, err error) {
	if r.metrics != nil {
		r.metrics.ObserveStoreOperation(storage.UsersCollection, operation, err)
	}
}

// Create inserts the user, relying on the unique email index for the
// email-uniqueness invariant
func (r *MongoRepository) Create(ctx context.Context, user *User) (*User, error) {
	res, err := r.coll.InsertOne(ctx, user)
	r.observe("insertOne", err)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	created := user.Clone()
	created.ID = res.InsertedID.(primitive.ObjectID)
	return created, nil
}

// GetByEmail looks a user up by email
func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	r.observe("findOne", err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &user, nil
}

// GetByID looks a user up by object id
func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	r.observe("findOne", err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &user, nil
}
