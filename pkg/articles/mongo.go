package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/Shalin-Shah-2002/Artium/pkg/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores articles in the articles collection.
type MongoRepository struct {
	coll    *mongo.Collection
	metrics *observability.Metrics
}

// NewMongoRepository creates an article repository backed by MongoDB.
func NewMongoRepository(client *storage.Client, metrics *observability.Metrics) *MongoRepository {
	return &MongoRepository{
		coll:    client.Collection(storage.ArticlesCollection),
		metrics: metrics,
	}
}

func (r *MongoRepository) observe(operation string, err error) {
	if r.metrics != nil {
		r.metrics.ObserveStoreOperation(storage.ArticlesCollection, operation, err)
	}
}

// Create inserts the article and returns its generated id. UserID must
// already be set by the caller.
func (r *MongoRepository) Create(ctx context.Context, article *Article) (primitive.ObjectID, error) {
	now := time.Now().UTC()
	doc := article.Clone()
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if doc.Status == "" {
		doc.Status = StatusDraft
	}
	if doc.Topics == nil {
		doc.Topics = []string{}
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.Sections == nil {
		doc.Sections = []Section{}
	}

	_, err := r.coll.InsertOne(ctx, doc)
	r.observe("insert", err)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("inserting article: %w", err)
	}
	return doc.ID, nil
}

// Get fetches one article matching both id and owner.
func (r *MongoRepository) Get(ctx context.Context, owner, id primitive.ObjectID) (*Article, error) {
	var article Article
	err := r.coll.FindOne(ctx, ownerFilter(owner, id)).Decode(&article)
	r.observe("find_one", err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching article: %w", err)
	}
	return &article, nil
}

// List returns the owner's articles sorted by updatedAt descending.
func (r *MongoRepository) List(ctx context.Context, owner primitive.ObjectID, limit, skip int64) ([]*Article, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"userId": owner}, opts)
	r.observe("find", err)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer cursor.Close(ctx)

	articles := make([]*Article, 0)
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("decoding articles: %w", err)
	}
	return articles, nil
}

// Update applies the patch to the article matching id and owner and
// returns the merged document. updatedAt always advances, even for an
// empty patch.
func (r *MongoRepository) Update(ctx context.Context, owner, id primitive.ObjectID, patch *Patch) (*Article, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	unset := bson.M{}

	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Tone != nil {
		set["tone"] = *patch.Tone
	}
	if patch.Audience != nil {
		set["audience"] = *patch.Audience
	}
	if patch.Topics != nil {
		set["topics"] = *patch.Topics
	}
	if patch.AdditionalPrompt != nil {
		if trimmed := strings.TrimSpace(*patch.AdditionalPrompt); trimmed == "" {
			unset["additionalPrompt"] = ""
		} else {
			set["additionalPrompt"] = trimmed
		}
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if patch.Sections != nil {
		set["sections"] = *patch.Sections
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var article Article
	err := r.coll.FindOneAndUpdate(ctx, ownerFilter(owner, id), update, opts).Decode(&article)
	r.observe("update", err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating article: %w", err)
	}
	return &article, nil
}

// Delete removes the article matching id and owner.
func (r *MongoRepository) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, ownerFilter(owner, id))
	r.observe("delete", err)
	if err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func ownerFilter(owner, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "userId": owner}
}
