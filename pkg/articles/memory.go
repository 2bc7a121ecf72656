package articles

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used in tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	byID     map[primitive.ObjectID]*Article
	nowFunc  func() time.Time
}

// NewMemoryRepository creates an empty in-memory article repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[primitive.ObjectID]*Article),
		nowFunc: time.Now,
	}
}

// SetClock overrides the time source. Tests use this to make updatedAt
// deterministic.
func (r *MemoryRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nowFunc = now
}

func (r *MemoryRepository) now() time.Time {
	return r.nowFunc().UTC()
}

// Create stores the article under a fresh id.
func (r *MemoryRepository) Create(ctx context.Context, article *Article) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := article.Clone()
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = r.now()
	doc.UpdatedAt = doc.CreatedAt
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
	r.byID[doc.ID] = doc
	return doc.ID, nil
}

// Get fetches one article matching both id and owner.
func (r *MemoryRepository) Get(ctx context.Context, owner, id primitive.ObjectID) (*Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	article, ok := r.byID[id]
	if !ok || article.UserID != owner {
		return nil, ErrNotFound
	}
	return article.Clone(), nil
}

// List returns the owner's articles sorted by updatedAt descending.
func (r *MemoryRepository) List(ctx context.Context, owner primitive.ObjectID, limit, skip int64) ([]*Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := make([]*Article, 0)
	for _, article := range r.byID {
		if article.UserID == owner {
			owned = append(owned, article.Clone())
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].UpdatedAt.After(owned[j].UpdatedAt)
	})

	if skip >= int64(len(owned)) {
		return []*Article{}, nil
	}
	owned = owned[skip:]
	if limit > 0 && limit < int64(len(owned)) {
		owned = owned[:limit]
	}
	return owned, nil
}

// Update applies the patch and returns the merged article.
func (r *MemoryRepository) Update(ctx context.Context, owner, id primitive.ObjectID, patch *Patch) (*Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	article, ok := r.byID[id]
	if !ok || article.UserID != owner {
		return nil, ErrNotFound
	}

	if patch.Title != nil {
		article.Title = *patch.Title
	}
	if patch.Tone != nil {
		tone := *patch.Tone
		article.Tone = &tone
	}
	if patch.Audience != nil {
		audience := *patch.Audience
		article.Audience = &audience
	}
	if patch.Topics != nil {
		article.Topics = append([]string(nil), (*patch.Topics)...)
	}
	if patch.AdditionalPrompt != nil {
		if trimmed := strings.TrimSpace(*patch.AdditionalPrompt); trimmed == "" {
			article.AdditionalPrompt = nil
		} else {
			article.AdditionalPrompt = &trimmed
		}
	}
	if patch.Tags != nil {
		article.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Sections != nil {
		article.Sections = append([]Section(nil), (*patch.Sections)...)
	}
	if patch.Status != nil {
		article.Status = *patch.Status
	}
	article.UpdatedAt = r.now()

	return article.Clone(), nil
}

// Delete removes the article matching id and owner.
func (r *MemoryRepository) Delete(ctx context.Context, owner, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	article, ok := r.byID[id]
	if !ok || article.UserID != owner {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
