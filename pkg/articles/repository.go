package articles

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when no article matches both the id and the
// owner. Callers cannot distinguish a missing article from one owned by
// someone else.
var ErrNotFound = errors.New("article not found")

// Patch describes a partial update. Nil fields are left untouched; a
// non-nil AdditionalPrompt that trims to empty removes the stored value.
type Patch struct {
	Title            *string    `json:"title"`
	Tone             *string    `json:"tone"`
	Audience         *string    `json:"audience"`
	Topics           *[]string  `json:"topics"`
	AdditionalPrompt *string    `json:"additionalPrompt"`
	Tags             *[]string  `json:"tags"`
	Sections         *[]Section `json:"sections"`
	Status           *string    `json:"status"`
}

// Empty reports whether the patch changes nothing.
func (p *Patch) Empty() bool {
	return p.Title == nil && p.Tone == nil && p.Audience == nil &&
		p.Topics == nil && p.AdditionalPrompt == nil && p.Tags == nil &&
		p.Sections == nil && p.Status == nil
}

// Repository stores articles. Read and write operations are scoped to the
// owning user: id and owner must both match.
type Repository interface {
	Create(ctx context.Context, article *Article) (primitive.ObjectID, error)
	Get(ctx context.Context, owner, id primitive.ObjectID) (*Article, error)
	List(ctx context.Context, owner primitive.ObjectID, limit, skip int64) ([]*Article, error)
	Update(ctx context.Context, owner, id primitive.ObjectID, patch *Patch) (*Article, error)
	Delete(ctx context.Context, owner, id primitive.ObjectID) error
}
