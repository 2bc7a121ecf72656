package articles

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Default status for newly created articles.
const StatusDraft = "draft"

// Section is one titled block of article content.
type Section struct {
	ID      string `json:"id" bson:"id"`
	Heading string `json:"heading" bson:"heading"`
	Content string `json:"content" bson:"content"`
	Order   int    `json:"order" bson:"order"`
}

// Article is an authored document owned by a single user.
type Article struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID           primitive.ObjectID `json:"userId" bson:"userId"`
	Title            string             `json:"title" bson:"title"`
	Tone             *string            `json:"tone,omitempty" bson:"tone,omitempty"`
	Audience         *string            `json:"audience,omitempty" bson:"audience,omitempty"`
	Topics           []string           `json:"topics" bson:"topics"`
	AdditionalPrompt *string            `json:"additionalPrompt,omitempty" bson:"additionalPrompt,omitempty"`
	Tags             []string           `json:"tags" bson:"tags"`
	Sections         []Section          `json:"sections" bson:"sections"`
	Status           string             `json:"status" bson:"status"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Clone returns a deep copy of the article.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Tone != nil {
		tone := *a.Tone
		clone.Tone = &tone
	}
	if a.Audience != nil {
		audience := *a.Audience
		clone.Audience = &audience
	}
	if a.AdditionalPrompt != nil {
		prompt := *a.AdditionalPrompt
		clone.AdditionalPrompt = &prompt
	}
	clone.Topics = append([]string(nil), a.Topics...)
	clone.Tags = append([]string(nil), a.Tags...)
	clone.Sections = append([]Section(nil), a.Sections...)
	return &clone
}
