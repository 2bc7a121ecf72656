package articles

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func TestMemoryCreateDefaults(t *testing.T) {
	repo := NewMemoryRepository()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	id, err := repo.Create(ctx, &Article{UserID: owner, Title: "Go Generics"})
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	got, err := repo.Get(ctx, owner, id)
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, got.Status)
	assert.NotNil(t, got.Topics)
	assert.NotNil(t, got.Tags)
	assert.NotNil(t, got.Sections)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMemoryOwnerScoping(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	id, err := repo.Create(ctx, &Article{UserID: alice, Title: "Private"})
	require.NoError(t, err)

	// another user cannot read, update or delete the article
	_, err = repo.Get(ctx, bob, id)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Update(ctx, bob, id, &Patch{Title: strPtr("Stolen")})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, bob, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// the owner still sees the original
	got, err := repo.Get(ctx, alice, id)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestMemoryListOrderingAndPagination(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var tick int
	repo.SetClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	})

	var ids []primitive.ObjectID
	for _, title := range []string{"first", "second", "third"} {
		id, err := repo.Create(ctx, &Article{UserID: owner, Title: title})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	_, err := repo.Create(ctx, &Article{UserID: other, Title: "not mine"})
	require.NoError(t, err)

	// newest first
	got, err := repo.List(ctx, owner, 20, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Title)
	assert.Equal(t, "first", got[2].Title)

	// an update moves the article to the front
	_, err = repo.Update(ctx, owner, ids[0], &Patch{Tags: &[]string{"go"}})
	require.NoError(t, err)
	got, err = repo.List(ctx, owner, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, "first", got[0].Title)

	// limit and skip
	got, err = repo.List(ctx, owner, 1, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "third", got[0].Title)

	// skip past the end yields an empty page, not an error
	got, err = repo.List(ctx, owner, 20, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryPartialUpdate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	id, err := repo.Create(ctx, &Article{
		UserID:           owner,
		Title:            "Original",
		Tone:             strPtr("formal"),
		Topics:           []string{"go"},
		AdditionalPrompt: strPtr("keep it short"),
	})
	require.NoError(t, err)
	before, err := repo.Get(ctx, owner, id)
	require.NoError(t, err)

	got, err := repo.Update(ctx, owner, id, &Patch{Title: strPtr("Renamed")})
	require.NoError(t, err)

	// only the patched field changed
	assert.Equal(t, "Renamed", got.Title)
	require.NotNil(t, got.Tone)
	assert.Equal(t, "formal", *got.Tone)
	assert.Equal(t, []string{"go"}, got.Topics)
	require.NotNil(t, got.AdditionalPrompt)
	assert.Equal(t, "keep it short", *got.AdditionalPrompt)
	assert.Equal(t, before.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(before.UpdatedAt) || got.UpdatedAt.Equal(before.UpdatedAt))
}

func TestMemoryUpdateAdvancesUpdatedAt(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	repo.SetClock(func() time.Time { return now })

	id, err := repo.Create(ctx, &Article{UserID: owner, Title: "Clocked"})
	require.NoError(t, err)

	now = base.Add(time.Minute)
	got, err := repo.Update(ctx, owner, id, &Patch{})
	require.NoError(t, err)

	// even an empty patch advances updatedAt
	assert.Equal(t, base.Add(time.Minute), got.UpdatedAt)
	assert.Equal(t, base, got.CreatedAt)
}

func TestMemoryUpdateClearsAdditionalPrompt(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	id, err := repo.Create(ctx, &Article{
		UserID:           owner,
		Title:            "Prompted",
		AdditionalPrompt: strPtr("old prompt"),
	})
	require.NoError(t, err)

	// whitespace-only prompt removes the stored value
	got, err := repo.Update(ctx, owner, id, &Patch{AdditionalPrompt: strPtr("   ")})
	require.NoError(t, err)
	assert.Nil(t, got.AdditionalPrompt)

	// a non-empty value is stored trimmed
	got, err = repo.Update(ctx, owner, id, &Patch{AdditionalPrompt: strPtr("  new prompt  ")})
	require.NoError(t, err)
	require.NotNil(t, got.AdditionalPrompt)
	assert.Equal(t, "new prompt", *got.AdditionalPrompt)
}

func TestMemoryUpdateSectionsAndTags(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	id, err := repo.Create(ctx, &Article{UserID: owner, Title: "Structured"})
	require.NoError(t, err)

	sections := []Section{
		{ID: "s1", Heading: "Intro", Content: "hello", Order: 0},
		{ID: "s2", Heading: "Body", Content: "world", Order: 1},
	}
	got, err := repo.Update(ctx, owner, id, &Patch{
		Sections: &sections,
		Tags:     &[]string{"go", "testing"},
	})
	require.NoError(t, err)
	assert.Equal(t, sections, got.Sections)
	assert.Equal(t, []string{"go", "testing"}, got.Tags)

	// replacing with empty slices clears them
	got, err = repo.Update(ctx, owner, id, &Patch{
		Sections: &[]Section{},
		Tags:     &[]string{},
	})
	require.NoError(t, err)
	assert.Empty(t, got.Sections)
	assert.Empty(t, got.Tags)
}

func TestMemoryDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	id, err := repo.Create(ctx, &Article{UserID: owner, Title: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, owner, id))

	_, err = repo.Get(ctx, owner, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice reports not found
	assert.ErrorIs(t, repo.Delete(ctx, owner, id), ErrNotFound)
}

func TestPatchEmpty(t *testing.T) {
	assert.True(t, (&Patch{}).Empty())
	assert.False(t, (&Patch{Title: strPtr("x")}).Empty())
	assert.False(t, (&Patch{Tags: &[]string{}}).Empty())
}
