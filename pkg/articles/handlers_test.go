package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shalin-Shah-2002/Artium/pkg/contextkeys"
	"github.com/Shalin-Shah-2002/Artium/pkg/users"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// authAs injects a fixed user, standing in for the real auth middleware.
func authAs(user *users.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := contextkeys.WithCurrentUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(t *testing.T, user *users.User) (*mux.Router, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	r := mux.NewRouter()
	NewHandlers(repo, nil).RegisterRoutes(r, authAs(user))
	return r, repo
}

func testUser() *users.User {
	return &users.User{ID: primitive.NewObjectID(), Email: "a@x.com"}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createArticle(t *testing.T, r http.Handler, body map[string]any) string {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/articles", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotEmpty(t, got["_id"])
	return got["_id"]
}

func TestCreateArticleEndpoint(t *testing.T) {
	r, repo := newTestRouter(t, testUser())

	id := createArticle(t, r, map[string]any{
		"title":  "Go Concurrency",
		"topics": []string{"goroutines", "channels"},
		"tone":   "casual",
	})

	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)

	rec := doJSON(t, r, http.MethodGet, "/api/articles/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, oid, got.ID)
	assert.Equal(t, "Go Concurrency", got.Title)
	assert.Equal(t, []string{"goroutines", "channels"}, got.Topics)
	require.NotNil(t, got.Tone)
	assert.Equal(t, "casual", *got.Tone)
	assert.Equal(t, StatusDraft, got.Status)

	_ = repo
}

func TestCreateArticleRequiresTitle(t *testing.T) {
	r, _ := newTestRouter(t, testUser())

	rec := doJSON(t, r, http.MethodPost, "/api/articles", map[string]any{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateArticleIgnoresClientOwner(t *testing.T) {
	user := testUser()
	r, repo := newTestRouter(t, user)

	// a userId in the payload must not override the resolved identity
	id := createArticle(t, r, map[string]any{
		"title":  "Spoofed",
		"userId": primitive.NewObjectID().Hex(),
	})

	oid, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	got, err := repo.Get(context.Background(), user.ID, oid)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
}

func TestGetArticleNotFound(t *testing.T) {
	r, _ := newTestRouter(t, testUser())

	rec := doJSON(t, r, http.MethodGet, "/api/articles/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Article not found")
}

func TestArticleInvalidID(t *testing.T) {
	r, _ := newTestRouter(t, testUser())

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := doJSON(t, r, method, "/api/articles/not-a-hex-id", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
		assert.Contains(t, rec.Body.String(), "Invalid article ID")
	}
}

func TestCrossUserAccessIsNotFound(t *testing.T) {
	alice := testUser()
	r, repo := newTestRouter(t, alice)
	id := createArticle(t, r, map[string]any{"title": "Alice's"})

	bob := testUser()
	bobRouter := mux.NewRouter()
	NewHandlers(repo, nil).RegisterRoutes(bobRouter, authAs(bob))

	rec := doJSON(t, bobRouter, http.MethodGet, "/api/articles/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, bobRouter, http.MethodPut, "/api/articles/"+id, map[string]any{"title": "Bob's now"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, bobRouter, http.MethodDelete, "/api/articles/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListArticlesEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, testUser())

	for i := 0; i < 3; i++ {
		createArticle(t, r, map[string]any{"title": fmt.Sprintf("article %d", i)})
	}

	rec := doJSON(t, r, http.MethodGet, "/api/articles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Articles []Article `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Articles, 3)

	rec = doJSON(t, r, http.MethodGet, "/api/articles?limit=2&skip=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Articles, 2)
}

func TestListArticlesValidatesPagination(t *testing.T) {
	r, _ := newTestRouter(t, testUser())

	for _, query := range []string{"?limit=0", "?limit=101", "?limit=abc", "?skip=-1"} {
		rec := doJSON(t, r, http.MethodGet, "/api/articles"+query, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestUpdateArticleEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, testUser())
	id := createArticle(t, r, map[string]any{
		"title": "Before",
		"tone":  "formal",
	})

	rec := doJSON(t, r, http.MethodPut, "/api/articles/"+id, map[string]any{
		"title": "After",
		"tags":  []string{"updated"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, []string{"updated"}, got.Tags)
	require.NotNil(t, got.Tone)
	assert.Equal(t, "formal", *got.Tone)
}

func TestUpdateArticleRejectsEmptyTitle(t *testing.T) {
	r, _ := newTestRouter(t, testUser())
	id := createArticle(t, r, map[string]any{"title": "Kept"})

	rec := doJSON(t, r, http.MethodPut, "/api/articles/"+id, map[string]any{"title": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteArticleEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, testUser())
	id := createArticle(t, r, map[string]any{"title": "Doomed"})

	rec := doJSON(t, r, http.MethodDelete, "/api/articles/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Article deleted successfully")

	rec = doJSON(t, r, http.MethodGet, "/api/articles/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
