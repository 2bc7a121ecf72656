package articles

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Shalin-Shah-2002/Artium/pkg/httputil"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/Shalin-Shah-2002/Artium/pkg/users"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Handlers provides HTTP handlers for article CRUD. All routes require a
// resolved identity; the owner is always taken from the request context,
// never from the payload.
type Handlers struct {
	repo    Repository
	metrics *observability.Metrics
}

// NewHandlers creates new article handlers.
func NewHandlers(repo Repository, metrics *observability.Metrics) *Handlers {
	return &Handlers{repo: repo, metrics: metrics}
}

// RegisterRoutes registers the article routes, all behind requireAuth.
func (h *Handlers) RegisterRoutes(r *mux.Router, requireAuth func(http.Handler) http.Handler) {
	r.Handle("/api/articles", requireAuth(http.HandlerFunc(h.create))).Methods("POST")
	r.Handle("/api/articles", requireAuth(http.HandlerFunc(h.list))).Methods("GET")
	r.Handle("/api/articles/{id}", requireAuth(http.HandlerFunc(h.get))).Methods("GET")
	r.Handle("/api/articles/{id}", requireAuth(http.HandlerFunc(h.update))).Methods("PUT")
	r.Handle("/api/articles/{id}", requireAuth(http.HandlerFunc(h.remove))).Methods("DELETE")
}

func currentOwner(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	user, ok := users.FromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Invalid authentication credentials")
		return primitive.NilObjectID, false
	}
	return user.ID, true
}

// articleID parses and validates the {id} path segment before any store
// access. Malformed ids are rejected here as 400.
func articleID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid article ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

type createRequest struct {
	Title            string    `json:"title"`
	Tone             *string   `json:"tone"`
	Audience         *string   `json:"audience"`
	Topics           []string  `json:"topics"`
	AdditionalPrompt *string   `json:"additionalPrompt"`
	Tags             []string  `json:"tags"`
	Sections         []Section `json:"sections"`
	Status           string    `json:"status"`
}

// create handles POST /api/articles
func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	var req createRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, strings.TrimSpace(req.Title), "title") {
		return
	}

	article := &Article{
		UserID:           owner,
		Title:            strings.TrimSpace(req.Title),
		Tone:             req.Tone,
		Audience:         req.Audience,
		Topics:           req.Topics,
		AdditionalPrompt: normalizePrompt(req.AdditionalPrompt),
		Tags:             req.Tags,
		Sections:         req.Sections,
		Status:           req.Status,
	}

	id, err := h.repo.Create(r.Context(), article)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("failed to create article")
		httputil.WriteInternalError(w, errors.New("failed to create article"))
		return
	}
	if h.metrics != nil {
		h.metrics.ArticlesSavedTotal.Inc()
	}

	httputil.WriteCreated(w, map[string]string{"_id": id.Hex()})
}

// list handles GET /api/articles
func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}

	limit, err := httputil.ParseQueryInt64(r, "limit", defaultListLimit)
	if err != nil || limit < 1 || limit > maxListLimit {
		httputil.WriteValidationError(w, "limit must be between 1 and 100")
		return
	}
	skip, err := httputil.ParseQueryInt64(r, "skip", 0)
	if err != nil || skip < 0 {
		httputil.WriteValidationError(w, "skip must be non-negative")
		return
	}

	articles, err := h.repo.List(r.Context(), owner, limit, skip)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("failed to list articles")
		httputil.WriteInternalError(w, errors.New("failed to list articles"))
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{"articles": articles})
}

// get handles GET /api/articles/{id}
func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	article, err := h.repo.Get(r.Context(), owner, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFoundError(w, "Article not found")
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("failed to fetch article")
		httputil.WriteInternalError(w, errors.New("failed to fetch article"))
		return
	}

	httputil.WriteSuccess(w, article)
}

// update handles PUT /api/articles/{id}
func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	var patch Patch
	if !httputil.ParseJSONOrError(w, r, &patch) {
		return
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		httputil.WriteValidationError(w, "title must not be empty")
		return
	}

	article, err := h.repo.Update(r.Context(), owner, id, &patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFoundError(w, "Article not found")
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("failed to update article")
		httputil.WriteInternalError(w, errors.New("failed to update article"))
		return
	}
	if h.metrics != nil {
		h.metrics.ArticlesSavedTotal.Inc()
	}

	httputil.WriteSuccess(w, article)
}

// remove handles DELETE /api/articles/{id}
func (h *Handlers) remove(w http.ResponseWriter, r *http.Request) {
	owner, ok := currentOwner(w, r)
	if !ok {
		return
	}
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), owner, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.WriteNotFoundError(w, "Article not found")
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("failed to delete article")
		httputil.WriteInternalError(w, errors.New("failed to delete article"))
		return
	}

	httputil.WriteSuccess(w, map[string]string{"message": "Article deleted successfully"})
}

func normalizePrompt(prompt *string) *string {
	if prompt == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*prompt)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
