package generation

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Shalin-Shah-2002/Artium/pkg/httputil"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/gorilla/mux"
)

// Handlers provides HTTP handlers for article and section generation.
// Callers supply their own model API key per request, so the routes do
// not require a resolved identity.
type Handlers struct {
	client *Client
}

// NewHandlers creates new generation handlers.
func NewHandlers(client *Client) *Handlers {
	return &Handlers{client: client}
}

// RegisterRoutes registers the generation routes. limit throttles
// outbound model calls.
func (h *Handlers) RegisterRoutes(r *mux.Router, limit func(http.Handler) http.Handler) {
	r.Handle("/api/generate", limit(http.HandlerFunc(h.generate))).Methods("POST")
	r.Handle("/api/section/regenerate", limit(http.HandlerFunc(h.regenerateSection))).Methods("POST")
}

type generateHTTPRequest struct {
	GenerateRequest
	APIKey string `json:"apiKey"`
}

// generate handles POST /api/generate
func (h *Handlers) generate(w http.ResponseWriter, r *http.Request) {
	var req generateHTTPRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, strings.TrimSpace(req.Title), "title") {
		return
	}
	if req.APIKey == "" {
		httputil.WriteBadRequest(w, "Missing Gemini API key.")
		return
	}

	article, err := h.client.GenerateArticle(r.Context(), req.APIKey, req.GenerateRequest)
	if err != nil {
		h.writeGenerationError(w, r, err, "Failed to generate article")
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{"article": article})
}

type regenerateHTTPRequest struct {
	Article         ArticleInput     `json:"article"`
	SectionID       string           `json:"sectionId"`
	PromptOverrides *PromptOverrides `json:"promptOverrides"`
	APIKey          string           `json:"apiKey"`
}

// regenerateSection handles POST /api/section/regenerate
func (h *Handlers) regenerateSection(w http.ResponseWriter, r *http.Request) {
	var req regenerateHTTPRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.SectionID, "sectionId") {
		return
	}
	if req.APIKey == "" {
		httputil.WriteBadRequest(w, "Missing Gemini API key.")
		return
	}

	section, err := h.client.RegenerateSection(r.Context(), req.APIKey, req.Article, req.SectionID, req.PromptOverrides)
	if err != nil {
		if errors.Is(err, ErrSectionNotFound) {
			httputil.WriteNotFoundError(w, "Section not found.")
			return
		}
		h.writeGenerationError(w, r, err, "Failed to regenerate section")
		return
	}

	httputil.WriteSuccess(w, map[string]interface{}{"section": section})
}

func (h *Handlers) writeGenerationError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		httputil.WriteBadRequest(w, "Missing Gemini API key.")
	case errors.Is(err, ErrInvalidAPIKey):
		httputil.WriteUnauthorized(w, "Invalid Gemini API key.")
	case errors.Is(err, ErrRateLimited):
		httputil.WriteTooManyRequests(w, "Rate limited by Gemini API.")
	case errors.Is(err, ErrBadModelOutput):
		observability.FromContext(r.Context()).WithError(err).Error("unusable model output")
		httputil.WriteBadGateway(w, fallback+": unusable model output")
	default:
		observability.FromContext(r.Context()).WithError(err).Error("generation failed")
		httputil.WriteInternalError(w, errors.New(fallback))
	}
}
