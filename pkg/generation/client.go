package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Shalin-Shah-2002/Artium/pkg/articles"
	"github.com/Shalin-Shah-2002/Artium/pkg/config"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
)

// Error taxonomy for upstream failures.
var (
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrInvalidAPIKey   = errors.New("invalid API key")
	ErrRateLimited     = errors.New("rate limited by upstream")
	ErrBadModelOutput  = errors.New("model returned unusable output")
	ErrSectionNotFound = errors.New("section not found")
)

// GenerateRequest describes an article to draft.
type GenerateRequest struct {
	Title            string   `json:"title"`
	Tone             *string  `json:"tone"`
	Audience         *string  `json:"audience"`
	Topics           []string `json:"topics"`
	AdditionalPrompt *string  `json:"additionalPrompt"`
}

// GeneratedArticle is the validated draft returned by the model.
type GeneratedArticle struct {
	Title            string             `json:"title"`
	Tags             []string           `json:"tags"`
	Sections         []articles.Section `json:"sections"`
	AdditionalPrompt *string            `json:"additionalPrompt"`
}

// ArticleInput is the client-held article a section is regenerated
// against. It never touches the store.
type ArticleInput struct {
	Title    string             `json:"title"`
	Tone     *string            `json:"tone"`
	Sections []articles.Section `json:"sections"`
}

// PromptOverrides tweak a section rewrite.
type PromptOverrides struct {
	Tone  *string `json:"tone"`
	Focus *string `json:"focus"`
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	metrics    *observability.Metrics
}

// NewClient creates a generation client.
func NewClient(cfg config.GenerationConfig, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		metrics:    metrics,
	}
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// generateText sends one prompt and returns the model's text response.
func (c *Client) generateText(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generation API: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("reading generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", mapUpstreamError(resp.StatusCode, payload)
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", ErrBadModelOutput)
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}

func mapUpstreamError(status int, payload []byte) error {
	var decoded generateContentResponse
	message := ""
	if err := json.Unmarshal(payload, &decoded); err == nil && decoded.Error != nil {
		message = decoded.Error.Message
	}

	switch {
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		strings.Contains(message, "API_KEY_INVALID"),
		strings.Contains(strings.ToLower(message), "api key not valid"):
		return ErrInvalidAPIKey
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("generation API returned %d: %s", status, message)
	}
}

// stripCodeFences removes a surrounding markdown code block when the
// model ignores the JSON-only instruction.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// GenerateArticle drafts a complete article.
func (c *Client) GenerateArticle(ctx context.Context, apiKey string, req GenerateRequest) (*GeneratedArticle, error) {
	start := time.Now()
	article, err := c.generateArticle(ctx, apiKey, req)
	if c.metrics != nil {
		c.metrics.ObserveGeneration("article", time.Since(start), err)
	}
	return article, err
}

func (c *Client) generateArticle(ctx context.Context, apiKey string, req GenerateRequest) (*GeneratedArticle, error) {
	text, err := c.generateText(ctx, apiKey, buildArticlePrompt(req))
	if err != nil {
		return nil, err
	}

	var article GeneratedArticle
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &article); err != nil {
		return nil, fmt.Errorf("%w: response is not valid JSON: %v", ErrBadModelOutput, err)
	}
	if article.Title == "" || len(article.Sections) == 0 {
		return nil, fmt.Errorf("%w: missing title or sections", ErrBadModelOutput)
	}
	if article.Tags == nil {
		article.Tags = []string{}
	}
	if req.AdditionalPrompt != nil {
		article.AdditionalPrompt = req.AdditionalPrompt
	}
	return &article, nil
}

// RegenerateSection rewrites one section of a client-held article.
func (c *Client) RegenerateSection(ctx context.Context, apiKey string, article ArticleInput, sectionID string, overrides *PromptOverrides) (*articles.Section, error) {
	start := time.Now()
	section, err := c.regenerateSection(ctx, apiKey, article, sectionID, overrides)
	if c.metrics != nil {
		c.metrics.ObserveGeneration("section", time.Since(start), err)
	}
	return section, err
}

func (c *Client) regenerateSection(ctx context.Context, apiKey string, article ArticleInput, sectionID string, overrides *PromptOverrides) (*articles.Section, error) {
	var target *articles.Section
	for i := range article.Sections {
		if article.Sections[i].ID == sectionID {
			target = &article.Sections[i]
			break
		}
	}
	if target == nil {
		return nil, ErrSectionNotFound
	}

	text, err := c.generateText(ctx, apiKey, buildSectionPrompt(article, *target, overrides))
	if err != nil {
		return nil, err
	}

	return &articles.Section{
		ID:      target.ID,
		Heading: target.Heading,
		Content: strings.TrimSpace(text),
		Order:   target.Order,
	}, nil
}
