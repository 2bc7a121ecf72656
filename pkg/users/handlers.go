package users

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/Shalin-Shah-2002/Artium/pkg/httputil"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/gorilla/mux"
)

// password length bounds mirror the bcrypt input limit
const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// Handlers provides HTTP handlers for registration, login and the
// current-user endpoint
type Handlers struct {
	service *Service
}

// NewHandlers creates new auth handlers
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes registers the auth routes. requireAuth wraps handlers
// that need a resolved identity.
func (h *Handlers) RegisterRoutes(r *mux.Router, requireAuth func(http.Handler) http.Handler) {
	r.HandleFunc("/api/auth/register", h.register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.login).Methods("POST")
	r.Handle("/api/auth/me", requireAuth(http.HandlerFunc(h.currentUser))).Methods("GET")
}

// validEmail performs a minimal sanity check; full RFC compliance is left
// to the mail server.
func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

// register handles POST /api/auth/register
func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if !httputil.RequireNonEmpty(w, NormalizeEmail(req.Email), "email") {
		return
	}
	if !validEmail(NormalizeEmail(req.Email)) {
		httputil.WriteValidationError(w, "invalid email address")
		return
	}
	if len(req.Password) < minPasswordLength || len(req.Password) > maxPasswordLength {
		httputil.WriteValidationError(w, "password must be between 8 and 72 characters")
		return
	}

	user, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			httputil.WriteConflict(w, "Email already registered")
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("registration failed")
		httputil.WriteInternalError(w, errors.New("failed to register user"))
		return
	}

	httputil.WriteCreated(w, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// login handles POST /api/auth/login
func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if !httputil.RequireNonEmpty(w, NormalizeEmail(req.Email), "email") {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Password, "password") {
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			httputil.WriteUnauthorized(w, "Incorrect email or password")
			return
		}
		observability.FromContext(r.Context()).WithError(err).Error("login failed")
		httputil.WriteInternalError(w, errors.New("failed to log in"))
		return
	}

	httputil.WriteSuccess(w, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// currentUser handles GET /api/auth/me
func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := FromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Invalid authentication credentials")
		return
	}
	httputil.WriteSuccess(w, user)
}
