package api

import (
	"net/http"

	"github.com/Shalin-Shah-2002/Artium/pkg/articles"
	"github.com/Shalin-Shah-2002/Artium/pkg/config"
	"github.com/Shalin-Shah-2002/Artium/pkg/generation"
	"github.com/Shalin-Shah-2002/Artium/pkg/httputil"
	"github.com/Shalin-Shah-2002/Artium/pkg/middleware"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/Shalin-Shah-2002/Artium/pkg/users"
	"github.com/gorilla/mux"
)

// maxRequestBody bounds request payloads; generated articles stay well
// under this.
const maxRequestBody = 1 << 20

// Deps carries the wired components the server routes to.
type Deps struct {
	Users      *users.Handlers
	Articles   *articles.Handlers
	Generation *generation.Handlers
	Auth       *middleware.Auth
	Logger     *observability.Logger
	Metrics    *observability.Metrics

	// GenerationLimiter throttles the generation routes. The caller owns
	// its cleanup lifecycle; when nil the server creates one without
	// background eviction, which only suits tests.
	GenerationLimiter *middleware.RateLimiter
}

// Server represents the API server.
type Server struct {
	router  *mux.Router
	handler http.Handler
	logger  *observability.Logger
}

// NewServer creates the API server and mounts all routes.
func NewServer(cfg config.ServerConfig, deps Deps) *Server {
	s := &Server{
		router: mux.NewRouter(),
		logger: deps.Logger,
	}
	s.setupRoutes(deps)

	// The outer chain wraps the router itself so CORS preflights and
	// unmatched paths still pass through it.
	chain := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(deps.Logger),
		httputil.RecoveryMiddleware(deps.Logger),
		httputil.CORSMiddleware(cfg.CORSOrigins),
		httputil.MaxBytesMiddleware(maxRequestBody),
	}
	if deps.Metrics != nil {
		chain = append(chain, deps.Metrics.HTTPMiddleware)
	}
	s.handler = httputil.Chain(chain...)(s.router)
	return s
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes(deps Deps) {
	s.router.HandleFunc("/api/health", s.health).Methods("GET")

	requireAuth := deps.Auth.Require
	deps.Users.RegisterRoutes(s.router, requireAuth)
	deps.Articles.RegisterRoutes(s.router, requireAuth)

	limiter := deps.GenerationLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(middleware.GenerationRateLimitConfig())
	}
	deps.Generation.RegisterRoutes(s.router, limiter.Middleware)
}

// health handles GET /api/health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]interface{}{
		"ok":      true,
		"message": "Backend running",
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
