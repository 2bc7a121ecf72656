package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shalin-Shah-2002/Artium/pkg/api"
	"github.com/Shalin-Shah-2002/Artium/pkg/articles"
	"github.com/Shalin-Shah-2002/Artium/pkg/auth"
	"github.com/Shalin-Shah-2002/Artium/pkg/config"
	"github.com/Shalin-Shah-2002/Artium/pkg/generation"
	"github.com/Shalin-Shah-2002/Artium/pkg/middleware"
	"github.com/Shalin-Shah-2002/Artium/pkg/observability"
	"github.com/Shalin-Shah-2002/Artium/pkg/storage"
	"github.com/Shalin-Shah-2002/Artium/pkg/users"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		observability.NewLogger(observability.ErrorLevel, os.Stderr).WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *observability.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()
	store, err := storage.Connect(connectCtx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Disconnect(disconnectCtx); err != nil {
			logger.WithError(err).Warn("failed to disconnect from document store")
		}
	}()
	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}
	logger.WithField("database", cfg.Mongo.Database).Info("connected to document store")

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.Auth.JWTSecret))

	userRepo := users.NewMongoRepository(store, metrics)
	userService := users.NewService(userRepo, hasher, tokens, cfg.Auth.TokenTTL, logger, metrics)
	resolver := users.NewResolver(tokens, userRepo)

	articleRepo := articles.NewMongoRepository(store, metrics)
	genClient := generation.NewClient(cfg.Generation, metrics)

	limiter := middleware.NewRateLimiter(middleware.GenerationRateLimitConfig())
	limiter.StartCleanup(ctx)

	server := api.NewServer(cfg.Server, api.Deps{
		Users:             users.NewHandlers(userService),
		Articles:          articles.NewHandlers(articleRepo, metrics),
		Generation:        generation.NewHandlers(genClient),
		Auth:              middleware.NewAuth(resolver, logger),
		Logger:            logger,
		Metrics:           metrics,
		GenerationLimiter: limiter,
	})

	apiServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	healthServer := &http.Server{
		Addr:        net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler:     healthMux(store, metrics),
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.WithField("addr", apiServer.Addr).Info("starting API server")
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("starting health server")
		if err := healthServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		shutdownErr := apiServer.Shutdown(shutdownCtx)
		if err := healthServer.Shutdown(shutdownCtx); shutdownErr == nil {
			shutdownErr = err
		}
		return shutdownErr
	})

	return group.Wait()
}

// healthMux serves liveness, readiness and metrics on the internal port.
func healthMux(store *storage.Client, metrics *observability.Metrics) http.Handler {
	checker := observability.NewHealthChecker(store)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", checker.Liveness).Methods("GET")
	r.HandleFunc("/readyz", checker.Readiness).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}
	return r
}
