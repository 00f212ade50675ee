package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/gamevault/api/internal/config"
	"github.com/gamevault/api/internal/database"
	"github.com/gamevault/api/internal/handler"
	"github.com/gamevault/api/internal/identity"
	"github.com/gamevault/api/internal/metrics"
	"github.com/gamevault/api/internal/middleware"
	"github.com/gamevault/api/internal/repository"
	"github.com/gamevault/api/internal/service"
	"github.com/gamevault/api/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize identity provider client
	identityClient := identity.NewClient(identity.Config{
		BaseURL: cfg.Identity.BaseURL,
		APIKey:  cfg.Identity.APIKey,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	authService := service.NewAuthService(identityClient, userRepo, jwtService)
	catalogService := service.NewCatalogService(catalogRepo)
	libraryService := service.NewLibraryService(libraryRepo, catalogService)
	sessionService := service.NewSessionService(sessionRepo, libraryRepo, catalogService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	libraryHandler := handler.NewLibraryHandler(libraryService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Initialize rate limiter
	limiterCfg := middleware.DefaultRateLimiterConfig()
	limiterCfg.Rate = rate.Limit(float64(cfg.RateLimit.RequestsPerMinute) / 60.0)
	limiterCfg.Burst = cfg.RateLimit.Burst
	rateLimiter := middleware.NewRateLimiter(limiterCfg)
	defer rateLimiter.Stop()

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		mux.Handle("GET /metrics", metrics.Handler(registry))
	}

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /v1/auth/forgot-password", authHandler.ForgotPassword)
	mux.HandleFunc("POST /v1/auth/reset-password", authHandler.ResetPassword)
	mux.HandleFunc("GET /v1/auth/check-username", authHandler.CheckUsername)

	// Auth endpoints (protected)
	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.AdminAuth(jwtService)
	mux.Handle("GET /v1/auth/me", authMiddleware(http.HandlerFunc(authHandler.Me)))

	// Catalog endpoints (read for any signed-in user, writes for admins)
	mux.Handle("GET /v1/catalog", authMiddleware(http.HandlerFunc(catalogHandler.List)))
	mux.Handle("GET /v1/catalog/{gameId}", authMiddleware(http.HandlerFunc(catalogHandler.Get)))
	mux.Handle("POST /v1/catalog", adminMiddleware(http.HandlerFunc(catalogHandler.Create)))
	mux.Handle("PUT /v1/catalog/{gameId}", adminMiddleware(http.HandlerFunc(catalogHandler.Update)))
	mux.Handle("DELETE /v1/catalog/{gameId}", adminMiddleware(http.HandlerFunc(catalogHandler.Delete)))

	// Library endpoints
	mux.Handle("GET /v1/library", authMiddleware(http.HandlerFunc(libraryHandler.List)))
	mux.Handle("POST /v1/library/{gameId}", authMiddleware(http.HandlerFunc(libraryHandler.Add)))
	mux.Handle("DELETE /v1/library/{gameId}", authMiddleware(http.HandlerFunc(libraryHandler.Remove)))

	// Session endpoints (scoped to a library entry)
	mux.Handle("POST /v1/library/{gameId}/sessions", authMiddleware(http.HandlerFunc(sessionHandler.Create)))
	mux.Handle("GET /v1/library/{gameId}/sessions", authMiddleware(http.HandlerFunc(sessionHandler.List)))
	mux.Handle("PATCH /v1/library/{gameId}/sessions/{sessionId}", authMiddleware(http.HandlerFunc(sessionHandler.Update)))
	mux.Handle("DELETE /v1/library/{gameId}/sessions/{sessionId}", authMiddleware(http.HandlerFunc(sessionHandler.Delete)))

	// Cross-game play log
	mux.Handle("GET /v1/sessions", authMiddleware(http.HandlerFunc(sessionHandler.ListAll)))

	// Apply global middleware
	middlewares := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		collector.Middleware(),
	}
	if cfg.RateLimit.Enabled {
		middlewares = append(middlewares, rateLimiter.Middleware())
	}
	middlewares = append(middlewares, middleware.Compress)

	wrapped := middleware.Chain(mux, middlewares...)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
