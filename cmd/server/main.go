package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/vecino/internal/handler"
	"github.com/yourorg/vecino/internal/observability/tracing"
	"github.com/yourorg/vecino/internal/reliability/retry"
	"github.com/yourorg/vecino/internal/repository"
	"github.com/yourorg/vecino/internal/security/audit"
	"github.com/yourorg/vecino/internal/security/auth"
	"github.com/yourorg/vecino/internal/security/middleware"
	"github.com/yourorg/vecino/internal/security/ratelimit"
	"github.com/yourorg/vecino/internal/service"
	"github.com/yourorg/vecino/pkg/config"
	"github.com/yourorg/vecino/pkg/database"
)

func main() {
	// .env is a development convenience; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)
	log.Info("starting vecino server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "vecino", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := retry.Do(ctx, retry.DefaultConfig(), log, "connect database",
		func(ctx context.Context) (*database.ConnectionPool, error) {
			return database.NewConnectionPool(ctx, cfg.DatabaseURL, log)
		})
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("migrations applied")

	db := pool.GetDB()

	// Repositories
	identityRepo := repository.NewPostgresIdentityRepository(db, log)
	userRepo := repository.NewPostgresUserRepository(db, log)
	businessRepo := repository.NewPostgresBusinessRepository(db, log)
	postRepo := repository.NewPostgresPostRepository(db, log)
	commentRepo := repository.NewPostgresCommentRepository(db, log)
	likeRepo := repository.NewPostgresLikeRepository(db, log)
	reviewRepo := repository.NewPostgresReviewRepository(db, log)

	// Security components
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, "vecino")
	auditLogger := audit.NewLogger(log)
	generalLimiter := ratelimit.NewLimiter(cfg.RateLimitGeneral, time.Minute)
	authLimiter := ratelimit.NewLimiter(cfg.RateLimitAuth, time.Minute)

	// Services
	identityService := service.NewIdentityService(identityRepo, log)
	userService := service.NewUserService(userRepo, identityService, tokenManager, auditLogger, log, cfg.BcryptCost)
	businessService := service.NewBusinessService(businessRepo, identityService, reviewRepo, tokenManager, auditLogger, log, cfg.BcryptCost)
	postService := service.NewPostService(postRepo, businessRepo, log)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, log)
	likeService := service.NewLikeService(likeRepo, postRepo, log)
	reviewService := service.NewReviewService(reviewRepo, userRepo, businessRepo, log)

	// HTTP surface
	chain := middleware.NewChain(tokenManager, generalLimiter, log)
	router := handler.NewRouter(handler.RouterDeps{
		Users:       handler.NewUserHandler(userService, log),
		Businesses:  handler.NewBusinessHandler(businessService, log),
		Posts:       handler.NewPostHandler(postService, log),
		Comments:    handler.NewCommentHandler(commentService, log),
		Likes:       handler.NewLikeHandler(likeService, log),
		Reviews:     handler.NewReviewHandler(reviewService, log),
		Usernames:   handler.NewUsernameHandler(identityService, log),
		Profiles:    handler.NewProfileHandler(userService, businessService, log),
		Health:      handler.NewHealthHandler(pool, log),
		Chain:       chain,
		AuthLimiter: authLimiter,
		FrontendURL: cfg.FrontendURL,
		Logger:      log,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.Int("rate_limit_general", cfg.RateLimitGeneral),
		slog.Int("rate_limit_auth", cfg.RateLimitAuth),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	generalLimiter.Stop()
	authLimiter.Stop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
