package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interviewprep/api/internal/config"
	"interviewprep/api/internal/handlers"
	"interviewprep/api/internal/interviewai"
	"interviewprep/api/internal/jobs"
	"interviewprep/api/internal/llm"
	_ "interviewprep/api/internal/llm/gemini"
	_ "interviewprep/api/internal/llm/openai"
	"interviewprep/api/internal/metrics"
	appmw "interviewprep/api/internal/middleware"
	"interviewprep/api/internal/models"
	"interviewprep/api/internal/prompts"
	"interviewprep/api/internal/repositories"
	"interviewprep/api/internal/routers"
	"interviewprep/api/internal/session"
	"interviewprep/api/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type appHandlers struct {
	auth      *appmw.Authenticator
	health    *handlers.HealthHandler
	me        *handlers.AuthHandler
	interview *handlers.InterviewHandler
	session   *handlers.SessionHandler
}

func registerRoutes(router *chi.Mux, h appHandlers) {
	routers.HealthRoutes(router, h.health)
	routers.MetricsRoutes(router)
	routers.AuthRoutes(router, h.auth, h.me)
	routers.InterviewRoutes(router, h.auth, h.interview)
	routers.SessionRoutes(router, h.auth, h.session)
}

func newRouter(cfg *config.Config, h appHandlers) *chi.Mux {
	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(cfg.RequestTimeout()))
	router.Use(metrics.Middleware("interview-api"))

	registerRoutes(router, h)
	return router
}

// initDatabase opens the configured database and migrates the schema
func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// initEvents publishes lifecycle events to Redis when it is configured.
func initEvents(cfg *config.Config, logger *zap.Logger) (session.EventPublisher, func()) {
	if cfg.RedisAddr == "" {
		return session.NoopPublisher(), func() {}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:                  cfg.RedisAddr,
		DialTimeout:           2 * time.Second,
		ReadTimeout:           time.Second,
		WriteTimeout:          time.Second,
		MaxRetries:            1,
		ContextTimeoutEnabled: true,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, events will be retried per publish", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return session.NewRedisPublisher(rdb, logger), func() { _ = rdb.Close() }
}

func main() {
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("db_driver", cfg.DBDriver),
		zap.Int("question_count", cfg.QuestionCount))

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	interviewRepo := &repositories.InterviewRepository{DB: db}
	questionRepo := &repositories.QuestionRepository{DB: db}
	resultRepo := &repositories.ResultRepository{DB: db}
	userRepo := &repositories.UserRepository{DB: db}

	if cfg.SeedTemplates {
		created, err := interviewRepo.SeedTemplates(context.Background(), repositories.DefaultTemplates())
		if err != nil {
			logger.Fatal("Failed to seed interview templates", zap.Error(err))
		}
		logger.Info("Interview templates seeded", zap.Int("created", created))
	}

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider",
			zap.Error(err),
			zap.Strings("registered", llm.RegisteredProviders()))
	}

	opts := interviewai.DefaultOptions()
	opts.Timeout = cfg.AITimeout
	opts.MaxAttempts = cfg.AIMaxAttempts
	adapter := interviewai.NewAdapter(aiProvider, promptManager, logger, opts)

	events, closeEvents := initEvents(cfg, logger)
	defer closeEvents()

	sessions := session.NewService(session.Deps{
		Interviews:    interviewRepo,
		Questions:     questionRepo,
		Results:       resultRepo,
		AI:            adapter,
		Events:        events,
		Logger:        logger,
		QuestionCount: cfg.QuestionCount,
	})

	router := newRouter(cfg, appHandlers{
		auth:      appmw.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, logger),
		health:    handlers.NewHealthHandler(db, aiProvider, promptManager, cfg),
		me:        handlers.NewAuthHandler(userRepo, logger),
		interview: handlers.NewInterviewHandler(interviewRepo, userRepo, logger),
		session:   handlers.NewSessionHandler(sessions, userRepo, logger),
	})

	sweeper := jobs.NewStaleStartSweeper(interviewRepo, jobs.SweeperConfig{
		Schedule: cfg.StaleStartSchedule,
		TTL:      cfg.StaleStartTTL,
	}, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start stale start sweeper", zap.Error(err))
	}

	serverAddr := ":" + cfg.Port

	// write timeout must outlast a request that retries every AI attempt
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout() + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview API starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview API shutting down...")

	sweeper.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview API exited")
}
