package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"baro_site_server/api"
	"baro_site_server/config"
	"baro_site_server/internal/ai"
	handlers "baro_site_server/internal/api"
	"baro_site_server/internal/logging"
	"baro_site_server/internal/preview"
	"baro_site_server/internal/relay"
	"baro_site_server/internal/site"
)

func main() {
	// --- Load .env file ---
	// Must happen before viper reads the environment.
	envErr := godotenv.Load()

	// --- Configuration Loading ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Cannot build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	switch {
	case envErr == nil:
		logger.Info("loaded environment variables from .env file")
	case os.IsNotExist(envErr):
		logger.Info(".env file not found, relying on system environment variables")
	default:
		logger.Warn("error loading .env file", zap.Error(envErr))
	}
	if cfg.ConfigFile != "" {
		logger.Info("using configuration file", zap.String("path", cfg.ConfigFile))
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// --- Dependency Initialization ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, contentModel, imageModel, err := newBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("cannot initialize AI backend", zap.Error(err))
	}

	generator := ai.NewGenerator(backend, ai.Options{
		ContentModel:    contentModel,
		ImageModel:      imageModel,
		ValidateContent: cfg.ValidateGenerated,
		Logger:          logger,
	})

	icons, err := preview.LoadIconDir(cfg.IconOverrideDir)
	if err != nil {
		logger.Fatal("cannot load icon overrides", zap.Error(err), zap.String("dir", cfg.IconOverrideDir))
	}

	renderer, err := preview.New(preview.WithIcons(icons))
	if err != nil {
		logger.Fatal("cannot initialize preview renderer", zap.Error(err))
	}

	relayClient := relay.NewClient(cfg.FormEndpoint, logger)

	siteHandler, err := site.NewHandler(relayClient, logger, site.WithIcons(icons))
	if err != nil {
		logger.Fatal("cannot initialize site handler", zap.Error(err))
	}
	apiHandler := handlers.NewAPIHandler(generator, renderer, siteHandler, logger)

	// --- Start API Server ---
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(handlers.RequestLogger(logger))
	router.Use(gin.Recovery())

	api.RegisterRoutes(router, apiHandler, siteHandler)

	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("provider", generator.Provider()),
			zap.String("content_model", contentModel),
			zap.String("image_model", imageModel),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen error", zap.Error(err))
		}
		logger.Info("server has stopped listening")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("received signal, shutting down", zap.String("signal", sig.String()))

	shutdownCtx, serverCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer serverCancel()

	cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", zap.Error(err))
	} else {
		logger.Info("server gracefully stopped")
	}
}

// newBackend selects the provider and resolves its default model names.
func newBackend(ctx context.Context, cfg config.Config) (ai.Backend, string, string, error) {
	contentModel, imageModel := cfg.ContentModelID, cfg.ImageModelID

	switch cfg.AIProvider {
	case config.ProviderOpenAI:
		if contentModel == "" {
			contentModel = ai.DefaultOpenAIContentModel
		}
		if imageModel == "" {
			imageModel = ai.DefaultOpenAIImageModel
		}
		backend, err := ai.NewOpenAIBackend(cfg.OpenAIKey, cfg.OpenAIBaseURL)
		return backend, contentModel, imageModel, err
	default:
		if contentModel == "" {
			contentModel = ai.DefaultGeminiContentModel
		}
		if imageModel == "" {
			imageModel = ai.DefaultGeminiImageModel
		}
		backend, err := ai.NewGeminiBackend(ctx, cfg.GeminiAPIKey)
		return backend, contentModel, imageModel, err
	}
}
