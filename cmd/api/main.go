package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/pflag"

	"alfredoptarigan/resume-insights/internal/config"
	"alfredoptarigan/resume-insights/internal/controllers"
	"alfredoptarigan/resume-insights/internal/handlers"
	"alfredoptarigan/resume-insights/internal/logger"
	"alfredoptarigan/resume-insights/internal/services"
)

// Room for the multipart envelope around a maximum-size file.
const multipartOverhead = 1 << 20

func main() {
	envFile := pflag.String("env-file", ".env", "path to the .env file")
	pflag.Parse()

	// Load configuration
	cfg := config.Load(*envFile)
	logger.Init(cfg.LoggerConfig())
	if !cfg.EnvFileLoaded {
		logger.Info().Str("file", cfg.EnvFile).Msg("No .env file found. Using environment and defaults.")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("❌ Invalid configuration")
	}
	logger.Info().Str("env", cfg.Server.Env).Str("provider", cfg.LLM.Provider).Msg("✅ Config loaded successfully")

	// Initialize generator
	generator, err := newGenerator(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to initialize text generator")
	}
	logger.Info().Str("provider", cfg.LLM.Provider).Msg("✅ Text generator initialized successfully")

	// Initialize services
	deps := controllers.Dependencies{
		Extractor: services.NewExtractor(services.NewPDFParserService(), services.NewDOCXParserService()),
		Prompts:   services.NewPromptBuilder(),
		Generator: generator,
	}
	uploads := services.NewUploadService(cfg.Storage.MaxFileSize)
	logger.Info().Msg("✅ Services initialized successfully")

	// Initialize handlers, one controller per task
	resumeHandler := handlers.NewResumeHandler(controllers.NewResumeController(deps), uploads)
	atsHandler := handlers.NewATSHandler(controllers.NewATSController(deps), uploads)
	matchHandler := handlers.NewMatchHandler(controllers.NewMatchController(deps), uploads)
	skillPathHandler := handlers.NewSkillPathHandler(controllers.NewSkillPathController(deps))
	logger.Info().Msg("✅ Handlers initialized")

	// Create Fiber app. No read/write timeouts: a generation call may take
	// as long as the upstream model needs.
	app := fiber.New(fiber.Config{
		AppName:      "Resume Insights API",
		BodyLimit:    int(cfg.Storage.MaxFileSize) + multipartOverhead,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"provider": cfg.LLM.Provider,
			"time":     time.Now(),
		})
	})

	resumeHandler.Register(api)
	atsHandler.Register(api)
	matchHandler.Register(api)
	skillPathHandler.Register(api)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Insights API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/resume/upload",
				"POST /api/v1/resume/analyze",
				"POST /api/v1/ats/upload",
				"POST /api/v1/ats/score",
				"POST /api/v1/match/upload",
				"POST /api/v1/match",
				"POST /api/v1/skill-path",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info().Msg("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info().Str("addr", addr).Msg("🚀 Server starting")
	logger.Info().Msgf("📖 API Documentation: http://localhost%s", addr)

	if err := app.Listen(addr); err != nil {
		logger.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}

func newGenerator(ctx context.Context, cfg *config.Config) (services.Generator, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return services.NewGeminiGenerator(ctx, services.GeminiOptions{
			APIKey: cfg.LLM.Gemini.APIKey,
			Model:  cfg.LLM.Gemini.Model,
		})
	case config.ProviderOpenRouter:
		return services.NewOpenRouterGenerator(services.OpenRouterOptions{
			APIKey:  cfg.LLM.OpenRouter.APIKey,
			BaseURL: cfg.LLM.OpenRouter.BaseURL,
			Model:   cfg.LLM.OpenRouter.Model,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.LLM.Provider)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := handlers.StatusFor(err)

	message := err.Error()
	var e *fiber.Error
	if !errors.As(err, &e) && code >= fiber.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		message = "internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}
