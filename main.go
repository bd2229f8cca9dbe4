package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"tubescribe/api-gateway/config"
	"tubescribe/api-gateway/handlers"
	"tubescribe/api-gateway/internal/assistant"
	"tubescribe/api-gateway/internal/llm"
	"tubescribe/api-gateway/internal/store"
	"tubescribe/api-gateway/internal/youtube"
	"tubescribe/api-gateway/middleware"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	st, err := buildStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize store: %v", err)
	}

	metadata := buildMetadataProvider(cfg, logger)
	transcripts, err := buildTranscriptProvider(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize transcript provider: %v", err)
	}

	llmClient, err := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, "", cfg.OpenAI.Timeout)
	if err != nil {
		logger.Fatalf("Failed to initialize LLM client: %v", err)
	}

	asst := assistant.NewService(llmClient, st, logger, cfg.OpenAI.MaxContextChars)
	h := handlers.NewApplicationHandler(logger, st, metadata, transcripts, asst)

	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(middleware.RequestLogger(logger))

	// Health check route
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	api := app.Group("/api")
	api.Post("/extract-transcript", h.ExtractTranscript)
	api.Post("/transcripts", h.CreateTranscript)
	api.Get("/transcripts/:id", h.GetTranscript)
	api.Get("/transcripts/:id/summary", h.GetTranscriptSummary)
	api.Get("/transcripts/:id/chat", h.ListChatMessages)
	api.Post("/chat", h.PostChatMessage)
	api.Get("/get-youtube-data", h.GetYouTubeData)

	logger.Infof("Starting API Gateway on %s...", cfg.Server.Address)
	log.Fatal(app.Listen(cfg.Server.Address))
}

func buildStore(cfg *config.Config, logger *logrus.Logger) (store.Store, error) {
	var st store.Store
	switch cfg.Storage.Backend {
	case "supabase":
		supaStore, err := store.NewSupabaseStore(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey)
		if err != nil {
			return nil, err
		}
		st = supaStore
	default:
		logger.Info("Using in-memory transcript store")
		st = store.NewMemStorage()
	}

	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client, err := store.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 5*time.Second)
		if err != nil {
			return nil, err
		}
		logger.Infof("Summary cache backed by redis at %s", cfg.Redis.Addr)
		st = store.WithRedisSummaryCache(st, client)
	}
	return st, nil
}

func buildMetadataProvider(cfg *config.Config, logger *logrus.Logger) youtube.MetadataProvider {
	if cfg.YouTube.APIKey == "" {
		logger.Warn("YOUTUBE_API_KEY not set, falling back to placeholder video metadata")
		return youtube.NewStaticMetadata()
	}
	provider, err := youtube.NewDataAPIClient(cfg.YouTube.APIKey, "", cfg.YouTube.Timeout)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize Data API client, falling back to placeholder metadata")
		return youtube.NewStaticMetadata()
	}
	return provider
}

func buildTranscriptProvider(cfg *config.Config) (youtube.TranscriptProvider, error) {
	if cfg.YouTube.TranscriptProvider == "timedtext" {
		return youtube.NewTimedTextClient("", cfg.YouTube.Language, cfg.YouTube.Timeout), nil
	}
	return youtube.NewSearchAPIClient(cfg.YouTube.SearchAPIKey, "", cfg.YouTube.Language, cfg.YouTube.Timeout)
}
