package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"tubescribe/api-gateway/internal/store"
	"tubescribe/api-gateway/internal/youtube"
	"tubescribe/api-gateway/models"
)

// AssistantService defines the operations handlers expect from the grounded
// assistant. This allows for decoupling and easier testing.
type AssistantService interface {
	Summarize(ctx context.Context, transcript *models.Transcript) (string, error)
	Chat(ctx context.Context, transcript *models.Transcript, message string) (*models.ChatMessage, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Logger      *logrus.Logger
	Store       store.Store
	Metadata    youtube.MetadataProvider
	Transcripts youtube.TranscriptProvider
	Assistant   AssistantService
}

// NewApplicationHandler creates a new ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(
	logger *logrus.Logger,
	st store.Store,
	metadata youtube.MetadataProvider,
	transcripts youtube.TranscriptProvider,
	assistant AssistantService,
) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:      logger,
		Store:       st,
		Metadata:    metadata,
		Transcripts: transcripts,
		Assistant:   assistant,
	}
}
