// Package assistant implements the transcript-grounded LLM operations:
// one-shot summarization and multi-turn chat.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"tubescribe/api-gateway/internal/llm"
	"tubescribe/api-gateway/internal/store"
	"tubescribe/api-gateway/internal/youtube"
	"tubescribe/api-gateway/models"
)

var (
	// ErrSummarizationFailed wraps LLM failures during summary generation.
	ErrSummarizationFailed = errors.New("failed to generate transcript summary")
	// ErrChatFailed wraps LLM failures during a chat turn.
	ErrChatFailed = errors.New("failed to answer chat message")
)

const summarySystemPrompt = "You are an AI assistant that provides concise and informative summaries " +
	"of video transcripts. Focus on the main topics, key points, and important insights."

const chatSystemPromptFormat = "You are an AI assistant that answers questions about a YouTube video " +
	"using only its transcript. Answer strictly from the transcript content below. If the transcript " +
	"does not contain the information needed to answer, say so explicitly instead of guessing.\n\n" +
	"Transcript:\n%s"

// Service answers summary and chat requests grounded in a stored transcript.
// The entire rendered transcript is sent as context on every call; there is
// no retrieval or chunking step, only the optional character guard.
type Service struct {
	llm             llm.Provider
	store           store.Store
	logger          *logrus.Logger
	maxContextChars int
}

// NewService wires the assistant. maxContextChars truncates the rendered
// context when positive; 0 disables the guard.
func NewService(provider llm.Provider, st store.Store, logger *logrus.Logger, maxContextChars int) *Service {
	return &Service{
		llm:             provider,
		store:           st,
		logger:          logger,
		maxContextChars: maxContextChars,
	}
}

// Summarize returns the transcript's summary, generating and caching it on
// first request. Subsequent calls return the cached text without touching the
// LLM.
func (s *Service) Summarize(ctx context.Context, transcript *models.Transcript) (string, error) {
	cached, ok, err := s.store.GetSummary(ctx, transcript.ID)
	if err != nil {
		return "", err
	}
	if ok {
		s.logger.WithField("transcript_id", transcript.ID).Debug("Returning cached summary")
		return cached, nil
	}

	content, err := s.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: summarySystemPrompt},
			{Role: "user", Content: fmt.Sprintf(
				"Please provide a comprehensive summary of this video transcript from %q:\n\n%s",
				transcript.Title, s.renderContext(transcript.Segments))},
		},
		Temperature: 0.5,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}
	if content == "" {
		return "", fmt.Errorf("%w: model returned empty content", ErrSummarizationFailed)
	}

	if err := s.store.SaveSummary(ctx, transcript.ID, content); err != nil {
		// The summary is still good; the next request just regenerates it.
		s.logger.WithField("transcript_id", transcript.ID).WithError(err).Warn("Failed to cache summary")
	}
	return content, nil
}

// Chat answers one user message grounded in the transcript and persists the
// turn.
func (s *Service) Chat(ctx context.Context, transcript *models.Transcript, message string) (*models.ChatMessage, error) {
	content, err := s.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: "system", Content: fmt.Sprintf(chatSystemPromptFormat, s.renderContext(transcript.Segments))},
			{Role: "user", Content: message},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChatFailed, err)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: model returned empty content", ErrChatFailed)
	}

	turn, err := s.store.CreateChatMessage(ctx, transcript.ID, message, content)
	if err != nil {
		return nil, err
	}
	return turn, nil
}

func (s *Service) renderContext(segments []models.TranscriptSegment) string {
	rendered := youtube.RenderContext(segments)
	if s.maxContextChars > 0 && len(rendered) > s.maxContextChars {
		rendered = rendered[:s.maxContextChars] + "\n[transcript truncated]"
	}
	return rendered
}
