package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"tubescribe/api-gateway/config"
	"tubescribe/api-gateway/internal/store"
	"tubescribe/api-gateway/models"
)

// fakeMetadata counts calls and returns fixed metadata.
type fakeMetadata struct {
	calls int
	meta  models.VideoMetadata
	err   error
}

func (f *fakeMetadata) FetchMetadata(_ context.Context, _ string) (models.VideoMetadata, error) {
	f.calls++
	if f.err != nil {
		return models.VideoMetadata{}, f.err
	}
	return f.meta, nil
}

// fakeTranscripts counts calls, records the language hint and returns fixed
// segments.
type fakeTranscripts struct {
	calls    int
	lang     string
	segments []models.TranscriptSegment
	err      error
}

func (f *fakeTranscripts) FetchSegments(_ context.Context, _ string, lang string) ([]models.TranscriptSegment, error) {
	f.calls++
	f.lang = lang
	if f.err != nil {
		return nil, f.err
	}
	return f.segments, nil
}

// fakeAssistant answers from canned values and persists chat turns like the
// real service does.
type fakeAssistant struct {
	st      store.Store
	summary string
	answer  string
	err     error
}

func (f *fakeAssistant) Summarize(_ context.Context, _ *models.Transcript) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func (f *fakeAssistant) Chat(ctx context.Context, transcript *models.Transcript, message string) (*models.ChatMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.st.CreateChatMessage(ctx, transcript.ID, message, f.answer)
}

type testEnv struct {
	app         *fiber.App
	store       store.Store
	metadata    *fakeMetadata
	transcripts *fakeTranscripts
	assistant   *fakeAssistant
}

func newTestEnv() *testEnv {
	st := store.NewMemStorage()
	metadata := &fakeMetadata{meta: models.VideoMetadata{
		Title:       "Test Video",
		ChannelName: "Test Channel",
		Duration:    "3:25",
	}}
	transcripts := &fakeTranscripts{segments: []models.TranscriptSegment{
		{Start: 0, Duration: 2, Text: "hello"},
		{Start: 2, Duration: 3, Text: "world"},
	}}
	assistant := &fakeAssistant{st: st, summary: "a summary", answer: "an answer"}

	h := NewApplicationHandler(config.NewLogger("error"), st, metadata, transcripts, assistant)

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/extract-transcript", h.ExtractTranscript)
	api.Post("/transcripts", h.CreateTranscript)
	api.Get("/transcripts/:id", h.GetTranscript)
	api.Get("/transcripts/:id/summary", h.GetTranscriptSummary)
	api.Get("/transcripts/:id/chat", h.ListChatMessages)
	api.Post("/chat", h.PostChatMessage)
	api.Get("/get-youtube-data", h.GetYouTubeData)

	return &testEnv{app: app, store: st, metadata: metadata, transcripts: transcripts, assistant: assistant}
}

func (e *testEnv) request(t *testing.T, method, target, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func decodeJSON(t *testing.T, data []byte, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}

var errProviderDown = errors.New("provider unavailable")
