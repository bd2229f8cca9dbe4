package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubescribe/api-gateway/internal/youtube"
	"tubescribe/api-gateway/models"
)

func TestExtractTranscriptEndToEnd(t *testing.T) {
	env := newTestEnv()

	resp, body := env.request(t, http.MethodPost, "/api/extract-transcript",
		`{"youtubeUrl": "https://youtu.be/abc12345678"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var transcript models.Transcript
	decodeJSON(t, body, &transcript)
	assert.Equal(t, "abc12345678", transcript.VideoID)
	assert.Equal(t, "Test Video", transcript.Title)
	assert.Len(t, transcript.Segments, 2)
	assert.NotZero(t, transcript.ID)
	assert.False(t, transcript.CreatedAt.IsZero())
}

func TestExtractTranscriptIsIdempotent(t *testing.T) {
	env := newTestEnv()

	_, first := env.request(t, http.MethodPost, "/api/extract-transcript",
		`{"youtubeUrl": "https://youtu.be/abc12345678"}`)
	var a models.Transcript
	decodeJSON(t, first, &a)

	// Different URL shape, same video id.
	_, second := env.request(t, http.MethodPost, "/api/extract-transcript",
		`{"youtubeUrl": "https://www.youtube.com/watch?v=abc12345678"}`)
	var b models.Transcript
	decodeJSON(t, second, &b)

	assert.Equal(t, a.ID, b.ID, "same video must yield the same transcript id")
	assert.Equal(t, 1, env.transcripts.calls, "second extraction must not refetch")
}

func TestExtractTranscriptPassesDetectedLanguage(t *testing.T) {
	env := newTestEnv()
	env.metadata.meta.Language = "ko"

	resp, body := env.request(t, http.MethodPost, "/api/extract-transcript",
		`{"youtubeUrl": "https://youtu.be/abc12345678"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	assert.Equal(t, "ko", env.transcripts.lang, "detected language must reach the transcript provider")
}

func TestExtractTranscriptMetadataFailureSkipsTranscriptFetch(t *testing.T) {
	env := newTestEnv()
	env.metadata.err = errProviderDown

	resp, _ := env.request(t, http.MethodPost, "/api/extract-transcript",
		`{"youtubeUrl": "https://youtu.be/abc12345678"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, env.transcripts.calls, "no caption fetch without a language to ask for")
}

func TestExtractTranscriptRejectsMalformedURL(t *testing.T) {
	env := newTestEnv()

	resp, body := env.request(t, http.MethodPost, "/api/extract-transcript",
		`{"youtubeUrl": "https://example.com/nothing-here"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Message string `json:"message"`
	}
	decodeJSON(t, body, &payload)
	assert.Equal(t, "Invalid YouTube URL", payload.Message)
	assert.Zero(t, env.metadata.calls, "no provider may be called for a malformed URL")
	assert.Zero(t, env.transcripts.calls, "no provider may be called for a malformed URL")
}

func TestExtractTranscriptRejectsMissingURL(t *testing.T) {
	env := newTestEnv()

	resp, _ := env.request(t, http.MethodPost, "/api/extract-transcript", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, env.transcripts.calls)
}

func TestExtractTranscriptSurfacesProviderFailure(t *testing.T) {
	env := newTestEnv()
	env.transcripts.err = errProviderDown

	resp, body := env.request(t, http.MethodPost, "/api/extract-transcript",
		`{"youtubeUrl": "https://youtu.be/abc12345678"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var payload struct {
		Message string `json:"message"`
	}
	decodeJSON(t, body, &payload)
	assert.Contains(t, payload.Message, "provider unavailable")

	stored, err := env.store.GetTranscriptByVideoID(context.Background(), "abc12345678")
	require.NoError(t, err)
	assert.Nil(t, stored, "a failed extraction must not create a record")
}

func TestCreateTranscriptBypass(t *testing.T) {
	env := newTestEnv()

	resp, body := env.request(t, http.MethodPost, "/api/transcripts",
		`{"videoId": "xyz98765432", "title": "Ingested", "youtubeUrl": "https://youtu.be/xyz98765432", "segments": [{"start": 0, "duration": 1, "text": "hi"}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var transcript models.Transcript
	decodeJSON(t, body, &transcript)
	assert.Equal(t, "Ingested", transcript.Title)
	assert.NotZero(t, transcript.ID)
}

func TestGetTranscript(t *testing.T) {
	env := newTestEnv()
	created, err := env.store.CreateTranscript(context.Background(), models.InsertTranscript{
		VideoID: "abc12345678",
		Title:   "Stored",
	})
	require.NoError(t, err)

	resp, body := env.request(t, http.MethodGet, "/api/transcripts/1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var transcript models.Transcript
	decodeJSON(t, body, &transcript)
	assert.Equal(t, created.ID, transcript.ID)

	resp, body = env.request(t, http.MethodGet, "/api/transcripts/99", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var payload struct {
		Message string `json:"message"`
	}
	decodeJSON(t, body, &payload)
	assert.Equal(t, "Transcript not found", payload.Message)
}

func TestGetTranscriptSummary(t *testing.T) {
	env := newTestEnv()
	_, err := env.store.CreateTranscript(context.Background(), models.InsertTranscript{
		VideoID: "abc12345678",
		Title:   "Stored",
	})
	require.NoError(t, err)

	resp, body := env.request(t, http.MethodGet, "/api/transcripts/1/summary", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload struct {
		Summary string `json:"summary"`
	}
	decodeJSON(t, body, &payload)
	assert.Equal(t, "a summary", payload.Summary)
}

func TestGetTranscriptSummaryUnknownTranscript(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.request(t, http.MethodGet, "/api/transcripts/7/summary", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTranscriptSummaryAssistantFailure(t *testing.T) {
	env := newTestEnv()
	_, err := env.store.CreateTranscript(context.Background(), models.InsertTranscript{
		VideoID: "abc12345678",
		Title:   "Stored",
	})
	require.NoError(t, err)
	env.assistant.err = errProviderDown

	resp, _ := env.request(t, http.MethodGet, "/api/transcripts/1/summary", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestGetYouTubeData(t *testing.T) {
	env := newTestEnv()

	resp, body := env.request(t, http.MethodGet, "/api/get-youtube-data?url=https://youtu.be/abc12345678", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var payload struct {
		Success bool                 `json:"success"`
		Data    models.VideoMetadata `json:"data"`
	}
	decodeJSON(t, body, &payload)
	assert.True(t, payload.Success)
	assert.Equal(t, "Test Video", payload.Data.Title)
}

func TestGetYouTubeDataRequiresURL(t *testing.T) {
	env := newTestEnv()
	resp, _ := env.request(t, http.MethodGet, "/api/get-youtube-data", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetYouTubeDataUnknownVideo(t *testing.T) {
	env := newTestEnv()
	env.metadata.err = youtube.ErrVideoNotFound

	resp, _ := env.request(t, http.MethodGet, "/api/get-youtube-data?url=https://youtu.be/abc12345678", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetYouTubeDataUpstreamFailureIsServerError(t *testing.T) {
	env := newTestEnv()

	for _, upstreamErr := range []error{youtube.ErrQuotaExceeded, errProviderDown} {
		env.metadata.err = upstreamErr
		resp, _ := env.request(t, http.MethodGet, "/api/get-youtube-data?url=https://youtu.be/abc12345678", "")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, upstreamErr.Error())
	}
}
