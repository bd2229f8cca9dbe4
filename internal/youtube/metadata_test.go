package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"PT1H2M3S", 3723},
		{"PT15M33S", 933},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT1M", 60},
		{"", 0},
		{"garbage", 0},
		{"P1DT2H", 0},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := parseISODuration(tt.token); got != tt.want {
				t.Errorf("parseISODuration(%q) = %d, want %d", tt.token, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "N/A"},
		{45, "0:45"},
		{933, "15:33"},
		{3723, "1:02:03"},
		{3600, "1:00:00"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestPickThumbnail(t *testing.T) {
	thumbnails := map[string]dataAPIThumbnail{
		"default": {URL: "https://i.ytimg.com/default.jpg"},
		"medium":  {URL: "https://i.ytimg.com/medium.jpg"},
		"high":    {URL: "https://i.ytimg.com/high.jpg"},
	}
	if got := pickThumbnail(thumbnails, "abc12345678"); got != "https://i.ytimg.com/high.jpg" {
		t.Errorf("pickThumbnail = %q, want high variant", got)
	}

	thumbnails["maxres"] = dataAPIThumbnail{URL: "https://i.ytimg.com/maxres.jpg"}
	if got := pickThumbnail(thumbnails, "abc12345678"); got != "https://i.ytimg.com/maxres.jpg" {
		t.Errorf("pickThumbnail = %q, want maxres variant", got)
	}

	if got := pickThumbnail(nil, "abc12345678"); got != "https://img.youtube.com/vi/abc12345678/maxresdefault.jpg" {
		t.Errorf("pickThumbnail fallback = %q", got)
	}
}

func TestDataAPIClientFetchMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in request: %s", r.URL.String())
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [{
				"snippet": {
					"title": "Test Video",
					"channelTitle": "Test Channel",
					"defaultAudioLanguage": "ko",
					"thumbnails": {
						"high": {"url": "https://i.ytimg.com/high.jpg"},
						"default": {"url": "https://i.ytimg.com/default.jpg"}
					}
				},
				"contentDetails": {"duration": "PT15M33S"}
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewDataAPIClient("test-key", server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewDataAPIClient: %v", err)
	}

	meta, err := client.FetchMetadata(context.Background(), "abc12345678")
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if meta.Title != "Test Video" || meta.ChannelName != "Test Channel" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Duration != "15:33" || meta.DurationSeconds != 933 {
		t.Errorf("duration = %q (%d s), want 15:33 (933 s)", meta.Duration, meta.DurationSeconds)
	}
	if meta.ThumbnailURL != "https://i.ytimg.com/high.jpg" {
		t.Errorf("thumbnail = %q, want high variant", meta.ThumbnailURL)
	}
	if meta.Language != "ko" {
		t.Errorf("language = %q, want ko", meta.Language)
	}
}

func TestDataAPIClientLanguageFallsBackToEnglish(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [{"snippet": {"title": "T", "channelTitle": "C"}, "contentDetails": {"duration": "PT1M"}}]}`))
	}))
	defer server.Close()

	client, _ := NewDataAPIClient("test-key", server.URL, 5*time.Second)
	meta, err := client.FetchMetadata(context.Background(), "abc12345678")
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if meta.Language != "en" {
		t.Errorf("language = %q, want en", meta.Language)
	}
}

func TestDataAPIClientErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "quota exceeded",
			status:  http.StatusForbidden,
			body:    `{"error": {"code": 403, "message": "quota", "errors": [{"reason": "quotaExceeded"}]}}`,
			wantErr: ErrQuotaExceeded,
		},
		{
			name:    "invalid key",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": 400, "message": "bad key", "errors": [{"reason": "keyInvalid"}]}}`,
			wantErr: ErrInvalidAPIKey,
		},
		{
			name:    "video not found",
			status:  http.StatusOK,
			body:    `{"items": []}`,
			wantErr: ErrVideoNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := NewDataAPIClient("test-key", server.URL, 5*time.Second)
			_, err := client.FetchMetadata(context.Background(), "abc12345678")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FetchMetadata error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewDataAPIClientRequiresKey(t *testing.T) {
	if _, err := NewDataAPIClient("", "", time.Second); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("NewDataAPIClient(\"\") error = %v, want ErrMissingAPIKey", err)
	}
}

func TestStaticMetadataNeverFails(t *testing.T) {
	meta, err := NewStaticMetadata().FetchMetadata(context.Background(), "abc12345678")
	if err != nil {
		t.Fatalf("FetchMetadata: %v", err)
	}
	if meta.Title != "Unknown Title" || meta.ChannelName != "Unknown Channel" || meta.Duration != "N/A" {
		t.Errorf("unexpected placeholders: %+v", meta)
	}
	if len(meta.AvailableLanguages) != 0 {
		t.Errorf("available languages = %v, want empty", meta.AvailableLanguages)
	}
	if meta.ThumbnailURL != "https://img.youtube.com/vi/abc12345678/maxresdefault.jpg" {
		t.Errorf("thumbnail = %q", meta.ThumbnailURL)
	}
}
