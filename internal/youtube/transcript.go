package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tubescribe/api-gateway/models"
)

const (
	defaultSearchAPIBaseURL = "https://www.searchapi.io/api/v1"
	defaultTimedTextBaseURL = "https://www.youtube.com"
)

// SearchAPIClient fetches transcripts through the SearchAPI
// youtube_transcripts engine.
type SearchAPIClient struct {
	apiKey      string
	baseURL     string
	defaultLang string
	httpClient  *http.Client
}

// NewSearchAPIClient creates a SearchAPI transcript provider. baseURL is only
// overridden in tests; pass "" for the real endpoint.
func NewSearchAPIClient(apiKey, baseURL, defaultLang string, timeout time.Duration) (*SearchAPIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: SEARCH_API_KEY", ErrMissingAPIKey)
	}
	if baseURL == "" {
		baseURL = defaultSearchAPIBaseURL
	}
	return &SearchAPIClient{
		apiKey:      apiKey,
		baseURL:     baseURL,
		defaultLang: defaultLang,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

type searchAPIResponse struct {
	Transcripts []struct {
		Text     string  `json:"text"`
		Start    float64 `json:"start"`
		Duration float64 `json:"duration"`
	} `json:"transcripts"`
	Error string `json:"error"`
}

// FetchSegments queries the youtube_transcripts engine and maps each provider
// record into a TranscriptSegment, trimming text whitespace.
func (c *SearchAPIClient) FetchSegments(ctx context.Context, videoID string, lang string) ([]models.TranscriptSegment, error) {
	if lang == "" {
		lang = c.defaultLang
	}

	query := url.Values{}
	query.Set("engine", "youtube_transcripts")
	query.Set("video_id", videoID)
	query.Set("api_key", c.apiKey)
	if lang != "" {
		query.Set("lang", lang)
	}
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call searchapi: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read searchapi response: %w", err)
	}

	var payload searchAPIResponse
	if resp.StatusCode != http.StatusOK {
		// Error bodies are not always JSON (proxies answer with HTML or plain
		// text), so the status code is the fallback.
		if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
			return nil, fmt.Errorf("searchapi error: %s", payload.Error)
		}
		return nil, fmt.Errorf("searchapi returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse searchapi response: %w", err)
	}

	if len(payload.Transcripts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCaptions, videoID)
	}

	segments := make([]models.TranscriptSegment, len(payload.Transcripts))
	for i, t := range payload.Transcripts {
		segments[i] = models.TranscriptSegment{
			Start:    t.Start,
			Duration: t.Duration,
			Text:     strings.TrimSpace(t.Text),
		}
	}
	return segments, nil
}

// TimedTextClient pulls captions straight from the per-video timedtext
// endpoint, with no language negotiation beyond a single track.
type TimedTextClient struct {
	baseURL     string
	defaultLang string
	httpClient  *http.Client
}

// NewTimedTextClient creates the direct-caption transcript provider. baseURL
// is only overridden in tests; pass "" for the real endpoint.
func NewTimedTextClient(baseURL, defaultLang string, timeout time.Duration) *TimedTextClient {
	if baseURL == "" {
		baseURL = defaultTimedTextBaseURL
	}
	if defaultLang == "" {
		defaultLang = "en"
	}
	return &TimedTextClient{
		baseURL:     baseURL,
		defaultLang: defaultLang,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type timedTextResponse struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// FetchSegments fetches the json3 caption track and converts provider
// milliseconds to seconds.
func (c *TimedTextClient) FetchSegments(ctx context.Context, videoID string, lang string) ([]models.TranscriptSegment, error) {
	if lang == "" {
		lang = c.defaultLang
	}

	query := url.Values{}
	query.Set("v", videoID)
	query.Set("lang", lang)
	query.Set("fmt", "json3")
	endpoint := fmt.Sprintf("%s/api/timedtext?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: this video may not have accessible captions", ErrNoCaptions)
	}

	var payload timedTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: this video may not have accessible captions", ErrNoCaptions)
	}

	var segments []models.TranscriptSegment
	for _, event := range payload.Events {
		// Events without segs carry styling/window data, not caption text.
		if len(event.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		segments = append(segments, models.TranscriptSegment{
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
			Text:     strings.TrimSpace(text.String()),
		})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: this video may not have accessible captions", ErrNoCaptions)
	}
	return segments, nil
}
