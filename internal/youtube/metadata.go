package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"tubescribe/api-gateway/models"
)

const defaultDataAPIBaseURL = "https://www.googleapis.com/youtube/v3"

// thumbnailPreference ranks the Data API thumbnail variants, best first.
var thumbnailPreference = []string{"maxres", "high", "medium", "default"}

// DataAPIClient fetches video metadata from the YouTube Data API v3.
type DataAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewDataAPIClient creates a Data API metadata provider. baseURL is only
// overridden in tests; pass "" for the real endpoint.
func NewDataAPIClient(apiKey, baseURL string, timeout time.Duration) (*DataAPIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_API_KEY", ErrMissingAPIKey)
	}
	if baseURL == "" {
		baseURL = defaultDataAPIBaseURL
	}
	return &DataAPIClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type dataAPIThumbnail struct {
	URL string `json:"url"`
}

type dataAPIVideoList struct {
	Items []struct {
		Snippet struct {
			Title                string                      `json:"title"`
			ChannelTitle         string                      `json:"channelTitle"`
			DefaultAudioLanguage string                      `json:"defaultAudioLanguage"`
			DefaultLanguage      string                      `json:"defaultLanguage"`
			Thumbnails           map[string]dataAPIThumbnail `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// FetchMetadata looks the video up via the videos.list endpoint.
func (c *DataAPIClient) FetchMetadata(ctx context.Context, videoID string) (models.VideoMetadata, error) {
	endpoint := fmt.Sprintf("%s/videos?part=snippet,contentDetails&id=%s&key=%s",
		c.baseURL, url.QueryEscape(videoID), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.VideoMetadata{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.VideoMetadata{}, fmt.Errorf("failed to call youtube data api: %w", err)
	}
	defer resp.Body.Close()

	var payload dataAPIVideoList
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.VideoMetadata{}, fmt.Errorf("failed to parse youtube data api response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || payload.Error != nil {
		return models.VideoMetadata{}, c.apiError(resp.StatusCode, payload)
	}

	if len(payload.Items) == 0 {
		return models.VideoMetadata{}, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	item := payload.Items[0]
	seconds := parseISODuration(item.ContentDetails.Duration)

	language := item.Snippet.DefaultAudioLanguage
	if language == "" {
		language = item.Snippet.DefaultLanguage
	}
	if language == "" {
		language = "en"
	}

	availableLanguages := []string{}
	if item.Snippet.DefaultAudioLanguage != "" {
		availableLanguages = append(availableLanguages, item.Snippet.DefaultAudioLanguage)
	}
	if item.Snippet.DefaultLanguage != "" && item.Snippet.DefaultLanguage != item.Snippet.DefaultAudioLanguage {
		availableLanguages = append(availableLanguages, item.Snippet.DefaultLanguage)
	}

	return models.VideoMetadata{
		Title:              item.Snippet.Title,
		ChannelName:        item.Snippet.ChannelTitle,
		Duration:           formatDuration(seconds),
		DurationSeconds:    seconds,
		ThumbnailURL:       pickThumbnail(item.Snippet.Thumbnails, videoID),
		Language:           language,
		AvailableLanguages: availableLanguages,
	}, nil
}

func (c *DataAPIClient) apiError(statusCode int, payload dataAPIVideoList) error {
	message := fmt.Sprintf("youtube data api returned status %d", statusCode)
	if payload.Error != nil {
		if payload.Error.Message != "" {
			message = fmt.Sprintf("youtube data api: %s", payload.Error.Message)
		}
		for _, e := range payload.Error.Errors {
			switch e.Reason {
			case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded":
				return fmt.Errorf("%w: %s", ErrQuotaExceeded, message)
			case "keyInvalid", "badRequest", "forbidden":
				return fmt.Errorf("%w: %s", ErrInvalidAPIKey, message)
			}
		}
	}
	return fmt.Errorf("%s", message)
}

// pickThumbnail returns the highest-resolution thumbnail present, falling
// back to the conventional URL keyed by video id.
func pickThumbnail(thumbnails map[string]dataAPIThumbnail, videoID string) string {
	for _, key := range thumbnailPreference {
		if t, ok := thumbnails[key]; ok && t.URL != "" {
			return t.URL
		}
	}
	return ThumbnailURL(videoID)
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISODuration converts the Data API's PT#H#M#S duration token into total
// seconds. Every component is optional; anything unparsable counts as 0.
func parseISODuration(token string) int {
	m := isoDurationPattern.FindStringSubmatch(token)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}

// formatDuration renders seconds as H:MM:SS, or M:SS when under an hour.
// Zero means the provider could not tell.
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "N/A"
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// StaticMetadata is the best-effort fallback used when no Data API key is
// configured. Its contract is to always succeed with placeholder values.
type StaticMetadata struct{}

// NewStaticMetadata returns the placeholder metadata provider.
func NewStaticMetadata() StaticMetadata {
	return StaticMetadata{}
}

// FetchMetadata returns placeholder metadata. It never fails.
func (StaticMetadata) FetchMetadata(_ context.Context, videoID string) (models.VideoMetadata, error) {
	return models.VideoMetadata{
		Title:              "Unknown Title",
		ChannelName:        "Unknown Channel",
		Duration:           "N/A",
		ThumbnailURL:       ThumbnailURL(videoID),
		AvailableLanguages: []string{},
	}, nil
}
