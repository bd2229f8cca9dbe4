package youtube

import (
	"context"
	"errors"
	"fmt"

	"tubescribe/api-gateway/models"
)

// Provider failure modes surfaced to handlers. Wrapped errors keep the
// upstream detail; callers match with errors.Is.
var (
	// ErrNoCaptions means the provider found no caption track for the video.
	ErrNoCaptions = errors.New("no captions available for this video")
	// ErrQuotaExceeded means the upstream rejected the call for quota reasons.
	ErrQuotaExceeded = errors.New("youtube api quota exceeded")
	// ErrInvalidAPIKey means the upstream rejected the configured credential.
	ErrInvalidAPIKey = errors.New("youtube api key was rejected")
	// ErrVideoNotFound means the id did not resolve to a video.
	ErrVideoNotFound = errors.New("video not found")
	// ErrMissingAPIKey is returned by constructors when a required credential
	// is absent from configuration.
	ErrMissingAPIKey = errors.New("api key not configured")
)

// MetadataProvider returns what is known about a video before its transcript
// is fetched. The rich implementation calls the YouTube Data API; the static
// one degrades to placeholders and never fails.
type MetadataProvider interface {
	FetchMetadata(ctx context.Context, videoID string) (models.VideoMetadata, error)
}

// TranscriptProvider returns the ordered caption segments of a video.
// lang is an optional hint; implementations fall back to their configured
// default when it is empty.
type TranscriptProvider interface {
	FetchSegments(ctx context.Context, videoID string, lang string) ([]models.TranscriptSegment, error)
}

// ThumbnailURL is the conventional thumbnail location keyed by video id, used
// when no provider supplies one.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}
