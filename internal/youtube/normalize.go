package youtube

import (
	"strconv"
	"strings"

	"tubescribe/api-gateway/models"
)

// BuildTranscript merges provider metadata and caption segments into the
// canonical record the store persists. Pure assembly, no I/O. Segments are
// kept exactly as the provider delivered them: no merging, no reordering, no
// filtering of empty text.
func BuildTranscript(youtubeURL, videoID string, meta models.VideoMetadata, segments []models.TranscriptSegment) models.InsertTranscript {
	thumbnail := meta.ThumbnailURL
	if thumbnail == "" {
		thumbnail = ThumbnailURL(videoID)
	}
	return models.InsertTranscript{
		YoutubeURL:   youtubeURL,
		VideoID:      videoID,
		Title:        meta.Title,
		ChannelName:  meta.ChannelName,
		Duration:     meta.Duration,
		ThumbnailURL: &thumbnail,
		Segments:     segments,
	}
}

// RenderContext builds the timestamped plain-text blob handed to the language
// model: one "[start] text" line per segment, newline-joined, in segment
// order, timestamps in raw seconds. Both summarization and chat prompts embed
// this verbatim, so the format is a compatibility contract.
func RenderContext(segments []models.TranscriptSegment) string {
	lines := make([]string, len(segments))
	for i, s := range segments {
		lines[i] = "[" + strconv.FormatFloat(s.Start, 'f', -1, 64) + "] " + s.Text
	}
	return strings.Join(lines, "\n")
}
