package models

import "time"

// TranscriptSegment represents a single caption line of a video transcript.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Transcript is the canonical stored record for one extracted video.
// It is immutable once created; segments are fixed at creation time.
type Transcript struct {
	ID           int                 `json:"id"`
	YoutubeURL   string              `json:"youtubeUrl"`
	VideoID      string              `json:"videoId"`
	Title        string              `json:"title"`
	ChannelName  string              `json:"channelName"`
	Duration     string              `json:"duration"`
	ThumbnailURL *string             `json:"thumbnailUrl"`
	Segments     []TranscriptSegment `json:"segments"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// InsertTranscript carries the fields of a Transcript before the store
// assigns an id and creation timestamp.
type InsertTranscript struct {
	YoutubeURL   string              `json:"youtubeUrl"`
	VideoID      string              `json:"videoId" validate:"required"`
	Title        string              `json:"title" validate:"required"`
	ChannelName  string              `json:"channelName"`
	Duration     string              `json:"duration"`
	ThumbnailURL *string             `json:"thumbnailUrl"`
	Segments     []TranscriptSegment `json:"segments"`
}
