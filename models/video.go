package models

// VideoMetadata is what a metadata provider knows about a video before the
// transcript is fetched. DurationSeconds is 0 when the provider cannot tell;
// Duration is the human label shown to users ("N/A" permitted).
type VideoMetadata struct {
	Title              string   `json:"title"`
	ChannelName        string   `json:"channelName"`
	Duration           string   `json:"duration"`
	DurationSeconds    int      `json:"durationSeconds"`
	ThumbnailURL       string   `json:"thumbnailUrl"`
	Language           string   `json:"language"`
	AvailableLanguages []string `json:"availableLanguages"`
}
