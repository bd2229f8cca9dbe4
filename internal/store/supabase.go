package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"tubescribe/api-gateway/models"
)

// SupabaseStore persists transcripts in Supabase via PostgREST, for
// deployments that outlive a single process. Tables: transcripts,
// chat_messages, transcript_summaries. The transcripts table carries a unique
// constraint on video_id, so the insert-if-absent contract holds at the
// schema level too.
type SupabaseStore struct {
	client *supa.Client
}

// NewSupabaseStore connects to a Supabase project.
func NewSupabaseStore(projectURL, apiKey string) (*SupabaseStore, error) {
	if projectURL == "" || apiKey == "" {
		return nil, errors.New("supabase url and key are required")
	}
	client, err := supa.NewClient(projectURL, apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize supabase client: %w", err)
	}
	return &SupabaseStore{client: client}, nil
}

type transcriptRow struct {
	ID           int                        `json:"id,omitempty"`
	YoutubeURL   string                     `json:"youtube_url"`
	VideoID      string                     `json:"video_id"`
	Title        string                     `json:"title"`
	ChannelName  string                     `json:"channel_name"`
	Duration     string                     `json:"duration"`
	ThumbnailURL *string                    `json:"thumbnail_url"`
	Segments     []models.TranscriptSegment `json:"segments"`
	CreatedAt    time.Time                  `json:"created_at,omitempty"`
}

func (r transcriptRow) toModel() *models.Transcript {
	return &models.Transcript{
		ID:           r.ID,
		YoutubeURL:   r.YoutubeURL,
		VideoID:      r.VideoID,
		Title:        r.Title,
		ChannelName:  r.ChannelName,
		Duration:     r.Duration,
		ThumbnailURL: r.ThumbnailURL,
		Segments:     r.Segments,
		CreatedAt:    r.CreatedAt,
	}
}

type chatMessageRow struct {
	ID           int       `json:"id,omitempty"`
	TranscriptID int       `json:"transcript_id"`
	Message      string    `json:"message"`
	Response     string    `json:"response"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

func (r chatMessageRow) toModel() models.ChatMessage {
	return models.ChatMessage{
		ID:           r.ID,
		TranscriptID: r.TranscriptID,
		Message:      r.Message,
		Response:     r.Response,
		CreatedAt:    r.CreatedAt,
	}
}

type summaryRow struct {
	TranscriptID int    `json:"transcript_id"`
	Summary      string `json:"summary"`
}

// CreateTranscript inserts the transcript, returning the stored record for
// the video id when one already exists.
func (s *SupabaseStore) CreateTranscript(ctx context.Context, data models.InsertTranscript) (*models.Transcript, error) {
	existing, err := s.GetTranscriptByVideoID(ctx, data.VideoID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	row := transcriptRow{
		YoutubeURL:   data.YoutubeURL,
		VideoID:      data.VideoID,
		Title:        data.Title,
		ChannelName:  data.ChannelName,
		Duration:     data.Duration,
		ThumbnailURL: data.ThumbnailURL,
		Segments:     data.Segments,
	}

	body, _, err := s.client.From("transcripts").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		// The unique constraint on video_id collapses concurrent duplicate
		// inserts; surface the record the race winner stored.
		if winner, lookupErr := s.GetTranscriptByVideoID(ctx, data.VideoID); lookupErr == nil && winner != nil {
			return winner, nil
		}
		return nil, fmt.Errorf("failed to insert transcript: %w", err)
	}

	var rows []transcriptRow
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return nil, fmt.Errorf("failed to confirm transcript creation: %w", err)
	}
	return rows[0].toModel(), nil
}

// GetTranscript returns the transcript with the given id, or nil when absent.
func (s *SupabaseStore) GetTranscript(_ context.Context, id int) (*models.Transcript, error) {
	body, _, err := s.client.From("transcripts").
		Select("*", "", false).
		Eq("id", fmt.Sprintf("%d", id)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	var rows []transcriptRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse transcript row: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toModel(), nil
}

// GetTranscriptByVideoID returns the transcript stored for a video id, or nil.
func (s *SupabaseStore) GetTranscriptByVideoID(_ context.Context, videoID string) (*models.Transcript, error) {
	body, _, err := s.client.From("transcripts").
		Select("*", "", false).
		Eq("video_id", videoID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript by video id: %w", err)
	}

	var rows []transcriptRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse transcript row: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toModel(), nil
}

// CreateChatMessage appends a chat turn after verifying the transcript exists.
func (s *SupabaseStore) CreateChatMessage(ctx context.Context, transcriptID int, message, response string) (*models.ChatMessage, error) {
	transcript, err := s.GetTranscript(ctx, transcriptID)
	if err != nil {
		return nil, err
	}
	if transcript == nil {
		return nil, ErrTranscriptNotFound
	}

	row := chatMessageRow{
		TranscriptID: transcriptID,
		Message:      message,
		Response:     response,
	}
	body, _, err := s.client.From("chat_messages").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat message: %w", err)
	}

	var rows []chatMessageRow
	if err := json.Unmarshal(body, &rows); err != nil || len(rows) == 0 {
		return nil, fmt.Errorf("failed to confirm chat message creation: %w", err)
	}
	turn := rows[0].toModel()
	return &turn, nil
}

// ListChatMessages returns a transcript's chat turns in creation order.
func (s *SupabaseStore) ListChatMessages(_ context.Context, transcriptID int) ([]models.ChatMessage, error) {
	body, _, err := s.client.From("chat_messages").
		Select("*", "", false).
		Eq("transcript_id", fmt.Sprintf("%d", transcriptID)).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	var rows []chatMessageRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse chat messages: %w", err)
	}
	turns := make([]models.ChatMessage, len(rows))
	for i, r := range rows {
		turns[i] = r.toModel()
	}
	return turns, nil
}

// GetSummary returns the cached summary for a transcript, if any.
func (s *SupabaseStore) GetSummary(_ context.Context, transcriptID int) (string, bool, error) {
	body, _, err := s.client.From("transcript_summaries").
		Select("*", "", false).
		Eq("transcript_id", fmt.Sprintf("%d", transcriptID)).
		Execute()
	if err != nil {
		return "", false, fmt.Errorf("failed to fetch summary: %w", err)
	}

	var rows []summaryRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return "", false, fmt.Errorf("failed to parse summary row: %w", err)
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Summary, true, nil
}

// SaveSummary upserts a transcript's cached summary.
func (s *SupabaseStore) SaveSummary(_ context.Context, transcriptID int, summary string) error {
	row := summaryRow{TranscriptID: transcriptID, Summary: summary}
	_, _, err := s.client.From("transcript_summaries").
		Insert(row, true, "transcript_id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}
