package store

import (
	"context"
	"sync"
	"time"

	"tubescribe/api-gateway/models"
)

// MemStorage is the default Store: plain maps behind a mutex. It doubles as
// the test double for everything above it.
type MemStorage struct {
	mu               sync.Mutex
	transcripts      map[int]*models.Transcript
	byVideoID        map[string]int
	chats            map[int][]models.ChatMessage
	summaries        map[int]string
	nextTranscriptID int
	nextChatID       int
}

// NewMemStorage creates an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		transcripts:      make(map[int]*models.Transcript),
		byVideoID:        make(map[string]int),
		chats:            make(map[int][]models.ChatMessage),
		summaries:        make(map[int]string),
		nextTranscriptID: 1,
		nextChatID:       1,
	}
}

// CreateTranscript stores a new transcript, or returns the existing record
// when one is already stored for the same video id.
func (s *MemStorage) CreateTranscript(_ context.Context, data models.InsertTranscript) (*models.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.byVideoID[data.VideoID]; ok {
		return s.transcripts[id], nil
	}

	transcript := &models.Transcript{
		ID:           s.nextTranscriptID,
		YoutubeURL:   data.YoutubeURL,
		VideoID:      data.VideoID,
		Title:        data.Title,
		ChannelName:  data.ChannelName,
		Duration:     data.Duration,
		ThumbnailURL: data.ThumbnailURL,
		Segments:     data.Segments,
		CreatedAt:    time.Now(),
	}
	s.nextTranscriptID++
	s.transcripts[transcript.ID] = transcript
	s.byVideoID[transcript.VideoID] = transcript.ID
	return transcript, nil
}

// GetTranscript returns the transcript with the given id, or nil when absent.
func (s *MemStorage) GetTranscript(_ context.Context, id int) (*models.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transcripts[id], nil
}

// GetTranscriptByVideoID returns the transcript stored for a video id, or nil.
func (s *MemStorage) GetTranscriptByVideoID(_ context.Context, videoID string) (*models.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byVideoID[videoID]; ok {
		return s.transcripts[id], nil
	}
	return nil, nil
}

// CreateChatMessage appends a chat turn to a transcript's history.
func (s *MemStorage) CreateChatMessage(_ context.Context, transcriptID int, message, response string) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transcripts[transcriptID]; !ok {
		return nil, ErrTranscriptNotFound
	}

	turn := models.ChatMessage{
		ID:           s.nextChatID,
		TranscriptID: transcriptID,
		Message:      message,
		Response:     response,
		CreatedAt:    time.Now(),
	}
	s.nextChatID++
	s.chats[transcriptID] = append(s.chats[transcriptID], turn)
	return &turn, nil
}

// ListChatMessages returns a transcript's chat turns in creation order.
func (s *MemStorage) ListChatMessages(_ context.Context, transcriptID int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]models.ChatMessage, len(s.chats[transcriptID]))
	copy(turns, s.chats[transcriptID])
	return turns, nil
}

// GetSummary returns the cached summary for a transcript, if any.
func (s *MemStorage) GetSummary(_ context.Context, transcriptID int) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.summaries[transcriptID]
	return summary, ok, nil
}

// SaveSummary caches a transcript's summary. Entries are never invalidated.
func (s *MemStorage) SaveSummary(_ context.Context, transcriptID int, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[transcriptID] = summary
	return nil
}
