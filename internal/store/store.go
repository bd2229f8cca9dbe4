// Package store holds transcript persistence: an in-memory implementation, a
// Supabase-backed one, and a redis overlay for cached summaries.
package store

import (
	"context"
	"errors"

	"tubescribe/api-gateway/models"
)

// ErrTranscriptNotFound is returned when a chat turn references a transcript
// id the store does not know. There is no relational constraint behind the
// in-memory store, so the invariant is enforced here.
var ErrTranscriptNotFound = errors.New("transcript not found")

// Store is the persistence boundary for transcripts, chat turns and cached
// summaries. CreateTranscript is insert-if-absent keyed on video id: a second
// create for the same video returns the already-stored record unchanged, so
// concurrent duplicate extractions cannot race past each other.
type Store interface {
	CreateTranscript(ctx context.Context, data models.InsertTranscript) (*models.Transcript, error)
	GetTranscript(ctx context.Context, id int) (*models.Transcript, error)
	GetTranscriptByVideoID(ctx context.Context, videoID string) (*models.Transcript, error)

	CreateChatMessage(ctx context.Context, transcriptID int, message, response string) (*models.ChatMessage, error)
	ListChatMessages(ctx context.Context, transcriptID int) ([]models.ChatMessage, error)

	GetSummary(ctx context.Context, transcriptID int) (string, bool, error)
	SaveSummary(ctx context.Context, transcriptID int, summary string) error
}
