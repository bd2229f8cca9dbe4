package models

import "time"

// ChatMessage is one question/answer turn of a transcript-grounded chat.
// Turns are append-only and listed in creation order.
type ChatMessage struct {
	ID           int       `json:"id"`
	TranscriptID int       `json:"transcriptId"`
	Message      string    `json:"message"`
	Response     string    `json:"response"`
	CreatedAt    time.Time `json:"createdAt"`
}
