// Package llm wraps the language-model capability behind a narrow interface
// so the assistant stays testable without network access.
package llm

import "context"

// Message is one entry of a chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries one completion call. Temperature and MaxTokens are set per
// operation by the caller; summarization runs tighter than chat.
type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Provider is the interface all LLM implementations must satisfy.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
