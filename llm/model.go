package llm

import (
	"context"
	"errors"
)

// Role identifies the author of a conversation message
type Role string

const (
	// RoleUser marks messages authored by the end user
	RoleUser Role = "user"
	// RoleAssistant marks messages authored by the assistant
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged turn handed to the chat capability
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ErrEmptyCompletion is returned when the provider answers with no choices
var ErrEmptyCompletion = errors.New("llm: model returned an empty completion")

// Model is the language-model capability consumed by the pipeline.
// Chat is a plain completion over ordered turns; Vision additionally
// attaches one image as a data URI.
type Model interface {
	Chat(ctx context.Context, systemPrompt string, messages []Message) (string, error)
	Vision(ctx context.Context, systemPrompt, prompt, imageDataURI string) (string, error)
}
