package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Provider is a chat-completion transport. It sends one request and returns
// the model's raw text; decoding and validating that text is the caller's
// job because models often wrap JSON in prose or code fences.
type Provider interface {
	// Generate sends the request and returns the first choice's content.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name identifies the backend, e.g. "openai" or "groq".
	Name() string

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single chat completion.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation. Every learning operation sends exactly
	// one user message.
	Messages []Message

	// MaxTokens caps the completion length. Zero leaves it to the backend.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role, sent to the backend as-is.
type Role string

// RoleUser is the only role learning operations send.
const RoleUser Role = openai.ChatMessageRoleUser

// Response holds the model output.
type Response struct {
	// Content is the raw text of the first choice.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserPrompt builds a single-turn request.
func UserPrompt(system, prompt string, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
	}
}
