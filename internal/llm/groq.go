package llm

import (
	"fmt"
	"strings"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	defaultGroqModel   = "llama-3.1-8b-instant"
)

// GroqProvider targets Groq's OpenAI-compatible endpoint, so the go-openai
// client is reused with a different base URL.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider for the Groq API.
func NewGroqProvider(cfg ProviderConfig) (*GroqProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("groq: %w", ErrMissingAPIKey)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGroqBaseURL
	}
	return &GroqProvider{OpenAIProvider: newOpenAICompatible("groq", cfg, defaultGroqModel)}, nil
}
