package llm

import (
	"fmt"

	"github.com/abhisek/studyai/internal/store"
)

// NewProvider creates the named remote transport ("openai" or "groq") from
// configuration. When eventRepo is non-nil the transport is wrapped with
// request logging. A missing API key yields an error wrapping
// ErrMissingAPIKey.
func NewProvider(name string, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider

	switch name {
	case ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		base = p
	case ProviderGroq:
		p, err := NewGroqProvider(cfg.Groq)
		if err != nil {
			return nil, err
		}
		base = p
	default:
		return nil, fmt.Errorf("unknown LLM transport: %q", name)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, eventRepo), nil
}
