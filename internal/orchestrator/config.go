package orchestrator

import (
	"strings"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/llm"
)

// Config selects the primary provider and how failures degrade. It is
// normalized once by New and never changes afterwards.
type Config struct {
	Provider       string // "openai", "groq" or "local"
	StrictMode     bool
	FallbackPolicy string // "groq_local" or "local_only"
}

// FromLLMConfig takes the provider selection out of an llm.Config.
func FromLLMConfig(c llm.Config) Config {
	return Config{
		Provider:       c.Provider,
		StrictMode:     c.StrictMode,
		FallbackPolicy: c.FallbackPolicy,
	}
}

// normalized lowercases and trims both names and replaces unknown values
// with the defaults (openai, groq_local).
func (c Config) normalized() Config {
	provider := strings.ToLower(strings.TrimSpace(c.Provider))
	switch provider {
	case llm.ProviderOpenAI, llm.ProviderGroq, llm.ProviderLocal:
	default:
		provider = llm.ProviderOpenAI
	}

	policy := strings.ToLower(strings.TrimSpace(c.FallbackPolicy))
	switch policy {
	case llm.FallbackGroqLocal, llm.FallbackLocalOnly:
	default:
		policy = llm.FallbackGroqLocal
	}

	return Config{Provider: provider, StrictMode: c.StrictMode, FallbackPolicy: policy}
}

func kindOf(provider string) learning.ProviderKind {
	switch provider {
	case llm.ProviderGroq:
		return learning.ProviderGroq
	case llm.ProviderLocal:
		return learning.ProviderLocal
	default:
		return learning.ProviderOpenAI
	}
}
