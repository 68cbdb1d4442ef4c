package llm

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Configured provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderLocal  = "local"
)

// Fallback policies.
const (
	FallbackGroqLocal = "groq_local"
	FallbackLocalOnly = "local_only"
)

// Config holds AI provider selection and per-backend settings.
type Config struct {
	// Provider selects the primary provider: "openai", "groq" or "local".
	Provider string

	// StrictMode turns primary-provider failures into errors instead of
	// falling back.
	StrictMode bool

	// FallbackPolicy is "groq_local" (OpenAI falls back to Groq, then local)
	// or "local_only".
	FallbackPolicy string

	OpenAI ProviderConfig
	Groq   ProviderConfig
}

// ProviderConfig holds settings for one OpenAI-compatible backend.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Optional. Overrides the backend's default endpoint.

	// HTTPClient is optional; the SDK default client is used when nil.
	HTTPClient *http.Client
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:       ProviderOpenAI,
		FallbackPolicy: FallbackGroqLocal,
		OpenAI: ProviderConfig{
			Model: defaultOpenAIModel,
		},
		Groq: ProviderConfig{
			Model: defaultGroqModel,
		},
	}
}

// ConfigFromEnv builds a Config from STUDYAI_* environment variables,
// falling back to the conventional OPENAI_API_KEY and GROQ_API_KEY for
// keys and to defaults for everything else.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("STUDYAI_AI_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	if s := os.Getenv("STUDYAI_AI_STRICT_MODE"); s != "" {
		cfg.StrictMode, _ = strconv.ParseBool(s)
	}
	if f := os.Getenv("STUDYAI_AI_FALLBACK_PROVIDER"); f != "" {
		cfg.FallbackPolicy = f
	}

	cfg.OpenAI.APIKey = firstEnv("STUDYAI_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("STUDYAI_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("STUDYAI_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Groq.APIKey = firstEnv("STUDYAI_GROQ_API_KEY", "GROQ_API_KEY")
	if m := os.Getenv("STUDYAI_GROQ_MODEL"); m != "" {
		cfg.Groq.Model = m
	}
	if u := os.Getenv("STUDYAI_GROQ_BASE_URL"); u != "" {
		cfg.Groq.BaseURL = u
	}

	return cfg
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

// Validate reports provider or policy names that will be silently replaced
// by their defaults. It does not require API keys: a missing key only makes
// that provider unavailable.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case ProviderOpenAI, ProviderGroq, ProviderLocal:
	default:
		return fmt.Errorf("unknown AI provider %q (using %s)", c.Provider, ProviderOpenAI)
	}
	switch strings.ToLower(strings.TrimSpace(c.FallbackPolicy)) {
	case FallbackGroqLocal, FallbackLocalOnly:
	default:
		return fmt.Errorf("unknown fallback policy %q (using %s)", c.FallbackPolicy, FallbackGroqLocal)
	}
	return nil
}
