package remote

import (
	"time"

	"github.com/abhisek/studyai/internal/learning"
)

const (
	systemPrompt = "You are an educational AI. Return only valid JSON."
	repairPrompt = "You only repair JSON and return valid JSON."

	defaultTemperature = 0.2
	defaultChunkSize   = 5000
)

// Config holds the per-backend tuning of an Adapter.
type Config struct {
	// Kind identifies the backend in errors and outcomes.
	Kind learning.ProviderKind

	// Repair enables one extra request asking the model to fix output that
	// failed to decode or validate.
	Repair bool

	// PromptBudget caps lesson text (in runes) sent in a prompt. Longer text
	// is replaced by an extractive digest of ChunkSize-rune chunks.
	PromptBudget int
	ChunkSize    int

	// TagContextLimit caps the lesson context (in runes) in tagging prompts.
	TagContextLimit int

	Temperature float64
	Timeouts    Timeouts
}

// Timeouts bounds each operation class. Zero disables the deadline.
type Timeouts struct {
	Generation    time.Duration // analysis, materials, quiz
	Evaluation    time.Duration
	Summary       time.Duration
	Tagging       time.Duration // concept tagging and misconception analysis
	OnboardingTip time.Duration
}

// OpenAIConfig returns the defaults for the OpenAI backend.
func OpenAIConfig() Config {
	return Config{
		Kind:            learning.ProviderOpenAI,
		Repair:          true,
		PromptBudget:    15000,
		ChunkSize:       defaultChunkSize,
		TagContextLimit: 900,
		Temperature:     defaultTemperature,
		Timeouts: Timeouts{
			Generation:    35 * time.Second,
			Evaluation:    20 * time.Second,
			Summary:       15 * time.Second,
			Tagging:       10 * time.Second,
			OnboardingTip: 8 * time.Second,
		},
	}
}

// GroqConfig returns the defaults for the Groq backend. Groq gets a smaller
// prompt budget and a shorter generation deadline.
func GroqConfig() Config {
	cfg := OpenAIConfig()
	cfg.Kind = learning.ProviderGroq
	cfg.PromptBudget = 12000
	cfg.TagContextLimit = 700
	cfg.Timeouts.Generation = 30 * time.Second
	return cfg
}
