package llm

// ModelCost holds per-million-token pricing for a model in USD.
type ModelCost struct {
	InputPerMTok  float64 // USD per 1M input tokens
	OutputPerMTok float64 // USD per 1M output tokens
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
func LookupCost(modelID string) *ModelCost {
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// modelCosts covers the OpenAI and Groq models the adapters are commonly
// pointed at. Unknown models show up as "?" in usage reports.
var modelCosts = map[string]ModelCost{
	// OpenAI
	"gpt-3.5-turbo":     {0.5, 1.5},
	"gpt-4.1":           {2, 8},
	"gpt-4.1-mini":      {0.4, 1.6},
	"gpt-4.1-nano":      {0.1, 0.4},
	"gpt-4o":            {2.5, 10},
	"gpt-4o-2024-08-06": {2.5, 10},
	"gpt-4o-mini":       {0.15, 0.6},
	"gpt-5-mini":        {0.25, 2},
	"gpt-5-nano":        {0.05, 0.4},

	// Groq
	"gemma2-9b-it":                  {0.2, 0.2},
	"llama-3.1-8b-instant":          {0.05, 0.08},
	"llama-3.3-70b-versatile":       {0.59, 0.79},
	"meta-llama/llama-guard-4-12b":  {0.2, 0.2},
	"openai/gpt-oss-120b":           {0.15, 0.75},
	"openai/gpt-oss-20b":            {0.1, 0.5},
	"qwen/qwen3-32b":                {0.29, 0.59},
	"moonshotai/kimi-k2-instruct":   {1, 3},
	"deepseek-r1-distill-llama-70b": {0.75, 0.99},
}
