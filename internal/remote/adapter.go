// Package remote adapts an OpenAI-compatible chat transport to the learning
// operations. Each operation prompts for strict JSON, extracts and checks
// the payload, asks the model once to repair malformed output and
// normalizes the result.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/abhisek/studyai/internal/jsonx"
	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/llm"
)

var (
	// ErrNotConfigured is returned by every operation of an adapter built
	// without a transport (usually because the API key is missing).
	ErrNotConfigured = errors.New("provider is not configured")

	// ErrEmptyResult marks a well-formed payload that carries nothing usable,
	// such as an empty summary or no valid quiz questions.
	ErrEmptyResult = errors.New("empty result")
)

// Adapter implements learning.Provider on top of an llm.Provider.
type Adapter struct {
	cfg       Config
	transport llm.Provider
}

var _ learning.Provider = (*Adapter)(nil)

// New creates an adapter. A nil transport yields an adapter whose
// HasProvider reports false.
func New(cfg Config, transport llm.Provider) *Adapter {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.PromptBudget <= 0 {
		cfg.PromptBudget = OpenAIConfig().PromptBudget
	}
	return &Adapter{cfg: cfg, transport: transport}
}

// NewOpenAI creates an adapter for the OpenAI API. An empty apiKey yields
// an unavailable adapter; an empty model selects gpt-4o-mini.
func NewOpenAI(httpClient *http.Client, apiKey, model string) *Adapter {
	t, err := llm.NewOpenAIProvider(llm.ProviderConfig{APIKey: apiKey, Model: model, HTTPClient: httpClient})
	if err != nil {
		return New(OpenAIConfig(), nil)
	}
	return New(OpenAIConfig(), t)
}

// NewGroq creates an adapter for Groq's OpenAI-compatible API. An empty
// apiKey yields an unavailable adapter; an empty model selects
// llama-3.1-8b-instant.
func NewGroq(httpClient *http.Client, apiKey, model string) *Adapter {
	t, err := llm.NewGroqProvider(llm.ProviderConfig{APIKey: apiKey, Model: model, HTTPClient: httpClient})
	if err != nil {
		return New(GroqConfig(), nil)
	}
	return New(GroqConfig(), t)
}

// Kind returns the configured provider kind.
func (a *Adapter) Kind() learning.ProviderKind {
	return a.cfg.Kind
}

// HasProvider reports whether a transport is configured.
func (a *Adapter) HasProvider() bool {
	return a.transport != nil
}

func (a *Adapter) label() string {
	return a.cfg.Kind.Label()
}

// requestJSON runs the prompt → extract → validate → repair pipeline and
// returns the decoded payload.
func (a *Adapter) requestJSON(ctx context.Context, purpose string, timeout time.Duration, prompt string, schema *llm.Schema) (gjson.Result, error) {
	if a.transport == nil {
		return gjson.Result{}, fmt.Errorf("%s key is missing: %w", a.label(), ErrNotConfigured)
	}

	ctx = llm.WithPurpose(ctx, purpose)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	content, err := a.complete(ctx, systemPrompt, prompt)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s request failed: %w", a.label(), err)
	}

	result, err := decode(content, schema)
	if err == nil {
		return result, nil
	}
	if !a.cfg.Repair {
		return gjson.Result{}, fmt.Errorf("%s returned invalid JSON payload: %w", a.label(), err)
	}

	repaired, err := a.complete(llm.WithPurpose(ctx, purpose+"-repair"), repairPrompt, buildRepairPrompt(schema.Example, content))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s request failed: %w", a.label(), err)
	}

	result, err = decode(repaired, schema)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%s returned invalid JSON payload after repair attempt: %w", a.label(), err)
	}
	return result, nil
}

func (a *Adapter) complete(ctx context.Context, system, prompt string) (string, error) {
	req := llm.UserPrompt(system, prompt, a.cfg.Temperature)
	resp, err := a.transport.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// decode extracts the JSON payload from model output and checks its shape.
func decode(content string, schema *llm.Schema) (gjson.Result, error) {
	raw, err := jsonx.Extract(content)
	if err != nil {
		return gjson.Result{}, &llm.ErrInvalidResponse{Content: content, Err: err}
	}
	if err := llm.Validate(schema, raw); err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(raw), nil
}

func (a *Adapter) emptyResult(what string) error {
	return fmt.Errorf("%s %s: %w", a.label(), what, ErrEmptyResult)
}
