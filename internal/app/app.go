// Package app wires configuration, transports, adapters and the local
// provider into an orchestrator.
package app

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/abhisek/studyai/internal/llm"
	"github.com/abhisek/studyai/internal/localnlp"
	"github.com/abhisek/studyai/internal/orchestrator"
	"github.com/abhisek/studyai/internal/remote"
	"github.com/abhisek/studyai/internal/store"
)

// Options configures New.
type Options struct {
	Config llm.Config

	// EventRepo, when set, receives LLM request events and invocation
	// audit records.
	EventRepo store.EventRepo

	// Logger defaults to the logrus standard logger.
	Logger log.FieldLogger
}

// New builds the orchestrator. Backends without an API key are wired as
// unavailable rather than failing construction.
func New(opts Options) (*orchestrator.Orchestrator, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	if err := opts.Config.Validate(); err != nil {
		logger.WithError(err).Warn("invalid AI configuration")
	}

	openAITransport, err := transport(llm.ProviderOpenAI, opts, logger)
	if err != nil {
		return nil, err
	}
	groqTransport, err := transport(llm.ProviderGroq, opts, logger)
	if err != nil {
		return nil, err
	}

	orchOpts := []orchestrator.Option{orchestrator.WithLogger(logger)}
	if opts.EventRepo != nil {
		orchOpts = append(orchOpts, orchestrator.WithRecorder(opts.EventRepo))
	}

	return orchestrator.New(
		remote.New(remote.OpenAIConfig(), openAITransport),
		remote.New(remote.GroqConfig(), groqTransport),
		localnlp.New(),
		orchestrator.FromLLMConfig(opts.Config),
		orchOpts...,
	), nil
}

// transport returns nil (not an error) when the backend has no API key.
func transport(name string, opts Options, logger log.FieldLogger) (llm.Provider, error) {
	p, err := llm.NewProvider(name, opts.Config, opts.EventRepo)
	if errors.Is(err, llm.ErrMissingAPIKey) {
		logger.WithField("provider", name).Debug("API key not set, provider disabled")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create %s transport: %w", name, err)
	}
	return p, nil
}
