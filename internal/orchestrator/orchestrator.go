// Package orchestrator routes learning operations through the configured
// provider, degrading to Groq and then to the local provider when a tier
// is unavailable or fails. Outside strict mode every call returns usable
// data with provenance.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/llm"
	"github.com/abhisek/studyai/internal/localnlp"
	"github.com/abhisek/studyai/internal/store"
)

// ErrStrictMode is returned in strict mode when the configured provider is
// not available.
var ErrStrictMode = errors.New("AI strict mode enabled")

// Orchestrator is safe for concurrent use.
type Orchestrator struct {
	cfg    Config
	openAI learning.Provider
	groq   learning.Provider
	local  learning.Provider

	logger   logrus.FieldLogger
	recorder store.InvocationRecorder
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger used for fallback and failure reports.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithRecorder stores an audit record for every invocation.
func WithRecorder(r store.InvocationRecorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// New creates an orchestrator. Nil remote providers count as unavailable;
// a nil local provider is replaced with localnlp.New().
func New(openAI, groq, local learning.Provider, cfg Config, opts ...Option) *Orchestrator {
	if local == nil {
		local = localnlp.New()
	}
	o := &Orchestrator{
		cfg:    cfg.normalized(),
		openAI: openAI,
		groq:   groq,
		local:  local,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Config returns the normalized configuration.
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// State describes provider routing without invoking anything.
type State struct {
	Configured       string                `json:"configured"`
	Active           learning.ProviderKind `json:"active"`
	PrimaryAvailable bool                  `json:"primaryAvailable"`
	FallbackPolicy   string                `json:"fallbackPolicy"`
}

// ProviderState reports which provider would serve the next call if every
// available provider succeeded.
func (o *Orchestrator) ProviderState() State {
	primaryAvailable := o.HasPrimaryProvider()

	active := learning.ProviderLocal
	switch {
	case o.cfg.Provider == llm.ProviderLocal:
	case primaryAvailable:
		active = kindOf(o.cfg.Provider)
	case available(o.secondary()):
		active = learning.ProviderGroq
	}

	return State{
		Configured:       o.cfg.Provider,
		Active:           active,
		PrimaryAvailable: primaryAvailable,
		FallbackPolicy:   o.cfg.FallbackPolicy,
	}
}

// HasPrimaryProvider reports whether the configured provider is available.
// The local provider always is.
func (o *Orchestrator) HasPrimaryProvider() bool {
	if o.cfg.Provider == llm.ProviderLocal {
		return true
	}
	return available(o.primary())
}

func (o *Orchestrator) primary() learning.Provider {
	switch o.cfg.Provider {
	case llm.ProviderOpenAI:
		return o.openAI
	case llm.ProviderGroq:
		return o.groq
	default:
		return o.local
	}
}

// secondary returns Groq when it backs up OpenAI, nil otherwise.
func (o *Orchestrator) secondary() learning.Provider {
	if o.cfg.Provider == llm.ProviderOpenAI && o.cfg.FallbackPolicy == llm.FallbackGroqLocal {
		return o.groq
	}
	return nil
}

func available(p learning.Provider) bool {
	return p != nil && p.HasProvider()
}

// tierResult is the value of one provider call in the cascade.
type tierResult[T any] struct {
	data      T
	err       error
	latencyMs int64
}

func (r tierResult[T]) attempt(kind learning.ProviderKind) Attempt {
	a := Attempt{Provider: kind, Status: learning.StatusSuccess, LatencyMs: r.latencyMs}
	if r.err != nil {
		a.Status = learning.StatusFailed
		a.Error = r.err.Error()
	}
	return a
}

type call[T any] func(context.Context, learning.Provider) (T, error)

func runTier[T any](ctx context.Context, p learning.Provider, fn call[T]) tierResult[T] {
	start := time.Now()
	data, err := fn(ctx, p)
	return tierResult[T]{data: data, err: err, latencyMs: time.Since(start).Milliseconds()}
}

// invoke runs fn against primary, secondary and local providers in turn.
func invoke[T any](ctx context.Context, o *Orchestrator, feature string, fn call[T]) (*Outcome[T], error) {
	configured := o.cfg.Provider
	primaryKind := kindOf(configured)
	var (
		reasons  []string
		attempts []Attempt
	)

	if configured != llm.ProviderLocal {
		if primary := o.primary(); !available(primary) {
			reason := primaryKind.Label() + " key is missing."
			attempts = append(attempts, Attempt{Provider: primaryKind, Status: learning.StatusSkipped, Error: reason})
			if o.cfg.StrictMode {
				return nil, o.fail(ctx, feature, attempts, fmt.Errorf("%w: %s", ErrStrictMode, reason))
			}
			reasons = append(reasons, reason)
		} else {
			res := runTier(ctx, primary, fn)
			attempts = append(attempts, res.attempt(primaryKind))
			if res.err == nil {
				return finish(ctx, o, feature, &Outcome[T]{
					Data:      res.data,
					Provider:  primaryKind,
					Status:    learning.StatusSuccess,
					Message:   fmt.Sprintf("%s generated by %s.", capitalize(feature), primaryKind.Label()),
					LatencyMs: res.latencyMs,
					Attempts:  attempts,
				}), nil
			}
			if o.cfg.StrictMode {
				return nil, o.fail(ctx, feature, attempts, res.err)
			}
			reasons = append(reasons, res.err.Error())
		}

		if secondary := o.secondary(); secondary != nil {
			if !available(secondary) {
				reason := learning.ProviderGroq.Label() + " key is missing."
				attempts = append(attempts, Attempt{Provider: learning.ProviderGroq, Status: learning.StatusSkipped, Error: reason})
				reasons = append(reasons, reason)
			} else {
				res := runTier(ctx, secondary, fn)
				attempts = append(attempts, res.attempt(learning.ProviderGroq))
				if res.err == nil {
					return finish(ctx, o, feature, &Outcome[T]{
						Data:         res.data,
						Provider:     learning.ProviderGroq,
						Status:       learning.StatusFallback,
						FallbackUsed: true,
						Message: fmt.Sprintf("%s unavailable (%s). Groq fallback used for %s.",
							primaryKind.Label(), strings.Join(reasons, " "), feature),
						LatencyMs: res.latencyMs,
						Attempts:  attempts,
					}), nil
				}
				reasons = append(reasons, res.err.Error())
			}
		}
	}

	res := runTier(ctx, o.local, fn)
	attempts = append(attempts, res.attempt(learning.ProviderLocal))
	if res.err != nil {
		return nil, o.fail(ctx, feature, attempts, fmt.Errorf("local provider failed for %s: %w", feature, res.err))
	}

	out := &Outcome[T]{
		Data:      res.data,
		Provider:  learning.ProviderLocal,
		Status:    learning.StatusSuccess,
		Message:   fmt.Sprintf("Local NLP provider handled %s.", feature),
		LatencyMs: res.latencyMs,
		Attempts:  attempts,
	}
	if configured != llm.ProviderLocal {
		out.Status = learning.StatusFallback
		out.FallbackUsed = true
		out.Message = fmt.Sprintf("%s unavailable (%s). Local NLP fallback used for %s.",
			primaryKind.Label(), strings.Join(reasons, " "), feature)
	}
	return finish(ctx, o, feature, out), nil
}

// finish logs and records a produced outcome.
func finish[T any](ctx context.Context, o *Orchestrator, feature string, out *Outcome[T]) *Outcome[T] {
	entry := o.logger.WithFields(logrus.Fields{
		"feature":    feature,
		"provider":   out.Provider,
		"configured": o.cfg.Provider,
		"latency_ms": out.LatencyMs,
	})
	if out.FallbackUsed {
		entry.Warn(out.Message)
	} else {
		entry.Debug(out.Message)
	}

	o.record(ctx, out.event(feature, o.cfg.Provider))
	return out
}

// fail logs and records a strict-mode failure and returns err unchanged.
func (o *Orchestrator) fail(ctx context.Context, feature string, attempts []Attempt, err error) error {
	o.logger.WithFields(logrus.Fields{
		"feature":    feature,
		"configured": o.cfg.Provider,
	}).WithError(err).Warn("AI invocation failed")

	o.record(ctx, store.InvocationEventData{
		Feature:    feature,
		Configured: o.cfg.Provider,
		Provider:   string(kindOf(o.cfg.Provider)),
		Status:     string(learning.StatusFailed),
		Message:    err.Error(),
		Attempts:   encodeAttempts(attempts),
	})
	return err
}

func (o *Orchestrator) record(ctx context.Context, data store.InvocationEventData) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.AppendInvocation(context.WithoutCancel(ctx), data); err != nil {
		o.logger.WithError(err).WithField("feature", data.Feature).Warn("failed to record invocation")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
