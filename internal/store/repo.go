package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // LLM events: exact purpose match
	Feature string    // invocation events: exact feature match
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	RequestID string
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// InvocationEventData records how one learning operation was served.
type InvocationEventData struct {
	Feature      string
	Configured   string
	Provider     string
	Status       string
	FallbackUsed bool
	Message      string
	LatencyMs    int64
	// Attempts is the JSON-encoded list of per-tier attempts.
	Attempts string
}

// InvocationEvent is a stored invocation event.
type InvocationEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	InvocationEventData
}

// InvocationRecorder accepts invocation audit records.
type InvocationRecorder interface {
	AppendInvocation(ctx context.Context, data InvocationEventData) error
}

// EventRepo provides append and query access to the audit log.
type EventRepo interface {
	InvocationRecorder

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// QueryInvocations returns invocation events, newest first.
	QueryInvocations(ctx context.Context, opts QueryOpts) ([]InvocationEvent, error)
}
