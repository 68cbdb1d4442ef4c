package orchestrator

import (
	"encoding/json"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/store"
)

// Outcome is the result of one orchestrated operation together with its
// provenance.
type Outcome[T any] struct {
	Data         T                     `json:"data"`
	Provider     learning.ProviderKind `json:"provider"`
	Status       learning.Status       `json:"status"`
	FallbackUsed bool                  `json:"fallbackUsed"`
	Message      string                `json:"message"`
	LatencyMs    int64                 `json:"latencyMs"`

	// Attempts lists every tier touched, in order.
	Attempts []Attempt `json:"attempts"`
}

// Attempt records how a single tier fared.
type Attempt struct {
	Provider  learning.ProviderKind `json:"provider"`
	Status    learning.Status       `json:"status"` // SUCCESS, FAILED or SKIPPED
	Error     string                `json:"error,omitempty"`
	LatencyMs int64                 `json:"latencyMs"`
}

func (o *Outcome[T]) event(feature, configured string) store.InvocationEventData {
	return store.InvocationEventData{
		Feature:      feature,
		Configured:   configured,
		Provider:     string(o.Provider),
		Status:       string(o.Status),
		FallbackUsed: o.FallbackUsed,
		Message:      o.Message,
		LatencyMs:    o.LatencyMs,
		Attempts:     encodeAttempts(o.Attempts),
	}
}

func encodeAttempts(attempts []Attempt) string {
	b, err := json.Marshal(attempts)
	if err != nil {
		return "[]"
	}
	return string(b)
}
