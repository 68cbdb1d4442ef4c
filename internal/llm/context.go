package llm

import "context"

type contextKey string

const purposeKey contextKey = "studyai_llm_purpose"

// WithPurpose tags the context with the learning operation a request serves,
// e.g. "quiz-generation". The logging decorator records it per event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
