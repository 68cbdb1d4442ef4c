package learning

import (
	"fmt"
	"slices"
	"strings"

	"github.com/abhisek/studyai/internal/textstat"
)

const (
	minOptions = 2
	maxOptions = 4
)

// ValidationError describes why a quiz question is malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.Field, e.Message)
}

// ValidateQuestion checks the structural invariants of a question: non-empty
// text, 2-4 distinct options, and a correct answer present among them.
func ValidateQuestion(q QuizQuestion) error {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Field: "text", Message: "is empty"}
	}
	if len(q.Options) < minOptions || len(q.Options) > maxOptions {
		return &ValidationError{Field: "options", Message: fmt.Sprintf("has %d entries, want %d-%d", len(q.Options), minOptions, maxOptions)}
	}
	seen := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if seen[o] {
			return &ValidationError{Field: "options", Message: fmt.Sprintf("duplicate option %q", o)}
		}
		seen[o] = true
	}
	if !seen[q.CorrectAnswer] {
		return &ValidationError{Field: "correctAnswer", Message: "is not one of the options"}
	}
	return nil
}

// NormalizeQuestion repairs a raw question: the correct answer is prepended
// when missing from the options, options are deduplicated and capped at
// four with the correct answer forced into the first slot if the cap cut it
// off. It reports false when the question cannot be salvaged.
func NormalizeQuestion(text string, options []string, correct string) (QuizQuestion, bool) {
	text = strings.TrimSpace(text)
	correct = strings.TrimSpace(correct)
	if text == "" || correct == "" {
		return QuizQuestion{}, false
	}

	opts := textstat.Unique(options)
	if !slices.Contains(opts, correct) {
		opts = append([]string{correct}, opts...)
	}
	if len(opts) < minOptions {
		return QuizQuestion{}, false
	}
	if len(opts) > maxOptions {
		opts = opts[:maxOptions]
	}
	if !slices.Contains(opts, correct) {
		opts[0] = correct
	}

	return QuizQuestion{Text: text, Options: opts, CorrectAnswer: correct}, true
}

// QuestionSet collects questions up to a limit, dropping any whose text
// matches an earlier one after lowercasing and whitespace collapsing.
type QuestionSet struct {
	limit int
	seen  map[string]bool
	items []QuizQuestion
}

// NewQuestionSet returns a set holding at most limit questions. A limit
// below one is treated as one.
func NewQuestionSet(limit int) *QuestionSet {
	return &QuestionSet{limit: max(1, limit), seen: make(map[string]bool)}
}

// Add appends q unless the set is full, q fails ValidateQuestion, or q
// duplicates an earlier question.
func (s *QuestionSet) Add(q QuizQuestion) bool {
	if s.Full() || ValidateQuestion(q) != nil {
		return false
	}
	key := textstat.Key(q.Text)
	if key == "" || s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.items = append(s.items, q)
	return true
}

// Full reports whether the limit has been reached.
func (s *QuestionSet) Full() bool {
	return len(s.items) >= s.limit
}

// Questions returns the collected questions in insertion order.
func (s *QuestionSet) Questions() []QuizQuestion {
	return s.items
}
