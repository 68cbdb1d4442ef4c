// Package learning defines the operation contract every AI provider
// implements: the eight pedagogical operations, their input and output
// shapes, and the provider kinds and statuses recorded for audit.
package learning

import (
	"context"
	"strings"
)

// Provider produces pedagogical content. Remote variants talk to an LLM;
// the local variant is deterministic and always available.
type Provider interface {
	// Kind identifies the provider in outcomes and audit records.
	Kind() ProviderKind

	// HasProvider reports whether the provider is configured. It never
	// performs I/O.
	HasProvider() bool

	AnalyzeLesson(ctx context.Context, text string) (*LessonAnalysis, error)
	GenerateMaterials(ctx context.Context, text string, weakTopics []string) (*StudyMaterials, error)
	GenerateQuizQuestions(ctx context.Context, text string, count int, qc QuizContext) ([]QuizQuestion, error)
	EvaluateQuizSubmission(ctx context.Context, answers []AnswerStat, ec EvaluationContext) (*Evaluation, error)
	SummarizeWeakTopics(ctx context.Context, weakTopics []string, score float64, lessonTitle string) (string, error)
	GenerateOnboardingTip(ctx context.Context, role, name, grade string) (string, error)
	TagQuestionConcept(ctx context.Context, questionText, lessonContext, subject string) (*ConceptTags, error)
	AnalyzeMisconception(ctx context.Context, questionText, correctAnswer, studentAnswer string) (*Misconception, error)
}

// ProviderKind is the audit identifier of a provider.
type ProviderKind string

const (
	ProviderOpenAI ProviderKind = "OPENAI"
	ProviderGroq   ProviderKind = "GROQ_FREE"
	ProviderLocal  ProviderKind = "LOCAL_NLP"
)

// Label returns the human-readable provider name used in outcome messages.
func (k ProviderKind) Label() string {
	switch k {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderGroq:
		return "Groq"
	case ProviderLocal:
		return "Local NLP"
	default:
		return string(k)
	}
}

// Status classifies how an invocation (or a single provider attempt) ended.
type Status string

const (
	StatusSuccess  Status = "SUCCESS"
	StatusFailed   Status = "FAILED"
	StatusFallback Status = "FALLBACK"
	StatusSkipped  Status = "SKIPPED"
)

// Difficulty is the estimated difficulty of a lesson.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty matches s case-insensitively against the known levels.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToUpper(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	}
	return "", false
}

// LessonAnalysis is the result of AnalyzeLesson.
type LessonAnalysis struct {
	Topics                []string   `json:"topics"`
	KeyConcepts           []string   `json:"keyConcepts"`
	Difficulty            Difficulty `json:"difficulty"`
	EstimatedStudyMinutes int        `json:"estimatedStudyMinutes"`
	LearningObjectives    []string   `json:"learningObjectives"`
}

// Flashcard is a single front/back study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// StudyMaterials is the result of GenerateMaterials.
type StudyMaterials struct {
	Summary      string      `json:"summary"`
	Flashcards   []Flashcard `json:"flashcards"`
	Explanations []string    `json:"explanations"`
	Examples     []string    `json:"examples"`
}

// QuizContext carries lesson metadata that steers quiz generation.
type QuizContext struct {
	Title       string   `json:"title,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	KeyConcepts []string `json:"keyConcepts,omitempty"`
	WeakTopics  []string `json:"weakTopics,omitempty"`
}

// QuizQuestion is a multiple-choice question. CorrectAnswer is always one
// of Options.
type QuizQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuestionRef identifies the question an answer belongs to, together with
// the concept tags recorded for it earlier.
type QuestionRef struct {
	Text          string   `json:"text"`
	CorrectAnswer string   `json:"correctAnswer"`
	ConceptTags   []string `json:"conceptTags,omitempty"`
}

// AnswerStat is one answered question in a quiz submission.
type AnswerStat struct {
	Question       QuestionRef `json:"question"`
	StudentAnswer  string      `json:"studentAnswer"`
	IsCorrect      bool        `json:"isCorrect"`
	ResponseTimeMs int64       `json:"responseTimeMs"`
}

// EvaluationContext names the lesson a submission belongs to.
type EvaluationContext struct {
	LessonTitle   string `json:"lessonTitle,omitempty"`
	LessonSubject string `json:"lessonSubject,omitempty"`
}

// Evaluation is the result of EvaluateQuizSubmission.
type Evaluation struct {
	Score       float64  `json:"score"`
	WeakTopics  []string `json:"weakTopics"`
	Explanation string   `json:"explanation"`
}

// ConceptTags is the result of TagQuestionConcept.
type ConceptTags struct {
	Tags []string `json:"tags"`
	Hint string   `json:"hint"`
}

// Misconception is the result of AnalyzeMisconception.
type Misconception struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
