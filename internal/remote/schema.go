package remote

import "github.com/abhisek/studyai/internal/llm"

// The schemas only pin down the container shape of each payload. Field
// values are coerced leniently during normalization because models often
// quote numbers or omit optional lists.

var analysisSchema = &llm.Schema{
	Name:    "lesson-analysis",
	Example: `{"topics":["..."],"keyConcepts":["..."],"difficulty":"EASY|MEDIUM|HARD","estimatedStudyMinutes":30,"learningObjectives":["..."]}`,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics":             map[string]any{"type": "array"},
			"keyConcepts":        map[string]any{"type": "array"},
			"learningObjectives": map[string]any{"type": "array"},
		},
	},
}

var materialsSchema = &llm.Schema{
	Name:    "study-materials",
	Example: `{"summary":"...","flashcards":[{"front":"...","back":"..."}],"explanations":["..."],"examples":["..."]}`,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"flashcards":   map[string]any{"type": "array"},
			"explanations": map[string]any{"type": "array"},
			"examples":     map[string]any{"type": "array"},
		},
	},
}

var quizSchema = &llm.Schema{
	Name:       "quiz-questions",
	Example:    `[{"text":"...","options":["A","B","C","D"],"correctAnswer":"..."}]`,
	Definition: map[string]any{"type": "array"},
}

var evaluationSchema = &llm.Schema{
	Name:    "quiz-evaluation",
	Example: `{"score":78.5,"weakTopics":["topic"],"explanation":"..."}`,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"weakTopics": map[string]any{"type": "array"},
		},
	},
}

var summarySchema = &llm.Schema{
	Name:       "weak-topic-summary",
	Example:    `{"summary":"..."}`,
	Definition: map[string]any{"type": "object"},
}

var tipSchema = &llm.Schema{
	Name:       "onboarding-tip",
	Example:    `{"tip":"..."}`,
	Definition: map[string]any{"type": "object"},
}

var tagSchema = &llm.Schema{
	Name:    "concept-tags",
	Example: `{"tags":["..."],"difficultyHint":"..."}`,
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{"type": "array"},
		},
	},
}

var misconceptionSchema = &llm.Schema{
	Name:       "misconception",
	Example:    `{"label":"...","confidence":0.0}`,
	Definition: map[string]any{"type": "object"},
}
