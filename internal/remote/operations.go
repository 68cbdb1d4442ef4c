package remote

import (
	"context"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/textstat"
)

const (
	defaultStudyMinutes = 30
	minStudyMinutes     = 15
	maxConceptTags      = 3
	defaultTagHint      = "Review the concept and retry."
)

// AnalyzeLesson extracts topics, key concepts, difficulty and objectives.
func (a *Adapter) AnalyzeLesson(ctx context.Context, text string) (*learning.LessonAnalysis, error) {
	prompt := buildAnalysisPrompt(a.lessonContext(text))
	data, err := a.requestJSON(ctx, "lesson-analysis", a.cfg.Timeouts.Generation, prompt, analysisSchema)
	if err != nil {
		return nil, err
	}

	difficulty, ok := learning.ParseDifficulty(data.Get("difficulty").String())
	if !ok {
		difficulty = learning.DifficultyMedium
	}
	minutes := defaultStudyMinutes
	if m := data.Get("estimatedStudyMinutes"); m.Exists() {
		minutes = int(m.Int())
	}

	return &learning.LessonAnalysis{
		Topics:                stringList(data.Get("topics")),
		KeyConcepts:           stringList(data.Get("keyConcepts")),
		Difficulty:            difficulty,
		EstimatedStudyMinutes: max(minStudyMinutes, minutes),
		LearningObjectives:    stringList(data.Get("learningObjectives")),
	}, nil
}

// GenerateMaterials produces a summary, flashcards, explanations and
// examples, focusing on weakTopics when given.
func (a *Adapter) GenerateMaterials(ctx context.Context, text string, weakTopics []string) (*learning.StudyMaterials, error) {
	prompt := buildMaterialsPrompt(a.lessonContext(text), textstat.Unique(weakTopics))
	data, err := a.requestJSON(ctx, "material-generation", a.cfg.Timeouts.Generation, prompt, materialsSchema)
	if err != nil {
		return nil, err
	}

	var cards []learning.Flashcard
	for _, item := range data.Get("flashcards").Array() {
		if !item.IsObject() {
			continue
		}
		front := strings.TrimSpace(item.Get("front").String())
		back := strings.TrimSpace(item.Get("back").String())
		if front != "" && back != "" {
			cards = append(cards, learning.Flashcard{Front: front, Back: back})
		}
	}

	return &learning.StudyMaterials{
		Summary:      strings.TrimSpace(data.Get("summary").String()),
		Flashcards:   cards,
		Explanations: stringList(data.Get("explanations")),
		Examples:     stringList(data.Get("examples")),
	}, nil
}

// GenerateQuizQuestions asks for count questions and keeps the ones that
// survive normalization, up to count.
func (a *Adapter) GenerateQuizQuestions(ctx context.Context, text string, count int, qc learning.QuizContext) ([]learning.QuizQuestion, error) {
	count = max(1, count)
	prompt := buildQuizPrompt(a.lessonContext(text), count, qc)
	data, err := a.requestJSON(ctx, "quiz-generation", a.cfg.Timeouts.Generation, prompt, quizSchema)
	if err != nil {
		return nil, err
	}

	set := learning.NewQuestionSet(count)
	for _, item := range data.Array() {
		if set.Full() {
			break
		}
		if !item.IsObject() {
			continue
		}
		q, ok := learning.NormalizeQuestion(
			item.Get("text").String(),
			stringList(item.Get("options")),
			item.Get("correctAnswer").String(),
		)
		if ok {
			set.Add(q)
		}
	}

	questions := set.Questions()
	if len(questions) == 0 {
		return nil, a.emptyResult("returned no valid questions")
	}
	return questions, nil
}

// EvaluateQuizSubmission scores a submission and names weak topics.
func (a *Adapter) EvaluateQuizSubmission(ctx context.Context, answers []learning.AnswerStat, ec learning.EvaluationContext) (*learning.Evaluation, error) {
	rows := answerRows(answers)
	if len(rows) == 0 {
		return nil, a.emptyResult("got no answer rows to evaluate")
	}

	prompt, err := buildEvaluationPrompt(rows, ec)
	if err != nil {
		return nil, err
	}
	data, err := a.requestJSON(ctx, "quiz-evaluation", a.cfg.Timeouts.Evaluation, prompt, evaluationSchema)
	if err != nil {
		return nil, err
	}

	score := math.Round(data.Get("score").Float()*100) / 100
	return &learning.Evaluation{
		Score:       math.Max(0, math.Min(100, score)),
		WeakTopics:  stringList(data.Get("weakTopics")),
		Explanation: strings.TrimSpace(data.Get("explanation").String()),
	}, nil
}

// SummarizeWeakTopics writes a remediation narrative.
func (a *Adapter) SummarizeWeakTopics(ctx context.Context, weakTopics []string, score float64, lessonTitle string) (string, error) {
	prompt := buildSummaryPrompt(weakTopics, score, lessonTitle)
	data, err := a.requestJSON(ctx, "weak-topic-summary", a.cfg.Timeouts.Summary, prompt, summarySchema)
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(data.Get("summary").String())
	if summary == "" {
		return "", a.emptyResult("did not return a remediation summary")
	}
	return summary, nil
}

// GenerateOnboardingTip writes one short tip for a new user.
func (a *Adapter) GenerateOnboardingTip(ctx context.Context, role, name, grade string) (string, error) {
	prompt := buildTipPrompt(role, name, grade)
	data, err := a.requestJSON(ctx, "onboarding-tip", a.cfg.Timeouts.OnboardingTip, prompt, tipSchema)
	if err != nil {
		return "", err
	}

	tip := strings.TrimSpace(data.Get("tip").String())
	if tip == "" {
		return "", a.emptyResult("did not return an onboarding tip")
	}
	return tip, nil
}

// TagQuestionConcept returns up to three concept tags and a difficulty hint.
func (a *Adapter) TagQuestionConcept(ctx context.Context, questionText, lessonContext, subject string) (*learning.ConceptTags, error) {
	prompt := buildTagPrompt(questionText, lessonContext, subject, a.cfg.TagContextLimit)
	data, err := a.requestJSON(ctx, "question-tagging", a.cfg.Timeouts.Tagging, prompt, tagSchema)
	if err != nil {
		return nil, err
	}

	tags := textstat.Head(stringList(data.Get("tags")), maxConceptTags)
	hint := strings.TrimSpace(data.Get("difficultyHint").String())
	if len(tags) == 0 && hint == "" {
		return nil, a.emptyResult("did not return question tagging")
	}
	if hint == "" {
		hint = defaultTagHint
	}
	return &learning.ConceptTags{Tags: tags, Hint: hint}, nil
}

// AnalyzeMisconception labels the likely misconception behind an answer.
func (a *Adapter) AnalyzeMisconception(ctx context.Context, questionText, correctAnswer, studentAnswer string) (*learning.Misconception, error) {
	prompt := buildMisconceptionPrompt(questionText, correctAnswer, studentAnswer)
	data, err := a.requestJSON(ctx, "misconception-analysis", a.cfg.Timeouts.Tagging, prompt, misconceptionSchema)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSpace(data.Get("label").String())
	if label == "" {
		return nil, a.emptyResult("did not return a misconception label")
	}
	return &learning.Misconception{
		Label:      label,
		Confidence: math.Max(0, math.Min(1, data.Get("confidence").Float())),
	}, nil
}

// lessonContext fits lesson text into the prompt budget.
func (a *Adapter) lessonContext(text string) string {
	return textstat.Digest(text, a.cfg.PromptBudget, a.cfg.ChunkSize)
}

// stringList coerces a JSON array into trimmed, distinct, non-empty
// strings. Scalars of any type are stringified; nested values are skipped.
func stringList(r gjson.Result) []string {
	if !r.IsArray() {
		return nil
	}
	var items []string
	for _, item := range r.Array() {
		if item.IsObject() || item.IsArray() {
			continue
		}
		items = append(items, item.String())
	}
	return textstat.Unique(items)
}
