package orchestrator

import (
	"context"

	"github.com/abhisek/studyai/internal/learning"
)

// Feature names appear in outcome messages and audit records.
const (
	FeatureLessonAnalysis   = "lesson analysis"
	FeatureMaterials        = "material generation"
	FeatureQuizGeneration   = "quiz generation"
	FeatureQuizEvaluation   = "quiz evaluation"
	FeatureWeakTopicSummary = "weak-topic summary"
	FeatureOnboardingTip    = "onboarding tip"
	FeatureConceptTagging   = "question concept tagging"
	FeatureMisconception    = "misconception analysis"
)

func (o *Orchestrator) AnalyzeLesson(ctx context.Context, text string) (*Outcome[*learning.LessonAnalysis], error) {
	return invoke(ctx, o, FeatureLessonAnalysis, func(ctx context.Context, p learning.Provider) (*learning.LessonAnalysis, error) {
		return p.AnalyzeLesson(ctx, text)
	})
}

func (o *Orchestrator) GenerateMaterials(ctx context.Context, text string, weakTopics []string) (*Outcome[*learning.StudyMaterials], error) {
	return invoke(ctx, o, FeatureMaterials, func(ctx context.Context, p learning.Provider) (*learning.StudyMaterials, error) {
		return p.GenerateMaterials(ctx, text, weakTopics)
	})
}

func (o *Orchestrator) GenerateQuizQuestions(ctx context.Context, text string, count int, qc learning.QuizContext) (*Outcome[[]learning.QuizQuestion], error) {
	return invoke(ctx, o, FeatureQuizGeneration, func(ctx context.Context, p learning.Provider) ([]learning.QuizQuestion, error) {
		return p.GenerateQuizQuestions(ctx, text, count, qc)
	})
}

func (o *Orchestrator) EvaluateQuizSubmission(ctx context.Context, answers []learning.AnswerStat, ec learning.EvaluationContext) (*Outcome[*learning.Evaluation], error) {
	return invoke(ctx, o, FeatureQuizEvaluation, func(ctx context.Context, p learning.Provider) (*learning.Evaluation, error) {
		return p.EvaluateQuizSubmission(ctx, answers, ec)
	})
}

func (o *Orchestrator) SummarizeWeakTopics(ctx context.Context, weakTopics []string, score float64, lessonTitle string) (*Outcome[string], error) {
	return invoke(ctx, o, FeatureWeakTopicSummary, func(ctx context.Context, p learning.Provider) (string, error) {
		return p.SummarizeWeakTopics(ctx, weakTopics, score, lessonTitle)
	})
}

func (o *Orchestrator) GenerateOnboardingTip(ctx context.Context, role, name, grade string) (*Outcome[string], error) {
	return invoke(ctx, o, FeatureOnboardingTip, func(ctx context.Context, p learning.Provider) (string, error) {
		return p.GenerateOnboardingTip(ctx, role, name, grade)
	})
}

func (o *Orchestrator) TagQuestionConcept(ctx context.Context, questionText, lessonContext, subject string) (*Outcome[*learning.ConceptTags], error) {
	return invoke(ctx, o, FeatureConceptTagging, func(ctx context.Context, p learning.Provider) (*learning.ConceptTags, error) {
		return p.TagQuestionConcept(ctx, questionText, lessonContext, subject)
	})
}

func (o *Orchestrator) AnalyzeMisconception(ctx context.Context, questionText, correctAnswer, studentAnswer string) (*Outcome[*learning.Misconception], error) {
	return invoke(ctx, o, FeatureMisconception, func(ctx context.Context, p learning.Provider) (*learning.Misconception, error) {
		return p.AnalyzeMisconception(ctx, questionText, correctAnswer, studentAnswer)
	})
}
