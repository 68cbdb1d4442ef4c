// Package localnlp is the deterministic, offline learning provider. It needs
// no configuration, performs no I/O and never fails, which makes it the
// terminal tier of the orchestrator's fallback chain.
package localnlp

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/textstat"
)

const (
	hardLessonRunes   = 8000
	mediumLessonRunes = 3000
)

var (
	defaultTopics      = []string{"Core Lesson Topic"}
	defaultKeyConcepts = []string{"Definition", "Application", "Practice"}
	learningObjectives = []string{
		"Understand the main lesson concepts",
		"Apply concepts to practical examples",
		"Answer comprehension questions confidently",
	}
	studyExamples = []string{
		"Solve a simple case using the lesson rule step by step.",
		"Explain the concept to another student using your own words.",
	}
)

// Provider implements learning.Provider with text heuristics only.
type Provider struct {
	rules []MisconceptionRule
}

var _ learning.Provider = (*Provider)(nil)

// New returns a local provider using the default misconception rules.
func New() *Provider {
	return &Provider{rules: DefaultMisconceptionRules()}
}

func (p *Provider) Kind() learning.ProviderKind { return learning.ProviderLocal }

// HasProvider is always true.
func (p *Provider) HasProvider() bool { return true }

// AnalyzeLesson derives topics from the leading sentences, key concepts from
// topics plus frequent keywords, and difficulty and study time from length.
func (p *Provider) AnalyzeLesson(_ context.Context, text string) (*learning.LessonAnalysis, error) {
	topics := textstat.Head(textstat.SentenceChunks(text), 6)
	keywords := textstat.Keywords(text, 12)
	keyConcepts := textstat.Head(textstat.Unique(append(append([]string{}, topics...), keywords...)), 8)

	if len(topics) == 0 {
		topics = clone(defaultTopics)
	}
	if len(keyConcepts) == 0 {
		keyConcepts = clone(defaultKeyConcepts)
	}

	length := utf8.RuneCountInString(text)
	difficulty := learning.DifficultyEasy
	switch {
	case length > hardLessonRunes:
		difficulty = learning.DifficultyHard
	case length > mediumLessonRunes:
		difficulty = learning.DifficultyMedium
	}

	minutes := int(math.Ceil(float64(max(300, length)) / 240))
	minutes = max(20, min(120, minutes))

	return &learning.LessonAnalysis{
		Topics:                topics,
		KeyConcepts:           keyConcepts,
		Difficulty:            difficulty,
		EstimatedStudyMinutes: minutes,
		LearningObjectives:    clone(learningObjectives),
	}, nil
}

// GenerateMaterials builds a summary from the first sentences and one
// flashcard per seed topic. Weak topics, when given, become the seeds.
func (p *Provider) GenerateMaterials(_ context.Context, text string, weakTopics []string) (*learning.StudyMaterials, error) {
	sentences := textstat.SentenceChunks(text)
	summary := strings.Join(textstat.Head(sentences, 5), " ")
	if summary == "" {
		summary = "This lesson introduces core concepts and practical understanding goals."
	}

	weak := textstat.Unique(weakTopics)
	seeds := textstat.Head(weak, 5)
	if len(seeds) == 0 {
		seeds = textstat.Head(textstat.Keywords(text, 10), 5)
	}
	if len(seeds) == 0 {
		seeds = textstat.Head(sentences, 4)
	}

	flashcards := make([]learning.Flashcard, 0, len(seeds))
	for _, topic := range seeds {
		flashcards = append(flashcards, learning.Flashcard{
			Front: topic,
			Back:  "Review the definition and one practical example for: " + topic,
		})
	}

	focus := "Start with the lesson objectives and map each objective to one concept."
	if len(weak) > 0 {
		focus = fmt.Sprintf("Prioritize weak topics first: %s.", strings.Join(textstat.Head(weak, 4), ", "))
	}

	return &learning.StudyMaterials{
		Summary:    summary,
		Flashcards: flashcards,
		Explanations: []string{
			"Break the lesson into smaller ideas and connect each idea with one real-life use.",
			"Compare similar concepts and identify the differences clearly.",
			focus,
		},
		Examples: clone(studyExamples),
	}, nil
}

// SummarizeWeakTopics renders a one-line remediation plan.
func (p *Provider) SummarizeWeakTopics(_ context.Context, weakTopics []string, score float64, lessonTitle string) (string, error) {
	title := strings.TrimSpace(lessonTitle)
	if title == "" {
		title = "this lesson"
	}
	focus := "core concepts and short-form revision"
	if weak := textstat.Unique(weakTopics); len(weak) > 0 {
		focus = strings.Join(textstat.Head(weak, 4), ", ")
	}
	return fmt.Sprintf("For %s (score %.2f%%), focus next on %s, then retake an adaptive quiz.", title, score, focus), nil
}

// GenerateOnboardingTip returns a fixed tip per role; students with a grade
// get a grade-specific plan.
func (p *Provider) GenerateOnboardingTip(_ context.Context, role, _, grade string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	grade = strings.TrimSpace(grade)

	switch {
	case role == "teacher":
		return "Create one group, monitor weak-topic trends weekly, and post lesson-specific feedback.", nil
	case role == "student" && grade != "":
		return fmt.Sprintf("Grade %s plan: upload one lesson, review summary + flashcards, then take the adaptive quiz.", grade), nil
	default:
		return "Upload one lesson, review generated materials, then complete the quiz and fix weak topics.", nil
	}
}

// TagQuestionConcept tags a question with its three most frequent keywords.
func (p *Provider) TagQuestionConcept(_ context.Context, questionText, lessonContext, subject string) (*learning.ConceptTags, error) {
	tags := textstat.Head(textstat.Keywords(questionText+" "+lessonContext+" "+subject, 5), 3)
	if len(tags) == 0 {
		tags = []string{"core-concept"}
	}
	return &learning.ConceptTags{
		Tags: tags,
		Hint: "Review the concept definition before selecting the best option.",
	}, nil
}

// AnalyzeMisconception runs the rule chain; the first matching rule wins.
func (p *Provider) AnalyzeMisconception(_ context.Context, questionText, correctAnswer, studentAnswer string) (*learning.Misconception, error) {
	in := &MisconceptionInput{
		Question:  questionText,
		Correct:   strings.ToLower(strings.TrimSpace(correctAnswer)),
		Student:   strings.ToLower(strings.TrimSpace(studentAnswer)),
		RawAnswer: studentAnswer,
	}
	label, confidence, _ := RunMisconceptionRules(p.rules, in)
	return &learning.Misconception{Label: label, Confidence: confidence}, nil
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
