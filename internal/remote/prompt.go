package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/textstat"
)

const (
	maxMetadataConcepts = 10
	maxHintItems        = 12
)

func buildAnalysisPrompt(lesson string) string {
	var b strings.Builder

	b.WriteString("Analyze this school lesson and return strict JSON:\n")
	b.WriteString(`{
  "topics": ["..."],
  "keyConcepts": ["..."],
  "difficulty": "EASY|MEDIUM|HARD",
  "estimatedStudyMinutes": number,
  "learningObjectives": ["..."]
}
`)
	b.WriteString("Lesson:\n")
	b.WriteString(lesson)

	return b.String()
}

func buildMaterialsPrompt(lesson string, weakTopics []string) string {
	var b strings.Builder

	if len(weakTopics) == 0 {
		b.WriteString("Generate general lesson learning materials.\n")
	} else {
		b.WriteString(fmt.Sprintf("Focus strongly on these weak topics: %s\n", strings.Join(weakTopics, ", ")))
	}
	b.WriteString(`Return strict JSON:
{
  "summary": "...",
  "flashcards": [{"front":"...","back":"..."}],
  "explanations": ["..."],
  "examples": ["..."]
}
`)
	b.WriteString("Lesson:\n")
	b.WriteString(lesson)

	return b.String()
}

func buildQuizPrompt(lesson string, count int, qc learning.QuizContext) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate %d multiple-choice questions for this exact uploaded lesson.\n", count))
	b.WriteString(`Use lesson metadata and excerpt together.
Rules:
- Questions must test understanding of concrete lesson concepts.
- Every question must be tied to a specific lesson topic.
- Include 4 options and 1 correct answer present in options.
Return strict JSON array:
[{"text":"...","options":["A","B","C","D"],"correctAnswer":"..."}]
`)
	b.WriteString(fmt.Sprintf("Lesson metadata:\n%s\n", quizMetadata(qc)))
	b.WriteString(fmt.Sprintf("Priority topics:\n%s\n", hintList(textstat.Unique(qc.Topics))))
	b.WriteString(fmt.Sprintf("Weak topics to reinforce:\n%s\n", hintList(textstat.Unique(qc.WeakTopics))))
	b.WriteString("Lesson:\n")
	b.WriteString(lesson)

	return b.String()
}

// quizMetadata renders the non-empty lesson fields, one per line.
func quizMetadata(qc learning.QuizContext) string {
	var parts []string
	if v := strings.TrimSpace(qc.Title); v != "" {
		parts = append(parts, "Title: "+v)
	}
	if v := strings.TrimSpace(qc.Subject); v != "" {
		parts = append(parts, "Subject: "+v)
	}
	if v := strings.TrimSpace(qc.Difficulty); v != "" {
		parts = append(parts, "Difficulty: "+v)
	}
	if concepts := textstat.Unique(qc.KeyConcepts); len(concepts) > 0 {
		parts = append(parts, "Key concepts: "+strings.Join(textstat.Head(concepts, maxMetadataConcepts), "; "))
	}

	if len(parts) == 0 {
		return "No metadata provided"
	}
	return strings.Join(parts, "\n")
}

func hintList(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(textstat.Head(items, maxHintItems), "; ")
}

// answerRow is the wire form of one answered question in evaluation prompts.
type answerRow struct {
	Question       string `json:"question"`
	CorrectAnswer  string `json:"correctAnswer"`
	StudentAnswer  string `json:"studentAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	ResponseTimeMs int64  `json:"responseTimeMs"`
}

// answerRows converts answers to prompt rows, skipping answers whose
// question has no text.
func answerRows(answers []learning.AnswerStat) []answerRow {
	rows := make([]answerRow, 0, len(answers))
	for _, a := range answers {
		if strings.TrimSpace(a.Question.Text) == "" {
			continue
		}
		rows = append(rows, answerRow{
			Question:       a.Question.Text,
			CorrectAnswer:  a.Question.CorrectAnswer,
			StudentAnswer:  a.StudentAnswer,
			IsCorrect:      a.IsCorrect,
			ResponseTimeMs: max(0, a.ResponseTimeMs),
		})
	}
	return rows
}

func buildEvaluationPrompt(rows []answerRow, ec learning.EvaluationContext) (string, error) {
	var data bytes.Buffer
	enc := json.NewEncoder(&data)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rows); err != nil {
		return "", fmt.Errorf("encode answer rows: %w", err)
	}

	title := ec.LessonTitle
	if strings.TrimSpace(title) == "" {
		title = "Lesson"
	}
	subject := ec.LessonSubject
	if strings.TrimSpace(subject) == "" {
		subject = "General"
	}

	return fmt.Sprintf(
		"Evaluate this quiz submission for lesson '%s' (%s). Return strict JSON: {\"score\": number, \"weakTopics\": [\"...\"], \"explanation\": \"...\"}. Data: %s",
		title, subject, strings.TrimSpace(data.String()),
	), nil
}

func buildSummaryPrompt(weakTopics []string, score float64, lessonTitle string) string {
	var b strings.Builder

	b.WriteString("Write a concise remediation narrative for the student.\n")
	b.WriteString("Return strict JSON:\n")
	b.WriteString(`{"summary":"..."}` + "\n")
	b.WriteString(fmt.Sprintf("Lesson: %s\n", lessonTitle))
	b.WriteString(fmt.Sprintf("Score: %s\n", strconv.FormatFloat(score, 'f', -1, 64)))
	b.WriteString(fmt.Sprintf("Weak topics: %s", hintList(textstat.Unique(weakTopics))))

	return b.String()
}

func buildTipPrompt(role, name, grade string) string {
	var gradePart string
	if g := strings.TrimSpace(grade); g != "" {
		gradePart = " in grade " + g
	}
	return fmt.Sprintf("Create one short onboarding tip for a %s user named %s%s. Return JSON: {\"tip\":\"...\"}.", role, name, gradePart)
}

func buildTagPrompt(questionText, lessonContext, subject string, contextLimit int) string {
	var b strings.Builder

	b.WriteString("Tag this MCQ question with 1-3 lesson concept tags and one short difficulty hint.\n")
	b.WriteString(`Return JSON:
{
  "tags": ["..."],
  "difficultyHint": "..."
}
`)
	b.WriteString(fmt.Sprintf("Subject: %s\n", subject))
	b.WriteString(fmt.Sprintf("Lesson context: %s\n", textstat.Truncate(strings.TrimSpace(lessonContext), contextLimit)))
	b.WriteString(fmt.Sprintf("Question: %s", questionText))

	return b.String()
}

func buildMisconceptionPrompt(questionText, correctAnswer, studentAnswer string) string {
	var b strings.Builder

	b.WriteString("Identify likely misconception from this wrong answer.\n")
	b.WriteString(`Return JSON:
{
  "label": "...",
  "confidence": 0.0
}
`)
	b.WriteString(fmt.Sprintf("Question: %s\n", questionText))
	b.WriteString(fmt.Sprintf("Correct answer: %s\n", correctAnswer))
	b.WriteString(fmt.Sprintf("Student answer: %s", studentAnswer))

	return b.String()
}

func buildRepairPrompt(example, broken string) string {
	var b strings.Builder

	b.WriteString("Repair the following output into valid JSON only.\n")
	b.WriteString(fmt.Sprintf("Expected shape example:\n%s\n", example))
	b.WriteString(fmt.Sprintf("Broken output:\n%s", broken))

	return b.String()
}
