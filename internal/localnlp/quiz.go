package localnlp

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/textstat"
)

const (
	// slowAnswerMs marks a correct answer slow enough to count as a weak
	// signal.
	slowAnswerMs     = 35000
	wrongWeight      = 2
	slowRightWeight  = 1
	maxWeakTopics    = 6
	generalWeakTopic = "General lesson understanding"
)

// questionTemplates take the lesson title, the focus phrase and (for some)
// a subject keyword.
var questionTemplates = []struct {
	format   string
	withTerm bool
}{
	{`According to %s, what best explains "%s" in relation to %s?`, true},
	{`In %s, which statement is most accurate about "%s"?`, false},
	{`When applying %s concepts, how should "%s" be interpreted?`, false},
	{`Within %s, which option correctly describes "%s"?`, false},
}

// GenerateQuizQuestions cycles through a focus pool built from the quiz
// context, lesson keywords and sentences, rendering one templated question
// per slot. Duplicate question texts are dropped, so fewer than count
// questions may come back; at least one always does.
func (p *Provider) GenerateQuizQuestions(_ context.Context, text string, count int, qc learning.QuizContext) ([]learning.QuizQuestion, error) {
	sentences := textstat.SentenceChunks(text)
	keywords := textstat.Keywords(text, 24)

	var pool []string
	pool = append(pool, qc.WeakTopics...)
	pool = append(pool, qc.Topics...)
	pool = append(pool, qc.KeyConcepts...)
	pool = append(pool, keywords...)
	pool = append(pool, textstat.Head(sentences, 20)...)
	pool = textstat.Unique(pool)

	title := strings.TrimSpace(qc.Title)
	if len(pool) == 0 {
		focus := title
		if focus == "" {
			focus = "Core lesson concept"
		}
		pool = []string{focus}
	}
	if title == "" {
		title = "this lesson"
	}
	subject := strings.TrimSpace(qc.Subject)
	if subject == "" {
		subject = "the subject"
	}

	// Every slot depends only on i modulo the pool, template and keyword
	// lengths, so nothing new appears after one full period.
	period := lcm(lcm(len(pool), len(questionTemplates)), max(1, len(keywords)))
	slots := min(max(1, count), period)

	set := learning.NewQuestionSet(count)
	for i := 0; i < slots && !set.Full(); i++ {
		focus := pool[i%len(pool)]
		next := pool[(i+1)%len(pool)]
		alt := pool[(i+2)%len(pool)]
		term := subject
		if len(keywords) > 0 {
			term = keywords[i%len(keywords)]
		}

		tmpl := questionTemplates[i%len(questionTemplates)]
		var questionText string
		if tmpl.withTerm {
			questionText = fmt.Sprintf(tmpl.format, title, textstat.Truncate(focus, 65), textstat.Truncate(term, 40))
		} else {
			questionText = fmt.Sprintf(tmpl.format, title, textstat.Truncate(focus, 65))
		}

		correct := fmt.Sprintf(`It links "%s" to %s outcomes in %s.`, textstat.Truncate(focus, 48), textstat.Truncate(term, 32), subject)
		options := []string{
			correct,
			fmt.Sprintf(`It ignores "%s" and only repeats "%s".`, textstat.Truncate(focus, 30), textstat.Truncate(next, 30)),
			fmt.Sprintf(`It replaces "%s" with an unrelated idea: "%s".`, textstat.Truncate(focus, 30), textstat.Truncate(alt, 30)),
			fmt.Sprintf("It is unrelated to %s lesson content.", subject),
		}

		if q, ok := learning.NormalizeQuestion(questionText, options, correct); ok {
			set.Add(q)
		}
	}

	return set.Questions(), nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

// EvaluateQuizSubmission scores the answers and ranks weak topics. Wrong
// answers weigh 2 and slow correct answers weigh 1 toward the topics of
// their question; fast correct answers contribute nothing.
func (p *Provider) EvaluateQuizSubmission(ctx context.Context, answers []learning.AnswerStat, ec learning.EvaluationContext) (*learning.Evaluation, error) {
	type weight struct {
		topic string
		score int
	}
	index := make(map[string]*weight)
	var ranked []*weight

	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
			if a.ResponseTimeMs < slowAnswerMs {
				continue
			}
		}

		w := wrongWeight
		if a.IsCorrect {
			w = slowRightWeight
		}
		for _, topic := range questionTopics(a.Question) {
			e, ok := index[topic]
			if !ok {
				e = &weight{topic: topic}
				index[topic] = e
				ranked = append(ranked, e)
			}
			e.score += w
		}
	}

	var score float64
	if len(answers) > 0 {
		score = math.Round(float64(correct)/float64(len(answers))*100*100) / 100
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	weakTopics := make([]string, 0, maxWeakTopics)
	for _, e := range ranked {
		if len(weakTopics) == maxWeakTopics {
			break
		}
		weakTopics = append(weakTopics, e.topic)
	}
	if len(weakTopics) == 0 && score < 100 {
		weakTopics = []string{generalWeakTopic}
	}

	explanation, _ := p.SummarizeWeakTopics(ctx, weakTopics, score, ec.LessonTitle)

	return &learning.Evaluation{
		Score:       score,
		WeakTopics:  weakTopics,
		Explanation: explanation,
	}, nil
}

// questionTopics prefers the concept tags recorded for the question, then a
// snippet of its text.
func questionTopics(q learning.QuestionRef) []string {
	if tags := textstat.Unique(q.ConceptTags); len(tags) > 0 {
		return textstat.Head(tags, 3)
	}
	if snippet := strings.TrimSpace(textstat.Truncate(q.Text, 72)); snippet != "" {
		return []string{snippet}
	}
	return []string{generalWeakTopic}
}
