package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/localnlp"
	"github.com/abhisek/studyai/internal/store"
)

// stubProvider answers every operation with a fixed value tagged with its
// kind, or with err when set.
type stubProvider struct {
	kind      learning.ProviderKind
	available bool
	err       error

	mu    sync.Mutex
	calls int
}

func newStub(kind learning.ProviderKind, available bool, err error) *stubProvider {
	return &stubProvider{kind: kind, available: available, err: err}
}

func (s *stubProvider) hit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubProvider) Kind() learning.ProviderKind { return s.kind }
func (s *stubProvider) HasProvider() bool           { return s.available }

func (s *stubProvider) AnalyzeLesson(context.Context, string) (*learning.LessonAnalysis, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return &learning.LessonAnalysis{Topics: []string{string(s.kind)}, Difficulty: learning.DifficultyEasy, EstimatedStudyMinutes: 20}, nil
}

func (s *stubProvider) GenerateMaterials(context.Context, string, []string) (*learning.StudyMaterials, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return &learning.StudyMaterials{Summary: string(s.kind)}, nil
}

func (s *stubProvider) GenerateQuizQuestions(context.Context, string, int, learning.QuizContext) ([]learning.QuizQuestion, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return []learning.QuizQuestion{{Text: string(s.kind), Options: []string{"a", "b"}, CorrectAnswer: "a"}}, nil
}

func (s *stubProvider) EvaluateQuizSubmission(context.Context, []learning.AnswerStat, learning.EvaluationContext) (*learning.Evaluation, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return &learning.Evaluation{Score: 50, Explanation: string(s.kind)}, nil
}

func (s *stubProvider) SummarizeWeakTopics(context.Context, []string, float64, string) (string, error) {
	if err := s.hit(); err != nil {
		return "", err
	}
	return string(s.kind), nil
}

func (s *stubProvider) GenerateOnboardingTip(context.Context, string, string, string) (string, error) {
	if err := s.hit(); err != nil {
		return "", err
	}
	return string(s.kind), nil
}

func (s *stubProvider) TagQuestionConcept(context.Context, string, string, string) (*learning.ConceptTags, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return &learning.ConceptTags{Tags: []string{string(s.kind)}, Hint: "hint"}, nil
}

func (s *stubProvider) AnalyzeMisconception(context.Context, string, string, string) (*learning.Misconception, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return &learning.Misconception{Label: string(s.kind), Confidence: 0.5}, nil
}

// memRecorder keeps invocation records in memory.
type memRecorder struct {
	mu     sync.Mutex
	events []store.InvocationEventData
}

func (m *memRecorder) AppendInvocation(_ context.Context, data store.InvocationEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, data)
	return nil
}

func quietLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

func TestPrimarySuccess(t *testing.T) {
	openAI := newStub(learning.ProviderOpenAI, true, nil)
	groq := newStub(learning.ProviderGroq, true, nil)
	o := New(openAI, groq, nil, Config{Provider: "openai"}, WithLogger(quietLogger()))

	out, err := o.AnalyzeLesson(context.Background(), "lesson")
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderOpenAI, out.Provider)
	assert.Equal(t, learning.StatusSuccess, out.Status)
	assert.False(t, out.FallbackUsed)
	assert.Equal(t, "Lesson analysis generated by OpenAI.", out.Message)
	assert.Equal(t, []string{"OPENAI"}, out.Data.Topics)
	assert.Len(t, out.Attempts, 1)
	assert.Zero(t, groq.Calls())
}

func TestFallbackToGroqWhenOpenAIKeyMissing(t *testing.T) {
	openAI := newStub(learning.ProviderOpenAI, false, nil)
	groq := newStub(learning.ProviderGroq, true, nil)
	o := New(openAI, groq, nil, Config{Provider: "openai", FallbackPolicy: "groq_local"}, WithLogger(quietLogger()))

	out, err := o.GenerateQuizQuestions(context.Background(), "lesson", 4, learning.QuizContext{})
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderGroq, out.Provider)
	assert.Equal(t, learning.StatusFallback, out.Status)
	assert.True(t, out.FallbackUsed)
	assert.Equal(t, "OpenAI unavailable (OpenAI key is missing.). Groq fallback used for quiz generation.", out.Message)
	assert.Zero(t, openAI.Calls())

	require.Len(t, out.Attempts, 2)
	assert.Equal(t, learning.StatusSkipped, out.Attempts[0].Status)
	assert.Equal(t, learning.StatusSuccess, out.Attempts[1].Status)
}

func TestFallbackChainToLocal(t *testing.T) {
	openAI := newStub(learning.ProviderOpenAI, true, errors.New("OpenAI request failed: timeout"))
	groq := newStub(learning.ProviderGroq, true, errors.New("Groq request failed: 503"))
	o := New(openAI, groq, nil, Config{Provider: "openai"}, WithLogger(quietLogger()))

	out, err := o.AnalyzeMisconception(context.Background(), "Q", "Paris", "Paris")
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderLocal, out.Provider)
	assert.Equal(t, learning.StatusFallback, out.Status)
	assert.True(t, out.FallbackUsed)
	assert.Equal(t,
		"OpenAI unavailable (OpenAI request failed: timeout Groq request failed: 503). Local NLP fallback used for misconception analysis.",
		out.Message)
	assert.Equal(t, "Correct understanding", out.Data.Label)

	statuses := make([]learning.Status, 0, len(out.Attempts))
	for _, a := range out.Attempts {
		statuses = append(statuses, a.Status)
	}
	assert.Equal(t, []learning.Status{learning.StatusFailed, learning.StatusFailed, learning.StatusSuccess}, statuses)
}

func TestNoRemoteAvailable(t *testing.T) {
	openAI := newStub(learning.ProviderOpenAI, false, nil)
	groq := newStub(learning.ProviderGroq, false, nil)
	o := New(openAI, groq, localnlp.New(), Config{}, WithLogger(quietLogger()))

	out, err := o.GenerateOnboardingTip(context.Background(), "student", "Ana", "")
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderLocal, out.Provider)
	assert.Equal(t, learning.StatusFallback, out.Status)
	assert.Equal(t, "OpenAI unavailable (OpenAI key is missing. Groq key is missing.). Local NLP fallback used for onboarding tip.", out.Message)
	assert.NotEmpty(t, out.Data)
}

func TestConfiguredLocal(t *testing.T) {
	openAI := newStub(learning.ProviderOpenAI, true, nil)
	groq := newStub(learning.ProviderGroq, true, nil)
	o := New(openAI, groq, nil, Config{Provider: " LOCAL "}, WithLogger(quietLogger()))

	out, err := o.SummarizeWeakTopics(context.Background(), []string{"fractions"}, 40, "Fractions")
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderLocal, out.Provider)
	assert.Equal(t, learning.StatusSuccess, out.Status)
	assert.False(t, out.FallbackUsed)
	assert.Equal(t, "Local NLP provider handled weak-topic summary.", out.Message)
	assert.Zero(t, openAI.Calls()+groq.Calls())
}

func TestConfiguredGroqHasNoSecondary(t *testing.T) {
	openAI := newStub(learning.ProviderOpenAI, true, nil)
	groq := newStub(learning.ProviderGroq, true, errors.New("boom"))
	o := New(openAI, groq, nil, Config{Provider: "groq", FallbackPolicy: "groq_local"}, WithLogger(quietLogger()))

	out, err := o.TagQuestionConcept(context.Background(), "What is a cell?", "Cells are units of life.", "Biology")
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderLocal, out.Provider)
	assert.Equal(t, "Groq unavailable (boom). Local NLP fallback used for question concept tagging.", out.Message)
	assert.Zero(t, openAI.Calls())
	assert.Equal(t, 1, groq.Calls())
}

func TestLocalOnlyPolicySkipsGroq(t *testing.T) {
	openAI := newStub(learning.ProviderOpenAI, true, errors.New("boom"))
	groq := newStub(learning.ProviderGroq, true, nil)
	o := New(openAI, groq, nil, Config{Provider: "openai", FallbackPolicy: "local_only"}, WithLogger(quietLogger()))

	out, err := o.GenerateMaterials(context.Background(), "Cells divide by mitosis. Mitosis has phases.", nil)
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderLocal, out.Provider)
	assert.Zero(t, groq.Calls())
}

func TestStrictModeUnavailablePrimary(t *testing.T) {
	openAI := newStub(learning.ProviderOpenAI, false, nil)
	groq := newStub(learning.ProviderGroq, true, nil)
	local := newStub(learning.ProviderLocal, true, nil)
	o := New(openAI, groq, local, Config{Provider: "openai", StrictMode: true}, WithLogger(quietLogger()))

	out, err := o.AnalyzeLesson(context.Background(), "lesson")
	require.ErrorIs(t, err, ErrStrictMode)
	assert.Nil(t, out)
	assert.Equal(t, "AI strict mode enabled: OpenAI key is missing.", err.Error())
	assert.Zero(t, groq.Calls()+local.Calls())
}

func TestStrictModePropagatesError(t *testing.T) {
	cause := errors.New("OpenAI request failed: 500")
	openAI := newStub(learning.ProviderOpenAI, true, cause)
	groq := newStub(learning.ProviderGroq, true, nil)
	local := newStub(learning.ProviderLocal, true, nil)
	o := New(openAI, groq, local, Config{Provider: "openai", StrictMode: true}, WithLogger(quietLogger()))

	_, err := o.EvaluateQuizSubmission(context.Background(), nil, learning.EvaluationContext{})
	assert.Same(t, cause, err)
	assert.Zero(t, groq.Calls()+local.Calls())
}

func TestConfigNormalization(t *testing.T) {
	tests := []struct {
		in   Config
		want Config
	}{
		{Config{}, Config{Provider: "openai", FallbackPolicy: "groq_local"}},
		{Config{Provider: " GROQ ", FallbackPolicy: "Local_Only"}, Config{Provider: "groq", FallbackPolicy: "local_only"}},
		{Config{Provider: "anthropic", FallbackPolicy: "everything", StrictMode: true}, Config{Provider: "openai", FallbackPolicy: "groq_local", StrictMode: true}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(nil, nil, nil, tt.in).Config())
	}
}

func TestProviderState(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		openAI      bool
		groq        bool
		wantActive  learning.ProviderKind
		wantPrimary bool
	}{
		{"openai available", Config{Provider: "openai"}, true, true, learning.ProviderOpenAI, true},
		{"openai missing groq available", Config{Provider: "openai"}, false, true, learning.ProviderGroq, false},
		{"openai missing local only", Config{Provider: "openai", FallbackPolicy: "local_only"}, false, true, learning.ProviderLocal, false},
		{"groq missing", Config{Provider: "groq"}, true, false, learning.ProviderLocal, false},
		{"local", Config{Provider: "local"}, true, true, learning.ProviderLocal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			openAI := newStub(learning.ProviderOpenAI, tt.openAI, nil)
			groq := newStub(learning.ProviderGroq, tt.groq, nil)
			o := New(openAI, groq, nil, tt.cfg)

			state := o.ProviderState()
			assert.Equal(t, tt.wantActive, state.Active)
			assert.Equal(t, tt.wantPrimary, state.PrimaryAvailable)
			assert.Equal(t, tt.wantPrimary, o.HasPrimaryProvider())
			assert.Equal(t, o.Config().Provider, state.Configured)
			assert.Equal(t, o.Config().FallbackPolicy, state.FallbackPolicy)
			assert.Zero(t, openAI.Calls()+groq.Calls())
		})
	}
}

func TestNilRemotesAreUnavailable(t *testing.T) {
	o := New(nil, nil, nil, Config{Provider: "openai"}, WithLogger(quietLogger()))
	assert.False(t, o.HasPrimaryProvider())

	out, err := o.AnalyzeLesson(context.Background(), "Water boils at one hundred degrees. Ice melts at zero degrees.")
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderLocal, out.Provider)
}

func TestRecorderAndLogging(t *testing.T) {
	logger, hook := test.NewNullLogger()
	rec := &memRecorder{}
	openAI := newStub(learning.ProviderOpenAI, false, nil)
	groq := newStub(learning.ProviderGroq, true, nil)
	o := New(openAI, groq, nil, Config{Provider: "openai"}, WithLogger(logger), WithRecorder(rec))

	out, err := o.GenerateOnboardingTip(context.Background(), "teacher", "Sam", "")
	require.NoError(t, err)

	require.Len(t, rec.events, 1)
	ev := rec.events[0]
	assert.Equal(t, FeatureOnboardingTip, ev.Feature)
	assert.Equal(t, "openai", ev.Configured)
	assert.Equal(t, "GROQ_FREE", ev.Provider)
	assert.Equal(t, "FALLBACK", ev.Status)
	assert.True(t, ev.FallbackUsed)
	assert.Equal(t, out.Message, ev.Message)

	var attempts []Attempt
	require.NoError(t, json.Unmarshal([]byte(ev.Attempts), &attempts))
	require.Len(t, attempts, 2)
	assert.Equal(t, learning.ProviderOpenAI, attempts[0].Provider)
	assert.Equal(t, "OpenAI key is missing.", attempts[0].Error)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, FeatureOnboardingTip, entry.Data["feature"])
}

func TestRecorderOnStrictFailure(t *testing.T) {
	rec := &memRecorder{}
	o := New(nil, nil, nil, Config{Provider: "groq", StrictMode: true}, WithLogger(quietLogger()), WithRecorder(rec))

	_, err := o.GenerateQuizQuestions(context.Background(), "lesson", 3, learning.QuizContext{})
	require.ErrorIs(t, err, ErrStrictMode)
	require.Len(t, rec.events, 1)
	assert.Equal(t, "FAILED", rec.events[0].Status)
	assert.Equal(t, "GROQ_FREE", rec.events[0].Provider)
}
