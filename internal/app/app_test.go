package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/llm"
	"github.com/abhisek/studyai/internal/store"
)

func TestNew_WithoutKeys(t *testing.T) {
	logger, _ := test.NewNullLogger()
	o, err := New(Options{Config: llm.DefaultConfig(), Logger: logger})
	require.NoError(t, err)

	state := o.ProviderState()
	assert.Equal(t, "openai", state.Configured)
	assert.Equal(t, learning.ProviderLocal, state.Active)
	assert.False(t, state.PrimaryAvailable)
}

func TestNew_WithKeys(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Groq.APIKey = "gsk-test"
	logger, _ := test.NewNullLogger()

	o, err := New(Options{Config: cfg, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderGroq, o.ProviderState().Active)

	cfg.OpenAI.APIKey = "sk-test"
	o, err = New(Options{Config: cfg, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, learning.ProviderOpenAI, o.ProviderState().Active)
}

func TestNew_InvalidConfigIsLogged(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Provider = "anthropic"
	logger, hook := test.NewNullLogger()

	o, err := New(Options{Config: cfg, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, "openai", o.Config().Provider)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "invalid AI configuration", hook.LastEntry().Message)
}

func TestNew_RecordsInvocations(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := llm.DefaultConfig()
	cfg.Provider = llm.ProviderLocal
	logger, _ := test.NewNullLogger()

	o, err := New(Options{Config: cfg, EventRepo: st.EventRepo(), Logger: logger})
	require.NoError(t, err)

	out, err := o.AnalyzeMisconception(context.Background(), "Capital of France?", "Paris", "")
	require.NoError(t, err)
	assert.Equal(t, "No answer selected", out.Data.Label)

	events, err := st.EventRepo().QueryInvocations(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "misconception analysis", events[0].Feature)
	assert.Equal(t, "LOCAL_NLP", events[0].Provider)
	assert.Equal(t, "SUCCESS", events[0].Status)
	assert.False(t, events[0].FallbackUsed)
}
