package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag of c and its subcommands to its default so
// tests sharing rootCmd do not see each other's flags.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestMisconceptionCommandRecordsHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	raw := execute(t, "--db", db, "--provider", "local",
		"misconception", "--question", "Capital of France?", "--correct", "Paris", "--answer", "")

	var got struct {
		Data struct {
			Label      string  `json:"label"`
			Confidence float64 `json:"confidence"`
		} `json:"data"`
		Provider     string `json:"provider"`
		Status       string `json:"status"`
		FallbackUsed bool   `json:"fallbackUsed"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, "No answer selected", got.Data.Label)
	assert.Equal(t, 0.9, got.Data.Confidence)
	assert.Equal(t, "LOCAL_NLP", got.Provider)
	assert.Equal(t, "SUCCESS", got.Status)
	assert.False(t, got.FallbackUsed)

	history := execute(t, "--db", db, "history", "--feature", "misconception analysis")
	assert.Contains(t, history, "misconception analysis")
	assert.Contains(t, history, "LOCAL_NLP")
}

func TestStateCommandJSON(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("STUDYAI_OPENAI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("STUDYAI_GROQ_API_KEY", "")

	raw := execute(t, "--provider", "openai", "--fallback", "local_only", "state", "--json")

	var state map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &state))
	assert.Equal(t, "openai", state["configured"])
	assert.Equal(t, "LOCAL_NLP", state["active"])
	assert.Equal(t, false, state["primaryAvailable"])
	assert.Equal(t, "local_only", state["fallbackPolicy"])
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "studyai (devel)\n", execute(t, "version"))
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "leak.db")
	execute(t, "--db", db, "--provider", "local", "--strict", "tip", "--role", "teacher")
	resetFlags(rootCmd)

	for _, name := range []string{"db", "provider", "strict"} {
		f := rootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.False(t, f.Changed, name)
		assert.Equal(t, f.DefValue, f.Value.String(), name)
	}
	role := tipCmd.Flags().Lookup("role")
	assert.Equal(t, "student", role.Value.String())
	assert.False(t, role.Changed)

	weak := materialsCmd.Flags().Lookup("weak")
	assert.Equal(t, "[]", weak.Value.String())
}
