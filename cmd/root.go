package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/studyai/internal/app"
	"github.com/abhisek/studyai/internal/llm"
	"github.com/abhisek/studyai/internal/orchestrator"
	"github.com/abhisek/studyai/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studyai",
	Short: "AI study assistant with offline fallback",
	Long: "studyai generates lesson analyses, study materials, quizzes and feedback " +
		"using OpenAI or Groq, falling back to a deterministic local provider.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(cmd); err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)

	flags := rootCmd.PersistentFlags()
	flags.String("db", "", "Path to SQLite database file (overrides STUDYAI_DB env var)")
	flags.String("provider", "", "AI provider: openai, groq or local (overrides STUDYAI_AI_PROVIDER)")
	flags.Bool("strict", false, "Fail instead of falling back when the provider is unavailable")
	flags.String("fallback", "", "Fallback policy: groq_local or local_only (overrides STUDYAI_AI_FALLBACK_PROVIDER)")
	flags.String("env-file", "", "Load environment variables from this file (default .env if present)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(materialsCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(tipCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(misconceptionCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadEnvFile loads --env-file, or .env from the working directory when it
// exists. Variables already set in the environment win.
func loadEnvFile(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("env-file"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("failed to load .env file")
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYAI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the event database for the command.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// aiConfig reads the environment and applies flag overrides.
func aiConfig(cmd *cobra.Command) llm.Config {
	cfg := llm.ConfigFromEnv()
	flags := cmd.Flags()
	if p, _ := flags.GetString("provider"); p != "" {
		cfg.Provider = p
	}
	if flags.Changed("strict") {
		cfg.StrictMode, _ = flags.GetBool("strict")
	}
	if f, _ := flags.GetString("fallback"); f != "" {
		cfg.FallbackPolicy = f
	}
	return cfg
}

// withOrchestrator opens the store, builds the orchestrator and runs fn.
func withOrchestrator(cmd *cobra.Command, fn func(*orchestrator.Orchestrator) error) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	o, err := app.New(app.Options{
		Config:    aiConfig(cmd),
		EventRepo: s.EventRepo(),
	})
	if err != nil {
		return err
	}
	return fn(o)
}
