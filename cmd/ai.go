package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/orchestrator"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Extract topics, key concepts and difficulty from a lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		return withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
			out, err := o.AnalyzeLesson(cmd.Context(), text)
			return printOutcome(cmd, out, err)
		})
	},
}

var materialsCmd = &cobra.Command{
	Use:   "materials <file|->",
	Short: "Generate a summary, flashcards, explanations and examples",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		weak, _ := cmd.Flags().GetStringSlice("weak")
		return withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
			out, err := o.GenerateMaterials(cmd.Context(), text, weak)
			return printOutcome(cmd, out, err)
		})
	},
}

var quizCmd = &cobra.Command{
	Use:   "quiz <file|->",
	Short: "Generate multiple-choice questions for a lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		count, _ := flags.GetInt("count")
		qc := learning.QuizContext{}
		qc.Title, _ = flags.GetString("title")
		qc.Subject, _ = flags.GetString("subject")
		qc.Difficulty, _ = flags.GetString("difficulty")
		qc.Topics, _ = flags.GetStringSlice("topics")
		qc.KeyConcepts, _ = flags.GetStringSlice("concepts")
		qc.WeakTopics, _ = flags.GetStringSlice("weak")

		return withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
			out, err := o.GenerateQuizQuestions(cmd.Context(), text, count, qc)
			return printOutcome(cmd, out, err)
		})
	},
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <answers.json|->",
	Short: "Score a quiz submission and find weak topics",
	Long: "Reads a JSON array of answers, each shaped like\n" +
		`{"question":{"text":"...","correctAnswer":"...","conceptTags":["..."]},"studentAnswer":"...","isCorrect":false,"responseTimeMs":12000}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		var answers []learning.AnswerStat
		if err := json.Unmarshal([]byte(raw), &answers); err != nil {
			return fmt.Errorf("parse answers: %w", err)
		}
		ec := learning.EvaluationContext{}
		ec.LessonTitle, _ = cmd.Flags().GetString("title")
		ec.LessonSubject, _ = cmd.Flags().GetString("subject")

		return withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
			out, err := o.EvaluateQuizSubmission(cmd.Context(), answers, ec)
			return printOutcome(cmd, out, err)
		})
	},
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Write a remediation plan for weak topics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		weak, _ := cmd.Flags().GetStringSlice("weak")
		score, _ := cmd.Flags().GetFloat64("score")
		title, _ := cmd.Flags().GetString("title")
		return withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
			out, err := o.SummarizeWeakTopics(cmd.Context(), weak, score, title)
			return printOutcome(cmd, out, err)
		})
	},
}

var tipCmd = &cobra.Command{
	Use:   "tip",
	Short: "Generate an onboarding tip for a new user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		name, _ := cmd.Flags().GetString("name")
		grade, _ := cmd.Flags().GetString("grade")
		return withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
			out, err := o.GenerateOnboardingTip(cmd.Context(), role, name, grade)
			return printOutcome(cmd, out, err)
		})
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Tag a question with lesson concepts and a difficulty hint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		lessonContext, _ := cmd.Flags().GetString("context")
		subject, _ := cmd.Flags().GetString("subject")
		return withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
			out, err := o.TagQuestionConcept(cmd.Context(), question, lessonContext, subject)
			return printOutcome(cmd, out, err)
		})
	},
}

var misconceptionCmd = &cobra.Command{
	Use:   "misconception",
	Short: "Label the likely misconception behind an answer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		correct, _ := cmd.Flags().GetString("correct")
		answer, _ := cmd.Flags().GetString("answer")
		return withOrchestrator(cmd, func(o *orchestrator.Orchestrator) error {
			out, err := o.AnalyzeMisconception(cmd.Context(), question, correct, answer)
			return printOutcome(cmd, out, err)
		})
	},
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// printOutcome writes the outcome as indented JSON.
func printOutcome[T any](cmd *cobra.Command, out *orchestrator.Outcome[T], err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

func init() {
	materialsCmd.Flags().StringSlice("weak", nil, "Weak topics to focus on")

	quizCmd.Flags().IntP("count", "n", 8, "Number of questions")
	quizCmd.Flags().String("title", "", "Lesson title")
	quizCmd.Flags().String("subject", "", "Lesson subject")
	quizCmd.Flags().String("difficulty", "", "Lesson difficulty (EASY, MEDIUM, HARD)")
	quizCmd.Flags().StringSlice("topics", nil, "Priority topics")
	quizCmd.Flags().StringSlice("concepts", nil, "Key concepts")
	quizCmd.Flags().StringSlice("weak", nil, "Weak topics to reinforce")

	evaluateCmd.Flags().String("title", "", "Lesson title")
	evaluateCmd.Flags().String("subject", "", "Lesson subject")

	summarizeCmd.Flags().StringSlice("weak", nil, "Weak topics")
	summarizeCmd.Flags().Float64("score", 0, "Quiz score (0-100)")
	summarizeCmd.Flags().String("title", "", "Lesson title")

	tipCmd.Flags().String("role", "student", "User role (student or teacher)")
	tipCmd.Flags().String("name", "", "User name")
	tipCmd.Flags().String("grade", "", "Student grade")

	tagCmd.Flags().String("question", "", "Question text")
	tagCmd.Flags().String("context", "", "Lesson context")
	tagCmd.Flags().String("subject", "", "Lesson subject")
	_ = tagCmd.MarkFlagRequired("question")

	misconceptionCmd.Flags().String("question", "", "Question text")
	misconceptionCmd.Flags().String("correct", "", "Correct answer")
	misconceptionCmd.Flags().String("answer", "", "Student answer")
	_ = misconceptionCmd.MarkFlagRequired("question")
	_ = misconceptionCmd.MarkFlagRequired("correct")
}
