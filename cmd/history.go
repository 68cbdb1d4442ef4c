package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyai/internal/learning"
	"github.com/abhisek/studyai/internal/store"
	"github.com/abhisek/studyai/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent AI invocations and which provider served them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		feature, _ := cmd.Flags().GetString("feature")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryInvocations(cmd.Context(), store.QueryOpts{
			Limit:   limit,
			Feature: feature,
		})
		if err != nil {
			return fmt.Errorf("query invocations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No invocations found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-26s  %-10s  %-8s  %s\n",
			"ID", "Timestamp", "Feature", "Provider", "Ms", "Status")
		fmt.Fprintln(out, strings.Repeat("─", 90))

		for _, e := range events {
			fmt.Fprintf(out, "%-5d  %-19s  %-26s  %-10s  %-8d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Feature, 26),
				e.Provider,
				e.LatencyMs,
				theme.Status(learning.Status(e.Status)),
			)
			if e.FallbackUsed && e.Message != "" {
				fmt.Fprintln(out, "       "+theme.Hint.Render(e.Message))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of invocations to show")
	historyCmd.Flags().StringP("feature", "f", "", "Filter by feature (e.g. \"quiz generation\")")
}
