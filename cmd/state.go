package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyai/internal/app"
	"github.com/abhisek/studyai/internal/ui/theme"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show which AI provider would serve the next request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := app.New(app.Options{Config: aiConfig(cmd)})
		if err != nil {
			return err
		}
		state := o.ProviderState()
		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(state)
		}

		cfg := o.Config()
		fmt.Fprintln(out, theme.Title.Render("AI Provider State"))
		fmt.Fprintln(out, theme.Label.Render("Configured")+theme.Value.Render(state.Configured))
		fmt.Fprintln(out, theme.Label.Render("Active")+theme.Value.Render(string(state.Active)))
		fmt.Fprintln(out, theme.Label.Render("Primary available")+theme.Bool(state.PrimaryAvailable))
		fmt.Fprintln(out, theme.Label.Render("Fallback policy")+theme.Value.Render(state.FallbackPolicy))
		fmt.Fprintln(out, theme.Label.Render("Strict mode")+theme.Bool(cfg.StrictMode))
		if !state.PrimaryAvailable {
			fmt.Fprintln(out, theme.Hint.Render("Set OPENAI_API_KEY or GROQ_API_KEY to enable remote providers."))
		}
		return nil
	},
}

func init() {
	stateCmd.Flags().Bool("json", false, "Print state as JSON")
}
