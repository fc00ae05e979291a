package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/shuffler/internal/session"
	"github.com/arcanaland/shuffler/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [session]",
	Short: "Check that a saved session still holds exactly one deck",
	Long: `Validate reads a saved session without modifying it and checks that the
remaining deck and the opened cards together hold each of the 52 cards exactly
once, and that the displayed position points at an opened card.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			e.name = args[0]
		}

		s, err := e.store()
		if err != nil {
			return err
		}

		st, err := session.Load(s)
		if err != nil {
			return fmt.Errorf("error loading session %s: %w", e.name, err)
		}

		results := validator.ValidateState(st.Deck, st.History, st.Cursor)

		// Display validation results
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Session '%s' is valid: %d remaining, %d opened.\n", e.name, len(st.Deck), len(st.History))
		} else {
			fmt.Fprintf(out, "❌ Session '%s' has %d validation errors:\n", e.name, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
