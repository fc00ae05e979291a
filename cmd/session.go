package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/shuffler/internal/session"
	"github.com/arcanaland/shuffler/internal/store"
)

// sessionCmd represents the session command group
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage the sessions in your runtime directory",
	Long:  `Commands for listing, locating and removing shuffler sessions.`,
}

// sessionListCmd represents the session ls command
var sessionListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		names, err := store.List(e.root)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(out, "No sessions found.")
			fmt.Fprintln(out, "Run 'shuffler new' to start one.")
			return nil
		}

		for _, name := range names {
			s, err := store.Open(e.root, name)
			if err != nil {
				continue
			}

			summary := "unreadable"
			if st, err := session.Load(s); err == nil {
				summary = fmt.Sprintf("%d remaining, %d opened", len(st.Deck), len(st.History))
			}

			if name == e.name {
				fmt.Fprintf(out, "* %s (%s) [CURRENT]\n", name, summary)
			} else {
				fmt.Fprintf(out, "  %s (%s)\n", name, summary)
			}
		}
		return nil
	},
}

// sessionRemoveCmd represents the session rm command
var sessionRemoveCmd = &cobra.Command{
	Use:   "rm [session_name...]",
	Short: "Remove sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		for _, name := range args {
			if err := store.Remove(e.root, name); err != nil {
				return fmt.Errorf("error removing session: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session: %s\n", name)
		}
		return nil
	},
}

// sessionPathCmd represents the session path command
var sessionPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the directory of the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		s, err := e.store()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.Dir)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionRemoveCmd)
	sessionCmd.AddCommand(sessionPathCmd)
}
