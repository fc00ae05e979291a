package cmd

import (
	"errors"
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/arcanaland/shuffler/internal/confirm"
	"github.com/arcanaland/shuffler/internal/store"
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a fresh, shuffled session",
	Long: `New starts a session with a freshly shuffled deck and prints its name.
Without --name a short random name is generated. Export it as SHUFFLER_SESSION
or pass it with --session to keep working on it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.SplitN(uuid.NewString(), "-", 2)[0]
		}
		if !store.ValidName(name) {
			return fmt.Errorf("%w: %q", store.ErrInvalidName, name)
		}
		e.name = name

		ctrl, err := e.controller()
		if err != nil {
			return err
		}
		ctrl.Reset()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session %s started with %d cards.\n", colorize.HiWhiteString("%s", name), len(ctrl.State().Deck))
		fmt.Fprintf(out, "export SHUFFLER_SESSION=%s\n", name)
		return nil
	},
}

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:     "next",
	Aliases: []string{"n"},
	Short:   "Open the next card from the deck",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, ctrl, err := open(cmd)
		if err != nil {
			return err
		}

		if !ctrl.Advance() {
			fmt.Fprintln(cmd.OutOrStdout(), "No cards remaining. Run 'shuffler shuffle' to start again.")
			return nil
		}

		displayState(cmd.OutOrStdout(), ctrl.State(), e.size, false)
		return nil
	},
}

// prevCmd represents the prev command
var prevCmd = &cobra.Command{
	Use:     "prev",
	Aliases: []string{"p", "back"},
	Short:   "Show the previously opened card",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, ctrl, err := open(cmd)
		if err != nil {
			return err
		}

		if !ctrl.GoBack() {
			if _, ok := ctrl.Current(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Already at the first opened card.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No card opened yet.")
			}
			return nil
		}

		displayState(cmd.OutOrStdout(), ctrl.State(), e.size, false)
		return nil
	},
}

// shuffleCmd represents the shuffle command
var shuffleCmd = &cobra.Command{
	Use:   "shuffle",
	Short: "Put every card back and shuffle the deck",
	Long: `Shuffle puts the opened cards back into the deck, shuffles all 52 cards
and clears the opened history. You are asked for the shuffle password first
(SHUFFLE unless changed in the config); use --yes to skip the prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, ctrl, err := open(cmd)
		if err != nil {
			return err
		}

		var c confirm.Confirmer = confirm.Always{}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			c = &confirm.Password{
				Password: e.config.ConfirmPassword,
				Attempts: e.config.ConfirmAttempts,
				In:       cmd.InOrStdin(),
				Out:      cmd.ErrOrStderr(),
			}
		}

		ok, err := c.Confirm()
		if errors.Is(err, confirm.ErrCancelled) {
			fmt.Fprintln(cmd.OutOrStdout(), "Shuffle cancelled.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("shuffle not confirmed: %w", err)
		}
		if !ok {
			return nil
		}

		ctrl.Reshuffle()
		fmt.Fprintf(cmd.OutOrStdout(), "Deck shuffled: %d cards remaining.\n", len(ctrl.State().Deck))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(newCmd)
	RootCmd.AddCommand(nextCmd)
	RootCmd.AddCommand(prevCmd)
	RootCmd.AddCommand(shuffleCmd)

	newCmd.Flags().String("name", "", "Name for the new session")
	shuffleCmd.Flags().BoolP("yes", "y", false, "Skip the password prompt")
}
