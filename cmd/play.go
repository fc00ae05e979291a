package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/shuffler/internal/tui"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive card table",
	Long: `Play opens a full-screen table with the deck on the left and the opened
card on the right.

Keys:
  n, space, →   open the next card
  p, ←          show the previous card
  s             shuffle (asks for the password)
  q             quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, ctrl, err := open(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = e.logger.Sync() }()

		return tui.Run(ctrl, tui.Options{
			Size:     e.size,
			Password: e.config.ConfirmPassword,
			Attempts: e.config.ConfirmAttempts,
		})
	},
}

func init() {
	RootCmd.AddCommand(playCmd)
}
