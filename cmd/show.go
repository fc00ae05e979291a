package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/shuffler/internal/card"
	"github.com/arcanaland/shuffler/internal/deck"
	"github.com/arcanaland/shuffler/internal/render"
	"github.com/arcanaland/shuffler/internal/session"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display the currently opened card",
	Long: `Show draws the card currently opened in the session, with its position in
the opened history and the number of cards left in the deck.

Pass a canonical card ID like 'hearts-A' or 'spades-10' to draw any card
instead. Use --back to draw the face-down side.

Examples:
  shuffler show
  shuffler show --size large
  shuffler show diamonds-Q`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		back, _ := cmd.Flags().GetBool("back")

		if len(args) == 1 {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			c, err := deck.GetCard(args[0])
			if err != nil {
				return fmt.Errorf("error getting card: %w", err)
			}
			displayCard(cmd.OutOrStdout(), &c, e.size, back, cardInfo(c))
			return nil
		}

		e, ctrl, err := open(cmd)
		if err != nil {
			return err
		}
		displayState(cmd.OutOrStdout(), ctrl.State(), e.size, back)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the session counts without drawing cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, ctrl, err := open(cmd)
		if err != nil {
			return err
		}
		st := ctrl.State()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, colorize.CyanString("Session:   ")+colorize.HiWhiteString("%s", e.name))
		fmt.Fprintln(out, colorize.CyanString("Remaining: ")+colorize.HiWhiteString("%d", len(st.Deck)))
		fmt.Fprintln(out, colorize.CyanString("Opened:    ")+colorize.HiWhiteString("%d", len(st.History)))
		if cur, ok := st.Current(); ok {
			fmt.Fprintln(out, colorize.CyanString("Showing:   ")+
				colorize.HiWhiteString("%s (card %d of %d)", cur.Name(), st.Cursor+1, len(st.History)))
		} else {
			fmt.Fprintln(out, colorize.CyanString("Showing:   ")+colorize.HiBlackString("no card opened"))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(statusCmd)

	showCmd.Flags().BoolP("back", "b", false, "Draw the card face down")
}

// cardInfo returns the descriptive lines shown beside a card
func cardInfo(c card.Card) []string {
	suit := colorize.HiWhiteString("%s · %s", c.Suit, card.Symbol(c.Suit))
	if card.IsRed(c.Suit) {
		suit = colorize.HiRedString("%s · %s", c.Suit, card.Symbol(c.Suit))
	}

	return []string{
		colorize.CyanString("Card:  ") + colorize.HiWhiteString("%s", c.Name()),
		colorize.CyanString("ID:    ") + colorize.HiWhiteString("%s", c.ID),
		colorize.CyanString("Suit:  ") + suit,
		colorize.CyanString("Rank:  ") + colorize.HiWhiteString("%s", c.Rank),
		colorize.CyanString("Value: ") + colorize.HiWhiteString("%d", c.Value),
	}
}

// displayState draws the displayed card of a session with its position
func displayState(w io.Writer, st session.State, size render.Size, back bool) {
	remaining := colorize.CyanString("Deck:  ") + colorize.HiWhiteString("%d cards remaining", len(st.Deck))

	cur, ok := st.Current()
	if !ok {
		art := render.Empty(size, "No card opened")
		if back {
			art = render.Stack(len(st.Deck), size)
		}
		displayArt(w, art, []string{remaining})
		return
	}

	info := cardInfo(cur)
	info = append(info, "",
		colorize.CyanString("Opened: ")+colorize.HiWhiteString("card %d of %d", st.Cursor+1, len(st.History)),
		remaining,
	)
	displayCard(w, &cur, size, back, info)
}

// displayCard draws a card with info lines to its right
func displayCard(w io.Writer, c *card.Card, size render.Size, back bool, info []string) {
	if back {
		info = []string{colorize.CyanString("Card:  ") + colorize.HiBlackString("face down")}
	}
	displayArt(w, render.Card(c, size, back), info)
}

// displayArt prints art on the left and info on the right, or info below the
// art when the terminal is too narrow for both
func displayArt(w io.Writer, art string, info []string) {
	artLines := strings.Split(art, "\n")
	artWidth := lipgloss.Width(art)

	// Get terminal width
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80 // Default if we can't get terminal width
	}

	spacing := 4
	infoWidth := 0
	for _, line := range info {
		infoWidth = max(infoWidth, lipgloss.Width(line))
	}

	fmt.Fprintln(w)
	if 2+artWidth+spacing+infoWidth > width {
		for _, line := range artLines {
			fmt.Fprintln(w, "  "+line)
		}
		fmt.Fprintln(w)
		for _, line := range info {
			fmt.Fprintln(w, "  "+line)
		}
		fmt.Fprintln(w)
		return
	}

	maxLines := max(len(artLines), len(info))
	for i := 0; i < maxLines; i++ {
		// Print 2-character wide left padding
		fmt.Fprint(w, "  ")
		if i < len(artLines) {
			fmt.Fprint(w, artLines[i])
			fmt.Fprint(w, strings.Repeat(" ", artWidth-lipgloss.Width(artLines[i])+spacing))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", artWidth+spacing))
		}

		if i < len(info) {
			fmt.Fprint(w, info[i])
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
}
