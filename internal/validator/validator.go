package validator

import (
	"fmt"

	"github.com/arcanaland/shuffler/internal/card"
	"github.com/arcanaland/shuffler/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether validation found no errors
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	Deck    []card.Card
	History []card.Card
	Cursor  int
	Results ValidationResults
}

func NewValidator(remaining, history []card.Card, cursor int) *Validator {
	return &Validator{
		Deck:    remaining,
		History: history,
		Cursor:  cursor,
		Results: ValidationResults{},
	}
}

// ValidateState checks that remaining and history together form exactly one
// full deck and that cursor points into history.
func ValidateState(remaining, history []card.Card, cursor int) ValidationResults {
	return NewValidator(remaining, history, cursor).Validate()
}

func (v *Validator) Validate() ValidationResults {
	v.validateCards("deck", v.Deck)
	v.validateCards("opened", v.History)
	v.validateCompleteness()
	v.validateCursor()

	return v.Results
}

// validateCards checks each card record on its own
func (v *Validator) validateCards(section string, cards []card.Card) {
	for i, c := range cards {
		if !c.Valid() {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s[%d]: invalid card (suit %q, rank %q)", section, i, c.Suit, c.Rank))
			continue
		}

		if want := card.ID(c.Suit, c.Rank); c.ID != want {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s[%d]: id %q does not match suit and rank (expected %q)", section, i, c.ID, want))
		}

		if want := card.RankValue(c.Rank); c.Value != want {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s[%d]: %s has value %d (expected %d)", section, i, c.ID, c.Value, want))
		}
	}
}

// validateCompleteness checks deck and history together hold every card once
func (v *Validator) validateCompleteness() {
	total := len(v.Deck) + len(v.History)
	if total != deck.Size {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("expected %d cards in total, found %d", deck.Size, total))
	}

	counts := make(map[string]int, total)
	for _, c := range v.History {
		counts[card.ID(c.Suit, c.Rank)]++
	}
	for _, c := range v.Deck {
		counts[card.ID(c.Suit, c.Rank)]++
	}

	for _, c := range deck.Generate() {
		switch n := counts[c.ID]; {
		case n == 0:
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("missing card: %s", c.ID))
		case n > 1:
			v.Results.Errors = append(v.Results.Errors, fmt.Sprintf("duplicate card: %s (%d copies)", c.ID, n))
		}
	}
}

// validateCursor checks the cursor is -1 or an index into history
func (v *Validator) validateCursor() {
	if v.Cursor < -1 || v.Cursor >= len(v.History) {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("cursor %d out of range [-1, %d]", v.Cursor, len(v.History)-1))
		return
	}

	if v.Cursor == -1 && len(v.History) > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("no card displayed although %d cards have been opened", len(v.History)))
	}
}
