package deck

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/arcanaland/shuffler/internal/card"
)

// Size is the number of cards in a full deck
const Size = 52

// Rand is a source of uniform random integers in [0, n)
type Rand interface {
	IntN(n int) int
}

// Generate returns a fresh deck in canonical order: suits hearts, diamonds,
// clubs, spades, and ranks A through K within each suit.
func Generate() []card.Card {
	cards := make([]card.Card, 0, Size)
	for _, suit := range card.Suits {
		for _, rank := range card.Ranks {
			cards = append(cards, card.New(suit, rank))
		}
	}
	return cards
}

// Shuffle returns a uniformly permuted copy of cards using Fisher-Yates.
// The input slice is left untouched. A nil rng uses the default source.
func Shuffle(cards []card.Card, rng Rand) []card.Card {
	if rng == nil {
		rng = defaultRand{}
	}

	shuffled := make([]card.Card, len(cards))
	copy(shuffled, cards)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// NewRand returns a seeded, reproducible source
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.IntN(n) }

// CryptoRand draws from crypto/rand. If the system source fails it falls
// back to math/rand/v2 rather than aborting a shuffle halfway.
type CryptoRand struct{}

func (CryptoRand) IntN(n int) int {
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return rand.IntN(n)
	}
	return int(v.Int64())
}

// IsFullSet reports whether cards holds each of the 52 cards exactly once
func IsFullSet(cards []card.Card) bool {
	if len(cards) != Size {
		return false
	}
	seen := make(map[card.Card]bool, Size)
	for _, c := range cards {
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	for _, c := range Generate() {
		if !seen[c] {
			return false
		}
	}
	return true
}

// GetCard looks up a card by its canonical ID (e.g., hearts-A)
func GetCard(cardID string) (card.Card, error) {
	parts := splitCardID(cardID)
	if len(parts) != 2 {
		return card.Card{}, fmt.Errorf("invalid card ID format: %s", cardID)
	}

	suit, err := card.ParseSuit(parts[0])
	if err != nil {
		return card.Card{}, fmt.Errorf("card not found: %s", cardID)
	}
	rank, err := card.ParseRank(parts[1])
	if err != nil {
		return card.Card{}, fmt.Errorf("card not found: %s", cardID)
	}

	return card.New(suit, rank), nil
}

// splitCardID splits a canonical card ID into suit and rank
func splitCardID(cardID string) []string {
	return strings.SplitN(cardID, "-", 2)
}
