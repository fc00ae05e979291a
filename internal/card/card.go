package card

import (
	"fmt"
	"strings"
)

// Suit is one of the four French suits
type Suit string

// Rank is one of the thirteen ranks, A through K
type Rank string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Display colors returned by Color
const (
	Red   = "#ef4444"
	Black = "#000000"
)

// Suits lists the suits in canonical deck order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks lists the ranks in canonical deck order
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card represents a playing card
type Card struct {
	ID    string `json:"id"`    // Canonical ID (e.g., hearts-A, spades-10)
	Suit  Suit   `json:"suit"`  // hearts, diamonds, clubs or spades
	Rank  Rank   `json:"rank"`  // A, 2..10, J, Q, K
	Value int    `json:"value"` // 1..13, Ace low
}

// New builds the card for a suit and rank
func New(suit Suit, rank Rank) Card {
	return Card{
		ID:    ID(suit, rank),
		Suit:  suit,
		Rank:  rank,
		Value: RankValue(rank),
	}
}

// ID returns the canonical ID for a suit and rank
func ID(suit Suit, rank Rank) string {
	return fmt.Sprintf("%s-%s", suit, rank)
}

var rankValues = func() map[Rank]int {
	m := make(map[Rank]int, len(Ranks))
	for i, r := range Ranks {
		m[r] = i + 1
	}
	return m
}()

// RankValue maps a rank to its numeric value, or 0 for an unknown rank
func RankValue(rank Rank) int {
	return rankValues[rank]
}

// ParseSuit parses a suit name, ignoring case
func ParseSuit(s string) (Suit, error) {
	suit := Suit(strings.ToLower(strings.TrimSpace(s)))
	if !suit.Valid() {
		return "", fmt.Errorf("invalid suit: %q", s)
	}
	return suit, nil
}

// ParseRank parses a rank, ignoring case
func ParseRank(s string) (Rank, error) {
	rank := Rank(strings.ToUpper(strings.TrimSpace(s)))
	if !rank.Valid() {
		return "", fmt.Errorf("invalid rank: %q", s)
	}
	return rank, nil
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	switch s {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	}
	return false
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return RankValue(r) != 0
}

// Valid reports whether the card has a known suit and rank
func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank.Valid()
}

// String returns the short form, e.g. "A♥" or "10♠"
func (c Card) String() string {
	return string(c.Rank) + Symbol(c.Suit)
}

// Name returns the long form, e.g. "Ace of Hearts"
func (c Card) Name() string {
	suit := string(c.Suit)
	if suit != "" {
		suit = strings.ToUpper(suit[:1]) + suit[1:]
	}
	return fmt.Sprintf("%s of %s", rankName(c.Rank), suit)
}

func rankName(r Rank) string {
	switch r {
	case Ace:
		return "Ace"
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return string(r)
}

// Color returns the display color for a suit
func Color(suit Suit) string {
	if IsRed(suit) {
		return Red
	}
	return Black
}

// IsRed reports whether the suit is hearts or diamonds
func IsRed(suit Suit) bool {
	return suit == Hearts || suit == Diamonds
}

// Symbol returns the glyph for a suit
func Symbol(suit Suit) string {
	switch suit {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "•"
	}
}
