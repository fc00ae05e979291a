package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/arcanaland/shuffler/internal/card"
	"github.com/arcanaland/shuffler/internal/store"
)

// ErrNoState indicates the store has no complete saved session
var ErrNoState = errors.New("no saved session")

// Decode parses the three persisted values. It checks syntax only; use the
// validator to check the cards add up to a deck.
func Decode(rawDeck, rawOpened, rawIndex string) (State, error) {
	remaining, err := decodeCards(rawDeck)
	if err != nil {
		return State{}, fmt.Errorf("error parsing %s: %w", store.KeyDeck, err)
	}
	history, err := decodeCards(rawOpened)
	if err != nil {
		return State{}, fmt.Errorf("error parsing %s: %w", store.KeyOpened, err)
	}
	cursor, err := strconv.Atoi(strings.TrimSpace(rawIndex))
	if err != nil {
		return State{}, fmt.Errorf("error parsing %s: %w", store.KeyIndex, err)
	}

	return State{Deck: remaining, History: history, Cursor: cursor}, nil
}

func decodeCards(raw string) ([]card.Card, error) {
	var cards []card.Card
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return nil, err
	}
	if cards == nil {
		return nil, errors.New("not a list of cards")
	}
	return cards, nil
}

// Load reads the saved state from s without falling back to a fresh deck
func Load(s store.Store) (State, error) {
	var raw [3]string
	for i, key := range []string{store.KeyDeck, store.KeyOpened, store.KeyIndex} {
		v, ok := s.Get(key)
		if !ok {
			return State{}, fmt.Errorf("%w: %s missing", ErrNoState, key)
		}
		raw[i] = v
	}
	return Decode(raw[0], raw[1], raw[2])
}
