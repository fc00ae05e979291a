// Package session owns the deck, the opened-card history and the cursor for
// one shuffler session, and mirrors them to a store after every change.
//
// A Controller is not safe for concurrent use. Callers drive it from a single
// goroutine (one CLI invocation or the TUI update loop).
package session

import (
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/arcanaland/shuffler/internal/card"
	"github.com/arcanaland/shuffler/internal/deck"
	"github.com/arcanaland/shuffler/internal/store"
	"github.com/arcanaland/shuffler/internal/validator"
)

// State is a snapshot of a session
type State struct {
	Deck    []card.Card
	History []card.Card
	Cursor  int
}

// Current returns History[Cursor], or false when nothing is displayed
func (s State) Current() (card.Card, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.History) {
		return card.Card{}, false
	}
	return s.History[s.Cursor], true
}

func (s State) clone() State {
	return State{
		Deck:    append([]card.Card{}, s.Deck...),
		History: append([]card.Card{}, s.History...),
		Cursor:  s.Cursor,
	}
}

// Controller drives a session
type Controller struct {
	store           store.Store
	rng             deck.Rand
	logger          *zap.Logger
	validateRestore bool

	state    State
	restored bool
}

// Option configures a Controller
type Option func(*Controller)

// WithRand sets the shuffle source
func WithRand(rng deck.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithValidateRestore rejects saved state that is not exactly one full deck
func WithValidateRestore(v bool) Option {
	return func(c *Controller) { c.validateRestore = v }
}

// New returns a Controller backed by s. Call Init before any action.
func New(s store.Store, opts ...Option) *Controller {
	c := &Controller{
		store:  s,
		logger: zap.NewNop(),
		state:  State{Cursor: -1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init restores the saved session if one is present and well-formed, and
// otherwise starts a freshly shuffled one.
func (c *Controller) Init() {
	if st, ok := c.load(); ok {
		c.state = st
		c.restored = true
		c.logger.Debug("session restored",
			zap.Int("deck", len(st.Deck)),
			zap.Int("opened", len(st.History)),
			zap.Int("index", st.Cursor),
		)
		return
	}

	c.Reset()
}

// Reset discards any state and starts a freshly shuffled deck
func (c *Controller) Reset() {
	c.state = State{
		Deck:    deck.Shuffle(deck.Generate(), c.rng),
		History: []card.Card{},
		Cursor:  -1,
	}
	c.restored = false
	c.logger.Debug("session started")
	c.persist()
}

// Restored reports whether Init loaded a saved session
func (c *Controller) Restored() bool {
	return c.restored
}

// Advance moves the front card of the deck onto the history and displays it.
// It returns false, changing nothing, when the deck is empty.
func (c *Controller) Advance() bool {
	if !c.CanAdvance() {
		return false
	}

	next := c.state.Deck[0]
	c.state.Deck = c.state.Deck[1:]
	c.state.History = append(c.state.History, next)
	c.state.Cursor = len(c.state.History) - 1

	c.logger.Debug("card opened", zap.String("card", next.ID), zap.Int("index", c.state.Cursor))
	c.persist()
	return true
}

// GoBack displays the previously opened card. It returns false, changing
// nothing, when the cursor is at the first card or nothing is opened.
func (c *Controller) GoBack() bool {
	if !c.CanGoBack() {
		return false
	}

	c.state.Cursor--
	c.persist()
	return true
}

// Reshuffle merges the history back into the deck, shuffles everything and
// clears the history.
func (c *Controller) Reshuffle() {
	all := make([]card.Card, 0, len(c.state.History)+len(c.state.Deck))
	all = append(all, c.state.History...)
	all = append(all, c.state.Deck...)

	c.state = State{
		Deck:    deck.Shuffle(all, c.rng),
		History: []card.Card{},
		Cursor:  -1,
	}

	c.logger.Debug("deck reshuffled", zap.Int("cards", len(c.state.Deck)))
	c.persist()
}

func (c *Controller) CanAdvance() bool { return len(c.state.Deck) > 0 }

func (c *Controller) CanGoBack() bool { return c.state.Cursor > 0 }

// Current returns the displayed card
func (c *Controller) Current() (card.Card, bool) {
	return c.state.Current()
}

// State returns a copy of the session state
func (c *Controller) State() State {
	return c.state.clone()
}

// persist writes all three keys. Failures are logged and otherwise ignored;
// the in-memory state stays authoritative.
func (c *Controller) persist() {
	deckJSON, err := json.Marshal(c.state.Deck)
	if err != nil {
		c.logger.Warn("encode deck", zap.Error(err))
		return
	}
	openedJSON, err := json.Marshal(c.state.History)
	if err != nil {
		c.logger.Warn("encode opened cards", zap.Error(err))
		return
	}

	entries := []struct{ key, value string }{
		{store.KeyDeck, string(deckJSON)},
		{store.KeyOpened, string(openedJSON)},
		{store.KeyIndex, strconv.Itoa(c.state.Cursor)},
	}
	for _, e := range entries {
		if err := c.store.Set(e.key, e.value); err != nil {
			c.logger.Warn("persist session", zap.String("key", e.key), zap.Error(err))
		}
	}
}

// load reads the saved state. Any missing or unparseable key means there is
// nothing to restore.
func (c *Controller) load() (State, bool) {
	st, err := Load(c.store)
	if err != nil {
		c.logger.Debug("no session to restore", zap.Error(err))
		return State{}, false
	}

	if c.validateRestore {
		if res := validator.ValidateState(st.Deck, st.History, st.Cursor); !res.Valid() {
			c.logger.Debug("saved session rejected", zap.Strings("errors", res.Errors))
			return State{}, false
		}
	}

	return st, true
}
