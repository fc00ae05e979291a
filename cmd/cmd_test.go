package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/shuffler/internal/session"
	"github.com/arcanaland/shuffler/internal/store"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	runtime := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtime)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SHUFFLER_SESSION", "")
	return filepath.Join(runtime, "shuffler")
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	defer resetFlags(RootCmd)

	err := RootCmd.Execute()
	return out.String(), err
}

func loadState(t *testing.T, root, name string) session.State {
	t.Helper()
	s, err := store.Open(root, name)
	require.NoError(t, err)
	st, err := session.Load(s)
	require.NoError(t, err)
	return st
}

func TestNextPrevShow(t *testing.T) {
	root := setupEnv(t)

	out, err := run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "default")
	assert.Contains(t, out, "no card opened")

	for i := 0; i < 3; i++ {
		_, err = run(t, "", "next")
		require.NoError(t, err)
	}
	st := loadState(t, root, DefaultSession)
	assert.Len(t, st.Deck, 49)
	assert.Len(t, st.History, 3)
	assert.Equal(t, 2, st.Cursor)

	out, err = run(t, "", "prev")
	require.NoError(t, err)
	assert.Contains(t, out, "card 2 of 3")
	assert.Contains(t, out, st.History[1].Name())

	_, err = run(t, "", "prev")
	require.NoError(t, err)
	out, err = run(t, "", "prev")
	require.NoError(t, err)
	assert.Contains(t, out, "Already at the first opened card.")
	assert.Equal(t, 0, loadState(t, root, DefaultSession).Cursor)

	out, err = run(t, "", "show")
	require.NoError(t, err)
	assert.Contains(t, out, st.History[0].ID)
	assert.Contains(t, out, "49 cards remaining")
}

func TestPrevWithNothingOpened(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "", "prev")
	require.NoError(t, err)
	assert.Contains(t, out, "No card opened yet.")
}

func TestNextOnEmptyDeck(t *testing.T) {
	root := setupEnv(t)
	for i := 0; i < 52; i++ {
		_, err := run(t, "", "next", "--session", "full")
		require.NoError(t, err)
	}
	out, err := run(t, "", "next", "--session", "full")
	require.NoError(t, err)
	assert.Contains(t, out, "No cards remaining")

	st := loadState(t, root, "full")
	assert.Empty(t, st.Deck)
	assert.Len(t, st.History, 52)
	assert.Equal(t, 51, st.Cursor)
}

func TestShufflePassword(t *testing.T) {
	root := setupEnv(t)
	_, err := run(t, "", "next")
	require.NoError(t, err)

	out, err := run(t, "\n", "shuffle")
	require.NoError(t, err)
	assert.Contains(t, out, "Shuffle cancelled.")
	assert.Len(t, loadState(t, root, DefaultSession).History, 1)

	_, err = run(t, "a\nb\nc\n", "shuffle")
	assert.Error(t, err)
	assert.Len(t, loadState(t, root, DefaultSession).History, 1)

	out, err = run(t, "wrong\nshuffle\n", "shuffle")
	require.NoError(t, err)
	assert.Contains(t, out, "Incorrect password. Please try again.")
	assert.Contains(t, out, "Deck shuffled: 52 cards remaining.")

	st := loadState(t, root, DefaultSession)
	assert.Len(t, st.Deck, 52)
	assert.Empty(t, st.History)
	assert.Equal(t, -1, st.Cursor)
}

func TestShuffleYes(t *testing.T) {
	root := setupEnv(t)
	_, err := run(t, "", "next", "-s", "quick")
	require.NoError(t, err)
	_, err = run(t, "", "shuffle", "--yes", "-s", "quick")
	require.NoError(t, err)
	assert.Empty(t, loadState(t, root, "quick").History)
}

func TestNewAndSessions(t *testing.T) {
	root := setupEnv(t)

	out, err := run(t, "", "new", "--name", "table1")
	require.NoError(t, err)
	assert.Contains(t, out, "export SHUFFLER_SESSION=table1")
	assert.Len(t, loadState(t, root, "table1").Deck, 52)

	out, err = run(t, "", "new")
	require.NoError(t, err)
	assert.Contains(t, out, "export SHUFFLER_SESSION=")

	_, err = run(t, "", "new", "--name", "bad name")
	assert.ErrorIs(t, err, store.ErrInvalidName)

	t.Setenv("SHUFFLER_SESSION", "table1")
	out, err = run(t, "", "session", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "* table1 (52 remaining, 0 opened) [CURRENT]")
	assert.Equal(t, 2, strings.Count(out, "remaining"))

	out, err = run(t, "", "session", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "table1"), strings.TrimSpace(out))

	_, err = run(t, "", "session", "rm", "table1")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "table1"))
	assert.True(t, os.IsNotExist(err))

	_, err = run(t, "", "session", "rm", "table1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSessionListEmpty(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "", "session", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found.")
}

func TestValidate(t *testing.T) {
	root := setupEnv(t)

	_, err := run(t, "", "validate", "missing")
	assert.ErrorIs(t, err, session.ErrNoState)

	_, err = run(t, "", "next", "-s", "v")
	require.NoError(t, err)
	out, err := run(t, "", "validate", "v")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 51 remaining, 1 opened")

	s, err := store.Open(root, "v")
	require.NoError(t, err)
	require.NoError(t, s.Set(store.KeyIndex, "7"))
	out, err = run(t, "", "validate", "v")
	assert.Error(t, err)
	assert.Contains(t, out, "cursor 7 out of range")
}

func TestValidateRestoreFromConfig(t *testing.T) {
	root := setupEnv(t)
	cfgDir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "shuffler")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte("validate_restore = true\n"), 0644))

	_, err := run(t, "", "next", "-s", "strict")
	require.NoError(t, err)
	s, err := store.Open(root, "strict")
	require.NoError(t, err)
	require.NoError(t, s.Set(store.KeyDeck, "[]"))

	_, err = run(t, "", "status", "-s", "strict")
	require.NoError(t, err)
	st := loadState(t, root, "strict")
	assert.Len(t, st.Deck, 52, "corrupted session replaced by a fresh one")
	assert.Empty(t, st.History)
}

func TestShowCardByID(t *testing.T) {
	setupEnv(t)
	out, err := run(t, "", "show", "diamonds-Q", "--size", "large")
	require.NoError(t, err)
	assert.Contains(t, out, "Queen of Diamonds")
	assert.Contains(t, out, "Q♦")

	_, err = run(t, "", "show", "cups-A")
	assert.Error(t, err)

	_, err = run(t, "", "show", "--size", "huge")
	assert.Error(t, err)
}

func TestShowBack(t *testing.T) {
	setupEnv(t)
	_, err := run(t, "", "next")
	require.NoError(t, err)
	out, err := run(t, "", "show", "--back")
	require.NoError(t, err)
	assert.Contains(t, out, "face down")
}
