package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/shuffler/internal/config"
	"github.com/arcanaland/shuffler/internal/deck"
	"github.com/arcanaland/shuffler/internal/render"
	"github.com/arcanaland/shuffler/internal/session"
	"github.com/arcanaland/shuffler/internal/store"
)

// DefaultSession is used when neither --session nor SHUFFLER_SESSION is set
const DefaultSession = "default"

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "shuffler",
	Short: "Shuffle a deck of playing cards and reveal them one at a time",
	Long: `Shuffler deals a standard 52-card deck in your terminal.
Cards are revealed one at a time, you can step back through the cards already
opened, and the whole deck can be reshuffled behind a password prompt.

State lives in an ephemeral session under $XDG_RUNTIME_DIR, so it survives
between commands but disappears when you log out.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringP("session", "s", "", "Session name (default $SHUFFLER_SESSION or \"default\")")
	RootCmd.PersistentFlags().Bool("debug", false, "Log debug output to stderr")
	RootCmd.PersistentFlags().String("size", "", "Card size: small, medium or large (default from config)")

	RootCmd.AddCommand(validateCmd)
}

// env is everything a command needs to work on a session
type env struct {
	name   string
	root   string
	config *config.Config
	logger *zap.Logger
	size   render.Size
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := newLogger(debug)
	if err != nil {
		return nil, err
	}

	sizeFlag, _ := cmd.Flags().GetString("size")
	if sizeFlag == "" {
		sizeFlag = cfg.CardSize
	}
	size, err := render.ParseSize(sizeFlag)
	if err != nil {
		return nil, err
	}

	return &env{
		name:   sessionName(cmd),
		root:   config.GetSessionRoot(),
		config: cfg,
		logger: logger,
		size:   size,
	}, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}
	return logger, nil
}

func sessionName(cmd *cobra.Command) string {
	if name, _ := cmd.Flags().GetString("session"); name != "" {
		return name
	}
	if name := os.Getenv("SHUFFLER_SESSION"); name != "" {
		return name
	}
	return DefaultSession
}

// store opens the file store for the env's session
func (e *env) store() (*store.File, error) {
	return store.Open(e.root, e.name)
}

// controller returns an uninitialized controller for the env's session
func (e *env) controller() (*session.Controller, error) {
	s, err := e.store()
	if err != nil {
		return nil, err
	}

	var rng deck.Rand
	if e.config.SecureShuffle {
		rng = deck.CryptoRand{}
	}

	return session.New(s,
		session.WithRand(rng),
		session.WithLogger(e.logger.With(zap.String("session", e.name))),
		session.WithValidateRestore(e.config.ValidateRestore),
	), nil
}

// open loads the env and restores (or starts) its session
func open(cmd *cobra.Command) (*env, *session.Controller, error) {
	e, err := loadEnv(cmd)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := e.controller()
	if err != nil {
		return nil, nil, err
	}
	ctrl.Init()
	return e, ctrl, nil
}
