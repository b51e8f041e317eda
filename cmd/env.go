package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/codeleveling/internal/catalog"
	"github.com/abhisek/codeleveling/internal/config"
	"github.com/abhisek/codeleveling/internal/daily"
	"github.com/abhisek/codeleveling/internal/leaderboard"
	"github.com/abhisek/codeleveling/internal/logging"
	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/users"
)

// envFile is read from the working directory when present.
const envFile = ".env"

// env bundles the store and services a command works with.
type env struct {
	cfg   config.Config
	log   zerolog.Logger
	store *store.Store

	catalog *catalog.Service
	engine  *progress.Engine
	daily   *daily.Tracker
	ranker  *leaderboard.Ranker
	users   *users.Directory
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var flags config.Flags
	flags.DB, _ = cmd.Flags().GetString("db")
	flags.User, _ = cmd.Flags().GetString("user")
	flags.LogLevel, _ = cmd.Flags().GetString("log-level")
	return config.Load(flags, envFile)
}

// openEnv resolves configuration, opens the store, seeds the catalog and
// builds the services. Logs go to logOut.
func openEnv(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logOut, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	repo := st.Repo()

	e := &env{
		cfg:     cfg,
		log:     log,
		store:   st,
		catalog: catalog.NewService(repo, log),
		engine:  progress.NewEngine(repo, log),
		daily:   daily.NewTracker(repo, log),
		ranker:  leaderboard.NewRanker(repo),
		users:   users.NewDirectory(repo, log),
	}

	if err := e.seed(cmd.Context()); err != nil {
		st.Close()
		return nil, err
	}
	return e, nil
}

func (e *env) seed(ctx context.Context) error {
	var (
		doc *catalog.Document
		err error
	)
	if e.cfg.Catalog != "" {
		doc, err = catalog.LoadFile(e.cfg.Catalog)
	} else {
		doc, err = catalog.Default()
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if _, err := e.catalog.Seed(ctx, doc); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// currentUser returns the --user override, or the persisted current user.
func (e *env) currentUser(ctx context.Context) (store.User, error) {
	if e.cfg.User != "" {
		return e.users.Ensure(ctx, e.cfg.User)
	}
	return e.users.Current(ctx)
}

func (e *env) Close() error {
	return e.store.Close()
}

// withEnv opens an env logging to stderr, runs fn and closes it.
func withEnv(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := openEnv(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(cmd.Context(), e)
}

// withUser is withEnv plus the acting user.
func withUser(cmd *cobra.Command, fn func(ctx context.Context, e *env, u store.User) error) error {
	return withEnv(cmd, func(ctx context.Context, e *env) error {
		u, err := e.currentUser(ctx)
		if err != nil {
			return fmt.Errorf("resolve user: %w", err)
		}
		return fn(ctx, e, u)
	})
}
