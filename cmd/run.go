package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/codeleveling/internal/app"
	"github.com/abhisek/codeleveling/internal/logging"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/store"
)

// logFileName is written under the data directory while the TUI runs.
const logFileName = "codeleveling.log"

// runApp opens the store, builds dependencies, and launches the TUI. The
// terminal belongs to the TUI, so logs go to a file.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	logFile, err := logging.OpenFile(dir, logFileName)
	if err != nil {
		return err
	}
	defer logFile.Close()

	e, err := openEnv(cmd, logFile)
	if err != nil {
		return err
	}
	defer e.Close()

	u, err := e.currentUser(ctx)
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}
	e.log.Info().Str("user", u.Username).Str("db", e.cfg.DBPath).Msg("starting tui")

	return app.Run(app.Options{
		Session: &screen.Session{
			Catalog: e.catalog,
			Engine:  e.engine,
			Daily:   e.daily,
			Ranker:  e.ranker,
			Users:   e.users,
			User:    u,
		},
		Log: e.log,
	})
}
