// Package screentest builds sessions over seeded in-memory stores for
// screen tests.
package screentest

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhisek/codeleveling/internal/catalog"
	"github.com/abhisek/codeleveling/internal/daily"
	"github.com/abhisek/codeleveling/internal/leaderboard"
	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/store/storetest"
	"github.com/abhisek/codeleveling/internal/users"
)

// NewSession returns a session acting as username over a store seeded
// with the built-in catalog.
func NewSession(t testing.TB, username string) *screen.Session {
	t.Helper()
	ctx := context.Background()
	repo := storetest.Open(t).Repo()
	log := zerolog.Nop()

	sess := &screen.Session{
		Catalog: catalog.NewService(repo, log),
		Engine:  progress.NewEngine(repo, log),
		Daily:   daily.NewTracker(repo, log),
		Ranker:  leaderboard.NewRanker(repo),
		Users:   users.NewDirectory(repo, log),
	}

	doc, err := catalog.Default()
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	if _, err := sess.Catalog.Seed(ctx, doc); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	u, err := sess.Users.Ensure(ctx, username)
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	sess.User = u
	return sess
}
