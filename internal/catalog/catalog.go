// Package catalog serves quests, lessons and questions, and loads catalog
// documents into the store.
package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/mod/semver"

	"github.com/abhisek/codeleveling/internal/store"
)

// Service reads catalog content and seeds it.
type Service struct {
	repo store.Repo
	log  zerolog.Logger
}

// NewService creates a catalog Service.
func NewService(repo store.Repo, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "catalog").Logger(),
	}
}

// NextQuestion returns the lowest-id question of the quest the user has not
// yet answered correctly. A nil question means the quest is mastered.
func (s *Service) NextQuestion(ctx context.Context, userID string, questID int) (*store.Question, error) {
	return s.repo.NextUnanswered(ctx, userID, questID)
}

// Lesson returns the lesson text for a quest, or "" when there is none.
func (s *Service) Lesson(ctx context.Context, questID int) (string, error) {
	return s.repo.Lesson(ctx, questID)
}

// ListQuests returns every quest with the user's status and best score.
func (s *Service) ListQuests(ctx context.Context, userID string) ([]store.QuestView, error) {
	return s.repo.QuestViews(ctx, userID)
}

// Questions returns a quest's questions ordered by id.
func (s *Service) Questions(ctx context.Context, questID int) ([]store.Question, error) {
	return s.repo.Questions(ctx, questID)
}

// Version returns the version of the catalog currently in the store.
func (s *Service) Version(ctx context.Context) (string, error) {
	v, _, err := s.repo.Setting(ctx, store.SettingCatalogVersion)
	return v, err
}

// SeedResult summarizes a seeding run.
type SeedResult struct {
	Applied   bool
	Version   string
	Previous  string
	Quests    int
	Questions int
	Tasks     int
	Users     int
}

// Seed applies doc when its version is newer than the stored one.
func (s *Service) Seed(ctx context.Context, doc *Document) (SeedResult, error) {
	return s.seed(ctx, doc, false)
}

// Import applies doc regardless of the stored version.
func (s *Service) Import(ctx context.Context, doc *Document) (SeedResult, error) {
	return s.seed(ctx, doc, true)
}

func (s *Service) seed(ctx context.Context, doc *Document, force bool) (SeedResult, error) {
	res := SeedResult{Version: doc.Version}
	err := s.repo.InTx(ctx, func(tx store.Repo) error {
		prev, ok, err := tx.Setting(ctx, store.SettingCatalogVersion)
		if err != nil {
			return err
		}
		res.Previous = prev
		if ok && !force && semver.Compare(CanonicalVersion(doc.Version), CanonicalVersion(prev)) <= 0 {
			return nil
		}

		for _, q := range doc.Quests {
			quest := store.Quest{ID: q.ID, Title: q.Title, Topic: q.Topic, Difficulty: q.Difficulty}
			if err := tx.UpsertQuest(ctx, quest); err != nil {
				return err
			}
			if q.Lesson != "" {
				if err := tx.UpsertLesson(ctx, q.ID, q.Lesson); err != nil {
					return err
				}
			}
			for _, qn := range q.Questions {
				question := store.Question{
					ID:           qn.ID,
					QuestID:      q.ID,
					Type:         store.QuestionTypeMCQ,
					Prompt:       qn.Prompt,
					Choices:      qn.Choices,
					CorrectIndex: qn.CorrectIndex,
					XPValue:      xpOr(qn.XP),
				}
				if err := tx.UpsertQuestion(ctx, question); err != nil {
					return err
				}
				res.Questions++
			}
			res.Quests++
		}

		for _, t := range doc.DailyTasks {
			task := store.DailyTask{ID: t.ID, Title: t.Title, XPValue: xpOr(t.XP), Active: t.Active == nil || *t.Active}
			if err := tx.UpsertDailyTask(ctx, task); err != nil {
				return err
			}
			res.Tasks++
		}

		// Users created before these quests existed need rows for them.
		users, err := tx.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range users {
			if err := tx.InitProgress(ctx, u.ID); err != nil {
				return err
			}
		}
		res.Users = len(users)

		res.Applied = true
		return tx.SetSetting(ctx, store.SettingCatalogVersion, doc.Version)
	})
	if err != nil {
		s.log.Error().Err(err).Str("version", doc.Version).Msg("seed catalog failed")
		return SeedResult{}, fmt.Errorf("seed catalog %s: %w", doc.Version, err)
	}

	if res.Applied {
		s.log.Info().
			Str("version", doc.Version).
			Str("previous", res.Previous).
			Int("quests", res.Quests).
			Int("questions", res.Questions).
			Int("tasks", res.Tasks).
			Msg("catalog seeded")
	} else {
		s.log.Debug().Str("version", doc.Version).Str("stored", res.Previous).Msg("catalog up to date")
	}
	return res, nil
}

func xpOr(xp *int) int {
	if xp == nil {
		return DefaultXP
	}
	return *xp
}
