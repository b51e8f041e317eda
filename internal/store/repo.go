package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// QuestStatus is the lifecycle state of a (user, quest) pair.
type QuestStatus string

const (
	StatusLocked    QuestStatus = "locked"
	StatusUnlocked  QuestStatus = "unlocked"
	StatusCompleted QuestStatus = "completed"
)

// Rank orders statuses so callers can refuse backward transitions.
func (s QuestStatus) Rank() int {
	switch s {
	case StatusUnlocked:
		return 1
	case StatusCompleted:
		return 2
	default:
		return 0
	}
}

// QuestionTypeMCQ is the only supported question type.
const QuestionTypeMCQ = "mcq"

// User is a learner identity.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// UserStats is the per-user XP aggregate.
type UserStats struct {
	UserID     string
	TotalXP    int
	Level      int
	LastActive *time.Time
}

// Quest is a catalog entry.
type Quest struct {
	ID         int
	Title      string
	Topic      string
	Difficulty int
}

// QuestView is a quest joined with one user's progress.
type QuestView struct {
	Quest
	Status    QuestStatus
	BestScore int
}

// QuestProgress is the stored progress row for a (user, quest) pair.
type QuestProgress struct {
	UserID      string
	QuestID     int
	Status      QuestStatus
	BestScore   int
	LastAttempt *time.Time
}

// Question is a decoded multiple-choice question.
type Question struct {
	ID           int
	QuestID      int
	Type         string
	Prompt       string
	Choices      []string
	CorrectIndex int
	XPValue      int
}

// Attempt is one answer submission.
type Attempt struct {
	UserID        string
	QuestionID    int
	Timestamp     time.Time
	Correct       bool
	SelectedIndex int
}

// DailyTask is a repeatable once-per-day task.
type DailyTask struct {
	ID      int
	Title   string
	XPValue int
	Active  bool
}

// TaskView is an active task with the user's completion flag for a day.
type TaskView struct {
	DailyTask
	CompletedToday bool
}

// RankRow is the raw leaderboard input for one user.
type RankRow struct {
	UserID     string
	Username   string
	TotalXP    int
	LastActive *time.Time
}

// UserRepo manages learner identities.
type UserRepo interface {
	// CreateUser inserts u unless the username already exists.
	CreateUser(ctx context.Context, u User) error

	// UserByName returns the user with the given username, or nil.
	UserByName(ctx context.Context, username string) (*User, error)

	// ListUsers returns all users ordered case-insensitively by username.
	ListUsers(ctx context.Context) ([]User, error)

	// InitProgress creates locked progress rows for every quest the user
	// has none for. A locked quest whose predecessor is completed is
	// unlocked, and the lowest-id quest is unlocked when nothing else is.
	InitProgress(ctx context.Context, userID string) error
}

// StatsRepo manages per-user XP aggregates.
type StatsRepo interface {
	// EnsureStats creates a zero-XP row stamped active at at, unless one
	// already exists.
	EnsureStats(ctx context.Context, userID string, at time.Time) error

	// Stats returns the user's aggregate, or a level 1 zero value when
	// no row exists.
	Stats(ctx context.Context, userID string) (UserStats, error)

	SaveStats(ctx context.Context, stats UserStats) error
}

// QuestRepo manages quests, lessons and progress rows.
type QuestRepo interface {
	Quests(ctx context.Context) ([]Quest, error)
	QuestViews(ctx context.Context, userID string) ([]QuestView, error)
	Progress(ctx context.Context, userID string, questID int) (*QuestProgress, error)

	// CompleteProgress marks the quest completed, keeping the higher of
	// the stored and given scores.
	CompleteProgress(ctx context.Context, userID string, questID, score int, at time.Time) error

	// NextQuestID returns the smallest quest id strictly greater than questID.
	NextQuestID(ctx context.Context, questID int) (int, bool, error)

	// UnlockQuest moves a locked or missing progress row to unlocked and
	// reports whether anything changed.
	UnlockQuest(ctx context.Context, userID string, questID int) (bool, error)

	// Lesson returns the lesson body, or "" when the quest has none.
	Lesson(ctx context.Context, questID int) (string, error)
}

// QuestionRepo manages questions and the attempt log.
type QuestionRepo interface {
	Question(ctx context.Context, id int) (*Question, error)
	Questions(ctx context.Context, questID int) ([]Question, error)

	// NextUnanswered returns the lowest-id question of the quest without a
	// correct attempt from userID, or nil.
	NextUnanswered(ctx context.Context, userID string, questID int) (*Question, error)

	// UnansweredCount counts the quest's questions without a correct
	// attempt from userID.
	UnansweredCount(ctx context.Context, userID string, questID int) (int, error)

	HasCorrectAttempt(ctx context.Context, userID string, questionID int) (bool, error)
	AppendAttempt(ctx context.Context, a Attempt) error
}

// DailyRepo manages daily tasks and their completions.
type DailyRepo interface {
	DailyTask(ctx context.Context, id int) (*DailyTask, error)
	TaskViews(ctx context.Context, userID, day string) ([]TaskView, error)
	CompletedOn(ctx context.Context, userID string, taskID int, day string) (bool, error)
	InsertCompletion(ctx context.Context, userID string, taskID int, day string, at time.Time) error
}

// LeaderboardRepo reads the aggregates the ranking is derived from.
type LeaderboardRepo interface {
	RankRows(ctx context.Context) ([]RankRow, error)
}

// CatalogRepo writes catalog content.
type CatalogRepo interface {
	UpsertQuest(ctx context.Context, q Quest) error
	UpsertLesson(ctx context.Context, questID int, body string) error
	UpsertQuestion(ctx context.Context, q Question) error
	UpsertDailyTask(ctx context.Context, t DailyTask) error
}

// SettingsRepo is a small key/value store.
type SettingsRepo interface {
	Setting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Repo is the full persistence surface. InTx runs fn against a Repo bound
// to a single transaction; the transaction commits when fn returns nil and
// rolls back otherwise. Nested calls reuse the outer transaction.
type Repo interface {
	UserRepo
	StatsRepo
	QuestRepo
	QuestionRepo
	DailyRepo
	LeaderboardRepo
	CatalogRepo
	SettingsRepo

	InTx(ctx context.Context, fn func(Repo) error) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// repo implements Repo. db is nil when q is already a transaction.
type repo struct {
	q  queryer
	db *sql.DB
}

var sqlite = entsql.Dialect(dialect.SQLite)

func (r *repo) InTx(ctx context.Context, fn func(Repo) error) error {
	if r.db == nil {
		return fn(r)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&repo{q: tx}); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w: rollback: %v", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *repo) exec(ctx context.Context, b entsql.Querier) (sql.Result, error) {
	query, args := b.Query()
	return r.q.ExecContext(ctx, query, args...)
}

func (r *repo) query(ctx context.Context, b entsql.Querier) (*sql.Rows, error) {
	query, args := b.Query()
	return r.q.QueryContext(ctx, query, args...)
}

func (r *repo) queryRow(ctx context.Context, b entsql.Querier) *sql.Row {
	query, args := b.Query()
	return r.q.QueryRowContext(ctx, query, args...)
}

func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
