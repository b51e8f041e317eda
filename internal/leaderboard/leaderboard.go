// Package leaderboard ranks users by XP plus a recency bonus.
package leaderboard

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/codeleveling/internal/store"
)

const (
	// DefaultLimit applies when Rank is called with limit <= 0.
	DefaultLimit = 20

	// MaxRecencyBonus is the bonus for a user active right now. It decays
	// by BonusDecayPerDay for every day of inactivity.
	MaxRecencyBonus  = 200.0
	BonusDecayPerDay = 20.0
)

// Entry is one ranked user.
type Entry struct {
	Rank     int
	UserID   string
	Username string
	TotalXP  int
	Score    float64
}

// Ranker derives the leaderboard from stored stats.
type Ranker struct {
	repo store.LeaderboardRepo

	Now func() time.Time
}

// NewRanker creates a Ranker.
func NewRanker(repo store.LeaderboardRepo) *Ranker {
	return &Ranker{repo: repo, Now: time.Now}
}

// Score returns totalXP plus the recency bonus. Users never active get no
// bonus.
func Score(totalXP int, lastActive *time.Time, now time.Time) float64 {
	score := float64(totalXP)
	if lastActive == nil {
		return score
	}
	days := now.Sub(*lastActive).Hours() / 24
	if days < 0 {
		days = 0
	}
	return score + math.Max(0, MaxRecencyBonus-days*BonusDecayPerDay)
}

// Rank returns the top users by descending score. Ties are ordered by
// case-insensitive username, then user id.
func (r *Ranker) Rank(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := r.repo.RankRows(ctx)
	if err != nil {
		return nil, err
	}

	now := r.Now()
	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = Entry{
			UserID:   row.UserID,
			Username: row.Username,
			TotalXP:  row.TotalXP,
			Score:    Score(row.TotalXP, row.LastActive, now),
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if la, lb := strings.ToLower(a.Username), strings.ToLower(b.Username); la != lb {
			return la < lb
		}
		return a.UserID < b.UserID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
