package progress

import (
	"time"

	"github.com/abhisek/codeleveling/internal/store"
)

// XPPerLevel is the experience needed to advance one level.
const XPPerLevel = 200

// ComputeLevel returns the level for a total XP amount. Level 1 starts at
// zero XP and each further level costs XPPerLevel.
func ComputeLevel(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}

// XPIntoLevel returns how far xp is into its current level, for progress bars.
func XPIntoLevel(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % XPPerLevel
}

// ApplyXP adds xp to stats, recomputes the level and stamps last-active.
// It reports whether the level went up.
func ApplyXP(stats store.UserStats, xp int, now time.Time) (store.UserStats, bool) {
	before := stats.Level
	if xp > 0 {
		stats.TotalXP += xp
	}
	stats.Level = ComputeLevel(stats.TotalXP)
	at := now.UTC()
	stats.LastActive = &at
	return stats, stats.Level > before
}
