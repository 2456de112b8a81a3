package domain

// XPPerLevel is the number of experience points per level step.
const XPPerLevel = 100

// UserStats is the gamification state aggregated from XP award events.
type UserStats struct {
	XP     int      `json:"xp"`
	Level  int      `json:"level"`
	Streak int      `json:"streak"`
	Badges []string `json:"badges"`
}

// LevelForXP maps a monotonic XP counter to a level. Level 1 starts at 0 XP
// and every XPPerLevel points advance one level.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}
