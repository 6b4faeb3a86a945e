package gamelog

import (
	"strings"
	"time"
)

// Stat keys accepted by the teammate impact tool.
const (
	StatPoints         = "PTS"
	StatRebounds       = "REB"
	StatAssists        = "AST"
	StatThreesMade     = "3PM"
	StatThreesAttempts = "3PA"
	StatSteals         = "STL"
	StatBlocks         = "BLK"
)

// ImpactStats lists the stats the impact tool can compare, in display order.
var ImpactStats = []string{
	StatPoints,
	StatRebounds,
	StatAssists,
	StatThreesMade,
	StatThreesAttempts,
	StatSteals,
	StatBlocks,
}

// NormalizeImpactStat uppercases v and falls back to points for unknown stats.
func NormalizeImpactStat(v string) string {
	candidate := strings.ToUpper(strings.TrimSpace(v))
	for _, stat := range ImpactStats {
		if stat == candidate {
			return stat
		}
	}
	return StatPoints
}

// Entry is one player's box score line for one game.
type Entry struct {
	ID         int64
	Team       string
	PlayerID   int64
	PlayerName string
	Position   string
	GameID     string
	GameDate   time.Time
	Season     string

	Points         float64
	Rebounds       float64
	Assists        float64
	ThreesMade     float64
	ThreesAttempts float64
	Steals         float64
	Blocks         float64

	BoxScore BoxScore
}

// BoxScore holds the extended fields filled in by the backfill job.
type BoxScore struct {
	GamesPlayed    float64
	FreeThrowsMade float64
	FreeThrowsAtt  float64
	FieldGoalsAtt  float64
	FieldGoalsMade float64
	Minutes        float64
	Turnovers      float64
	PersonalFouls  float64
	FieldGoalPct   float64
	ThreePointPct  float64
	FreeThrowPct   float64
}

// StatValues returns every numeric field keyed by lowercase stat name.
func (e Entry) StatValues() map[string]float64 {
	return map[string]float64{
		"pts":     e.Points,
		"reb":     e.Rebounds,
		"ast":     e.Assists,
		"3pm":     e.ThreesMade,
		"3pa":     e.ThreesAttempts,
		"stl":     e.Steals,
		"blk":     e.Blocks,
		"gp":      e.BoxScore.GamesPlayed,
		"ftm":     e.BoxScore.FreeThrowsMade,
		"fta":     e.BoxScore.FreeThrowsAtt,
		"fga":     e.BoxScore.FieldGoalsAtt,
		"fgm":     e.BoxScore.FieldGoalsMade,
		"min":     e.BoxScore.Minutes,
		"tov":     e.BoxScore.Turnovers,
		"pf":      e.BoxScore.PersonalFouls,
		"fg_pct":  e.BoxScore.FieldGoalPct,
		"fg3_pct": e.BoxScore.ThreePointPct,
		"ft_pct":  e.BoxScore.FreeThrowPct,
	}
}

// Key identifies an entry for box score updates.
type Key struct {
	GameID     string
	PlayerName string
}

// BoxScoreUpdate pairs a key with backfilled values. Steals and blocks
// overwrite the values captured at insert time.
type BoxScoreUpdate struct {
	Key      Key
	BoxScore BoxScore
	Steals   float64
	Blocks   float64
}
