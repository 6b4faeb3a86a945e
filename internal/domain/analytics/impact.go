package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SortOrder selects the impact ordering.
type SortOrder string

const (
	SortDescending SortOrder = "descending"
	SortAscending  SortOrder = "ascending"
)

// ParseSortOrder maps user input to a SortOrder, defaulting to descending.
func ParseSortOrder(v string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "asc", "ascending":
		return SortAscending
	case "desc", "descending":
		return SortDescending
	default:
		return SortDescending
	}
}

// GameLogRow is one player's line in one game. Stats keys are lowercase.
type GameLogRow struct {
	Team       string
	PlayerID   int64
	PlayerName string
	GameID     string
	GameDate   time.Time
	Stats      map[string]float64
}

// Stat reads a stat by name; missing values read as zero.
func (r GameLogRow) Stat(name string) float64 {
	return finiteOrZero(r.Stats[StatKey(name)])
}

// PlayerImpact compares a teammate's average with and without the absent player.
type PlayerImpact struct {
	Player           string
	WithAbsentAvg    float64
	WithoutAbsentAvg float64
	ImpactPct        float64
	Rank             int
	GamesWith        int
	GamesWithout     int
}

type playerSplit struct {
	withSum, withoutSum     float64
	withRows, withoutRows   int
	withGames, withoutGames map[string]struct{}
}

// Impact splits each teammate's games by whether absentPlayer also played and
// ranks teammates by the relative change in stat. Teammates missing either side
// of the split are left out.
func Impact(logs []GameLogRow, absentPlayer, stat string, order SortOrder) ([]PlayerImpact, error) {
	if len(logs) == 0 {
		return nil, ErrNoData
	}

	absentPlayer = strings.TrimSpace(absentPlayer)
	presence := make(map[string]struct{})
	for _, row := range logs {
		if row.PlayerName == absentPlayer {
			presence[row.GameID] = struct{}{}
		}
	}
	if len(presence) == 0 {
		return nil, fmt.Errorf("%w: %s has no game data", ErrTargetNotFound, absentPlayer)
	}

	roster := make([]string, 0, 16)
	splits := make(map[string]*playerSplit)
	for _, row := range logs {
		if row.PlayerName == absentPlayer {
			continue
		}
		split, ok := splits[row.PlayerName]
		if !ok {
			split = &playerSplit{
				withGames:    make(map[string]struct{}),
				withoutGames: make(map[string]struct{}),
			}
			splits[row.PlayerName] = split
			roster = append(roster, row.PlayerName)
		}

		value := row.Stat(stat)
		if _, together := presence[row.GameID]; together {
			split.withSum += value
			split.withRows++
			split.withGames[row.GameID] = struct{}{}
			continue
		}
		split.withoutSum += value
		split.withoutRows++
		split.withoutGames[row.GameID] = struct{}{}
	}

	out := make([]PlayerImpact, 0, len(roster))
	for _, player := range roster {
		split := splits[player]
		if split.withRows == 0 || split.withoutRows == 0 {
			continue
		}

		withAvg := split.withSum / float64(split.withRows)
		withoutAvg := split.withoutSum / float64(split.withoutRows)
		out = append(out, PlayerImpact{
			Player:           player,
			WithAbsentAvg:    round2(withAvg),
			WithoutAbsentAvg: round2(withoutAvg),
			ImpactPct:        round2(impactPct(withAvg, withoutAvg)),
			GamesWith:        len(split.withGames),
			GamesWithout:     len(split.withoutGames),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortAscending {
			return out[i].ImpactPct < out[j].ImpactPct
		}
		return out[i].ImpactPct > out[j].ImpactPct
	})
	for i := range out {
		out[i].Rank = i + 1
	}

	return out, nil
}

// impactPct is discontinuous at withAvg == 0: any positive output there reads as 100.
func impactPct(withAvg, withoutAvg float64) float64 {
	switch {
	case withAvg != 0:
		return (withoutAvg - withAvg) / withAvg * 100
	case withoutAvg != 0:
		return 100
	default:
		return 0
	}
}
