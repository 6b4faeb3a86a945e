package nbastats

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/courtvision/internal/domain/gamelog"
	"github.com/riskibarqy/courtvision/internal/usecase"
)

type resultEnvelope struct {
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	RowSet  [][]any  `json:"rowSet"`
}

// Column positions used when a result set arrives without headers.
var positionalColumns = map[string]int{
	"GAME_ID":     2,
	"GAME_DATE":   3,
	"PLAYER_ID":   4,
	"PLAYER_NAME": 5,
	"POSITION":    6,
	"GP":          7,
	"PTS":         8,
	"REB":         9,
	"AST":         10,
	"FG3M":        11,
	"FG3A":        12,
	"FTM":         13,
	"FTA":         14,
	"FGA":         15,
	"FGM":         16,
	"MIN":         17,
	"TOV":         18,
	"PF":          19,
	"STL":         20,
	"BLK":         21,
	"FG_PCT":      22,
	"FG3_PCT":     23,
	"FT_PCT":      24,
}

var gameDateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"Jan 02, 2006",
	"JAN 02, 2006",
}

type columns map[string]int

func resolveColumns(headers []string) columns {
	if len(headers) == 0 {
		return positionalColumns
	}
	out := make(columns, len(headers))
	for i, h := range headers {
		out[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	return out
}

func (c columns) value(row []any, name string) (any, bool) {
	idx, ok := c[name]
	if !ok || idx < 0 || idx >= len(row) {
		return nil, false
	}
	return row[idx], row[idx] != nil
}

func (c columns) float(row []any, name string) float64 {
	v, ok := c.value(row, name)
	if !ok {
		return 0
	}
	return toFloat(v)
}

func (c columns) str(row []any, name string) string {
	v, ok := c.value(row, name)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// parseGameLogs maps rows to upstream lines and counts rows it had to drop
// for missing identity fields.
func parseGameLogs(set resultSet, teamName string) ([]usecase.ExternalGameLog, int) {
	cols := resolveColumns(set.Headers)
	out := make([]usecase.ExternalGameLog, 0, len(set.RowSet))
	skipped := 0

	for _, row := range set.RowSet {
		gameID := cols.str(row, "GAME_ID")
		playerName := cols.str(row, "PLAYER_NAME")
		gameDate, ok := parseGameDate(cols.str(row, "GAME_DATE"))
		if gameID == "" || playerName == "" || !ok {
			skipped++
			continue
		}

		entry := gamelog.Entry{
			Team:           teamName,
			PlayerID:       int64(cols.float(row, "PLAYER_ID")),
			PlayerName:     playerName,
			Position:       cols.str(row, "POSITION"),
			GameID:         gameID,
			GameDate:       gameDate,
			Points:         cols.float(row, "PTS"),
			Rebounds:       cols.float(row, "REB"),
			Assists:        cols.float(row, "AST"),
			ThreesMade:     cols.float(row, "FG3M"),
			ThreesAttempts: cols.float(row, "FG3A"),
			Steals:         cols.float(row, "STL"),
			Blocks:         cols.float(row, "BLK"),
		}

		gp := cols.float(row, "GP")
		if gp == 0 {
			gp = 1
		}
		box := gamelog.BoxScoreUpdate{
			Key: gamelog.Key{GameID: gameID, PlayerName: playerName},
			BoxScore: gamelog.BoxScore{
				GamesPlayed:    gp,
				FreeThrowsMade: cols.float(row, "FTM"),
				FreeThrowsAtt:  cols.float(row, "FTA"),
				FieldGoalsAtt:  cols.float(row, "FGA"),
				FieldGoalsMade: cols.float(row, "FGM"),
				Minutes:        cols.float(row, "MIN"),
				Turnovers:      cols.float(row, "TOV"),
				PersonalFouls:  cols.float(row, "PF"),
				FieldGoalPct:   cols.float(row, "FG_PCT"),
				ThreePointPct:  cols.float(row, "FG3_PCT"),
				FreeThrowPct:   cols.float(row, "FT_PCT"),
			},
			Steals: entry.Steals,
			Blocks: entry.Blocks,
		}

		out = append(out, usecase.ExternalGameLog{Entry: entry, BoxScore: box})
	}
	return out, skipped
}

func parseGameDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range gameDateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// toFloat reads numbers and numeric strings; anything else, NaN included, is 0.
func toFloat(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int64:
		f = float64(t)
	case int:
		f = float64(t)
	case string:
		// minutes sometimes arrive as "34:12"
		if mins, secs, ok := strings.Cut(strings.TrimSpace(t), ":"); ok {
			m, err1 := strconv.ParseFloat(mins, 64)
			s, err2 := strconv.ParseFloat(secs, 64)
			if err1 != nil || err2 != nil {
				return 0
			}
			f = m + s/60
			break
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
