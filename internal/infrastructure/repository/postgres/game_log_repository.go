package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/courtvision/internal/domain/gamelog"
	qb "github.com/riskibarqy/courtvision/internal/platform/querybuilder"
)

var gameLogColumns = []string{
	"id", "team", "season", "game_id", "game_date", "player_id", "player_name", "position",
	"pts", "reb", "ast", "three_pm", "three_pa", "stl", "blk",
	"gp", "ftm", "fta", "fga", "fgm", "min", "tov", "pf", "fg_pct", "fg3_pct", "ft_pct",
}

type GameLogRepository struct {
	db *sqlx.DB
}

func NewGameLogRepository(db *sqlx.DB) *GameLogRepository {
	return &GameLogRepository{db: db}
}

func (r *GameLogRepository) ListByTeam(ctx context.Context, team string) ([]gamelog.Entry, error) {
	query, args, err := qb.Select(gameLogColumns...).
		From("player_game_logs").
		Where(qb.Eq("team", strings.TrimSpace(team))).
		OrderBy("game_date", "game_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game logs query: %w", err)
	}

	var rows []gameLogTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game logs team=%s: %w", team, err)
	}

	out := make([]gamelog.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameLogFromRow(row))
	}
	return out, nil
}

func (r *GameLogRepository) ListPlayers(ctx context.Context, team string) ([]string, error) {
	query, args, err := qb.Select("DISTINCT player_name").
		From("player_game_logs").
		Where(qb.Eq("team", strings.TrimSpace(team))).
		OrderBy("player_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var players []string
	if err := r.db.SelectContext(ctx, &players, query, args...); err != nil {
		return nil, fmt.Errorf("select players team=%s: %w", team, err)
	}
	return players, nil
}

func (r *GameLogRepository) LatestGameDate(ctx context.Context, team string) (time.Time, bool, error) {
	query, args, err := qb.Select("MAX(game_date)").
		From("player_game_logs").
		Where(qb.Eq("team", strings.TrimSpace(team))).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build latest game date query: %w", err)
	}

	var latest sql.NullTime
	if err := r.db.GetContext(ctx, &latest, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("select latest game date team=%s: %w", team, err)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	return latest.Time.UTC(), true, nil
}

// InsertBatch skips rows that already exist for the same game and player.
func (r *GameLogRepository) InsertBatch(ctx context.Context, items []gamelog.Entry) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	models := make([]gameLogInsertModel, 0, len(items))
	for _, item := range items {
		models = append(models, gameLogInsertModelFromEntry(item))
	}

	builder, err := qb.InsertModels("player_game_logs", models)
	if err != nil {
		return 0, fmt.Errorf("build insert game logs query: %w", err)
	}
	query, args, err := builder.OnConflictDoNothing("game_id", "player_name").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert game logs query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert game logs rows=%d: %w", len(items), err)
	}
	return rowsAffected(res), nil
}

func (r *GameLogRepository) ListKeysByTeam(ctx context.Context, team string) ([]gamelog.Key, error) {
	query, args, err := qb.Select("game_id", "player_name").
		From("player_game_logs").
		Where(qb.Eq("team", strings.TrimSpace(team))).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game keys query: %w", err)
	}

	var rows []gameLogKeyModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game keys team=%s: %w", team, err)
	}

	out := make([]gamelog.Key, 0, len(rows))
	for _, row := range rows {
		out = append(out, gamelog.Key{GameID: row.GameID, PlayerName: row.PlayerName})
	}
	return out, nil
}

// UpdateBoxScores applies every update of the batch in one transaction.
func (r *GameLogRepository) UpdateBoxScores(ctx context.Context, team string, items []gamelog.BoxScoreUpdate) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin box score update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	updated := 0
	for _, item := range items {
		query, args, err := boxScoreUpdateQuery(team, item)
		if err != nil {
			return 0, fmt.Errorf("build box score update query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("update box score game=%s player=%s: %w", item.Key.GameID, item.Key.PlayerName, err)
		}
		updated += rowsAffected(res)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit box score update: %w", err)
	}
	return updated, nil
}

func boxScoreUpdateQuery(team string, item gamelog.BoxScoreUpdate) (string, []any, error) {
	box := item.BoxScore
	return qb.Update("player_game_logs").
		Set("gp", box.GamesPlayed).
		Set("ftm", box.FreeThrowsMade).
		Set("fta", box.FreeThrowsAtt).
		Set("fga", box.FieldGoalsAtt).
		Set("fgm", box.FieldGoalsMade).
		Set("min", box.Minutes).
		Set("tov", box.Turnovers).
		Set("pf", box.PersonalFouls).
		Set("stl", item.Steals).
		Set("blk", item.Blocks).
		Set("fg_pct", box.FieldGoalPct).
		Set("fg3_pct", box.ThreePointPct).
		Set("ft_pct", box.FreeThrowPct).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("team", strings.TrimSpace(team)),
			qb.Eq("game_id", item.Key.GameID),
			qb.Eq("player_name", item.Key.PlayerName),
		).
		ToSQL()
}

func gameLogInsertModelFromEntry(item gamelog.Entry) gameLogInsertModel {
	var playerID *int64
	if item.PlayerID > 0 {
		id := item.PlayerID
		playerID = &id
	}
	return gameLogInsertModel{
		Team:           strings.TrimSpace(item.Team),
		Season:         strings.TrimSpace(item.Season),
		GameID:         strings.TrimSpace(item.GameID),
		GameDate:       item.GameDate.UTC(),
		PlayerID:       playerID,
		PlayerName:     strings.TrimSpace(item.PlayerName),
		Position:       optionalString(item.Position),
		Points:         item.Points,
		Rebounds:       item.Rebounds,
		Assists:        item.Assists,
		ThreesMade:     item.ThreesMade,
		ThreesAttempts: item.ThreesAttempts,
		Steals:         item.Steals,
		Blocks:         item.Blocks,
	}
}

func gameLogFromRow(row gameLogTableModel) gamelog.Entry {
	return gamelog.Entry{
		ID:             row.ID,
		Team:           row.Team,
		PlayerID:       row.PlayerID.Int64,
		PlayerName:     strings.TrimSpace(row.PlayerName),
		Position:       strings.TrimSpace(row.Position.String),
		GameID:         row.GameID,
		GameDate:       row.GameDate.UTC(),
		Season:         row.Season,
		Points:         nullFloat(row.Points),
		Rebounds:       nullFloat(row.Rebounds),
		Assists:        nullFloat(row.Assists),
		ThreesMade:     nullFloat(row.ThreesMade),
		ThreesAttempts: nullFloat(row.ThreesAttempts),
		Steals:         nullFloat(row.Steals),
		Blocks:         nullFloat(row.Blocks),
		BoxScore: gamelog.BoxScore{
			GamesPlayed:    nullFloat(row.GamesPlayed),
			FreeThrowsMade: nullFloat(row.FreeThrowsMade),
			FreeThrowsAtt:  nullFloat(row.FreeThrowsAtt),
			FieldGoalsAtt:  nullFloat(row.FieldGoalsAtt),
			FieldGoalsMade: nullFloat(row.FieldGoalsMade),
			Minutes:        nullFloat(row.Minutes),
			Turnovers:      nullFloat(row.Turnovers),
			PersonalFouls:  nullFloat(row.PersonalFouls),
			FieldGoalPct:   nullFloat(row.FieldGoalPct),
			ThreePointPct:  nullFloat(row.ThreePointPct),
			FreeThrowPct:   nullFloat(row.FreeThrowPct),
		},
	}
}
