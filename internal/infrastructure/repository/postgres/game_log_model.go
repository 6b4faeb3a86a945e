package postgres

import (
	"database/sql"
	"time"
)

type gameLogTableModel struct {
	ID             int64           `db:"id"`
	Team           string          `db:"team"`
	Season         string          `db:"season"`
	GameID         string          `db:"game_id"`
	GameDate       time.Time       `db:"game_date"`
	PlayerID       sql.NullInt64   `db:"player_id"`
	PlayerName     string          `db:"player_name"`
	Position       sql.NullString  `db:"position"`
	Points         sql.NullFloat64 `db:"pts"`
	Rebounds       sql.NullFloat64 `db:"reb"`
	Assists        sql.NullFloat64 `db:"ast"`
	ThreesMade     sql.NullFloat64 `db:"three_pm"`
	ThreesAttempts sql.NullFloat64 `db:"three_pa"`
	Steals         sql.NullFloat64 `db:"stl"`
	Blocks         sql.NullFloat64 `db:"blk"`
	GamesPlayed    sql.NullFloat64 `db:"gp"`
	FreeThrowsMade sql.NullFloat64 `db:"ftm"`
	FreeThrowsAtt  sql.NullFloat64 `db:"fta"`
	FieldGoalsAtt  sql.NullFloat64 `db:"fga"`
	FieldGoalsMade sql.NullFloat64 `db:"fgm"`
	Minutes        sql.NullFloat64 `db:"min"`
	Turnovers      sql.NullFloat64 `db:"tov"`
	PersonalFouls  sql.NullFloat64 `db:"pf"`
	FieldGoalPct   sql.NullFloat64 `db:"fg_pct"`
	ThreePointPct  sql.NullFloat64 `db:"fg3_pct"`
	FreeThrowPct   sql.NullFloat64 `db:"ft_pct"`
}

type gameLogInsertModel struct {
	Team           string    `db:"team"`
	Season         string    `db:"season"`
	GameID         string    `db:"game_id"`
	GameDate       time.Time `db:"game_date"`
	PlayerID       *int64    `db:"player_id"`
	PlayerName     string    `db:"player_name"`
	Position       *string   `db:"position"`
	Points         float64   `db:"pts"`
	Rebounds       float64   `db:"reb"`
	Assists        float64   `db:"ast"`
	ThreesMade     float64   `db:"three_pm"`
	ThreesAttempts float64   `db:"three_pa"`
	Steals         float64   `db:"stl"`
	Blocks         float64   `db:"blk"`
}

type gameLogKeyModel struct {
	GameID     string `db:"game_id"`
	PlayerName string `db:"player_name"`
}
