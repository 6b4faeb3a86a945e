package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/courtvision/internal/domain/positionstat"
	qb "github.com/riskibarqy/courtvision/internal/platform/querybuilder"
)

type PositionStatRepository struct {
	db *sqlx.DB
}

func NewPositionStatRepository(db *sqlx.DB) *PositionStatRepository {
	return &PositionStatRepository{db: db}
}

// List returns rows in insertion order so later duplicates win when pivoted.
func (r *PositionStatRepository) List(ctx context.Context, filter positionstat.Filter) ([]positionstat.Row, error) {
	query, args, err := positionStatListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build select position stats query: %w", err)
	}

	var rows []positionStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select position stats period=%s: %w", filter.Period, err)
	}

	out := make([]positionstat.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, positionStatFromRow(row))
	}
	return out, nil
}

func (r *PositionStatRepository) ListPeriods(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("DISTINCT time_period").
		From("position_stats").
		OrderBy("time_period DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select periods query: %w", err)
	}

	var periods []string
	if err := r.db.SelectContext(ctx, &periods, query, args...); err != nil {
		return nil, fmt.Errorf("select periods: %w", err)
	}
	return periods, nil
}

func positionStatListQuery(filter positionstat.Filter) (string, []any, error) {
	conditions := []qb.Condition{qb.Eq("time_period", strings.TrimSpace(filter.Period))}
	if team := strings.TrimSpace(filter.Team); team != "" {
		conditions = append(conditions, qb.EqFold("team", team))
	}

	return qb.Select("team", "position", "time_period", "stat_name", "value").
		From("position_stats").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
}

func positionStatFromRow(row positionStatTableModel) positionstat.Row {
	return positionstat.Row{
		Team:     strings.TrimSpace(row.Team),
		Position: strings.ToUpper(strings.TrimSpace(row.Position)),
		Period:   row.TimePeriod,
		StatName: strings.TrimSpace(row.StatName),
		Value:    nullFloat(row.Value),
	}
}
