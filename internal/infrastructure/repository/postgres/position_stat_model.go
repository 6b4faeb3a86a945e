package postgres

import "database/sql"

type positionStatTableModel struct {
	Team       string          `db:"team"`
	Position   string          `db:"position"`
	TimePeriod string          `db:"time_period"`
	StatName   string          `db:"stat_name"`
	Value      sql.NullFloat64 `db:"value"`
}
