package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	UserID           string         `db:"user_id"`
	Email            string         `db:"email"`
	FullName         string         `db:"full_name"`
	Tier             string         `db:"tier"`
	StripeCustomerID sql.NullString `db:"stripe_customer_id"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type profileInsertModel struct {
	UserID    string    `db:"user_id"`
	Email     string    `db:"email"`
	FullName  string    `db:"full_name"`
	Tier      string    `db:"tier"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type processedEventInsertModel struct {
	EventID     string    `db:"event_id"`
	EventType   string    `db:"event_type"`
	ProcessedAt time.Time `db:"processed_at"`
}
