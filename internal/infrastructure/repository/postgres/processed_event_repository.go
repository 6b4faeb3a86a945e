package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/courtvision/internal/domain/billing"
	qb "github.com/riskibarqy/courtvision/internal/platform/querybuilder"
)

type ProcessedEventRepository struct {
	db *sqlx.DB
}

func NewProcessedEventRepository(db *sqlx.DB) *ProcessedEventRepository {
	return &ProcessedEventRepository{db: db}
}

func (r *ProcessedEventRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	query, args, err := qb.Select("1").
		From("processed_webhook_events").
		Where(qb.Eq("event_id", strings.TrimSpace(eventID))).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build processed event lookup query: %w", err)
	}

	var found int
	if err := r.db.GetContext(ctx, &found, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("lookup processed event id=%s: %w", eventID, err)
	}
	return true, nil
}

// Save is a no-op for an event id that is already recorded.
func (r *ProcessedEventRepository) Save(ctx context.Context, item billing.ProcessedEvent) error {
	processedAt := item.ProcessedAt.UTC()
	if processedAt.IsZero() {
		processedAt = time.Now().UTC()
	}

	builder, err := qb.InsertModels("processed_webhook_events", []processedEventInsertModel{{
		EventID:     strings.TrimSpace(item.EventID),
		EventType:   strings.TrimSpace(item.EventType),
		ProcessedAt: processedAt,
	}})
	if err != nil {
		return fmt.Errorf("build insert processed event query: %w", err)
	}
	query, args, err := builder.OnConflictDoNothing("event_id").ToSQL()
	if err != nil {
		return fmt.Errorf("build insert processed event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert processed event id=%s: %w", item.EventID, err)
	}
	return nil
}
