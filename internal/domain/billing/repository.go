package billing

import "context"

// ProcessedEventRepository records webhook events that were fully handled.
type ProcessedEventRepository interface {
	Exists(ctx context.Context, eventID string) (bool, error)
	Save(ctx context.Context, item ProcessedEvent) error
}
