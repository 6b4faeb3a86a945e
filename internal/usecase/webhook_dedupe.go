package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/courtvision/internal/domain/billing"
	"github.com/riskibarqy/courtvision/internal/platform/cache"
)

const (
	defaultDedupeEntries = 10_000
	defaultDedupeTTL     = 72 * time.Hour
)

// eventDeduper remembers handled webhook event ids in a bounded TTL cache
// backed by the durable processed-events table. An id is claimed while its
// event is being handled so concurrent deliveries are not processed twice.
type eventDeduper struct {
	recent *cache.Store[time.Time]
	repo   billing.ProcessedEventRepository
	now    func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

func newEventDeduper(repo billing.ProcessedEventRepository, maxEntries int, ttl time.Duration) *eventDeduper {
	if maxEntries < 1 {
		maxEntries = defaultDedupeEntries
	}
	if ttl <= 0 {
		ttl = defaultDedupeTTL
	}
	return &eventDeduper{
		recent:   cache.NewStore[time.Time](maxEntries, ttl),
		repo:     repo,
		now:      time.Now,
		inflight: make(map[string]struct{}),
	}
}

// claim reports whether the caller owns the event. false means it was seen.
func (d *eventDeduper) claim(ctx context.Context, eventID string) (bool, error) {
	d.mu.Lock()
	if _, ok := d.recent.Get(ctx, eventID); ok {
		d.mu.Unlock()
		return false, nil
	}
	if _, ok := d.inflight[eventID]; ok {
		d.mu.Unlock()
		return false, nil
	}
	d.inflight[eventID] = struct{}{}
	d.mu.Unlock()

	if d.repo == nil {
		return true, nil
	}
	exists, err := d.repo.Exists(ctx, eventID)
	if err != nil {
		d.release(eventID)
		return false, fmt.Errorf("check processed event: %w", err)
	}
	if exists {
		d.mu.Lock()
		delete(d.inflight, eventID)
		d.recent.Set(ctx, eventID, d.now())
		d.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (d *eventDeduper) complete(ctx context.Context, event billing.Event) error {
	processedAt := d.now().UTC()
	if d.repo != nil {
		if err := d.repo.Save(ctx, billing.ProcessedEvent{
			EventID:     event.ID,
			EventType:   event.Type,
			ProcessedAt: processedAt,
		}); err != nil {
			d.release(event.ID)
			return fmt.Errorf("save processed event: %w", err)
		}
	}

	d.mu.Lock()
	delete(d.inflight, event.ID)
	d.recent.Set(ctx, event.ID, processedAt)
	d.mu.Unlock()
	return nil
}

func (d *eventDeduper) release(eventID string) {
	d.mu.Lock()
	delete(d.inflight, eventID)
	d.mu.Unlock()
}
