package cache

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/courtvision/internal/domain/gamelog"
	"github.com/riskibarqy/courtvision/internal/domain/positionstat"
	basecache "github.com/riskibarqy/courtvision/internal/platform/cache"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
)

// PositionStatRepository caches period-scoped stat rows. The store is loaded
// out of band, so entries simply age out.
type PositionStatRepository struct {
	next    positionstat.Repository
	rows    *basecache.Store[[]positionstat.Row]
	periods *basecache.Store[[]string]
	metrics *metrics.Manager
}

func NewPositionStatRepository(next positionstat.Repository, maxEntries int, ttl time.Duration, m *metrics.Manager) *PositionStatRepository {
	return &PositionStatRepository{
		next:    next,
		rows:    basecache.NewStore[[]positionstat.Row](maxEntries, ttl),
		periods: basecache.NewStore[[]string](1, ttl),
		metrics: m,
	}
}

func (r *PositionStatRepository) List(ctx context.Context, filter positionstat.Filter) ([]positionstat.Row, error) {
	key := "position_stats:" + strings.TrimSpace(filter.Period) + ":" + strings.ToLower(strings.TrimSpace(filter.Team))
	items, err := loadCached(ctx, r.rows, r.metrics, "position_stats", key, func(ctx context.Context) ([]positionstat.Row, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return append([]positionstat.Row(nil), items...), nil
}

func (r *PositionStatRepository) ListPeriods(ctx context.Context) ([]string, error) {
	items, err := loadCached(ctx, r.periods, r.metrics, "periods", "periods", r.next.ListPeriods)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), items...), nil
}

// GameLogRepository caches per-team reads and drops a team's entries whenever
// that team's rows are written.
type GameLogRepository struct {
	next    gamelog.Repository
	logs    *basecache.Store[[]gamelog.Entry]
	players *basecache.Store[[]string]
	metrics *metrics.Manager
}

func NewGameLogRepository(next gamelog.Repository, maxEntries int, ttl time.Duration, m *metrics.Manager) *GameLogRepository {
	return &GameLogRepository{
		next:    next,
		logs:    basecache.NewStore[[]gamelog.Entry](maxEntries, ttl),
		players: basecache.NewStore[[]string](maxEntries, ttl),
		metrics: m,
	}
}

func (r *GameLogRepository) ListByTeam(ctx context.Context, team string) ([]gamelog.Entry, error) {
	items, err := loadCached(ctx, r.logs, r.metrics, "game_logs", teamKey(team), func(ctx context.Context) ([]gamelog.Entry, error) {
		return r.next.ListByTeam(ctx, team)
	})
	if err != nil {
		return nil, err
	}
	return append([]gamelog.Entry(nil), items...), nil
}

func (r *GameLogRepository) ListPlayers(ctx context.Context, team string) ([]string, error) {
	items, err := loadCached(ctx, r.players, r.metrics, "players", teamKey(team), func(ctx context.Context) ([]string, error) {
		return r.next.ListPlayers(ctx, team)
	})
	if err != nil {
		return nil, err
	}
	return append([]string(nil), items...), nil
}

func (r *GameLogRepository) LatestGameDate(ctx context.Context, team string) (time.Time, bool, error) {
	return r.next.LatestGameDate(ctx, team)
}

func (r *GameLogRepository) ListKeysByTeam(ctx context.Context, team string) ([]gamelog.Key, error) {
	return r.next.ListKeysByTeam(ctx, team)
}

func (r *GameLogRepository) InsertBatch(ctx context.Context, items []gamelog.Entry) (int, error) {
	n, err := r.next.InsertBatch(ctx, items)
	seen := make(map[string]struct{})
	for _, item := range items {
		key := teamKey(item.Team)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		r.invalidate(ctx, key)
	}
	return n, err
}

func (r *GameLogRepository) UpdateBoxScores(ctx context.Context, team string, items []gamelog.BoxScoreUpdate) (int, error) {
	n, err := r.next.UpdateBoxScores(ctx, team, items)
	r.invalidate(ctx, teamKey(team))
	return n, err
}

func (r *GameLogRepository) invalidate(ctx context.Context, key string) {
	r.logs.Delete(ctx, key)
	r.players.Delete(ctx, key)
}

func teamKey(team string) string {
	return "team:" + strings.ToLower(strings.TrimSpace(team))
}

func loadCached[V any](
	ctx context.Context,
	store *basecache.Store[V],
	m *metrics.Manager,
	name, key string,
	load func(ctx context.Context) (V, error),
) (V, error) {
	if v, ok := store.Get(ctx, key); ok {
		m.CacheLookup(name, true)
		return v, nil
	}
	m.CacheLookup(name, false)
	return store.GetOrLoad(ctx, key, load)
}
