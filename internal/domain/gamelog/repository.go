package gamelog

import (
	"context"
	"time"
)

// Repository describes game log persistence needs from use cases.
type Repository interface {
	ListByTeam(ctx context.Context, team string) ([]Entry, error)
	ListPlayers(ctx context.Context, team string) ([]string, error)
	LatestGameDate(ctx context.Context, team string) (time.Time, bool, error)
	InsertBatch(ctx context.Context, items []Entry) (int, error)
	ListKeysByTeam(ctx context.Context, team string) ([]Key, error)
	UpdateBoxScores(ctx context.Context, team string, items []BoxScoreUpdate) (int, error)
}
