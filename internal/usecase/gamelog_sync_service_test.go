package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/courtvision/internal/domain/gamelog"
	"github.com/riskibarqy/courtvision/internal/domain/team"
	gamelogmock "github.com/riskibarqy/courtvision/internal/mocks/domain/gamelog"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubGameLogProvider struct {
	mu    sync.Mutex
	lines map[string][]ExternalGameLog
	err   error
	calls []string
}

func (s *stubGameLogProvider) FetchTeamGameLogs(_ context.Context, item team.Team, season string) ([]ExternalGameLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, item.Name+"@"+season)
	if s.err != nil {
		return nil, s.err
	}
	return s.lines[item.Name], nil
}

type enqueuedJob struct {
	path    string
	delay   time.Duration
	dedupID string
}

type stubPublisher struct {
	mu   sync.Mutex
	jobs []enqueuedJob
	fail map[string]bool
}

func (s *stubPublisher) Enqueue(_ context.Context, path string, _ any, delay time.Duration, dedupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail[path] {
		return errors.New("qstash unavailable")
	}
	s.jobs = append(s.jobs, enqueuedJob{path: path, delay: delay, dedupID: dedupID})
	return nil
}

func syncLines(n int, start time.Time) []ExternalGameLog {
	out := make([]ExternalGameLog, 0, n)
	for i := 0; i < n; i++ {
		game := fmt.Sprintf("00225%05d", i)
		player := fmt.Sprintf("Player %c", 'A'+i%20)
		out = append(out, ExternalGameLog{
			Entry: gamelog.Entry{
				PlayerName: player,
				GameID:     game,
				GameDate:   start.Add(time.Duration(i) * time.Hour),
				Points:     float64(i % 30),
			},
			BoxScore: gamelog.BoxScoreUpdate{
				Key:      gamelog.Key{GameID: game, PlayerName: player},
				BoxScore: gamelog.BoxScore{GamesPlayed: 1, Minutes: 30},
			},
		})
	}
	return out
}

func TestParseSyncJob(t *testing.T) {
	t.Parallel()

	job, err := ParseSyncJob("update-game-logs")
	require.NoError(t, err)
	assert.Equal(t, SyncJobUpdateGameLogs, job)
	assert.Equal(t, "/v1/internal/jobs/update-game-logs", job.Path())

	job, err = ParseSyncJob("BACKFILL_STATS")
	require.NoError(t, err)
	assert.Equal(t, SyncJobBackfillStats, job)

	_, err = ParseSyncJob("reindex")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGameLogSyncService_UpdateInsertsFreshRowsInBatches(t *testing.T) {
	t.Parallel()

	latest := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	provider := &stubGameLogProvider{lines: map[string][]ExternalGameLog{
		"Atlanta Hawks": append(syncLines(5, latest.Add(-48*time.Hour)), syncLines(250, latest.Add(time.Hour))...),
	}}

	repo := gamelogmock.NewRepository(t)
	repo.On("LatestGameDate", mock.Anything, "Atlanta Hawks").Return(latest, true, nil).Once()
	repo.
		On("InsertBatch", mock.Anything, mock.MatchedBy(func(items []gamelog.Entry) bool {
			for _, item := range items {
				if item.Team != "Atlanta Hawks" || item.Season != "2025-26" || !item.GameDate.After(latest) {
					return false
				}
			}
			return len(items) == 100
		})).
		Return(100, nil).
		Twice()
	repo.
		On("InsertBatch", mock.Anything, mock.MatchedBy(func(items []gamelog.Entry) bool { return len(items) == 50 })).
		Return(50, nil).
		Once()

	service := NewGameLogSyncService(repo, provider, nil, fixedID("run-1"), GameLogSyncConfig{}, metrics.NewManager(), nil)
	got, err := service.Run(context.Background(), SyncInput{Job: SyncJobUpdateGameLogs, Team: "ATL"})
	require.NoError(t, err)

	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 1, got.Teams)
	assert.Equal(t, 1, got.Succeeded)
	assert.Equal(t, 250, got.Rows)
	assert.Equal(t, 1, got.WorkerCount)
	require.Len(t, got.TeamResults, 1)
	assert.Equal(t, "success", got.TeamResults[0].Status)
	assert.Equal(t, []string{"Atlanta Hawks@2025-26"}, provider.calls)
}

func TestGameLogSyncService_UpdateUsesDefaultStartWhenEmpty(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	provider := &stubGameLogProvider{lines: map[string][]ExternalGameLog{
		"Utah Jazz": append(syncLines(2, start.Add(-72*time.Hour)), syncLines(3, start.Add(24*time.Hour))...),
	}}

	repo := gamelogmock.NewRepository(t)
	repo.On("LatestGameDate", mock.Anything, "Utah Jazz").Return(time.Time{}, false, nil).Once()
	repo.On("InsertBatch", mock.Anything, mock.MatchedBy(func(items []gamelog.Entry) bool { return len(items) == 3 })).Return(3, nil).Once()

	service := NewGameLogSyncService(repo, provider, nil, nil, GameLogSyncConfig{}, nil, nil)
	got, err := service.Run(context.Background(), SyncInput{Job: SyncJobUpdateGameLogs, Team: "Utah Jazz"})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Rows)
}

func TestGameLogSyncService_BackfillOnlyTouchesStoredRows(t *testing.T) {
	t.Parallel()

	lines := syncLines(4, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	provider := &stubGameLogProvider{lines: map[string][]ExternalGameLog{"Miami Heat": lines}}

	repo := gamelogmock.NewRepository(t)
	repo.
		On("ListKeysByTeam", mock.Anything, "Miami Heat").
		Return([]gamelog.Key{lines[0].BoxScore.Key, lines[2].BoxScore.Key, {GameID: "x", PlayerName: "Nobody"}}, nil).
		Once()
	repo.
		On("UpdateBoxScores", mock.Anything, "Miami Heat", mock.MatchedBy(func(items []gamelog.BoxScoreUpdate) bool {
			return len(items) == 2 && items[0].Key == lines[0].BoxScore.Key && items[1].Key == lines[2].BoxScore.Key
		})).
		Return(2, nil).
		Once()

	service := NewGameLogSyncService(repo, provider, nil, nil, GameLogSyncConfig{}, nil, nil)
	got, err := service.Run(context.Background(), SyncInput{Job: SyncJobBackfillStats, Team: "MIA"})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rows)
}

func TestGameLogSyncService_AllTeamsInlineReportsFailures(t *testing.T) {
	t.Parallel()

	provider := &stubGameLogProvider{err: errors.New("stats.nba.com timeout")}
	repo := gamelogmock.NewRepository(t)
	repo.On("LatestGameDate", mock.Anything, mock.Anything).Return(time.Time{}, false, nil).Times(30)

	service := NewGameLogSyncService(repo, provider, nil, nil, GameLogSyncConfig{MaxWorkers: 3}, nil, nil)
	got, err := service.Run(context.Background(), SyncInput{Job: SyncJobUpdateGameLogs})
	require.NoError(t, err)

	assert.Equal(t, 30, got.Teams)
	assert.Equal(t, 30, got.Failed)
	assert.Equal(t, 3, got.WorkerCount)
	require.Len(t, got.TeamResults, 30)
	assert.Equal(t, "Atlanta Hawks", got.TeamResults[0].Team)
	assert.Contains(t, got.TeamResults[0].Message, "timeout")
}

func TestGameLogSyncService_QueueFansOutPerTeam(t *testing.T) {
	t.Parallel()

	publisher := &stubPublisher{fail: map[string]bool{
		"/v1/internal/jobs/backfill-stats?team=Utah+Jazz": true,
	}}
	service := NewGameLogSyncService(gamelogmock.NewRepository(t), &stubGameLogProvider{}, publisher, fixedID("run-9"), GameLogSyncConfig{
		QueueStagger: 2 * time.Second,
	}, nil, nil)

	got, err := service.Run(context.Background(), SyncInput{Job: SyncJobBackfillStats, Queue: true})
	require.NoError(t, err)

	assert.Equal(t, 29, got.Queued)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, publisher.jobs, 29)
	assert.Equal(t, "/v1/internal/jobs/backfill-stats?team=Atlanta+Hawks", publisher.jobs[0].path)
	assert.Equal(t, time.Duration(0), publisher.jobs[0].delay)
	assert.Equal(t, 2*time.Second, publisher.jobs[1].delay)
	assert.True(t, strings.HasPrefix(publisher.jobs[0].dedupID, "backfill_stats-run-9-"))
}

func TestGameLogSyncService_Rejections(t *testing.T) {
	t.Parallel()

	repo := gamelogmock.NewRepository(t)

	noProvider := NewGameLogSyncService(repo, nil, nil, nil, GameLogSyncConfig{}, nil, nil)
	_, err := noProvider.Run(context.Background(), SyncInput{Job: SyncJobUpdateGameLogs})
	assert.ErrorIs(t, err, ErrDependencyUnavailable)

	service := NewGameLogSyncService(repo, &stubGameLogProvider{}, nil, nil, GameLogSyncConfig{}, nil, nil)
	_, err = service.Run(context.Background(), SyncInput{Job: "reindex"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Run(context.Background(), SyncInput{Job: SyncJobUpdateGameLogs, Team: "Gotham"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Run(context.Background(), SyncInput{Job: SyncJobUpdateGameLogs, Queue: true})
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}
