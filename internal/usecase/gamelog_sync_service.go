package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/courtvision/internal/domain/gamelog"
	"github.com/riskibarqy/courtvision/internal/domain/team"
	"github.com/riskibarqy/courtvision/internal/platform/id"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
)

// SyncJob names a game log maintenance job.
type SyncJob string

const (
	SyncJobUpdateGameLogs SyncJob = "update_game_logs"
	SyncJobBackfillStats  SyncJob = "backfill_stats"
)

// ParseSyncJob accepts both snake and kebab case.
func ParseSyncJob(v string) (SyncJob, error) {
	switch SyncJob(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "-", "_")) {
	case SyncJobUpdateGameLogs:
		return SyncJobUpdateGameLogs, nil
	case SyncJobBackfillStats:
		return SyncJobBackfillStats, nil
	default:
		return "", fmt.Errorf("%w: unknown sync job %q", ErrInvalidInput, v)
	}
}

// Path is the internal endpoint that runs the job for queued deliveries.
func (j SyncJob) Path() string {
	return "/v1/internal/jobs/" + strings.ReplaceAll(string(j), "_", "-")
}

const (
	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"
	syncStatusQueued  = "queued"

	defaultSyncBatchSize  = 100
	defaultSyncMaxWorkers = 4
)

// ExternalGameLog is one upstream player-game line with both the insert-time
// fields and the extended box score used by the backfill job.
type ExternalGameLog struct {
	Entry    gamelog.Entry
	BoxScore gamelog.BoxScoreUpdate
}

type GameLogProvider interface {
	FetchTeamGameLogs(ctx context.Context, item team.Team, season string) ([]ExternalGameLog, error)
}

// JobPublisher enqueues an HTTP job delivery for later execution.
type JobPublisher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type GameLogSyncConfig struct {
	Season       string
	DefaultStart time.Time
	BatchSize    int
	MaxWorkers   int
	// QueueStagger spaces queued per-team jobs so upstream calls do not burst.
	QueueStagger time.Duration
}

type SyncInput struct {
	Job        SyncJob
	Team       string
	MaxWorkers int
	// Queue fans out one queued job per team instead of running inline.
	Queue bool
}

type SyncTeamResult struct {
	Team       string `json:"team"`
	Status     string `json:"status"`
	Rows       int    `json:"rows"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

type SyncResult struct {
	RunID       string           `json:"run_id"`
	Job         SyncJob          `json:"job"`
	Teams       int              `json:"teams"`
	Succeeded   int              `json:"succeeded"`
	Failed      int              `json:"failed"`
	Queued      int              `json:"queued"`
	Rows        int              `json:"rows"`
	WorkerCount int              `json:"worker_count"`
	DurationMs  int64            `json:"duration_ms"`
	TeamResults []SyncTeamResult `json:"team_results"`
}

type GameLogSyncService struct {
	repo      gamelog.Repository
	provider  GameLogProvider
	publisher JobPublisher
	ids       id.Generator
	cfg       GameLogSyncConfig
	metrics   *metrics.Manager
	logger    *logging.Logger
	now       func() time.Time
}

func NewGameLogSyncService(
	repo gamelog.Repository,
	provider GameLogProvider,
	publisher JobPublisher,
	ids id.Generator,
	cfg GameLogSyncConfig,
	m *metrics.Manager,
	logger *logging.Logger,
) *GameLogSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = defaultSyncBatchSize
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = defaultSyncMaxWorkers
	}
	if cfg.DefaultStart.IsZero() {
		cfg.DefaultStart = time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	}
	if strings.TrimSpace(cfg.Season) == "" {
		cfg.Season = DefaultRankingPeriod
	}

	return &GameLogSyncService{
		repo:      repo,
		provider:  provider,
		publisher: publisher,
		ids:       ids,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *GameLogSyncService) Run(ctx context.Context, input SyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameLogSyncService.Run")
	defer span.End()

	if input.Job != SyncJobUpdateGameLogs && input.Job != SyncJobBackfillStats {
		return SyncResult{}, fmt.Errorf("%w: unknown sync job %q", ErrInvalidInput, input.Job)
	}
	if s.provider == nil {
		return SyncResult{}, fmt.Errorf("%w: game log provider is not configured", ErrDependencyUnavailable)
	}

	teams, err := resolveSyncTeams(input.Team)
	if err != nil {
		return SyncResult{}, err
	}

	runID, err := s.ids.NewID()
	if err != nil {
		return SyncResult{}, fmt.Errorf("generate run id: %w", err)
	}

	started := s.now()
	result := SyncResult{
		RunID:       runID,
		Job:         input.Job,
		Teams:       len(teams),
		TeamResults: make([]SyncTeamResult, 0, len(teams)),
	}

	if input.Queue {
		if s.publisher == nil {
			return SyncResult{}, fmt.Errorf("%w: job queue is not configured", ErrDependencyUnavailable)
		}
		s.enqueue(ctx, runID, input.Job, teams, &result)
	} else if err := s.runInline(ctx, input, teams, &result); err != nil {
		return SyncResult{}, err
	}

	elapsed := s.now().Sub(started)
	result.DurationMs = elapsed.Milliseconds()
	s.metrics.SyncRunFinished(string(input.Job), elapsed)
	s.logger.InfoContext(ctx, "game log sync finished",
		"run_id", runID,
		"job", input.Job,
		"teams", result.Teams,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"queued", result.Queued,
		"rows", result.Rows,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *GameLogSyncService) runInline(ctx context.Context, input SyncInput, teams []team.Team, result *SyncResult) error {
	workers := normalizeSyncWorkers(input.MaxWorkers, s.cfg.MaxWorkers, len(teams))
	result.WorkerCount = workers

	pool, err := ants.NewPool(workers, ants.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("create sync worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan SyncTeamResult, len(teams))
	var rows atomic.Int64
	var wg sync.WaitGroup
	for _, item := range teams {
		item := item
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			res := s.syncTeam(ctx, input.Job, item)
			rows.Add(int64(res.Rows))
			results <- res
		})
		if submitErr != nil {
			wg.Done()
			results <- SyncTeamResult{Team: item.Name, Status: syncStatusFailed, Message: submitErr.Error()}
		}
	}
	wg.Wait()
	close(results)

	for res := range results {
		switch res.Status {
		case syncStatusSuccess:
			result.Succeeded++
		default:
			result.Failed++
		}
		result.TeamResults = append(result.TeamResults, res)
	}
	result.Rows = int(rows.Load())
	sortTeamResults(result.TeamResults)
	return nil
}

func (s *GameLogSyncService) enqueue(ctx context.Context, runID string, job SyncJob, teams []team.Team, result *SyncResult) {
	for i, item := range teams {
		path := job.Path() + "?team=" + url.QueryEscape(item.Name)
		delay := time.Duration(i) * s.cfg.QueueStagger
		dedupID := fmt.Sprintf("%s-%s-%d", job, runID, item.ID)

		res := SyncTeamResult{Team: item.Name, Status: syncStatusQueued}
		if err := s.publisher.Enqueue(ctx, path, map[string]any{"team": item.Name, "run_id": runID}, delay, dedupID); err != nil {
			s.logger.WarnContext(ctx, "enqueue team sync failed", "job", job, "team", item.Name, "error", err)
			res.Status = syncStatusFailed
			res.Message = err.Error()
			result.Failed++
		} else {
			result.Queued++
		}
		result.TeamResults = append(result.TeamResults, res)
	}
}

func (s *GameLogSyncService) syncTeam(ctx context.Context, job SyncJob, item team.Team) SyncTeamResult {
	started := s.now()
	var (
		rows int
		err  error
	)
	switch job {
	case SyncJobUpdateGameLogs:
		rows, err = s.updateTeam(ctx, item)
	case SyncJobBackfillStats:
		rows, err = s.backfillTeam(ctx, item)
	}

	res := SyncTeamResult{
		Team:       item.Name,
		Status:     syncStatusSuccess,
		Rows:       rows,
		DurationMs: s.now().Sub(started).Milliseconds(),
	}
	if err != nil {
		res.Status = syncStatusFailed
		res.Message = err.Error()
		s.logger.WarnContext(ctx, "team sync failed", "job", job, "team", item.Name, "rows", rows, "error", err)
	}
	s.metrics.SyncTeamFinished(string(job), err == nil, rows)
	return res
}

// updateTeam inserts upstream lines dated after the newest stored game.
func (s *GameLogSyncService) updateTeam(ctx context.Context, item team.Team) (int, error) {
	since, ok, err := s.repo.LatestGameDate(ctx, item.Name)
	if err != nil {
		return 0, fmt.Errorf("latest game date: %w", err)
	}
	if !ok {
		since = s.cfg.DefaultStart
	}

	lines, err := s.provider.FetchTeamGameLogs(ctx, item, s.cfg.Season)
	if err != nil {
		return 0, fmt.Errorf("fetch game logs: %w", err)
	}

	fresh := make([]gamelog.Entry, 0, len(lines))
	for _, line := range lines {
		if !line.Entry.GameDate.After(since) {
			continue
		}
		entry := line.Entry
		entry.Team = item.Name
		entry.Season = s.cfg.Season
		fresh = append(fresh, entry)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	inserted := 0
	var errs []error
	for start := 0; start < len(fresh); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(fresh))
		n, err := s.repo.InsertBatch(ctx, fresh[start:end])
		if err != nil {
			errs = append(errs, fmt.Errorf("insert batch %d-%d: %w", start, end, err))
			continue
		}
		inserted += n
	}
	return inserted, errors.Join(errs...)
}

// backfillTeam fills extended box score fields on rows we already store.
func (s *GameLogSyncService) backfillTeam(ctx context.Context, item team.Team) (int, error) {
	lines, err := s.provider.FetchTeamGameLogs(ctx, item, s.cfg.Season)
	if err != nil {
		return 0, fmt.Errorf("fetch game logs: %w", err)
	}
	if len(lines) == 0 {
		return 0, nil
	}

	keys, err := s.repo.ListKeysByTeam(ctx, item.Name)
	if err != nil {
		return 0, fmt.Errorf("list stored game keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	stored := make(map[gamelog.Key]struct{}, len(keys))
	for _, k := range keys {
		stored[k] = struct{}{}
	}

	updates := make([]gamelog.BoxScoreUpdate, 0, len(lines))
	for _, line := range lines {
		if _, ok := stored[line.BoxScore.Key]; ok {
			updates = append(updates, line.BoxScore)
		}
	}

	updated := 0
	var errs []error
	for start := 0; start < len(updates); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(updates))
		n, err := s.repo.UpdateBoxScores(ctx, item.Name, updates[start:end])
		if err != nil {
			errs = append(errs, fmt.Errorf("update batch %d-%d: %w", start, end, err))
			continue
		}
		updated += n
	}
	return updated, errors.Join(errs...)
}

func resolveSyncTeams(name string) ([]team.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return team.All(), nil
	}
	item, ok := team.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, name)
	}
	return []team.Team{item}, nil
}

func normalizeSyncWorkers(requested, configured, tasks int) int {
	workers := configured
	if requested > 0 {
		workers = requested
	}
	if workers > tasks {
		workers = tasks
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func sortTeamResults(items []SyncTeamResult) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Team < items[j].Team
	})
}
