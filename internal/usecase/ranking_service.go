package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/courtvision/internal/domain/analytics"
	"github.com/riskibarqy/courtvision/internal/domain/positionstat"
	"github.com/riskibarqy/courtvision/internal/domain/team"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultRankingPeriod = "2025-26"
	maxRankingStats      = 16
)

var defaultRankingStats = []string{"PTS", "REB"}

type RankingInput struct {
	Team   string
	Stats  []string
	Period string
}

type RankingOutput struct {
	Team      string
	Period    string
	Stats     []string
	Results   []analytics.RankingResult
	Omissions []analytics.Omission
	Truncated int
}

// RankingService ranks a team's per-position defensive stats against every
// other team that fielded the same position in a period.
type RankingService struct {
	stats   positionstat.Repository
	metrics *metrics.Manager
	logger  *logging.Logger
}

func NewRankingService(stats positionstat.Repository, m *metrics.Manager, logger *logging.Logger) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{stats: stats, metrics: m, logger: logger}
}

func (s *RankingService) Rank(ctx context.Context, input RankingInput) (RankingOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Rank")
	defer span.End()

	target := strings.TrimSpace(input.Team)
	if target == "" {
		return RankingOutput{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}

	period, err := normalizePeriod(input.Period)
	if err != nil {
		return RankingOutput{}, err
	}
	stats, err := normalizeRankingStats(input.Stats)
	if err != nil {
		return RankingOutput{}, err
	}
	span.SetAttributes(
		attribute.String("ranking.team", target),
		attribute.String("ranking.period", period),
		attribute.StringSlice("ranking.stats", stats),
	)

	rows, err := s.stats.List(ctx, positionstat.Filter{Period: period})
	if err != nil {
		s.metrics.RankingComputed("error", nil)
		return RankingOutput{}, fmt.Errorf("list position stats: %w", err)
	}

	target, ranking, err := rankFirstMatch(analytics.Pivot(toStatRows(rows)), target, stats)
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, analytics.ErrNoData):
			outcome = "no_data"
		case errors.Is(err, analytics.ErrTargetNotFound):
			outcome = "target_not_found"
		}
		s.metrics.RankingComputed(outcome, nil)
		return RankingOutput{}, fmt.Errorf("rank team=%s period=%s: %w", target, period, err)
	}

	reasons := make([]string, 0, len(ranking.Omissions))
	for _, o := range ranking.Omissions {
		reasons = append(reasons, string(o.Reason))
	}
	s.metrics.RankingComputed("ok", reasons)
	if len(ranking.Omissions) > 0 {
		s.logger.DebugContext(ctx, "ranking omitted entries",
			"team", target,
			"period", period,
			"omissions", ranking.Omissions,
		)
	}

	return RankingOutput{
		Team:      target,
		Period:    period,
		Stats:     stats,
		Results:   ranking.Results,
		Omissions: ranking.Omissions,
		Truncated: ranking.Truncated,
	}, nil
}

// rankFirstMatch ranks the name as requested, then falls back to the catalog
// spellings of the same team. The returned name is the one that matched.
func rankFirstMatch(pivoted *analytics.Pivoted, target string, stats []string) (string, analytics.Ranking, error) {
	candidates := []string{target}
	if item, ok := team.Lookup(target); ok {
		for _, name := range team.Names(item) {
			if !strings.EqualFold(name, target) {
				candidates = append(candidates, name)
			}
		}
	}

	var err error
	for _, name := range candidates {
		var ranking analytics.Ranking
		ranking, err = analytics.Rank(pivoted, name, stats, analytics.DefaultGroups)
		if err == nil {
			return name, ranking, nil
		}
		if !errors.Is(err, analytics.ErrTargetNotFound) {
			break
		}
	}
	return target, analytics.Ranking{}, err
}

func toStatRows(rows []positionstat.Row) []analytics.StatRow {
	out := make([]analytics.StatRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, analytics.StatRow{
			Entity:   r.Team,
			Group:    r.Position,
			Period:   r.Period,
			StatName: r.StatName,
			Value:    r.Value,
		})
	}
	return out
}

func normalizePeriod(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultRankingPeriod, nil
	}
	if !positionstat.ValidPeriod(v) {
		return "", fmt.Errorf("%w: time period must look like 2025-26", ErrInvalidInput)
	}
	return v, nil
}

func normalizeRankingStats(in []string) ([]string, error) {
	if len(in) == 0 {
		return append([]string(nil), defaultRankingStats...), nil
	}
	if len(in) > maxRankingStats {
		return nil, fmt.Errorf("%w: at most %d stats can be ranked at once", ErrInvalidInput, maxRankingStats)
	}

	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		stat := strings.ToUpper(strings.TrimSpace(raw))
		if stat == "" {
			return nil, fmt.Errorf("%w: stat names must not be empty", ErrInvalidInput)
		}
		if _, dup := seen[stat]; dup {
			continue
		}
		seen[stat] = struct{}{}
		out = append(out, stat)
	}
	return out, nil
}
