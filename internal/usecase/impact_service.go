package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/riskibarqy/courtvision/internal/domain/analytics"
	"github.com/riskibarqy/courtvision/internal/domain/gamelog"
	"github.com/riskibarqy/courtvision/internal/domain/team"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxPlayerNameLength = 100
	maxLastNGames       = 82
)

var playerNamePattern = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)

type ImpactInput struct {
	Team         string
	AbsentPlayer string
	Stat         string
	Sort         string
	LastNGames   int
}

type ImpactOutput struct {
	Team         string
	AbsentPlayer string
	Stat         string
	Sort         analytics.SortOrder
	LastNGames   int
	Results      []analytics.PlayerImpact
}

// ImpactService measures how each teammate's production moves when one player
// sits out.
type ImpactService struct {
	logs    gamelog.Repository
	metrics *metrics.Manager
	logger  *logging.Logger
}

func NewImpactService(logs gamelog.Repository, m *metrics.Manager, logger *logging.Logger) *ImpactService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ImpactService{logs: logs, metrics: m, logger: logger}
}

func (s *ImpactService) Compute(ctx context.Context, input ImpactInput) (ImpactOutput, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ImpactService.Compute")
	defer span.End()

	item, ok := team.Lookup(input.Team)
	if !ok {
		return ImpactOutput{}, fmt.Errorf("%w: unknown team %q", ErrInvalidInput, strings.TrimSpace(input.Team))
	}
	player, err := normalizePlayerName(input.AbsentPlayer)
	if err != nil {
		return ImpactOutput{}, err
	}
	if input.LastNGames < 0 || input.LastNGames > maxLastNGames {
		return ImpactOutput{}, fmt.Errorf("%w: last_n_games must be between 0 and %d", ErrInvalidInput, maxLastNGames)
	}

	stat := gamelog.NormalizeImpactStat(input.Stat)
	order := analytics.ParseSortOrder(input.Sort)
	span.SetAttributes(
		attribute.String("impact.team", item.Name),
		attribute.String("impact.stat", stat),
		attribute.Int("impact.last_n_games", input.LastNGames),
	)

	entries, err := s.logs.ListByTeam(ctx, item.Name)
	if err != nil {
		s.metrics.ImpactComputed("error")
		return ImpactOutput{}, fmt.Errorf("list game logs: %w", err)
	}

	rows := analytics.LastNGames(toGameLogRows(entries), input.LastNGames)
	results, err := analytics.Impact(rows, player, stat, order)
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, analytics.ErrNoData):
			outcome = "no_data"
		case errors.Is(err, analytics.ErrTargetNotFound):
			outcome = "target_not_found"
		}
		s.metrics.ImpactComputed(outcome)
		return ImpactOutput{}, fmt.Errorf("impact team=%s player=%s: %w", item.Name, player, err)
	}
	s.metrics.ImpactComputed("ok")

	s.logger.DebugContext(ctx, "teammate impact computed",
		"team", item.Name,
		"absent_player", player,
		"stat", stat,
		"rows", len(rows),
		"teammates", len(results),
	)

	return ImpactOutput{
		Team:         item.Name,
		AbsentPlayer: player,
		Stat:         stat,
		Sort:         order,
		LastNGames:   input.LastNGames,
		Results:      results,
	}, nil
}

func toGameLogRows(entries []gamelog.Entry) []analytics.GameLogRow {
	out := make([]analytics.GameLogRow, 0, len(entries))
	for _, e := range entries {
		out = append(out, analytics.GameLogRow{
			Team:       e.Team,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			GameID:     e.GameID,
			GameDate:   e.GameDate,
			Stats:      e.StatValues(),
		})
	}
	return out
}

func normalizePlayerName(v string) (string, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return "", fmt.Errorf("%w: absent player is required", ErrInvalidInput)
	case len(v) > maxPlayerNameLength:
		return "", fmt.Errorf("%w: absent player must be at most %d characters", ErrInvalidInput, maxPlayerNameLength)
	case !playerNamePattern.MatchString(v):
		return "", fmt.Errorf("%w: absent player contains invalid characters", ErrInvalidInput)
	}
	return v, nil
}
