package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/courtvision/internal/domain/gamelog"
	"github.com/riskibarqy/courtvision/internal/domain/positionstat"
	"github.com/riskibarqy/courtvision/internal/domain/team"
)

type CatalogService struct {
	stats positionstat.Repository
	logs  gamelog.Repository
}

func NewCatalogService(stats positionstat.Repository, logs gamelog.Repository) *CatalogService {
	return &CatalogService{stats: stats, logs: logs}
}

func (s *CatalogService) ListTeams() []team.Team {
	return team.All()
}

func (s *CatalogService) ListPlayers(ctx context.Context, teamName string) (team.Team, []string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListPlayers")
	defer span.End()

	item, err := lookupTeam(teamName)
	if err != nil {
		return team.Team{}, nil, err
	}

	players, err := s.logs.ListPlayers(ctx, item.Name)
	if err != nil {
		return team.Team{}, nil, fmt.Errorf("list players: %w", err)
	}
	return item, players, nil
}

func (s *CatalogService) ListPositionStats(ctx context.Context, teamName, period string) (team.Team, []positionstat.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListPositionStats")
	defer span.End()

	item, err := lookupTeam(teamName)
	if err != nil {
		return team.Team{}, nil, err
	}
	period, err = normalizePeriod(period)
	if err != nil {
		return team.Team{}, nil, err
	}

	rows, err := s.stats.List(ctx, positionstat.Filter{Period: period, Team: item.Name})
	if err != nil {
		return team.Team{}, nil, fmt.Errorf("list position stats: %w", err)
	}
	return item, rows, nil
}

func (s *CatalogService) ListPeriods(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListPeriods")
	defer span.End()

	periods, err := s.stats.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

func lookupTeam(v string) (team.Team, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return team.Team{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}
	item, ok := team.Lookup(v)
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, v)
	}
	return item, nil
}
