package httpapi

import (
	"time"

	"github.com/riskibarqy/courtvision/internal/domain/analytics"
	"github.com/riskibarqy/courtvision/internal/domain/positionstat"
	"github.com/riskibarqy/courtvision/internal/domain/profile"
	"github.com/riskibarqy/courtvision/internal/domain/team"
	"github.com/riskibarqy/courtvision/internal/usecase"
)

type teamDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type teamPlayersDTO struct {
	Team    string   `json:"team"`
	Players []string `json:"players"`
}

type positionStatDTO struct {
	Position   string  `json:"position"`
	TimePeriod string  `json:"time_period"`
	StatName   string  `json:"stat_name"`
	Value      float64 `json:"value"`
}

type teamPositionStatsDTO struct {
	Team       string            `json:"team"`
	TimePeriod string            `json:"time_period"`
	Rows       []positionStatDTO `json:"rows"`
}

type rankingResultDTO struct {
	Team       string  `json:"team"`
	Stat       string  `json:"stat"`
	Position   string  `json:"position"`
	Value      float64 `json:"value"`
	PctDiff    float64 `json:"pct_diff"`
	Rank       int     `json:"rank"`
	TotalTeams int     `json:"total_teams"`
}

type rankingResponseDTO struct {
	Team       string             `json:"team"`
	TimePeriod string             `json:"time_period"`
	Results    []rankingResultDTO `json:"results"`
}

type playerImpactDTO struct {
	Player           string  `json:"player"`
	WithStar         float64 `json:"with_star"`
	WithoutStar      float64 `json:"without_star"`
	ImpactPct        float64 `json:"impact_pct"`
	Rank             int     `json:"rank"`
	GamesWithStar    int     `json:"games_with_star"`
	GamesWithoutStar int     `json:"games_without_star"`
}

type impactResponseDTO struct {
	Team         string            `json:"team"`
	AbsentPlayer string            `json:"absent_player"`
	Stat         string            `json:"stat"`
	Sort         string            `json:"sort"`
	LastNGames   int               `json:"last_n_games,omitempty"`
	Results      []playerImpactDTO `json:"results"`
}

type profileDTO struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Tier      string    `json:"tier"`
	Premium   bool      `json:"premium"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type checkoutResponseDTO struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type webhookResponseDTO struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Duplicate bool   `json:"duplicate"`
	Action    string `json:"action,omitempty"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, Name: v.Name, Abbreviation: v.Abbreviation}
}

func positionStatsToDTO(item team.Team, period string, rows []positionstat.Row) teamPositionStatsDTO {
	out := teamPositionStatsDTO{Team: item.Name, TimePeriod: period, Rows: make([]positionStatDTO, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, positionStatDTO{
			Position:   row.Position,
			TimePeriod: row.Period,
			StatName:   row.StatName,
			Value:      row.Value,
		})
	}
	return out
}

func rankingToDTO(v usecase.RankingOutput) rankingResponseDTO {
	out := rankingResponseDTO{Team: v.Team, TimePeriod: v.Period, Results: make([]rankingResultDTO, 0, len(v.Results))}
	for _, item := range v.Results {
		out.Results = append(out.Results, rankingResultToDTO(item))
	}
	return out
}

func rankingResultToDTO(v analytics.RankingResult) rankingResultDTO {
	return rankingResultDTO{
		Team:       v.Entity,
		Stat:       v.StatName,
		Position:   v.Group,
		Value:      v.Value,
		PctDiff:    v.PctDiff,
		Rank:       v.Rank,
		TotalTeams: v.CohortSize,
	}
}

func impactToDTO(v usecase.ImpactOutput) impactResponseDTO {
	out := impactResponseDTO{
		Team:         v.Team,
		AbsentPlayer: v.AbsentPlayer,
		Stat:         v.Stat,
		Sort:         string(v.Sort),
		LastNGames:   v.LastNGames,
		Results:      make([]playerImpactDTO, 0, len(v.Results)),
	}
	for _, item := range v.Results {
		out.Results = append(out.Results, playerImpactDTO{
			Player:           item.Player,
			WithStar:         item.WithAbsentAvg,
			WithoutStar:      item.WithoutAbsentAvg,
			ImpactPct:        item.ImpactPct,
			Rank:             item.Rank,
			GamesWithStar:    item.GamesWith,
			GamesWithoutStar: item.GamesWithout,
		})
	}
	return out
}

func profileToDTO(v profile.Profile) profileDTO {
	return profileDTO{
		UserID:    v.UserID,
		Email:     v.Email,
		FullName:  v.FullName,
		Tier:      string(v.Tier),
		Premium:   v.Tier.HasPremiumAccess(),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
