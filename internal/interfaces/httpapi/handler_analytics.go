package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtvision/internal/usecase"
)

type rankingRequest struct {
	Team          string   `json:"team" validate:"required,max=100"`
	SelectedStats []string `json:"selected_stats" validate:"omitempty,max=16,dive,required,max=20"`
	TimePeriod    string   `json:"time_period" validate:"omitempty,len=7"`
}

type teammateImpactRequest struct {
	Team         string `json:"team" validate:"required,max=100"`
	AbsentPlayer string `json:"absent_player" validate:"required,max=100"`
	Stat         string `json:"stat" validate:"omitempty,max=10"`
	Sort         string `json:"sort" validate:"omitempty,oneof=descending ascending desc asc"`
	LastNGames   int    `json:"last_n_games" validate:"omitempty,gt=0"`
}

func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Rankings")
	defer span.End()

	var req rankingRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.ranking.Rank(ctx, usecase.RankingInput{
		Team:   req.Team,
		Stats:  req.SelectedStats,
		Period: req.TimePeriod,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "rank team failed", "team", req.Team, "period", req.TimePeriod, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankingToDTO(out))
}

func (h *Handler) TeammateImpact(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TeammateImpact")
	defer span.End()

	var req teammateImpactRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.impact.Compute(ctx, usecase.ImpactInput{
		Team:         req.Team,
		AbsentPlayer: req.AbsentPlayer,
		Stat:         req.Stat,
		Sort:         req.Sort,
		LastNGames:   req.LastNGames,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "teammate impact failed", "team", req.Team, "absent_player", req.AbsentPlayer, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, impactToDTO(out))
}
