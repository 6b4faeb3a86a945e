package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/courtvision/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items := h.catalog.ListTeams()
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	item, players, err := h.catalog.ListPlayers(ctx, r.PathValue("team"))
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "team", r.PathValue("team"), "error", err)
		writeError(ctx, w, err)
		return
	}
	if players == nil {
		players = []string{}
	}
	writeSuccess(ctx, w, http.StatusOK, teamPlayersDTO{Team: item.Name, Players: players})
}

func (h *Handler) ListTeamPositionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPositionStats")
	defer span.End()

	period := strings.TrimSpace(r.URL.Query().Get("period"))
	item, rows, err := h.catalog.ListPositionStats(ctx, r.PathValue("team"), period)
	if err != nil {
		h.logger.WarnContext(ctx, "list team position stats failed", "team", r.PathValue("team"), "period", period, "error", err)
		writeError(ctx, w, err)
		return
	}
	if period == "" {
		period = usecase.DefaultRankingPeriod
	}
	writeSuccess(ctx, w, http.StatusOK, positionStatsToDTO(item, period, rows))
}

func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPeriods")
	defer span.End()

	periods, err := h.catalog.ListPeriods(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list periods failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if periods == nil {
		periods = []string{}
	}
	writeSuccess(ctx, w, http.StatusOK, periods)
}
