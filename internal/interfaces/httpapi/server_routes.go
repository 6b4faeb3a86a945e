package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtvision/internal/platform/metrics"
)

// handle registers h under pattern and reports the pattern to RequestLogging.
func handle(mux *http.ServeMux, pattern string, h http.Handler) {
	mux.Handle(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recordRoute(r)
		h.ServeHTTP(w, r)
	}))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, m *metrics.Manager) {
	handle(mux, "GET /healthz", http.HandlerFunc(handler.Healthz))
	if m != nil {
		handle(mux, "GET /metrics", m.Handler())
	}
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	handle(mux, "GET /v1/teams", http.HandlerFunc(handler.ListTeams))
	handle(mux, "GET /v1/teams/{team}/players", http.HandlerFunc(handler.ListTeamPlayers))
	handle(mux, "GET /v1/teams/{team}/position-stats", http.HandlerFunc(handler.ListTeamPositionStats))
	handle(mux, "GET /v1/periods", http.HandlerFunc(handler.ListPeriods))
}

func registerAnalyticsRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, premium PremiumChecker) {
	gated := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequirePremium(premium, h))
	}
	handle(mux, "POST /v1/rankings", gated(handler.Rankings))
	handle(mux, "POST /v1/teammate-impact", gated(handler.TeammateImpact))
}

func registerAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	handle(mux, "POST /v1/profiles", RequireAuth(verifier, http.HandlerFunc(handler.CreateProfile)))
	handle(mux, "GET /v1/profiles/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))
	handle(mux, "POST /v1/billing/checkout", RequireAuth(verifier, http.HandlerFunc(handler.CreateCheckout)))
	handle(mux, "POST /v1/webhooks/stripe", http.HandlerFunc(handler.StripeWebhook))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, cronSecret string) {
	handle(mux, "POST /v1/internal/jobs/update-game-logs", RequireCronSecret(cronSecret, http.HandlerFunc(handler.RunUpdateGameLogsJob)))
	handle(mux, "POST /v1/internal/jobs/backfill-stats", RequireCronSecret(cronSecret, http.HandlerFunc(handler.RunBackfillStatsJob)))
}
