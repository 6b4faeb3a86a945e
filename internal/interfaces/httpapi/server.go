package httpapi

import (
	"net/http"

	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/platform/metrics"
)

type RouterConfig struct {
	Handler            *Handler
	Verifier           TokenVerifier
	Premium            PremiumChecker
	Logger             *logging.Logger
	Metrics            *metrics.Manager
	CORSAllowedOrigins []string
	CronSecret         string
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, cfg.Handler, cfg.Metrics)
	registerCatalogRoutes(mux, cfg.Handler)
	registerAnalyticsRoutes(mux, cfg.Handler, cfg.Verifier, cfg.Premium)
	registerAccountRoutes(mux, cfg.Handler, cfg.Verifier)
	registerInternalJobRoutes(mux, cfg.Handler, cfg.CronSecret)

	return RequestTracing(RequestLogging(logger, cfg.Metrics, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
