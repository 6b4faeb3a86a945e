package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/courtvision/internal/domain/user"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
	"github.com/riskibarqy/courtvision/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type HandlerDeps struct {
	Catalog  *usecase.CatalogService
	Ranking  *usecase.RankingService
	Impact   *usecase.ImpactService
	Profiles *usecase.ProfileService
	Billing  *usecase.BillingService
	Sync     *usecase.GameLogSyncService
	// SyncQueue fans full-league job runs out through the job queue.
	SyncQueue bool
}

type Handler struct {
	catalog   *usecase.CatalogService
	ranking   *usecase.RankingService
	impact    *usecase.ImpactService
	profiles  *usecase.ProfileService
	billing   *usecase.BillingService
	sync      *usecase.GameLogSyncService
	syncQueue bool
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(deps HandlerDeps, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalog:   deps.Catalog,
		ranking:   deps.Ranking,
		impact:    deps.Impact,
		profiles:  deps.Profiles,
		billing:   deps.Billing,
		sync:      deps.Sync,
		syncQueue: deps.SyncQueue,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeJSON strictly decodes the request body into dst. An empty body is
// allowed when allowEmpty is set.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if allowEmpty && err == io.EOF {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) requirePrincipal(ctx context.Context, w http.ResponseWriter) (user.Principal, bool) {
	p, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return user.Principal{}, false
	}
	return p, true
}
