package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/courtvision/internal/domain/user"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

const routeContextKey contextKey = "matched_route"

// routeInfo carries the matched mux pattern back out to the outer middleware.
type routeInfo struct {
	pattern string
}

func withRouteInfo(ctx context.Context) (context.Context, *routeInfo) {
	info := &routeInfo{}
	return context.WithValue(ctx, routeContextKey, info), info
}

func recordRoute(r *http.Request) {
	if info, ok := r.Context().Value(routeContextKey).(*routeInfo); ok && info != nil {
		info.pattern = r.Pattern
	}
}
