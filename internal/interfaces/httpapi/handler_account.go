package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/riskibarqy/courtvision/internal/usecase"
)

const maxWebhookBodyBytes = 1 << 16

type createProfileRequest struct {
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	FullName string `json:"full_name" validate:"required,max=200"`
}

type checkoutRequest struct {
	UserID string `json:"user_id" validate:"required,max=255"`
}

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateProfile")
	defer span.End()

	principal, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req createProfileRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.profiles.Create(ctx, principal, usecase.CreateProfileInput{
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, profileToDTO(item))
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	principal, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	item, err := h.profiles.Get(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, profileToDTO(item))
}

func (h *Handler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateCheckout")
	defer span.End()

	principal, ok := h.requirePrincipal(ctx, w)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, err := h.billing.CreateCheckout(ctx, usecase.CheckoutInput{
		Principal: principal,
		UserID:    req.UserID,
		Origin:    r.Header.Get("Origin"),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create checkout failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, checkoutResponseDTO{SessionID: session.ID, URL: session.URL})
}

func (h *Handler) StripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StripeWebhook")
	defer span.End()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes+1))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read webhook body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if len(payload) > maxWebhookBodyBytes {
		writeError(ctx, w, fmt.Errorf("%w: webhook body too large", usecase.ErrInvalidInput))
		return
	}

	result, err := h.billing.HandleWebhook(ctx, payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.WarnContext(ctx, "stripe webhook failed", "event_id", result.EventID, "event_type", result.EventType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, webhookResponseDTO{
		Received:  true,
		EventID:   result.EventID,
		EventType: result.EventType,
		Duplicate: result.Duplicate,
		Action:    result.Action,
	})
}
